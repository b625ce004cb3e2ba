package models

import "time"

// SessionToken is one row of the issued-token ledger. Rows are appended on
// login and never updated; verification is stateless and does not read them.
type SessionToken struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
