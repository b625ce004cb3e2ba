package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bhaskarverma12/kodebank/internal/models"
)

// sessionTokenRepository implements SessionTokenRepository
type sessionTokenRepository struct {
	db *sql.DB
}

// NewSessionTokenRepository creates a new session token repository
func NewSessionTokenRepository(db *sql.DB) *sessionTokenRepository {
	return &sessionTokenRepository{
		db: db,
	}
}

// Create appends an issuance record to the ledger. Rows are never updated;
// token validation does not read this table.
func (r *sessionTokenRepository) Create(ctx context.Context, sessionToken *models.SessionToken) error {
	query := `
		INSERT INTO session_tokens (token, user_id, expires_at)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, sessionToken.Token, sessionToken.UserID, sessionToken.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to record session token: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	sessionToken.ID = int(id)
	return nil
}

// DeleteExpired removes all ledger rows whose expiry is at or before the given time
func (r *sessionTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	query := `DELETE FROM session_tokens WHERE expires_at <= ?`

	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rowsAffected), nil
}
