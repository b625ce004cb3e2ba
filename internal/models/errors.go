package models

import "errors"

// Sentinel errors shared across layers. Handlers map them to HTTP statuses
// with errors.Is; anything not in this list is reported as an internal error
// with the detail withheld from the client.
var (
	ErrValidation         = errors.New("missing or invalid field")
	ErrDuplicateUser      = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("authentication token required")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrUserNotFound       = errors.New("user not found")
)
