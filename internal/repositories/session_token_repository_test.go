package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhaskarverma12/kodebank/internal/models"
)

// setupSessionTokenTestRepository creates a session token repository with a mock database
func setupSessionTokenTestRepository(t *testing.T) (*sessionTokenRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewSessionTokenRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestSessionTokenRepository_Create(t *testing.T) {
	expiresAt := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name          string
		sessionToken  *models.SessionToken
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name: "success",
			sessionToken: &models.SessionToken{
				UserID:    1,
				Token:     "signed-token",
				ExpiresAt: expiresAt,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO session_tokens \(token, user_id, expires_at\) VALUES \(\?, \?, \?\)`).
					WithArgs("signed-token", 1, expiresAt).
					WillReturnResult(sqlmock.NewResult(7, 1))
			},
			expectedID: 7,
		},
		{
			name: "database error on insert",
			sessionToken: &models.SessionToken{
				UserID:    1,
				Token:     "signed-token",
				ExpiresAt: expiresAt,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO session_tokens \(token, user_id, expires_at\) VALUES \(\?, \?, \?\)`).
					WithArgs("signed-token", 1, expiresAt).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSessionTokenTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.sessionToken)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.sessionToken.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionTokenRepository_DeleteExpired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name: "deletes expired rows",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM session_tokens WHERE expires_at <= \?`).
					WithArgs(now).
					WillReturnResult(sqlmock.NewResult(0, 3))
			},
			expectedCount: 3,
		},
		{
			name: "nothing to delete",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM session_tokens WHERE expires_at <= \?`).
					WithArgs(now).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedCount: 0,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM session_tokens WHERE expires_at <= \?`).
					WithArgs(now).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSessionTokenTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			count, err := repo.DeleteExpired(context.Background(), now)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedCount, count)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
