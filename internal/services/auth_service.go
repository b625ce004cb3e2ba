package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bhaskarverma12/kodebank/internal/models"
	"github.com/bhaskarverma12/kodebank/internal/security"
	"github.com/bhaskarverma12/kodebank/internal/token"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user.
	//
	// If the username or email is already taken, models.ErrDuplicateUser is returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByUsername retrieves a user by username.
	//
	// If user with such username does not exist, models.ErrUserNotFound is returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, models.ErrUserNotFound is returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
}

// SessionTokenRepository is the interface that wraps methods for the issued-token ledger
type SessionTokenRepository interface {
	// Method Create appends a new issuance record to the ledger.
	//
	// If some error occurs during the insert, the error will be returned.
	Create(ctx context.Context, sessionToken *models.SessionToken) error
	// Method DeleteExpired removes ledger rows whose expiry is at or before "now"
	// and returns the number of deleted rows.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// authService implements AuthService
type authService struct {
	userRepo         UserRepository
	sessionTokenRepo SessionTokenRepository
	tokenGenerator   *token.TokenGenerator
	logger           *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo UserRepository,
	sessionTokenRepo SessionTokenRepository,
	tokenGenerator *token.TokenGenerator,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:         userRepo,
		sessionTokenRepo: sessionTokenRepo,
		tokenGenerator:   tokenGenerator,
		logger:           logger,
	}
}

// Register creates a new user account.
// Uniqueness is decided by the insert itself: the store's unique constraints are
// the final arbiter, so two concurrent registrations with the same username or
// email produce exactly one success and one models.ErrDuplicateUser.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Username == "" || req.Password == "" || req.Email == "" {
		return nil, fmt.Errorf("%w: username, password and email are required", models.ErrValidation)
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer // Default role
	}
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", models.ErrValidation, req.Role)
	}

	// Hash password
	passwordHash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user, issues a session token and records it in the ledger.
// An unknown username and a wrong password are indistinguishable to the caller:
// both return models.ErrInvalidCredentials. Prior tokens for the same user stay
// valid until their own expiry (multi-session by default).
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, time.Time, models.Role, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return "", time.Time{}, "", fmt.Errorf("%w: username and password are required", models.ErrValidation)
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", time.Time{}, "", models.ErrInvalidCredentials
		}
		return "", time.Time{}, "", err
	}

	if !security.VerifyPassword(req.Password, user.PasswordHash) {
		return "", time.Time{}, "", models.ErrInvalidCredentials
	}

	tokenString, expiresAt, err := s.tokenGenerator.Generate(token.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return "", time.Time{}, "", fmt.Errorf("failed to generate session token: %w", err)
	}

	sessionToken := &models.SessionToken{
		UserID:    user.ID,
		Token:     tokenString,
		ExpiresAt: expiresAt,
	}
	if err := s.sessionTokenRepo.Create(ctx, sessionToken); err != nil {
		return "", time.Time{}, "", fmt.Errorf("failed to record session token: %w", err)
	}

	return tokenString, expiresAt, user.Role, nil
}

// GetBalance returns the balance of the user identified by validated token claims
func (s *authService) GetBalance(ctx context.Context, userID int) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	return user.Balance, nil
}
