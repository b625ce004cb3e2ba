// Package token handles session token generation and validation
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bhaskarverma12/kodebank/internal/models"
)

// Claims are the identity facts embedded in a session token
type Claims struct {
	UserID   int
	Username string
	Role     models.Role
}

// TokenGenerator handles JWT session token generation and validation.
// The signing secret is immutable after construction; validation performs
// no I/O, so checks stay O(1) at the cost of no server-side revocation.
type TokenGenerator struct {
	secret   string
	tokenTTL time.Duration
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, tokenTTL time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// Generate creates a signed session token carrying the given claims.
// The issuance timestamp is part of the signed payload, so identical claims
// issued at different instants produce different artifacts.
func (tg *TokenGenerator) Generate(claims Claims) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tg.tokenTTL)

	mapClaims := jwt.MapClaims{
		"user_id":  claims.UserID,
		"username": claims.Username,
		"role":     string(claims.Role),
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	tokenString, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Validate checks the signature and expiry of a session token and returns its claims.
// It returns models.ErrExpiredToken for a structurally valid but expired token and
// models.ErrInvalidToken for anything else: altered bytes, a foreign secret, or a
// malformed structure.
func (tg *TokenGenerator) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tg.secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, models.ErrExpiredToken
		}
		return nil, models.ErrInvalidToken
	}

	if !token.Valid {
		return nil, models.ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.ErrInvalidToken
	}

	// Extract userID (JWT claims decode numbers as float64)
	userID, ok := mapClaims["user_id"].(float64)
	if !ok {
		return nil, models.ErrInvalidToken
	}

	username, ok := mapClaims["username"].(string)
	if !ok {
		return nil, models.ErrInvalidToken
	}

	role, ok := mapClaims["role"].(string)
	if !ok {
		return nil, models.ErrInvalidToken
	}

	return &Claims{
		UserID:   int(userID),
		Username: username,
		Role:     models.Role(role),
	}, nil
}
