package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/bhaskarverma12/kodebank/internal/models"
	"github.com/bhaskarverma12/kodebank/internal/token"
)

const claimsKey contextKey = "claims"

// AuthMiddleware validates the session token and stores its claims in the
// request context. A missing token is 401; a token that fails validation
// (invalid signature, altered bytes, or past expiry) is 403. Validation is
// purely cryptographic, no store lookup happens here.
func AuthMiddleware(tokenGenerator *token.TokenGenerator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from Authorization header or cookie
			var tokenString string

			// Try Authorization header first
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				// Expected format: "Bearer <token>"
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					tokenString = parts[1]
				}
			}

			// If not in header, try cookie
			if tokenString == "" {
				cookie, err := r.Cookie("token")
				if err == nil {
					tokenString = cookie.Value
				}
			}

			// If no token found, return 401
			if tokenString == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"authentication token required"}`))
				return
			}

			// Validate token and extract claims
			claims, err := tokenGenerator.Validate(tokenString)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				if errors.Is(err, models.ErrExpiredToken) {
					w.Write([]byte(`{"error":"token expired"}`))
				} else {
					w.Write([]byte(`{"error":"invalid token"}`))
				}
				return
			}

			// Add claims to context
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims retrieves the validated token claims from context
func GetClaims(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*token.Claims)
	return claims, ok
}
