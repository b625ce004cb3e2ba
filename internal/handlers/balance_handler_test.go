package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bhaskarverma12/kodebank/internal/middleware"
	"github.com/bhaskarverma12/kodebank/internal/models"
	"github.com/bhaskarverma12/kodebank/internal/token"
)

// newBalanceRouter mounts the balance handler behind the token auth middleware,
// mirroring the production router wiring
func newBalanceRouter(service AuthService, tokenGen *token.TokenGenerator) chi.Router {
	handler := NewBalanceHandler(service, zap.NewNop())

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(tokenGen))
		handler.RegisterRoutes(r)
	})
	return r
}

func TestBalanceHandler_GetBalance(t *testing.T) {
	tokenGen := token.NewTokenGenerator("test-secret", 1*time.Hour)

	validToken, _, err := tokenGen.Generate(token.Claims{UserID: 1, Username: "alice", Role: models.RoleCustomer})
	require.NoError(t, err)

	expiredGen := token.NewTokenGenerator("test-secret", -1*time.Minute)
	expiredToken, _, err := expiredGen.Generate(token.Claims{UserID: 1, Username: "alice", Role: models.RoleCustomer})
	require.NoError(t, err)

	foreignGen := token.NewTokenGenerator("other-secret", 1*time.Hour)
	foreignToken, _, err := foreignGen.Generate(token.Claims{UserID: 1, Username: "alice", Role: models.RoleCustomer})
	require.NoError(t, err)

	t.Run("valid cookie returns the balance as a number", func(t *testing.T) {
		r := newBalanceRouter(&mockAuthService{balance: "100000.00"}, tokenGen)

		req := httptest.NewRequest(http.MethodGet, "/getBalance", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: validToken})
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		// Unquoted decimal with its exact scale
		assert.JSONEq(t, `{"balance":100000.00}`, w.Body.String())
	})

	t.Run("bearer header works as transport too", func(t *testing.T) {
		r := newBalanceRouter(&mockAuthService{balance: "100000.00"}, tokenGen)

		req := httptest.NewRequest(http.MethodGet, "/getBalance", nil)
		req.Header.Set("Authorization", "Bearer "+validToken)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("no token is 401", func(t *testing.T) {
		r := newBalanceRouter(&mockAuthService{balance: "100000.00"}, tokenGen)

		req := httptest.NewRequest(http.MethodGet, "/getBalance", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token is 403", func(t *testing.T) {
		r := newBalanceRouter(&mockAuthService{balance: "100000.00"}, tokenGen)

		req := httptest.NewRequest(http.MethodGet, "/getBalance", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: expiredToken})
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"error":"token expired"}`, w.Body.String())
	})

	t.Run("token signed with a foreign secret is 403", func(t *testing.T) {
		r := newBalanceRouter(&mockAuthService{balance: "100000.00"}, tokenGen)

		req := httptest.NewRequest(http.MethodGet, "/getBalance", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: foreignToken})
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"error":"invalid token"}`, w.Body.String())
	})

	t.Run("vanished user is 404", func(t *testing.T) {
		r := newBalanceRouter(&mockAuthService{balanceErr: models.ErrUserNotFound}, tokenGen)

		req := httptest.NewRequest(http.MethodGet, "/getBalance", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: validToken})
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
