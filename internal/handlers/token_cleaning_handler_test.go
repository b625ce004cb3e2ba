package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/bhaskarverma12/kodebank/internal/middleware"
	"github.com/bhaskarverma12/kodebank/internal/models"
)

// mockSessionTokenRepository implements services.SessionTokenRepository
type mockSessionTokenRepository struct {
	deletedCount int
	deleteErr    error
}

func (m *mockSessionTokenRepository) Create(ctx context.Context, sessionToken *models.SessionToken) error {
	return nil
}

func (m *mockSessionTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	return m.deletedCount, nil
}

// newTokenCleaningRouter mounts the token cleaning handler behind the API key
// middleware, mirroring the production router wiring
func newTokenCleaningRouter(repo *mockSessionTokenRepository, apiKey string) chi.Router {
	handler := NewTokenCleaningHandler(repo, zap.NewNop())

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKeyMiddleware(apiKey))
		handler.RegisterRoutes(r)
	})
	return r
}

func TestTokenCleaningHandler_CleanTokens(t *testing.T) {
	const apiKey = "test-api-key"

	t.Run("correct key reports the deleted count", func(t *testing.T) {
		r := newTokenCleaningRouter(&mockSessionTokenRepository{deletedCount: 3}, apiKey)

		req := httptest.NewRequest(http.MethodGet, "/tokens/clean", nil)
		req.Header.Set("X-API-Key", apiKey)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"token cleaning completed successfully","deleted":3}`, w.Body.String())
	})

	t.Run("empty ledger is not an error", func(t *testing.T) {
		r := newTokenCleaningRouter(&mockSessionTokenRepository{deletedCount: 0}, apiKey)

		req := httptest.NewRequest(http.MethodGet, "/tokens/clean", nil)
		req.Header.Set("X-API-Key", apiKey)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"token cleaning completed successfully","deleted":0}`, w.Body.String())
	})

	t.Run("missing key is 401 and the sweep never runs", func(t *testing.T) {
		repo := &mockSessionTokenRepository{deleteErr: errors.New("must not be reached")}
		r := newTokenCleaningRouter(repo, apiKey)

		req := httptest.NewRequest(http.MethodGet, "/tokens/clean", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"invalid or missing API key"}`, w.Body.String())
	})

	t.Run("wrong key is 401", func(t *testing.T) {
		r := newTokenCleaningRouter(&mockSessionTokenRepository{deletedCount: 3}, apiKey)

		req := httptest.NewRequest(http.MethodGet, "/tokens/clean", nil)
		req.Header.Set("X-API-Key", "wrong-key")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("repository failure is 500 with the detail withheld", func(t *testing.T) {
		r := newTokenCleaningRouter(&mockSessionTokenRepository{deleteErr: errors.New("connection reset")}, apiKey)

		req := httptest.NewRequest(http.MethodGet, "/tokens/clean", nil)
		req.Header.Set("X-API-Key", apiKey)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	})
}
