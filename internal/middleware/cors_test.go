package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newCORSServer(allowedOrigins []string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return CORSMiddleware(allowedOrigins)(next)
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("wildcard echoes the request origin for credentialed requests", func(t *testing.T) {
		h := newCORSServer([]string{"*"})

		req := httptest.NewRequest(http.MethodGet, "/getBalance", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		// A literal "*" is rejected by browsers once Allow-Credentials is true
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Values("Vary"), "Origin")
	})

	t.Run("listed origin is allowed case-insensitively", func(t *testing.T) {
		h := newCORSServer([]string{"https://app.example.com"})

		req := httptest.NewRequest(http.MethodGet, "/getBalance", nil)
		req.Header.Set("Origin", "https://APP.example.com")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Equal(t, "https://APP.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unlisted origin gets no allow header", func(t *testing.T) {
		h := newCORSServer([]string{"https://app.example.com"})

		req := httptest.NewRequest(http.MethodGet, "/getBalance", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight is answered without reaching the handler", func(t *testing.T) {
		h := newCORSServer([]string{"*"})

		req := httptest.NewRequest(http.MethodOptions, "/login", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
