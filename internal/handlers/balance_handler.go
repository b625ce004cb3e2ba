package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bhaskarverma12/kodebank/internal/middleware"
	"github.com/bhaskarverma12/kodebank/internal/models"
)

// BalanceHandler handles protected account reads
type BalanceHandler struct {
	BaseHandler
	authService AuthService
}

// NewBalanceHandler creates a new balance handler
func NewBalanceHandler(authService AuthService, logger *zap.Logger) *BalanceHandler {
	return &BalanceHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers the protected balance routes.
// Note: the router group must already carry the token auth middleware.
func (h *BalanceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/getBalance", h.GetBalance)
}

// GetBalance handles GET /getBalance
// @Summary Get account balance
// @Description Returns the balance of the authenticated user.
// @Tags balance
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{} "Account balance"
// @Failure 401 {object} handlers.ErrorResponse "No token provided"
// @Failure 403 {object} handlers.ErrorResponse "Invalid or expired token"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /getBalance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	balance, err := h.authService.GetBalance(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			h.RespondError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error("failed to get balance", zap.Error(err), zap.Int("userId", claims.UserID))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Emit the DECIMAL value verbatim as a JSON number, no float round-trip
	h.RespondJSON(w, http.StatusOK, map[string]json.Number{"balance": json.Number(balance)})
}
