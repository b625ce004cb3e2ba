package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bhaskarverma12/kodebank/internal/services"
)

// TokenCleaningHandler handles ledger maintenance requests
type TokenCleaningHandler struct {
	BaseHandler
	sessionTokenRepo services.SessionTokenRepository
}

// NewTokenCleaningHandler creates a new token cleaning handler
func NewTokenCleaningHandler(
	sessionTokenRepo services.SessionTokenRepository,
	logger *zap.Logger,
) *TokenCleaningHandler {
	return &TokenCleaningHandler{
		BaseHandler:      BaseHandler{Logger: logger},
		sessionTokenRepo: sessionTokenRepo,
	}
}

// RegisterRoutes registers token cleaning handler routes
func (h *TokenCleaningHandler) RegisterRoutes(r chi.Router) {
	r.Get("/tokens/clean", h.CleanTokens)
}

// CleanTokens handles GET /tokens/clean
// @Summary Clean expired ledger rows
// @Description Removes all session token records whose recorded expiry has passed. Pure housekeeping of the audit trail; live token validation never reads the ledger.
// @Tags tokens
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]string "Token cleaning completed successfully"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /tokens/clean [get]
func (h *TokenCleaningHandler) CleanTokens(w http.ResponseWriter, r *http.Request) {
	deletedCount, err := h.sessionTokenRepo.DeleteExpired(r.Context(), time.Now())
	if err != nil {
		h.Logger.Error("failed to delete expired tokens", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// 0 deleted rows is not an error
	h.Logger.Info("token cleaning completed successfully", zap.Int("deletedCount", deletedCount))
	h.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "token cleaning completed successfully",
		"deleted": deletedCount,
	})
}
