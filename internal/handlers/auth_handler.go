package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bhaskarverma12/kodebank/internal/models"
)

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method Register performs user credentials validation and creation.
	//
	// "req" parameter contains username, password, email and the optional phone and role.
	//
	// If user passed invalid credentials, or such user already exists, the error will be returned together with "nil" value.
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	// Method Login performs user credentials validation and issues a session token.
	//
	// "req" parameter contains username and password.
	//
	// On success returns the signed token, its expiry and the user's role.
	// An unknown username and a wrong password both return models.ErrInvalidCredentials.
	Login(ctx context.Context, req *models.LoginRequest) (string, time.Time, models.Role, error)
	// Method GetBalance returns the balance of the user with the given ID.
	//
	// If user with such ID no longer exists, models.ErrUserNotFound is returned.
	GetBalance(ctx context.Context, userID int) (string, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
	tokenTTL    time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService AuthService,
	logger *zap.Logger,
	tokenTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
		tokenTTL:    tokenTTL,
	}
}

// RegisterRoutes registers the public auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
}

// Register handles POST /register
// @Summary Register a new user
// @Description Register a new user with username, password, email and optional phone and role.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} map[string]string "User registered successfully"
// @Failure 400 {object} handlers.ErrorResponse "Missing fields or user already exists"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrValidation) || errors.Is(err, models.ErrDuplicateUser) {
			h.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("failed to register user", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]string{"message": "user registered successfully"})
}

// Login handles POST /login
// @Summary Login user
// @Description Authenticate user with username and password. Returns the session token as an HTTP-only cookie and echoes the user's role.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} map[string]string "Login successful"
// @Failure 400 {object} handlers.ErrorResponse "Missing fields"
// @Failure 401 {object} handlers.ErrorResponse "Invalid credentials"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokenString, _, role, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrValidation):
			h.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, models.ErrInvalidCredentials):
			// Generic message: unknown username and wrong password are indistinguishable
			h.RespondError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			h.Logger.Error("failed to login user", zap.Error(err))
			h.RespondError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.setTokenCookie(w, tokenString)

	h.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "login successful",
		"role":    string(role),
	})
}

// setTokenCookie sets the session token as an HTTP-only cookie.
// Cookie lifetime matches the token TTL; the cookie is not renewable.
func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, tokenString string) {
	cookie := &http.Cookie{
		Name:     "token",
		Value:    tokenString,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)
}
