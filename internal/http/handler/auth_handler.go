package handler

import (
	"net/http"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Creates a creator account and returns an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.RegisterRequest true "Account details"
// @Success 201 {object} domain.AuthResponse
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to register")
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.AuthResponse
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to log in")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Me godoc
// @Summary Get current authenticated user
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.UserDTO
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.Me(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to load user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
