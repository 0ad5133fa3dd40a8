package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"useradmin/internal/database/service"
)

// AuthHandler handles HTTP requests for registration, login, logout, and
// the authenticated user lookup
type AuthHandler struct {
	service service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// Request DTOs
type RegisterRequest struct {
	Name                 string `json:"name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required,email,max=255"`
	Password             string `json:"password" binding:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	Role                 string `json:"role" binding:"required,oneof=admin user"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("⚠️ [AuthHandler] Invalid registration request", "error", err)
		respondValidationError(c, err)
		return
	}

	user, token, err := h.service.Register(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"token":      token,
		"token_type": "Bearer",
		"user":       newUserResponse(user),
	})
}

// Login handles POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("⚠️ [AuthHandler] Invalid login request", "error", err)
		respondValidationError(c, err)
		return
	}

	user, token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"token":      token,
		"token_type": "Bearer",
		"user":       newUserResponse(user),
	})
}

// Logout handles POST /api/logout; it revokes exactly the token that
// authenticated this request
func (h *AuthHandler) Logout(c *gin.Context) {
	ident, ok := currentIdentity(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	if err := h.service.Logout(ident); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

// Me handles GET /api/me
func (h *AuthHandler) Me(c *gin.Context) {
	ident, ok := currentIdentity(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    newUserResponse(ident.User),
	})
}

// handleServiceError maps service errors to HTTP responses
func (h *AuthHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		respondFieldError(c, "email", "The email has already been taken.")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondFieldError(c, "email", "The provided credentials are incorrect.")
	case errors.Is(err, service.ErrInvalidToken):
		respondUnauthenticated(c)
	default:
		h.logger.Error("❌ [AuthHandler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}

// currentIdentity reads the authenticated identity placed in the request
// context by the auth middleware.
func currentIdentity(c *gin.Context) (service.Identity, bool) {
	v, exists := c.Get("identity")
	if !exists {
		return service.Identity{}, false
	}
	ident, ok := v.(service.Identity)
	return ident, ok
}

func respondUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Unauthenticated.",
	})
}
