package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"useradmin/internal/database/service"
)

// AuthMiddleware resolves opaque bearer tokens
type AuthMiddleware struct {
	service service.AuthService
	logger  *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware instance
func NewAuthMiddleware(service service.AuthService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		service: service,
		logger:  logger,
	}
}

// RequireAuth resolves the presented bearer token to its user and stores
// the resulting identity in the request context
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.logger.Warn("⚠️ [Middleware] Missing Authorization header")
			abortUnauthenticated(c)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.logger.Warn("⚠️ [Middleware] Invalid Authorization header format")
			abortUnauthenticated(c)
			return
		}

		ident, err := m.service.ResolveToken(parts[1])
		if err != nil {
			m.logger.Warn("⚠️ [Middleware] Invalid token", "error", err)
			abortUnauthenticated(c)
			return
		}

		c.Set("identity", ident)
		m.logger.Debug("✅ [Middleware] Token resolved", "user_id", ident.User.ID)

		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Unauthenticated.",
	})
	c.Abort()
}
