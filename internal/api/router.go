package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"useradmin/internal/handler"
	"useradmin/internal/middleware"
)

func SetupRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	authMiddleware *middleware.AuthMiddleware,
	logger *slog.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))
	r.SetTrustedProxies(nil)

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public routes
	api := r.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/logout", authHandler.Logout)
		protected.GET("/me", authHandler.Me)

		protected.GET("/users", userHandler.List)
		protected.POST("/users", userHandler.Store)
		protected.GET("/users/:id", userHandler.Show)
		protected.PUT("/users/:id", userHandler.Update)
		protected.PATCH("/users/:id", userHandler.Update)
		protected.DELETE("/users/:id", userHandler.Destroy)
		protected.POST("/users/:id/restore", userHandler.Restore)
	}

	return r
}
