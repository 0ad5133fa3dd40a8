package main

import (
	"fmt"
	"os"

	"useradmin/internal/api"
	"useradmin/internal/config"
	"useradmin/internal/database"
	"useradmin/internal/database/repository"
	"useradmin/internal/database/service"
	"useradmin/internal/handler"
	"useradmin/internal/logger"
	"useradmin/internal/middleware"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 Starting user account API...",
		"environment", cfg.AppEnv,
	)

	// 3. Connect to Database
	if err := database.ConnectDatabase(cfg, appLogger); err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	db := database.GetDatabase()

	// 4. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewAccessTokenRepository(db)

	// 5. Initialize Services
	userService := service.NewUserService(userRepo, appLogger)
	tokenIssuer := service.NewTokenIssuer(tokenRepo, appLogger)
	authService := service.NewAuthService(userService, tokenIssuer, appLogger)

	// 6. Initialize Handlers & Middleware
	authHandler := handler.NewAuthHandler(authService, appLogger)
	userHandler := handler.NewUserHandler(userService, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(authService, appLogger)

	// 7. Setup Router and start HTTP server
	r := api.SetupRouter(authHandler, userHandler, authMiddleware, appLogger)

	addr := fmt.Sprintf(":%s", cfg.HTTPPort)
	appLogger.Info("🌍 HTTP Server running...", "port", cfg.HTTPPort)
	if err := r.Run(addr); err != nil {
		appLogger.Error("❌ HTTP Server failed to start", "error", err)
		os.Exit(1)
	}
}
