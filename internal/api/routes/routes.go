// Package routes handles the setup and configuration of API routes
package routes

import (
	"database/sql"

	_ "agrobase/docs" // Import swagger docs
	"agrobase/internal/account"
	"agrobase/internal/api/handlers"
	"agrobase/internal/api/middleware"
	"agrobase/internal/config"
	"agrobase/internal/email"
	"agrobase/internal/repository/postgres"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes and their handlers
func SetupRoutes(cfg *config.Config, db *sql.DB) *gin.Engine {
	r := gin.Default()

	// Routes without rate limiting
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Apply rate limiting to all other routes
	r.Use(middleware.NewRateLimiter(cfg).Middleware())

	// Composition root: repository, notifier, service, middleware, handlers
	accountRepo := postgres.NewAccountRepository(db)
	notifier := email.NewService(cfg.Email)
	accountService := account.NewService(cfg.Auth, accountRepo, notifier)

	authMiddleware := middleware.NewAuthMiddleware(accountService)

	authHandler := handlers.NewAuthHandler(accountService)
	healthHandler := handlers.NewHealthHandler(db)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Health check (no authentication required)
		v1.GET("/health", healthHandler.Health)

		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/verify-email", authHandler.VerifyEmail)
			auth.POST("/resend-verification", authHandler.ResendVerification)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/me", authMiddleware.AuthRequired(), authHandler.Me)
		}
	}

	return r
}
