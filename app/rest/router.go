package rest

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"user-service/app/port"
	"user-service/app/rest/handlers"
	custommw "user-service/app/rest/middleware"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger      *slog.Logger
	UserUsecase port.UserUsecase
	AuthUsecase port.AuthUsecase
	DB          handlers.HealthChecker
	EnableDebug bool
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.Debug = config.EnableDebug

	// Create handlers
	userHandler := handlers.NewUserHandler(config.UserUsecase, config.Logger)
	authHandler := handlers.NewAuthHandler(config.AuthUsecase, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.DB, config.Logger)

	// Create middleware
	authMiddleware := custommw.NewAuthMiddleware(config.AuthUsecase, config.Logger)

	// Global middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/health/ready", healthHandler.ReadinessCheck)
	e.GET("/health/live", healthHandler.LivenessCheck)

	// Public endpoints
	e.GET("/users", userHandler.ListUsers)
	e.POST("/users", userHandler.Register)
	e.POST("/register", userHandler.Register)
	e.POST("/login", authHandler.Login)

	// Protected endpoints (require a bearer token)
	e.GET("/profile", userHandler.GetProfile, authMiddleware.RequireAuth())

	return e
}
