package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"user-service/app/config"
	"user-service/app/driver/postgres"
	redisdriver "user-service/app/driver/redis"
	"user-service/app/driver/token"
	"user-service/app/port"
	"user-service/app/rest"
	"user-service/app/usecase"
	"user-service/app/utils/security"
)

// Container holds all dependencies for the application. Everything is
// explicitly constructed here and injected; there are no package-level
// singletons.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB    *postgres.DB
	Cache *redisdriver.ListingCache

	// Usecases
	UserUsecase port.UserUsecase
	AuthUsecase port.AuthUsecase
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	// Initialize database connection. The store is the source of truth,
	// so an unreachable database is fatal.
	var err error
	container.DB, err = postgres.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize listing cache. The cache is advisory: if Redis is down
	// at startup the service runs store-only and logs a warning.
	container.Cache, err = redisdriver.NewListingCache(cfg.RedisURL, logger)
	if err != nil {
		container.DB.Close()
		return nil, fmt.Errorf("failed to initialize listing cache: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := container.Cache.Ping(pingCtx); err != nil {
		logger.Warn("listing cache unreachable, running store-only until it recovers", "error", err)
	}

	// Initialize token issuer
	tokenIssuer, err := token.NewJWTIssuer(token.JWTConfig{
		Secret: cfg.TokenSecret,
		TTL:    cfg.TokenTTL,
	})
	if err != nil {
		container.Close()
		return nil, fmt.Errorf("failed to initialize token issuer: %w", err)
	}

	// Initialize password hasher
	hasher, err := security.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		container.Close()
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	// Initialize repositories
	userRepository := postgres.NewUserRepository(container.DB.Pool(), logger)

	// Initialize usecases
	container.UserUsecase = usecase.NewUserUseCase(userRepository, container.Cache, hasher, cfg.CacheTTL, logger)
	container.AuthUsecase = usecase.NewAuthUseCase(userRepository, tokenIssuer, hasher, logger)

	logger.Info("container initialized",
		"cache_ttl", cfg.CacheTTL,
		"token_ttl", cfg.TokenTTL)

	return container, nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	return rest.NewRouter(rest.RouterConfig{
		Logger:      c.Logger,
		UserUsecase: c.UserUsecase,
		AuthUsecase: c.AuthUsecase,
		DB:          c.DB,
		EnableDebug: c.Config.LogLevel == "debug",
	})
}

// Close releases container resources
func (c *Container) Close() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Warn("failed to close listing cache", "error", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
