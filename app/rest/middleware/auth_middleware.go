package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"user-service/app/port"
)

// userIDKey is the echo context key for the authenticated user id
const userIDKey = "user_id"

// AuthMiddleware provides bearer-token authentication middleware
type AuthMiddleware struct {
	authUsecase port.AuthUsecase
	logger      *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authUsecase port.AuthUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authUsecase: authUsecase,
		logger:      logger,
	}
}

// RequireAuth verifies the Authorization bearer token and stores the
// subject id in the request context. Missing, malformed, tampered and
// expired tokens all answer 401 with the same generic body.
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			token, ok := extractBearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}

			claims, err := m.authUsecase.VerifySession(ctx, token)
			if err != nil {
				m.logger.Info("session verification failed", "error", err)
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}

			c.Set(userIDKey, claims.UserID)

			return next(c)
		}
	}
}

// UserIDFromContext returns the authenticated user id set by RequireAuth
func UserIDFromContext(c echo.Context) (int64, bool) {
	userID, ok := c.Get(userIDKey).(int64)
	return userID, ok
}

// extractBearerToken pulls the token out of the Authorization header.
// Anything other than "Bearer <token>" counts as a missing token.
func extractBearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
