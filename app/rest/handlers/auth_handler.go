package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"user-service/app/domain"
	"user-service/app/port"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authUsecase port.AuthUsecase
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase port.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger,
	}
}

// Login verifies credentials and returns a session token
// @Summary Login
// @Description Verify credentials and issue a bearer session token
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Login request"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	req := &domain.LoginRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	token, err := h.authUsecase.Login(ctx, req)
	if err != nil {
		status, body := mapError(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("login failed", "error", err)
		}
		return c.JSON(status, body)
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}
