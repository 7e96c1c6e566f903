package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"user-service/app/domain"
	"user-service/app/port"
	custommw "user-service/app/rest/middleware"
)

// UserHandler handles user management HTTP requests
type UserHandler struct {
	userUsecase port.UserUsecase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase port.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		logger:      logger,
	}
}

// ListUsers returns all users
// @Summary List users
// @Description List all registered users without secrets
// @Tags user
// @Produce json
// @Success 200 {array} domain.User
// @Failure 500 {object} ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.userUsecase.ListUsers(ctx)
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		status, body := mapError(err)
		return c.JSON(status, body)
	}

	return c.JSON(http.StatusOK, users)
}

// Register creates a new user
// @Summary Register user
// @Description Register a new user with a hashed password
// @Tags user
// @Accept json
// @Produce json
// @Param request body domain.RegisterRequest true "Registration request"
// @Success 201 {object} domain.User
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /register [post]
func (h *UserHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	req := &domain.RegisterRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	user, err := h.userUsecase.Register(ctx, req)
	if err != nil {
		status, body := mapError(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("failed to register user", "error", err)
		}
		return c.JSON(status, body)
	}

	return c.JSON(http.StatusCreated, user)
}

// GetProfile returns the authenticated user's profile
// @Summary Get profile
// @Description Get the profile of the user identified by the bearer token
// @Tags user
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := custommw.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	user, err := h.userUsecase.GetProfile(ctx, userID)
	if err != nil {
		h.logger.Error("failed to get profile", "user_id", userID, "error", err)
		status, body := mapError(err)
		return c.JSON(status, body)
	}

	return c.JSON(http.StatusOK, user)
}
