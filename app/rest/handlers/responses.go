package handlers

import (
	"errors"
	"net/http"
	"time"

	"user-service/app/domain"
	"user-service/app/utils/validator"
)

// ErrorResponse is the uniform error body. The message never carries
// internal detail such as driver error text.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TokenResponse is the success body for POST /login
type TokenResponse struct {
	Token string `json:"token"`
}

// HealthResponse is the success body for GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
}

// mapError maps domain errors to HTTP status codes and client-safe
// messages. Credential and token failures are deliberately coarse: the
// response never says which check failed.
func mapError(err error) (int, ErrorResponse) {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, ErrorResponse{Error: verr.Error()}
	}

	var derr *domain.ValidationError
	if errors.As(err, &derr) {
		return http.StatusBadRequest, ErrorResponse{Error: derr.Error()}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrTokenMissing),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrUnauthorized),
		// A verified token whose subject no longer exists is still a 401.
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"}
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusConflict, ErrorResponse{Error: "user already exists"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
	}
}
