package domain

import "errors"

// Authentication and store errors
var (
	// Credential errors. Login failures always surface as
	// ErrInvalidCredentials so the response never reveals whether the
	// email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")

	// Token errors
	ErrTokenMissing = errors.New("token missing")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")

	// Cache errors
	ErrCacheMiss = errors.New("cache miss")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")

	// General errors
	ErrInternal = errors.New("internal error")
)

// ValidationError represents a validation error with field-specific detail
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError reports whether err is a ValidationError
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
