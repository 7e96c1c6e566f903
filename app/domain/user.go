package domain

import (
	"net/mail"
	"strings"
	"time"
)

// User represents a registered user. The password hash is excluded from
// every JSON representation, including the cached listing.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// NewUser creates a new user with validation. The ID is assigned by the
// store on insert.
func NewUser(name, email, passwordHash string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return nil, NewValidationError("name", "name is required")
	}
	if email == "" {
		return nil, NewValidationError("email", "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, NewValidationError("email", "email must be a valid email address")
	}
	if passwordHash == "" {
		return nil, NewValidationError("password", "password is required")
	}

	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}, nil
}
