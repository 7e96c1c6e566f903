package port

import (
	"context"

	"user-service/app/domain"
)

// UserUsecase defines user management business logic interface
type UserUsecase interface {
	// ListUsers returns all users, served from the listing cache when a
	// fresh entry exists.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// Register validates the request, hashes the password and persists a
	// new user. The listing cache is invalidated after the insert commits.
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)

	// GetProfile returns the user identified by a verified session token.
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
}

// UserRepository defines user data access interface
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
}
