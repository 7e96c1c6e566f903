package port

import (
	"context"
	"time"

	"user-service/app/domain"
)

// UserListingCache is dumb storage for the user-listing query. The
// read-through and invalidation protocol is enforced by the usecase
// layer, not here.
type UserListingCache interface {
	// GetUsers returns the cached listing, or domain.ErrCacheMiss when no
	// unexpired entry exists.
	GetUsers(ctx context.Context) ([]domain.User, error)

	// SetUsers replaces the listing entry with expiry = now + ttl.
	SetUsers(ctx context.Context, users []domain.User, ttl time.Duration) error

	// InvalidateUsers removes the listing entry. Removing an absent entry
	// is a no-op, not an error.
	InvalidateUsers(ctx context.Context) error
}
