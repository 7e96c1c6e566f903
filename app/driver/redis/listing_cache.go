// Package redis provides the Redis-backed user listing cache.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"user-service/app/domain"
	"user-service/app/port"
)

// usersListingKey is the single logical key for the user listing.
const usersListingKey = "users"

// ListingCache implements port.UserListingCache using Redis. It is dumb
// storage: the read-through and invalidation protocol lives in the
// usecase layer.
type ListingCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewListingCache creates a listing cache from a Redis URL
func NewListingCache(url string, logger *slog.Logger) (*ListingCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	return &ListingCache{
		client: client,
		logger: logger.With("component", "listing_cache"),
	}, nil
}

// NewListingCacheWithClient creates a listing cache around an existing
// client (useful for testing against miniredis)
func NewListingCacheWithClient(client *redis.Client, logger *slog.Logger) *ListingCache {
	return &ListingCache{
		client: client,
		logger: logger.With("component", "listing_cache"),
	}
}

// Close closes the Redis connection
func (c *ListingCache) Close() error {
	return c.client.Close()
}

// Ping checks if Redis is available
func (c *ListingCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// GetUsers returns the cached listing. Expired or absent entries return
// domain.ErrCacheMiss; so does a payload that no longer decodes, after
// dropping the corrupt entry.
func (c *ListingCache) GetUsers(ctx context.Context) ([]domain.User, error) {
	data, err := c.client.Get(ctx, usersListingKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read listing cache: %w", err)
	}

	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		c.logger.Warn("dropping corrupt listing cache entry", "error", err)
		c.client.Del(ctx, usersListingKey)
		return nil, domain.ErrCacheMiss
	}

	return users, nil
}

// SetUsers replaces the listing entry with expiry = now + ttl. The
// password hash is excluded by the User JSON tags, so the cached value
// never carries secrets.
func (c *ListingCache) SetUsers(ctx context.Context, users []domain.User, ttl time.Duration) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode listing: %w", err)
	}

	if err := c.client.Set(ctx, usersListingKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write listing cache: %w", err)
	}

	return nil
}

// InvalidateUsers removes the listing entry. DEL on an absent key is a
// no-op, so invalidating an empty cache is not an error.
func (c *ListingCache) InvalidateUsers(ctx context.Context) error {
	if err := c.client.Del(ctx, usersListingKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate listing cache: %w", err)
	}
	return nil
}

var _ port.UserListingCache = (*ListingCache)(nil)
