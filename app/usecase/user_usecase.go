package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"user-service/app/domain"
	"user-service/app/port"
	"user-service/app/utils/security"
	"user-service/app/utils/validator"
)

// UserUseCase implements user management business logic. It owns the
// read-through protocol over the listing cache: the cache itself is dumb
// storage and the store stays the source of truth.
type UserUseCase struct {
	userRepo port.UserRepository
	cache    port.UserListingCache
	hasher   *security.PasswordHasher
	validate *validator.Validator
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewUserUseCase creates a new UserUseCase instance
func NewUserUseCase(
	userRepo port.UserRepository,
	cache port.UserListingCache,
	hasher *security.PasswordHasher,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		cache:    cache,
		hasher:   hasher,
		validate: validator.New(),
		cacheTTL: cacheTTL,
		logger:   logger.With("component", "user_usecase"),
	}
}

// ListUsers returns all users. A fresh cache entry is served directly;
// on a miss the store is queried and the cache repopulated. Any cache
// fault degrades to store-only operation and never fails the request.
func (uc *UserUseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := uc.cache.GetUsers(ctx)
	if err == nil {
		return users, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		uc.logger.Warn("listing cache read failed, falling through to store", "error", err)
	}

	users, err = uc.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	if err := uc.cache.SetUsers(ctx, users, uc.cacheTTL); err != nil {
		uc.logger.Warn("listing cache write failed", "error", err)
	}

	return users, nil
}

// Register validates the request, hashes the password and persists the
// user. The listing cache is invalidated only after the insert has
// committed: invalidating first would let a concurrent reader repopulate
// the cache with pre-write data and lose the invalidation.
func (uc *UserUseCase) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	if err := uc.validate.Validate(req); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(req.Name, req.Email, hash)
	if err != nil {
		return nil, err
	}

	created, err := uc.userRepo.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.InvalidateUsers(ctx); err != nil {
		uc.logger.Warn("listing cache invalidation failed, entry expires by TTL", "error", err)
	}

	uc.logger.Info("user registered", "user_id", created.ID)
	return created, nil
}

// GetProfile returns the user identified by a verified session token
func (uc *UserUseCase) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

var _ port.UserUsecase = (*UserUseCase)(nil)
