package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"user-service/app/domain"
	"user-service/app/port"
	"user-service/app/utils/security"
	"user-service/app/utils/validator"
)

// AuthUseCase implements the login and session verification flow
type AuthUseCase struct {
	userRepo port.UserRepository
	tokens   port.TokenIssuer
	hasher   *security.PasswordHasher
	validate *validator.Validator
	logger   *slog.Logger
}

// NewAuthUseCase creates a new AuthUseCase instance
func NewAuthUseCase(
	userRepo port.UserRepository,
	tokens port.TokenIssuer,
	hasher *security.PasswordHasher,
	logger *slog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
		validate: validator.New(),
		logger:   logger.With("component", "auth_usecase"),
	}
}

// Login verifies the credentials and issues a session token. An unknown
// email and a wrong password both return domain.ErrInvalidCredentials so
// the caller cannot probe for account existence.
func (uc *AuthUseCase) Login(ctx context.Context, req *domain.LoginRequest) (string, error) {
	if err := uc.validate.Validate(req); err != nil {
		return "", err
	}

	user, err := uc.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := uc.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			uc.logger.Info("login rejected", "user_id", user.ID)
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to verify password: %w", err)
	}

	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue session token: %w", err)
	}

	uc.logger.Info("login succeeded", "user_id", user.ID)
	return token, nil
}

// VerifySession verifies a bearer token and returns its claims
func (uc *AuthUseCase) VerifySession(ctx context.Context, token string) (*domain.SessionClaims, error) {
	if token == "" {
		return nil, domain.ErrTokenMissing
	}
	return uc.tokens.Verify(token)
}

var _ port.AuthUsecase = (*AuthUseCase)(nil)
