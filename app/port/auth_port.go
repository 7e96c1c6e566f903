package port

import (
	"context"

	"user-service/app/domain"
)

// AuthUsecase defines authentication business logic interface
type AuthUsecase interface {
	// Login verifies the credentials and returns a signed session token.
	// Unknown emails and wrong passwords both fail with
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, req *domain.LoginRequest) (string, error)

	// VerifySession verifies a bearer token and returns its claims.
	VerifySession(ctx context.Context, token string) (*domain.SessionClaims, error)
}

// TokenIssuer mints and verifies stateless session tokens
type TokenIssuer interface {
	Issue(userID int64) (string, error)
	Verify(token string) (*domain.SessionClaims, error)
}
