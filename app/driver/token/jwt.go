// Package token provides the JWT session token issuer/verifier.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"user-service/app/domain"
	"user-service/app/port"
)

// JWTConfig holds JWT generation configuration.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// JWTIssuer mints and verifies HS256 session tokens. Implements
// port.TokenIssuer. The signing secret is process-wide configuration,
// read-only after construction and never logged.
type JWTIssuer struct {
	cfg JWTConfig
}

// NewJWTIssuer creates a new JWT issuer.
func NewJWTIssuer(cfg JWTConfig) (*JWTIssuer, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("token secret is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("token TTL must be positive")
	}
	return &JWTIssuer{cfg: cfg}, nil
}

// Issue generates a signed session token for the given user.
func (j *JWTIssuer) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.cfg.TTL)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session token. Expired tokens return
// domain.ErrTokenExpired; every other failure (bad signature, wrong
// algorithm, malformed structure, missing subject) returns
// domain.ErrTokenInvalid.
func (j *JWTIssuer) Verify(tokenString string) (*domain.SessionClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(j.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	sessionClaims := &domain.SessionClaims{
		UserID: userID,
	}
	if claims.IssuedAt != nil {
		sessionClaims.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		sessionClaims.ExpiresAt = claims.ExpiresAt.Time
	}

	return sessionClaims, nil
}

var _ port.TokenIssuer = (*JWTIssuer)(nil)
