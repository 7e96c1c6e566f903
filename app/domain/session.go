package domain

import "time"

// SessionClaims is the verified content of a session token.
type SessionClaims struct {
	UserID    int64
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the claims are past their expiry.
func (c *SessionClaims) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
