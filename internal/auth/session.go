package auth

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/cache"
)

const revokedPrefix = "session:revoked:"

// Sessions tracks signed-out tokens until they expire.
// Backed by cache.Noop, sign-out only discards the token client side.
type Sessions struct {
	cache cache.Cache
	now   func() time.Time
}

// NewSessions returns a Sessions on c.
func NewSessions(c cache.Cache) *Sessions {
	if c == nil {
		c = cache.Noop{}
	}
	return &Sessions{cache: c, now: time.Now}
}

// Revoke marks the token identified by claims as signed out.
func (s *Sessions) Revoke(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, revokedPrefix+claims.ID, []byte(claims.Subject), ttl)
}

// Revoked reports whether the token was signed out.
func (s *Sessions) Revoked(ctx context.Context, claims *Claims) (bool, error) {
	_, err := s.cache.Get(ctx, revokedPrefix+claims.ID)
	if errors.Is(err, cache.ErrMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
