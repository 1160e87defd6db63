package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"marketplace/internal/auth"
	"marketplace/internal/logging"
	"marketplace/internal/model"
)

// ClaimsLocalKey is the Fiber locals key of the authenticated caller's token claims.
const ClaimsLocalKey = "auth_claims"

// ErrSignInRequired is the message returned to anonymous callers of protected routes.
const ErrSignInRequired = "Please sign in to continue"

// Authenticator verifies bearer tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// ProfileLookup loads the stored profile of a user.
type ProfileLookup interface {
	Me(ctx context.Context, userID string) (*model.Profile, error)
}

// Claims returns the caller's claims, or nil for anonymous requests.
func Claims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(ClaimsLocalKey).(*auth.Claims)
	return claims
}

// UserID returns the caller's user id, or "" for anonymous requests.
func UserID(c *fiber.Ctx) string {
	if claims := Claims(c); claims != nil {
		return claims.UserID()
	}
	return ""
}

func bearerToken(c *fiber.Ctx) string {
	h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequireAuth rejects requests without a valid bearer token with 401.
func RequireAuth(a Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, ErrSignInRequired)
		}
		claims, err := a.Authenticate(c.UserContext(), token)
		if err != nil {
			return authError(c, err)
		}
		c.Locals(ClaimsLocalKey, claims)
		return c.Next()
	}
}

// OptionalAuth attaches claims when a valid token is present. Invalid tokens are ignored and
// the request proceeds anonymously.
func OptionalAuth(a Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := bearerToken(c); token != "" {
			if claims, err := a.Authenticate(c.UserContext(), token); err == nil {
				c.Locals(ClaimsLocalKey, claims)
			}
		}
		return c.Next()
	}
}

// RequireAdmin must run after RequireAuth. The role is re-read from the stored profile so a
// demoted or suspended admin loses access before the token expires.
func RequireAdmin(profiles ProfileLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil {
			return fiber.NewError(fiber.StatusUnauthorized, ErrSignInRequired)
		}
		p, err := profiles.Me(c.UserContext(), claims.UserID())
		if err != nil || !p.IsAdmin() || p.Suspended {
			if err != nil {
				logging.FromContext(c.UserContext()).Debug().Err(err).Str("user_id", claims.UserID()).Msg("admin lookup failed")
			}
			return fiber.NewError(fiber.StatusForbidden, "Admin access required")
		}
		return c.Next()
	}
}

func authError(c *fiber.Ctx, err error) error {
	logging.FromContext(c.UserContext()).Debug().Err(err).Msg("authentication failed")
	return fiber.NewError(fiber.StatusUnauthorized, ErrSignInRequired)
}
