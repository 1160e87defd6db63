package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"marketplace/internal/auth"
	"marketplace/internal/model"
)

type stubAuthenticator map[string]*auth.Claims

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*auth.Claims, error) {
	if c, ok := s[token]; ok {
		return c, nil
	}
	return nil, errors.New("unauthorized")
}

type stubProfiles map[string]*model.Profile

func (s stubProfiles) Me(_ context.Context, id string) (*model.Profile, error) {
	if p, ok := s[id]; ok {
		return p, nil
	}
	return nil, errors.New("not found")
}

func claimsFor(id, role string) *auth.Claims {
	return &auth.Claims{Role: role, RegisteredClaims: jwt.RegisteredClaims{Subject: id, ID: "jti-" + id}}
}

var testAuthenticator = stubAuthenticator{
	"resident-token": claimsFor("user-1", "resident"),
	"admin-token":    claimsFor("admin-1", "admin"),
	"demoted-token":  claimsFor("admin-2", "admin"),
}

func body(t *testing.T, app *fiber.App, method, target, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	buf := new(bytes.Buffer)
	buf.ReadFrom(resp.Body)
	return resp.StatusCode, buf.String()
}

func TestRequireAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/me", RequireAuth(testAuthenticator), func(c *fiber.Ctx) error {
		return c.SendString(UserID(c))
	})

	status, got := body(t, app, "GET", "/me", "resident-token")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user-1", got)

	status, got = body(t, app, "GET", "/me", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, ErrSignInRequired, got)

	status, _ = body(t, app, "GET", "/me", "forged")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRequireAuth_SchemeCaseInsensitive(t *testing.T) {
	app := fiber.New()
	app.Get("/me", RequireAuth(testAuthenticator), func(c *fiber.Ctx) error {
		return c.SendString(UserID(c))
	})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "bearer resident-token")
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOptionalAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/feed", OptionalAuth(testAuthenticator), func(c *fiber.Ctx) error {
		if Claims(c) == nil {
			return c.SendString("anonymous")
		}
		return c.SendString(UserID(c))
	})

	_, got := body(t, app, "GET", "/feed", "resident-token")
	assert.Equal(t, "user-1", got)

	_, got = body(t, app, "GET", "/feed", "")
	assert.Equal(t, "anonymous", got)

	status, got := body(t, app, "GET", "/feed", "forged")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "anonymous", got)
}

func TestRequireAdmin(t *testing.T) {
	profiles := stubProfiles{
		"user-1":  {ID: "user-1", Role: model.RoleResident},
		"admin-1": {ID: "admin-1", Role: model.RoleAdmin},
		"admin-2": {ID: "admin-2", Role: model.RoleResident},
	}
	app := fiber.New()
	app.Get("/admin", RequireAuth(testAuthenticator), RequireAdmin(profiles), func(c *fiber.Ctx) error {
		return c.SendString("dashboard")
	})

	status, got := body(t, app, "GET", "/admin", "admin-token")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "dashboard", got)

	status, _ = body(t, app, "GET", "/admin", "resident-token")
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = body(t, app, "GET", "/admin", "demoted-token")
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = body(t, app, "GET", "/admin", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
