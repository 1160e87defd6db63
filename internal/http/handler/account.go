package handler

import (
	"github.com/gofiber/fiber/v2"

	"marketplace/internal/http/middleware"
	"marketplace/internal/service"
)

// SignUp creates an account and returns a session.
//
// @Summary  Sign up
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body  service.SignUpInput  true  "account"
// @Success  201  {object}  service.Session
// @Failure  400  {object}  errorPayload
// @Failure  409  {object}  errorPayload
// @Router   /auth/signup [post]
func SignUp(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.SignUpInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		s, err := svc.SignUp(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

// SignIn exchanges email and password for a session.
//
// @Summary  Sign in
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body  service.SignInInput  true  "credentials"
// @Success  200  {object}  service.Session
// @Failure  401  {object}  errorPayload
// @Failure  403  {object}  errorPayload
// @Router   /auth/signin [post]
func SignIn(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.SignInInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		s, err := svc.SignIn(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(s)
	}
}

// SignOut revokes the caller's session.
//
// @Summary   Sign out
// @Tags      auth
// @Security  BearerAuth
// @Success   204
// @Router    /auth/signout [post]
func SignOut(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.SignOut(c.UserContext(), middleware.Claims(c)); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Me returns the caller's profile.
//
// @Summary   Current profile
// @Tags      auth
// @Security  BearerAuth
// @Produce   json
// @Success   200  {object}  model.Profile
// @Router    /auth/me [get]
func Me(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.Me(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(p)
	}
}
