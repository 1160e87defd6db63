package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"marketplace/internal/model"
	"marketplace/internal/service"
)

// AdminOverview returns dashboard counters and the pending queue.
//
// @Summary   Dashboard overview
// @Tags      admin
// @Security  BearerAuth
// @Produce   json
// @Success   200  {object}  service.Overview
// @Router    /admin/overview [get]
func AdminOverview(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		o, err := svc.Overview(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(o)
	}
}

// @Summary   Pending listings
// @Tags      admin
// @Security  BearerAuth
// @Router    /admin/pending [get]
func AdminPending(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.Pending(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(listResponse[model.Listing]{Data: items})
	}
}

// @Summary   Recent users
// @Tags      admin
// @Security  BearerAuth
// @Router    /admin/users [get]
func AdminUsers(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.Users(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(listResponse[model.Profile]{Data: items})
	}
}

// @Summary   Recent reports
// @Tags      admin
// @Security  BearerAuth
// @Router    /admin/reports [get]
func AdminReports(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.Reports(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(listResponse[model.Report]{Data: items})
	}
}

// moderate adapts a single-id admin action to a 204 handler.
func moderate(action func(ctx context.Context, id string) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := action(c.UserContext(), c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// @Summary   Approve a listing
// @Tags      admin
// @Security  BearerAuth
// @Param     id  path  string  true  "listing id"
// @Success   204
// @Router    /admin/listings/{id}/approve [post]
func ApproveListing(svc service.AdminService) fiber.Handler { return moderate(svc.Approve) }

// @Summary   Reject a listing
// @Tags      admin
// @Security  BearerAuth
// @Param     id  path  string  true  "listing id"
// @Success   204
// @Router    /admin/listings/{id}/reject [post]
func RejectListing(svc service.AdminService) fiber.Handler { return moderate(svc.Reject) }

// @Summary   Remove a listing and its images
// @Tags      admin
// @Security  BearerAuth
// @Param     id  path  string  true  "listing id"
// @Success   204
// @Router    /admin/listings/{id} [delete]
func RemoveListing(svc service.AdminService) fiber.Handler { return moderate(svc.RemoveListing) }

// @Summary   Suspend a user
// @Tags      admin
// @Security  BearerAuth
// @Param     id  path  string  true  "user id"
// @Success   204
// @Router    /admin/users/{id}/suspend [post]
func SuspendUser(svc service.AdminService) fiber.Handler { return moderate(svc.Suspend) }
