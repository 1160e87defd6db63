package middleware

import "github.com/gofiber/fiber/v2"

// NoStore marks responses as uncacheable. It guards per-user responses (sessions, saved
// listings, the admin dashboard) from shared caches.
func NoStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Next()
	}
}
