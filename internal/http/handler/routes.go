package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"marketplace/internal/http/middleware"
	"marketplace/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, listings service.ListingService, accounts service.AuthService, admin service.AdminService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	requireAuth := middleware.RequireAuth(accounts)
	optionalAuth := middleware.OptionalAuth(accounts)

	a := app.Group("/auth", middleware.NoStore())
	a.Post("/signup", SignUp(accounts))
	a.Post("/signin", SignIn(accounts))
	a.Post("/signout", requireAuth, SignOut(accounts))
	a.Get("/me", requireAuth, Me(accounts))

	l := app.Group("/listings")
	l.Get("/", optionalAuth, ListFeed(listings))
	l.Post("/", requireAuth, CreateListing(listings))
	l.Post("/images", requireAuth, UploadImages(listings))
	l.Get("/:id", optionalAuth, GetListing(listings))
	l.Post("/:id/save", requireAuth, ToggleSave(listings))
	l.Post("/:id/report", requireAuth, ReportListing(listings))

	app.Get("/me/listings", middleware.NoStore(), requireAuth, MyListings(listings))
	app.Get("/me/saved", middleware.NoStore(), requireAuth, MySaved(listings))

	adm := app.Group("/admin", middleware.NoStore(), requireAuth, middleware.RequireAdmin(accounts))
	adm.Get("/overview", AdminOverview(admin))
	adm.Get("/pending", AdminPending(admin))
	adm.Get("/users", AdminUsers(admin))
	adm.Get("/reports", AdminReports(admin))
	adm.Post("/listings/:id/approve", ApproveListing(admin))
	adm.Post("/listings/:id/reject", RejectListing(admin))
	adm.Delete("/listings/:id", RemoveListing(admin))
	adm.Post("/users/:id/suspend", SuspendUser(admin))
}
