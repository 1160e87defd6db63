package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"marketplace/internal/feed"
	"marketplace/internal/model"
	repoMocks "marketplace/internal/repository/mocks"
	"marketplace/internal/service"
	storeMocks "marketplace/internal/storage/mocks"
)

// Malformed path ids must answer 404 without reaching the database.
func TestMalformedIDs(t *testing.T) {
	listings := new(repoMocks.MockListingRepository)
	profiles := new(repoMocks.MockProfileRepository)
	listingSvc := service.NewListingService(service.ListingDeps{
		Listings: listings,
		Profiles: profiles,
		Saved:    new(repoMocks.MockSavedRepository),
		Reports:  new(repoMocks.MockReportRepository),
		Store:    new(storeMocks.MockStorage),
		Loader:   feed.NewLoader(listings, nil, 0, zerolog.Nop()),
		Log:      zerolog.Nop(),
	})
	adminSvc := service.NewAdminService(listings, profiles, new(repoMocks.MockReportRepository),
		new(storeMocks.MockStorage), zerolog.Nop())

	app := fiber.New()
	app.Get("/listings/:id", GetListing(listingSvc))
	app.Post("/listings/:id/save", signedIn("user-1", model.RoleResident), ToggleSave(listingSvc))
	app.Post("/listings/:id/report", signedIn("user-1", model.RoleResident), ReportListing(listingSvc))
	app.Post("/admin/listings/:id/approve", ApproveListing(adminSvc))
	app.Post("/admin/listings/:id/reject", RejectListing(adminSvc))
	app.Delete("/admin/listings/:id", RemoveListing(adminSvc))
	app.Post("/admin/users/:id/suspend", SuspendUser(adminSvc))

	ids := []string{"abc", "42", "not-a-uuid", "6f1c2b9e-4d0a-4a8e-9c3b-2f7e5d1a0b1", "' OR 1=1 --"}
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/listings/%s"},
		{http.MethodPost, "/listings/%s/save"},
		{http.MethodPost, "/listings/%s/report"},
		{http.MethodPost, "/admin/listings/%s/approve"},
		{http.MethodPost, "/admin/listings/%s/reject"},
		{http.MethodDelete, "/admin/listings/%s"},
		{http.MethodPost, "/admin/users/%s/suspend"},
	}

	for _, r := range routes {
		for _, id := range ids {
			target := fmt.Sprintf(r.path, url.PathEscape(id))
			t.Run(r.method+" "+target, func(t *testing.T) {
				resp, err := app.Test(httptest.NewRequest(r.method, target, nil))

				assert.NoError(t, err)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
				assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
			})
		}
	}

	listings.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	listings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	profiles.AssertNotCalled(t, "SetSuspended", mock.Anything, mock.Anything, mock.Anything)
}
