package handler

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"marketplace/internal/feed"
	"marketplace/internal/http/middleware"
	"marketplace/internal/model"
	"marketplace/internal/service"
)

type listResponse[T any] struct {
	Data []T `json:"data"`
}

type uploadResponse struct {
	URLs []string `json:"urls"`
}

type saveResponse struct {
	Saved bool `json:"saved"`
}

type reportRequest struct {
	Reason string `json:"reason"`
}

func viewer(c *fiber.Ctx) service.Viewer {
	claims := middleware.Claims(c)
	if claims == nil {
		return service.Viewer{}
	}
	return service.Viewer{ID: claims.UserID(), Admin: claims.Role == string(model.RoleAdmin)}
}

// ListFeed returns a page of approved listings.
//
// @Summary  Browse listings
// @Tags     listings
// @Produce  json
// @Param    type           query  string  false  "sale or rent"
// @Param    phase          query  string  false  "Phase 1, Phase 2 or All"
// @Param    property_type  query  string  false  "property type or All"
// @Param    beds           query  string  false  "Any, N or N+"
// @Param    min_price      query  number  false  "minimum price"
// @Param    max_price      query  number  false  "maximum price"
// @Param    q              query  string  false  "title search"
// @Param    limit          query  int     false  "page size"
// @Param    offset         query  int     false  "page offset"
// @Success  200  {object}  service.FeedResult
// @Failure  400  {object}  errorPayload
// @Router   /listings [get]
func ListFeed(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		params := feed.Params{
			ListingType:  c.Query("type"),
			Phase:        c.Query("phase"),
			PropertyType: c.Query("property_type"),
			Beds:         c.Query("beds"),
			MinPrice:     c.Query("min_price"),
			MaxPrice:     c.Query("max_price"),
			Search:       c.Query("q"),
			Limit:        limit,
			Offset:       offset,
		}

		res, err := svc.Feed(c.UserContext(), params, middleware.UserID(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetListing returns a single listing with its contact link.
//
// @Summary  Listing detail
// @Tags     listings
// @Produce  json
// @Param    id   path  string  true  "listing id"
// @Success  200  {object}  service.ListingDetail
// @Failure  404  {object}  errorPayload
// @Router   /listings/{id} [get]
func GetListing(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Detail(c.UserContext(), c.Params("id"), viewer(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadImages stores draft images (multipart field "images") and returns their public URLs.
//
// @Summary   Upload draft images
// @Tags      listings
// @Security  BearerAuth
// @Accept    multipart/form-data
// @Produce   json
// @Param     images    formData  file  true   "image files"
// @Param     existing  formData  int   false  "images already on the draft"
// @Success   200  {object}  uploadResponse
// @Failure   400  {object}  errorPayload
// @Router    /listings/images [post]
func UploadImages(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "images are required")
		}

		existing := 0
		if v := c.FormValue("existing"); v != "" {
			if existing, err = strconv.Atoi(v); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_EXISTING", "invalid existing")
			}
		}

		headers := form.File["images"]
		files := make([]service.ImageUpload, 0, len(headers))
		for _, fh := range headers {
			files = append(files, imageUpload(fh))
		}

		urls, err := svc.UploadImages(c.UserContext(), middleware.UserID(c), existing, files)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(uploadResponse{URLs: urls})
	}
}

func imageUpload(fh *multipart.FileHeader) service.ImageUpload {
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return service.ImageUpload{
		Filename:    fh.Filename,
		ContentType: ct,
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// CreateListing submits a listing for review.
//
// @Summary   Post a listing
// @Tags      listings
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     body  body  service.CreateListingInput  true  "listing"
// @Success   201  {object}  model.Listing
// @Failure   400  {object}  errorPayload
// @Failure   403  {object}  errorPayload
// @Router    /listings [post]
func CreateListing(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateListingInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		l, err := svc.Create(c.UserContext(), middleware.UserID(c), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(l)
	}
}

// MyListings returns the caller's listings of every status.
//
// @Summary   My listings
// @Tags      me
// @Security  BearerAuth
// @Produce   json
// @Router    /me/listings [get]
func MyListings(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.MyListings(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(listResponse[model.Listing]{Data: items})
	}
}

// ToggleSave saves or unsaves a listing.
//
// @Summary   Toggle saved
// @Tags      listings
// @Security  BearerAuth
// @Produce   json
// @Param     id   path  string  true  "listing id"
// @Success   200  {object}  saveResponse
// @Router    /listings/{id}/save [post]
func ToggleSave(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		saved, err := svc.ToggleSave(c.UserContext(), middleware.UserID(c), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(saveResponse{Saved: saved})
	}
}

// MySaved returns the caller's saved listings.
//
// @Summary   Saved listings
// @Tags      me
// @Security  BearerAuth
// @Produce   json
// @Router    /me/saved [get]
func MySaved(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.Saved(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(listResponse[model.Listing]{Data: items})
	}
}

// ReportListing flags a listing for moderation. The body is optional.
//
// @Summary   Report a listing
// @Tags      listings
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     id    path  string         true   "listing id"
// @Param     body  body  reportRequest  false  "reason"
// @Success   201  {object}  model.Report
// @Failure   404  {object}  errorPayload
// @Router    /listings/{id}/report [post]
func ReportListing(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req reportRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
			}
		}
		r, err := svc.Report(c.UserContext(), middleware.UserID(c), c.Params("id"), req.Reason)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(r)
	}
}
