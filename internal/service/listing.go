package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"marketplace/internal/contact"
	"marketplace/internal/feed"
	"marketplace/internal/model"
	"marketplace/internal/repository"
	"marketplace/internal/storage"
)

// Viewer identifies the caller of a read. The zero value is an anonymous visitor.
type Viewer struct {
	ID    string
	Admin bool
}

// FeedResult is one page of the public feed.
type FeedResult struct {
	Items      []model.Listing `json:"data"`
	Total      int             `json:"total"`
	Limit      int             `json:"limit"`
	Offset     int             `json:"offset"`
	HasFilters bool            `json:"has_filters"`
}

// ListingDetail is a listing as shown on its detail page.
type ListingDetail struct {
	model.Listing
	CoverImage  string `json:"cover_image"`
	WhatsAppURL string `json:"whatsapp_url,omitempty"`
}

// ImageUpload is one file of an image upload batch.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// CreateListingInput is the body of a listing submission.
type CreateListingInput struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Price        float64  `json:"price" validate:"gte=0"`
	Phase        string   `json:"phase" validate:"omitempty,oneof='Phase 1' 'Phase 2'"`
	PropertyType string   `json:"property_type" validate:"omitempty,oneof=Villa 'Twin House' Chalet Studio Penthouse Apartment"`
	Bedrooms     int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms    int      `json:"bathrooms" validate:"gte=0"`
	Area         float64  `json:"area" validate:"gte=0"`
	Description  string   `json:"description" validate:"max=5000"`
	ListingType  string   `json:"listing_type" validate:"omitempty,oneof=sale rent"`
	Badge        string   `json:"badge" validate:"omitempty,oneof=Featured New 'Price Drop'"`
	Images       []string `json:"images" validate:"dive,url"`
}

// ListingService defines the resident-facing listing use cases.
type ListingService interface {
	// Feed returns a page of approved listings matching params. viewerID marks saved items.
	Feed(ctx context.Context, params feed.Params, viewerID string) (*FeedResult, error)

	// Detail returns a listing visible to v and counts the view.
	Detail(ctx context.Context, id string, v Viewer) (*ListingDetail, error)

	// UploadImages stores draft images sequentially and returns the public URLs of those that
	// succeeded, in input order. existing is the number of images already on the draft.
	UploadImages(ctx context.Context, userID string, existing int, files []ImageUpload) ([]string, error)

	// Create submits a listing for review.
	Create(ctx context.Context, userID string, in CreateListingInput) (*model.Listing, error)

	// MyListings returns every listing of userID regardless of status.
	MyListings(ctx context.Context, userID string) ([]model.Listing, error)

	// ToggleSave saves or unsaves a listing and reports whether it is now saved.
	ToggleSave(ctx context.Context, userID, listingID string) (bool, error)

	// Saved returns the user's saved listings.
	Saved(ctx context.Context, userID string) ([]model.Listing, error)

	// Report flags a listing. An empty reason uses the default.
	Report(ctx context.Context, reporterID, listingID, reason string) (*model.Report, error)
}

// ListingDeps are the collaborators of the listing service.
type ListingDeps struct {
	Listings repository.ListingRepository
	Profiles repository.ProfileRepository
	Saved    repository.SavedRepository
	Reports  repository.ReportRepository
	Store    storage.Storage
	Loader   *feed.Loader
	PageSize int
	Log      zerolog.Logger
}

type listingService struct {
	listings repository.ListingRepository
	profiles repository.ProfileRepository
	saved    repository.SavedRepository
	reports  repository.ReportRepository
	store    storage.Storage
	loader   *feed.Loader
	pageSize int
	log      zerolog.Logger
	now      func() time.Time
}

// NewListingService constructs a new ListingService.
func NewListingService(d ListingDeps) ListingService {
	if d.PageSize <= 0 {
		d.PageSize = 24
	}
	return &listingService{
		listings: d.Listings,
		profiles: d.Profiles,
		saved:    d.Saved,
		reports:  d.Reports,
		store:    d.Store,
		loader:   d.Loader,
		pageSize: d.PageSize,
		log:      d.Log,
		now:      time.Now,
	}
}

func (s *listingService) Feed(ctx context.Context, params feed.Params, viewerID string) (*FeedResult, error) {
	f, err := feed.Parse(params, s.pageSize)
	if err != nil {
		if errors.Is(err, feed.ErrInvalidFilter) {
			return nil, invalid("%s", err.Error())
		}
		return nil, err
	}

	page, err := s.loader.Load(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}

	if viewerID != "" && len(page.Items) > 0 {
		ids := make([]string, len(page.Items))
		for i := range page.Items {
			ids[i] = page.Items[i].ID
		}
		saved, err := s.saved.SavedAmong(ctx, viewerID, ids)
		if err != nil {
			return nil, fmt.Errorf("saved flags: %w", err)
		}
		for i := range page.Items {
			page.Items[i].IsSaved = saved[page.Items[i].ID]
		}
	}

	return &FeedResult{
		Items:      page.Items,
		Total:      page.Total,
		Limit:      f.Limit,
		Offset:     f.Offset,
		HasFilters: f.HasFilters(),
	}, nil
}

func (s *listingService) find(ctx context.Context, id string) (*model.Listing, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	l, err := s.listings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

// findVisible loads a listing that is public or owned by userID. Anything else reads as missing.
func (s *listingService) findVisible(ctx context.Context, id, userID string) (*model.Listing, error) {
	l, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !l.IsPublic() && l.UserID != userID {
		return nil, ErrNotFound
	}
	return l, nil
}

func (s *listingService) Detail(ctx context.Context, id string, v Viewer) (*ListingDetail, error) {
	l, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !l.IsPublic() && !v.Admin && (v.ID == "" || v.ID != l.UserID) {
		return nil, ErrNotFound
	}

	if l.IsPublic() {
		views, err := s.listings.IncrementViews(ctx, l.ID)
		if err != nil {
			s.log.Warn().Err(err).Str("listing_id", l.ID).Msg("increment views failed")
		} else {
			l.Views = views
		}
	}

	if v.ID != "" {
		saved, err := s.saved.SavedAmong(ctx, v.ID, []string{l.ID})
		if err != nil {
			return nil, fmt.Errorf("saved flags: %w", err)
		}
		l.IsSaved = saved[l.ID]
	}

	d := &ListingDetail{Listing: *l, CoverImage: l.CoverImage()}
	if len(d.Images) == 0 {
		d.Images = []string{model.PlaceholderImage}
	}
	if l.Owner != nil {
		d.WhatsAppURL = contact.WhatsAppLink(l.Owner.Phone, l.Title)
	}
	return d, nil
}

// imagePrefix is the storage folder holding the uploads of userID.
func imagePrefix(userID string) string {
	return "listings/" + userID + "/"
}

// imageKey returns listings/<user>/<unix ms>_<random>.<ext>.
func imageKey(userID, filename string, now time.Time) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		ext = "jpg"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s%d_%s.%s", imagePrefix(userID), now.UnixMilli(), suffix, ext)
}

// checkImages requires every url to point at an object uploaded by userID.
func (s *listingService) checkImages(userID string, urls []string) error {
	prefix := imagePrefix(userID)
	for i, u := range urls {
		key, err := s.store.KeyFromURL(u)
		if err != nil || path.Clean(key) != key || !strings.HasPrefix(key, prefix) {
			return invalid("images[%d] must be one of your uploaded images", i)
		}
	}
	return nil
}

func (s *listingService) UploadImages(ctx context.Context, userID string, existing int, files []ImageUpload) ([]string, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if existing < 0 {
		return nil, invalid("existing must not be negative")
	}
	if existing+len(files) > model.MaxImages {
		return nil, ErrTooManyImages
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := s.uploadOne(ctx, userID, f)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Str("filename", f.Filename).Msg("image upload skipped")
			continue
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *listingService) uploadOne(ctx context.Context, userID string, f ImageUpload) (string, error) {
	if !strings.HasPrefix(f.ContentType, "image/") {
		return "", fmt.Errorf("content type %q is not an image", f.ContentType)
	}
	r, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open: %w", err)
	}
	defer r.Close()

	info, err := s.store.Put(ctx, imageKey(userID, f.Filename, s.now()), r, storage.PutObjectOptions{
		Size:         f.Size,
		ContentType:  f.ContentType,
		CacheControl: "max-age=3600",
	})
	if err != nil {
		return "", fmt.Errorf("upload to storage: %w", err)
	}
	return info.URL, nil
}

func (s *listingService) Create(ctx context.Context, userID string, in CreateListingInput) (*model.Listing, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if len(in.Images) == 0 {
		return nil, ErrNoImages
	}
	if len(in.Images) > model.MaxImages {
		return nil, ErrTooManyImages
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := s.checkImages(userID, in.Images); err != nil {
		return nil, err
	}

	owner, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if owner.Suspended {
		return nil, ErrSuspended
	}

	l := &model.Listing{
		ID:           uuid.New().String(),
		Title:        in.Title,
		Price:        in.Price,
		PropertyType: orDefault(in.PropertyType, "Villa"),
		Phase:        orDefault(in.Phase, model.PhaseOne),
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		Area:         in.Area,
		Description:  in.Description,
		Images:       in.Images,
		ListingType:  model.ListingType(orDefault(in.ListingType, string(model.ListingTypeSale))),
		Badge:        model.Badge(in.Badge),
		Status:       model.StatusPending,
		Views:        0,
		UserID:       userID,
		CreatedAt:    s.now().UTC(),
	}
	stored, err := s.listings.Create(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (s *listingService) MyListings(ctx context.Context, userID string) ([]model.Listing, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.listings.ListByOwner(ctx, userID)
}

func (s *listingService) ToggleSave(ctx context.Context, userID, listingID string) (bool, error) {
	if userID == "" {
		return false, ErrUnauthorized
	}
	if _, err := s.findVisible(ctx, listingID, userID); err != nil {
		return false, err
	}

	removed, err := s.saved.Delete(ctx, userID, listingID)
	if err != nil {
		return false, fmt.Errorf("unsave: %w", err)
	}
	if removed {
		return false, nil
	}

	if err := s.saved.Insert(ctx, &model.SavedListing{
		UserID:      userID,
		ListingID:   listingID,
		ListingType: model.SavedKindProperty,
		CreatedAt:   s.now().UTC(),
	}); err != nil {
		return false, fmt.Errorf("save: %w", err)
	}
	return true, nil
}

func (s *listingService) Saved(ctx context.Context, userID string) ([]model.Listing, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.saved.ListByUser(ctx, userID)
}

func (s *listingService) Report(ctx context.Context, reporterID, listingID, reason string) (*model.Report, error) {
	if reporterID == "" {
		return nil, ErrUnauthorized
	}
	if _, err := s.findVisible(ctx, listingID, reporterID); err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = model.DefaultReportReason
	}
	if len(reason) > 1000 {
		return nil, invalid("reason must be at most 1000 characters")
	}

	return s.reports.Create(ctx, &model.Report{
		ID:         uuid.New().String(),
		ListingID:  listingID,
		ReporterID: reporterID,
		Reason:     reason,
		CreatedAt:  s.now().UTC(),
	})
}
