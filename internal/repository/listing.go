package repository

import (
	"context"

	"marketplace/internal/feed"
	"marketplace/internal/model"
)

// ListingRepository defines data access for listings using SQL queries only.
// No business logic here, strictly persistence operations.
type ListingRepository interface {
	// Create inserts a new listing and returns the stored row.
	Create(ctx context.Context, l *model.Listing) (*model.Listing, error)

	// FindByID returns a listing joined with its owner's contact summary.
	FindByID(ctx context.Context, id string) (*model.Listing, error)

	// Feed returns one page of approved listings matching the filter, newest first.
	Feed(ctx context.Context, f feed.Filter) (*feed.Page, error)

	// ListByStatus returns listings in the given status with owners, newest first.
	ListByStatus(ctx context.Context, status model.ListingStatus, pq PageQuery) (*PageResult[model.Listing], error)

	// ListByOwner returns every listing owned by userID regardless of status.
	ListByOwner(ctx context.Context, userID string) ([]model.Listing, error)

	// CountByStatus counts listings in the given status.
	CountByStatus(ctx context.Context, status model.ListingStatus) (int, error)

	// UpdateStatus sets the moderation status. Returns sql.ErrNoRows if the listing does not exist.
	UpdateStatus(ctx context.Context, id string, status model.ListingStatus) error

	// IncrementViews atomically adds one view and returns the new count.
	IncrementViews(ctx context.Context, id string) (int64, error)

	// Delete removes a listing by ID. Saved rows and reports cascade.
	Delete(ctx context.Context, id string) error

	// ReferencedImages returns the subset of urls used by at least one listing.
	ReferencedImages(ctx context.Context, urls []string) (map[string]bool, error)
}
