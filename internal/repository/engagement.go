package repository

import (
	"context"

	"marketplace/internal/model"
)

// SavedRepository persists (user, listing) save pairs.
type SavedRepository interface {
	// Insert stores the pair; an existing pair is left untouched.
	Insert(ctx context.Context, s *model.SavedListing) error
	// Delete removes the pair and reports whether it existed.
	Delete(ctx context.Context, userID, listingID string) (bool, error)
	// SavedAmong returns which of listingIDs the user has saved.
	SavedAmong(ctx context.Context, userID string, listingIDs []string) (map[string]bool, error)
	// ListByUser returns the user's saved listings with owners, most recently saved first.
	ListByUser(ctx context.Context, userID string) ([]model.Listing, error)
}

// ReportRepository persists listing reports.
type ReportRepository interface {
	Create(ctx context.Context, r *model.Report) (*model.Report, error)
	// ListRecent returns up to limit reports with listing title and reporter name, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.Report, error)
	Count(ctx context.Context) (int, error)
}
