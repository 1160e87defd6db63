package model

import "time"

// SavedListing records that a user saved a listing. The pair is unique.
type SavedListing struct {
	UserID      string    `json:"user_id"`
	ListingID   string    `json:"listing_id"`
	ListingType string    `json:"listing_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// SavedKindProperty is the only saved listing kind the marketplace produces.
const SavedKindProperty = "property"

// DefaultReportReason is used when a reporter gives no reason.
const DefaultReportReason = "User reported"

// Report flags a listing for admin review.
type Report struct {
	ID         string    `json:"id"`
	ListingID  string    `json:"listing_id"`
	ReporterID string    `json:"reporter_id"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`

	// Joined on admin reads.
	ListingTitle string `json:"listing_title,omitempty"`
	ReporterName string `json:"reporter_name,omitempty"`
}

// Stats are the admin overview counters.
type Stats struct {
	TotalUsers     int `json:"total_users"`
	ActiveListings int `json:"active_listings"`
	PendingCount   int `json:"pending_count"`
	ReportsCount   int `json:"reports_count"`
}
