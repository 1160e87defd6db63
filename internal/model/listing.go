package model

import "time"

// ListingType is the transaction type of a listing.
type ListingType string

const (
	ListingTypeSale ListingType = "sale"
	ListingTypeRent ListingType = "rent"
)

// ListingStatus is the moderation status of a listing.
type ListingStatus string

const (
	StatusPending  ListingStatus = "pending"
	StatusApproved ListingStatus = "approved"
	StatusRejected ListingStatus = "rejected"
)

// Badge is a promotional tag attached to a listing. Empty means none.
type Badge string

const (
	BadgeNone      Badge = ""
	BadgeFeatured  Badge = "Featured"
	BadgeNew       Badge = "New"
	BadgePriceDrop Badge = "Price Drop"
)

const (
	PhaseOne = "Phase 1"
	PhaseTwo = "Phase 2"
)

// Phases lists the development zones a listing can belong to.
var Phases = []string{PhaseOne, PhaseTwo}

// PropertyTypes lists the accepted property types, in display order.
var PropertyTypes = []string{"Villa", "Twin House", "Chalet", "Studio", "Penthouse", "Apartment"}

// MaxImages is the maximum number of images a listing may carry.
const MaxImages = 10

// PlaceholderImage is shown for listings without images.
const PlaceholderImage = "https://images.unsplash.com/photo-1600596542815-ffad4c1539a9?w=800&q=80"

// Listing is a property offered for sale or rent.
type Listing struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Price        float64       `json:"price"`
	PropertyType string        `json:"property_type"`
	Phase        string        `json:"phase"`
	Bedrooms     int           `json:"bedrooms"`
	Bathrooms    int           `json:"bathrooms"`
	Area         float64       `json:"area"`
	Description  string        `json:"description"`
	Images       []string      `json:"images"`
	ListingType  ListingType   `json:"listing_type"`
	Badge        Badge         `json:"badge"`
	Status       ListingStatus `json:"status"`
	Views        int64         `json:"views"`
	UserID       string        `json:"user_id"`
	CreatedAt    time.Time     `json:"created_at"`

	// Owner is populated on reads that join the owning profile.
	Owner *Owner `json:"profiles,omitempty"`
	// IsSaved is set for signed-in readers of the feed.
	IsSaved bool `json:"is_saved"`
}

// CoverImage returns the first image or the placeholder.
func (l *Listing) CoverImage() string {
	if len(l.Images) > 0 {
		return l.Images[0]
	}
	return PlaceholderImage
}

// IsPublic reports whether the listing may appear in the public feed.
func (l *Listing) IsPublic() bool {
	return l.Status == StatusApproved
}

// ValidPhase reports whether p is a known phase.
func ValidPhase(p string) bool {
	for _, v := range Phases {
		if v == p {
			return true
		}
	}
	return false
}

// ValidPropertyType reports whether t is a known property type.
func ValidPropertyType(t string) bool {
	for _, v := range PropertyTypes {
		if v == t {
			return true
		}
	}
	return false
}
