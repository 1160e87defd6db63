// Package feed composes the public listing feed: it turns raw filter input into a validated
// Filter and loads pages of approved listings, coalescing identical queries.
package feed

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"marketplace/internal/model"
)

// All and Any are the "no filter" values of the select facets.
const (
	All = "All"
	Any = "Any"
)

// MaxPageFactor bounds a requested limit to this many default pages.
const MaxPageFactor = 4

// ErrInvalidFilter is returned for malformed filter input.
var ErrInvalidFilter = errors.New("invalid filter")

// Beds filters on bedroom count. A zero value means no filter.
type Beds struct {
	Count   int
	AtLeast bool
	Set     bool
}

// String renders b the way it is accepted by ParseBeds.
func (b Beds) String() string {
	if !b.Set {
		return Any
	}
	if b.AtLeast {
		return strconv.Itoa(b.Count) + "+"
	}
	return strconv.Itoa(b.Count)
}

// ParseBeds parses "Any", "N" (exactly N) or "N+" (at least N).
func ParseBeds(s string) (Beds, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, Any) {
		return Beds{}, nil
	}
	atLeast := strings.HasSuffix(s, "+")
	n, err := strconv.Atoi(strings.TrimSuffix(s, "+"))
	if err != nil || n < 0 {
		return Beds{}, fmt.Errorf("%w: beds %q", ErrInvalidFilter, s)
	}
	return Beds{Count: n, AtLeast: atLeast, Set: true}, nil
}

// Params is the raw, untrusted filter input as it arrives from a query string.
type Params struct {
	ListingType  string
	Phase        string
	PropertyType string
	Beds         string
	MinPrice     string
	MaxPrice     string
	Search       string
	Limit        int
	Offset       int
}

// Filter is a validated feed query.
type Filter struct {
	ListingType  model.ListingType
	Phase        string
	PropertyType string
	Beds         Beds
	MinPrice     *float64
	MaxPrice     *float64
	Search       string
	Limit        int
	Offset       int
}

// Parse validates p. pageSize is used when p.Limit is not positive and
// limits above MaxPageFactor*pageSize are clamped.
func Parse(p Params, pageSize int) (Filter, error) {
	f := Filter{
		ListingType: model.ListingTypeSale,
		Search:      strings.TrimSpace(p.Search),
		Limit:       p.Limit,
		Offset:      p.Offset,
	}

	switch lt := model.ListingType(strings.ToLower(strings.TrimSpace(p.ListingType))); lt {
	case "":
	case model.ListingTypeSale, model.ListingTypeRent:
		f.ListingType = lt
	default:
		return Filter{}, fmt.Errorf("%w: type %q", ErrInvalidFilter, p.ListingType)
	}

	if ph := strings.TrimSpace(p.Phase); ph != "" && ph != All {
		if !model.ValidPhase(ph) {
			return Filter{}, fmt.Errorf("%w: phase %q", ErrInvalidFilter, ph)
		}
		f.Phase = ph
	}

	if pt := strings.TrimSpace(p.PropertyType); pt != "" && pt != All {
		if !model.ValidPropertyType(pt) {
			return Filter{}, fmt.Errorf("%w: property type %q", ErrInvalidFilter, pt)
		}
		f.PropertyType = pt
	}

	beds, err := ParseBeds(p.Beds)
	if err != nil {
		return Filter{}, err
	}
	f.Beds = beds

	if f.MinPrice, err = parsePrice("min_price", p.MinPrice); err != nil {
		return Filter{}, err
	}
	if f.MaxPrice, err = parsePrice("max_price", p.MaxPrice); err != nil {
		return Filter{}, err
	}

	if f.Limit <= 0 {
		f.Limit = pageSize
	}
	if maxLimit := MaxPageFactor * pageSize; f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f, nil
}

func parsePrice(name, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%w: %s %q", ErrInvalidFilter, name, s)
	}
	return &v, nil
}

// HasFilters reports whether any facet differs from its default.
// The transaction type and search text are not facets.
func (f Filter) HasFilters() bool {
	return f.Phase != "" || f.PropertyType != "" || f.Beds.Set || f.MinPrice != nil || f.MaxPrice != nil
}

// TitlePattern returns the ILIKE pattern for the search text, or "" when there is none.
// LIKE metacharacters in the input match literally.
func (f Filter) TitlePattern() string {
	if f.Search == "" {
		return ""
	}
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(f.Search) + "%"
}

// Key is a stable identity of the filter, used to share results between identical queries.
func (f Filter) Key() string {
	price := func(p *float64) string {
		if p == nil {
			return "-"
		}
		return strconv.FormatFloat(*p, 'f', -1, 64)
	}
	return strings.Join([]string{
		"feed",
		string(f.ListingType),
		f.Phase,
		f.PropertyType,
		f.Beds.String(),
		price(f.MinPrice),
		price(f.MaxPrice),
		strings.ToLower(f.Search),
		strconv.Itoa(f.Limit),
		strconv.Itoa(f.Offset),
	}, "|")
}

// Page is one page of feed results.
type Page struct {
	Items []model.Listing `json:"data"`
	Total int             `json:"total"`
}
