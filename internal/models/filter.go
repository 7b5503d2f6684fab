package models

import (
	"fmt"
)

// Sort modes for ranked results.
const (
	SortByDistance = "distance"
	SortByRating   = "rating"
)

// FilterState is the full set of search inputs. Any change to it invalidates
// the current result set.
type FilterState struct {
	Category   string   `json:"category,omitempty"`
	SearchText string   `json:"search_text,omitempty"`
	City       string   `json:"city,omitempty"`
	Center     GeoPoint `json:"center"`
	RadiusKm   float64  `json:"radius_km"`
	SortBy     string   `json:"sort_by,omitempty"`
}

// Validate checks the parts of the state the client owns. The center point is
// validated separately where distances are computed.
func (f FilterState) Validate() error {
	if f.RadiusKm <= 0 {
		return fmt.Errorf("%w: radius_km must be positive, got %v", ErrInvalidFilterState, f.RadiusKm)
	}
	if !ValidCategory(f.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidFilterState, f.Category)
	}
	switch f.SortBy {
	case "", SortByDistance, SortByRating:
	default:
		return fmt.Errorf("%w: unknown sort %q", ErrInvalidFilterState, f.SortBy)
	}
	return nil
}

// SearchQuery is the wire-level shape of one directory search call. City and
// category filtering happen server-side; free-text and distance ranking are
// finished client-side.
type SearchQuery struct {
	Category string
	Search   string
	City     string
	Center   *GeoPoint
	RadiusKm float64
	Page     int
	PerPage  int
}
