package models

// Service categories known to the directory.
const (
	CategoryAll        = "all"
	CategoryPlumbing   = "plumbing"
	CategoryElectrical = "electrical"
	CategoryCleaning   = "cleaning"
	CategoryAppliance  = "appliance"
	CategoryComputer   = "computer"
	CategoryPhone      = "phone"
	CategoryOther      = "other"
)

var categories = map[string]struct{}{
	CategoryPlumbing:   {},
	CategoryElectrical: {},
	CategoryCleaning:   {},
	CategoryAppliance:  {},
	CategoryComputer:   {},
	CategoryPhone:      {},
	CategoryOther:      {},
}

// ValidCategory reports whether name is a known category. Empty string and
// "all" are accepted as "no category filter".
func ValidCategory(name string) bool {
	if name == "" || name == CategoryAll {
		return true
	}
	_, ok := categories[name]
	return ok
}

// ServiceRecord is one provider listing as the directory returns it. Records
// are read-only on this side; DistanceKm is the only field the client sets.
type ServiceRecord struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	District    string    `json:"district"`
	Location    *GeoPoint `json:"location,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	ReviewCount int       `json:"review_count"`

	// DistanceKm is derived from the current center point and never sent
	// back to the directory. Nil when the record has no usable location.
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// ServiceDetail is the full listing returned by GET /services/{id}.
type ServiceDetail struct {
	ServiceRecord
	Phone   string   `json:"phone,omitempty"`
	Address string   `json:"address,omitempty"`
	Reviews []Review `json:"reviews,omitempty"`
}

// ResultPage is one page of search results plus the directory's pagination
// envelope.
type ResultPage struct {
	Items       []ServiceRecord `json:"items"`
	CurrentPage int             `json:"current_page"`
	LastPage    int             `json:"last_page"`
	PerPage     int             `json:"per_page"`
	Total       int             `json:"total"`
}

// HasMore reports whether pages remain after this one.
func (p ResultPage) HasMore() bool {
	return p.CurrentPage < p.LastPage
}
