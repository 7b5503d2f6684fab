package finder

import (
	"strings"

	"tamirciBul/internal/finder/geo"
	"tamirciBul/internal/models"
)

// Apply filters records with the AND of the state's optional predicates:
// category exact match, case-insensitive free-text over name or description,
// and either city exact match or the radius test. A selected city disables
// the radius test entirely. Records with no usable location pass the radius
// test; that inclusion rule is load-bearing for backends that omit
// coordinates on older listings.
func Apply(records []models.ServiceRecord, state models.FilterState) ([]models.ServiceRecord, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(state.SearchText))
	out := make([]models.ServiceRecord, 0, len(records))
	for _, rec := range records {
		if !matchCategory(rec, state.Category) {
			continue
		}
		if !matchText(rec, needle) {
			continue
		}
		if !matchPlace(rec, state) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func matchCategory(rec models.ServiceRecord, category string) bool {
	if category == "" || category == models.CategoryAll {
		return true
	}
	return rec.Category == category
}

func matchText(rec models.ServiceRecord, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(rec.DisplayName), needle) ||
		strings.Contains(strings.ToLower(rec.Description), needle)
}

func matchPlace(rec models.ServiceRecord, state models.FilterState) bool {
	if state.City != "" {
		return rec.City == state.City
	}
	if rec.Location == nil {
		return true
	}
	d, err := geo.Distance(state.Center, *rec.Location)
	if err != nil {
		// invalid stored coordinates behave like an unknown location
		return true
	}
	return d <= state.RadiusKm
}

// Annotate returns a copy of records with DistanceKm computed from center.
// Records without a usable location keep a nil distance.
func Annotate(records []models.ServiceRecord, center models.GeoPoint) []models.ServiceRecord {
	out := append([]models.ServiceRecord(nil), records...)
	for i := range out {
		out[i].DistanceKm = nil
		if out[i].Location == nil {
			continue
		}
		d, err := geo.Distance(center, *out[i].Location)
		if err != nil {
			continue
		}
		dist := d
		out[i].DistanceKm = &dist
	}
	return out
}
