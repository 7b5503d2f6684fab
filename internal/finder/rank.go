package finder

import (
	"sort"

	"tamirciBul/internal/models"
)

// Rank orders annotated records by the requested sort mode. The sort is
// stable: equal-key records keep their insertion order across repeated
// rankings.
//
// distance mode: ascending distance, unknown distance last, ties broken by
// descending rating. rating mode: descending rating (missing rating counts
// as 0), ties broken by ascending distance with unknown last.
func Rank(records []models.ServiceRecord, sortBy string) []models.ServiceRecord {
	out := append([]models.ServiceRecord(nil), records...)
	switch sortBy {
	case models.SortByRating:
		sort.SliceStable(out, func(i, j int) bool { return ratingLess(out[i], out[j]) })
	default:
		sort.SliceStable(out, func(i, j int) bool { return distanceLess(out[i], out[j]) })
	}
	return out
}

func distanceLess(a, b models.ServiceRecord) bool {
	da, db := a.DistanceKm, b.DistanceKm
	switch {
	case da == nil && db == nil:
		return ratingOf(a) > ratingOf(b)
	case da == nil:
		return false
	case db == nil:
		return true
	case *da != *db:
		return *da < *db
	default:
		return ratingOf(a) > ratingOf(b)
	}
}

func ratingLess(a, b models.ServiceRecord) bool {
	ra, rb := ratingOf(a), ratingOf(b)
	if ra != rb {
		return ra > rb
	}
	da, db := a.DistanceKm, b.DistanceKm
	switch {
	case da == nil:
		return false
	case db == nil:
		return true
	default:
		return *da < *db
	}
}

func ratingOf(rec models.ServiceRecord) float64 {
	if rec.Rating == nil {
		return 0
	}
	return *rec.Rating
}
