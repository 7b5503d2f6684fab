package finder

import (
	"tamirciBul/internal/models"
)

// MergeMode selects how an incoming page folds into the visible set.
type MergeMode int

const (
	// MergeAppend adds novel records to the tail ("load more").
	MergeAppend MergeMode = iota
	// MergeReplace discards the existing set (any filter change).
	MergeReplace
)

// Merge deduplicates an incoming page into the visible set by record ID,
// first occurrence wins. Overlap across pages is normal when the center or
// radius shifted between requests, and the directory has been seen to repeat
// an id within a single page, so replace mode dedupes the page itself too.
func Merge(existing []models.ServiceRecord, page models.ResultPage, mode MergeMode) []models.ServiceRecord {
	var out []models.ServiceRecord
	seen := make(map[string]struct{}, len(existing)+len(page.Items))
	if mode == MergeAppend {
		out = make([]models.ServiceRecord, 0, len(existing)+len(page.Items))
		for _, rec := range existing {
			if _, dup := seen[rec.ID]; dup {
				continue
			}
			seen[rec.ID] = struct{}{}
			out = append(out, rec)
		}
	} else {
		out = make([]models.ServiceRecord, 0, len(page.Items))
	}
	for _, rec := range page.Items {
		if _, dup := seen[rec.ID]; dup {
			continue
		}
		seen[rec.ID] = struct{}{}
		out = append(out, rec)
	}
	return out
}

// TotalPages derives the page count from the directory's totals.
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
