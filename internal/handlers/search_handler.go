package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"tamirciBul/internal/finder"
	"tamirciBul/internal/models"
)

type SearchHandler struct {
	Finder *finder.Orchestrator
}

type searchResponse struct {
	Items    []models.ServiceRecord `json:"items"`
	Total    int                    `json:"total"`
	Page     int                    `json:"page"`
	LastPage int                    `json:"last_page"`
	HasMore  bool                   `json:"has_more"`
	Loading  bool                   `json:"loading"`
	Filters  models.FilterState     `json:"filters"`
}

func (h *SearchHandler) snapshot() searchResponse {
	items, page := h.Finder.Results()
	return searchResponse{
		Items:    items,
		Total:    page.Total,
		Page:     page.CurrentPage,
		LastPage: page.LastPage,
		HasMore:  page.HasMore(),
		Loading:  h.Finder.Loading(),
		Filters:  h.Finder.State(),
	}
}

// GetResults returns the current ranked result set.
func (h *SearchHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.snapshot())
}

// UpdateFilters replaces the filter state and refreshes the result set.
func (h *SearchHandler) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	var state models.FilterState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		http.Error(w, "Invalid filter payload", http.StatusBadRequest)
		return
	}
	if err := h.Finder.SetFilters(r.Context(), state); err != nil && !errors.Is(err, models.ErrStaleResponse) {
		respondError(w, err)
		return
	}
	// a stale signal means a newer filter change already won; the snapshot
	// below reflects that newer state, which is what the caller should see
	respondJSON(w, http.StatusOK, h.snapshot())
}

// LoadMore appends the next page, if any.
func (h *SearchHandler) LoadMore(w http.ResponseWriter, r *http.Request) {
	if err := h.Finder.LoadMore(r.Context()); err != nil && !errors.Is(err, models.ErrStaleResponse) {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.snapshot())
}

type locationPayload struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	UseDefault bool    `json:"use_default"`
}

// UpdateLocation records a geolocation fix, or falls back to the configured
// default center when the fix was denied or unavailable.
func (h *SearchHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var payload locationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid location payload", http.StatusBadRequest)
		return
	}

	var err error
	if payload.UseDefault {
		err = h.Finder.UseDefaultCenter(r.Context())
	} else {
		err = h.Finder.SetCenter(r.Context(), models.GeoPoint{
			Latitude:  payload.Latitude,
			Longitude: payload.Longitude,
		})
	}
	if err != nil && !errors.Is(err, models.ErrStaleResponse) {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.snapshot())
}
