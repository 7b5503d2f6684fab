package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"tamirciBul/internal/directory"
	"tamirciBul/internal/models"
)

type ReviewHandler struct {
	Directory *directory.Client
}

// CreateReview posts a review for a service.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		http.Error(w, "Invalid review payload", http.StatusBadRequest)
		return
	}
	if review.ServiceID == "" {
		http.Error(w, "Missing service ID", http.StatusBadRequest)
		return
	}
	if review.Rating < 0 || review.Rating > 5 {
		http.Error(w, "Rating must be between 0 and 5", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(review.Comment) == "" {
		http.Error(w, "Comment is required", http.StatusBadRequest)
		return
	}

	created, err := h.Directory.CreateReview(r.Context(), review)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}
