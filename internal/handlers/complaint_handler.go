package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"tamirciBul/internal/directory"
	"tamirciBul/internal/models"
)

type ComplaintHandler struct {
	Directory *directory.Client
}

// CreateComplaint files a complaint about a service.
func (h *ComplaintHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	var complaint models.Complaint
	if err := json.NewDecoder(r.Body).Decode(&complaint); err != nil {
		http.Error(w, "Invalid complaint payload", http.StatusBadRequest)
		return
	}
	if complaint.ServiceID == "" {
		http.Error(w, "Missing service ID", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(complaint.Description) == "" {
		http.Error(w, "Description is required", http.StatusBadRequest)
		return
	}

	created, err := h.Directory.CreateComplaint(r.Context(), complaint)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}
