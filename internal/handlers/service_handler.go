package handlers

import (
	"encoding/json"
	"net/http"

	"tamirciBul/internal/directory"
	"tamirciBul/internal/models"
)

type ServiceHandler struct {
	Directory *directory.Client
}

// GetServiceByID proxies the full detail record, reviews included.
func (h *ServiceHandler) GetServiceByID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing service ID", http.StatusBadRequest)
		return
	}

	detail, err := h.Directory.GetService(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// CreateServiceRequest submits a repair request to a provider.
func (h *ServiceHandler) CreateServiceRequest(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.Directory.CreateRequest(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}
