package handlers

import (
	"encoding/json"
	"net/http"

	"tamirciBul/internal/directory"
	"tamirciBul/internal/models"
)

type ApplicationHandler struct {
	Directory *directory.Client
}

// ListApplications returns provider applications awaiting a decision.
func (h *ApplicationHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.Directory.ListApplications(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if apps == nil {
		apps = []models.ProviderApplication{}
	}
	respondJSON(w, http.StatusOK, apps)
}

// ResolveApplication approves or rejects one provider application.
func (h *ApplicationHandler) ResolveApplication(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing application ID", http.StatusBadRequest)
		return
	}

	var decision models.ApplicationDecision
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		http.Error(w, "Invalid decision payload", http.StatusBadRequest)
		return
	}
	decision.ApplicationID = id

	if err := h.Directory.ResolveApplication(r.Context(), decision); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"application_id": id,
		"status":         decisionStatus(decision),
	})
}

func decisionStatus(d models.ApplicationDecision) string {
	if d.Approve {
		return models.ApplicationApproved
	}
	return models.ApplicationRejected
}
