package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"tamirciBul/internal/models"
)

// respondJSON writes v with the given status. The content type is already
// set by the middleware chain.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps the typed error kinds onto HTTP statuses. Fetch failures
// are the upstream's fault, not the caller's.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidFilterState), errors.Is(err, models.ErrInvalidCoordinate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNoSession), errors.Is(err, models.ErrSessionExpired), errors.Is(err, models.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrServiceNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrFetchFailed):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
