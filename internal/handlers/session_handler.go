package handlers

import (
	"encoding/json"
	"net/http"

	"tamirciBul/internal/directory"
	"tamirciBul/internal/models"
	"tamirciBul/internal/session"
)

type SessionHandler struct {
	Directory *directory.Client
	Store     session.Store
}

type sessionResponse struct {
	UserID    int    `json:"user_id"`
	Role      string `json:"role"`
	Name      string `json:"name,omitempty"`
	City      string `json:"city,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

func toSessionResponse(sess models.Session) sessionResponse {
	resp := sessionResponse{
		UserID: sess.UserID,
		Role:   sess.Role,
		Name:   sess.Name,
		City:   sess.City,
	}
	if !sess.ExpiresAt.IsZero() {
		resp.ExpiresAt = sess.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}

// SignIn exchanges credentials for a directory token and stores the session.
func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid credentials payload", http.StatusBadRequest)
		return
	}

	sess, err := h.Directory.SignIn(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	sess, err = session.WithClaims(sess)
	if err != nil {
		http.Error(w, "Directory returned an unusable token", http.StatusBadGateway)
		return
	}
	if err := h.Store.Set(r.Context(), sess); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(sess))
}

// SignUp registers a new account and signs it in.
func (h *SessionHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid registration payload", http.StatusBadRequest)
		return
	}

	sess, err := h.Directory.SignUp(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	sess, err = session.WithClaims(sess)
	if err != nil {
		http.Error(w, "Directory returned an unusable token", http.StatusBadGateway)
		return
	}
	if err := h.Store.Set(r.Context(), sess); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toSessionResponse(sess))
}

// RefreshSession exchanges the stored token for a fresh one before it
// expires. 401 when no session is stored.
func (h *SessionHandler) RefreshSession(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Store.Get(r.Context()); err != nil {
		respondError(w, err)
		return
	}

	sess, err := h.Directory.Refresh(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	sess, err = session.WithClaims(sess)
	if err != nil {
		http.Error(w, "Directory returned an unusable token", http.StatusBadGateway)
		return
	}
	if err := h.Store.Set(r.Context(), sess); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(sess))
}

// GetSession returns the current session, 401 when there is none.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Store.Get(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if sess.Expired() {
		respondError(w, models.ErrSessionExpired)
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(sess))
}

// SignOut clears the stored session.
func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Clear(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
