package handlers

import (
	"net/http"
	"sync"

	"tamirciBul/internal/directory"
	"tamirciBul/internal/models"
	"tamirciBul/internal/notify"
)

// NotificationHandler serves two feeds: the account feed held by the
// directory, and the local event stream published on the bus.
type NotificationHandler struct {
	Directory *directory.Client

	mu      sync.Mutex
	pending []models.Notification
	cancel  func()
}

// NewNotificationHandler subscribes to the bus and buffers events until a
// client drains them.
func NewNotificationHandler(client *directory.Client, bus *notify.Bus) *NotificationHandler {
	h := &NotificationHandler{Directory: client}
	ch, cancel := bus.Subscribe(64)
	h.cancel = cancel
	go func() {
		for n := range ch {
			h.mu.Lock()
			h.pending = append(h.pending, n)
			if len(h.pending) > maxPending {
				h.pending = h.pending[len(h.pending)-maxPending:]
			}
			h.mu.Unlock()
		}
	}()
	return h
}

const maxPending = 256

// Close unsubscribes from the bus.
func (h *NotificationHandler) Close() {
	if h.cancel != nil {
		h.cancel()
	}
}

// GetNotifications returns the caller's notification feed from the directory.
func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	feed, err := h.Directory.Notifications(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if feed == nil {
		feed = []models.Notification{}
	}
	respondJSON(w, http.StatusOK, feed)
}

// GetEvents drains the locally buffered events. Each event is delivered once.
func (h *NotificationHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	events := h.pending
	h.pending = nil
	h.mu.Unlock()

	if events == nil {
		events = []models.Notification{}
	}
	respondJSON(w, http.StatusOK, events)
}
