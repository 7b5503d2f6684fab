package models

import (
	"time"
)

// Notification kinds emitted on the event bus.
const (
	NotifyInfo    = "info"
	NotifySuccess = "success"
	NotifyWarning = "warning"
	NotifyError   = "error"
)

// Notification is a typed event for the presentation layer. Business logic
// publishes these; whatever renders them subscribes independently.
type Notification struct {
	ID        string    `json:"id,omitempty"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
