package models

import (
	"time"
)

type Complaint struct {
	ID          string    `json:"id,omitempty"`
	ServiceID   string    `json:"service_id"`
	UserID      int       `json:"user_id,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
