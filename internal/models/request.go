package models

import (
	"fmt"
	"strings"
	"time"
)

// ServiceRequest is a customer's repair request addressed to one provider.
type ServiceRequest struct {
	ID          string     `json:"id,omitempty"`
	ProviderID  string     `json:"service_provider_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	City        string     `json:"city"`
	District    string     `json:"district,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// Validate checks the fields the directory rejects anyway, so the user gets a
// local error instead of a round trip.
func (r ServiceRequest) Validate() error {
	if strings.TrimSpace(r.ProviderID) == "" {
		return fmt.Errorf("service_provider_id is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(r.City) == "" {
		return fmt.Errorf("city is required")
	}
	switch r.Priority {
	case "low", "normal", "high", "urgent":
	default:
		return fmt.Errorf("invalid priority %q", r.Priority)
	}
	return nil
}
