package models

import (
	"time"
)

// Application statuses used by the admin review flow.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// ProviderApplication is a pending service-provider signup awaiting an admin
// decision.
type ProviderApplication struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	Category    string    `json:"category"`
	City        string    `json:"city"`
	Phone       string    `json:"phone,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type ApplicationDecision struct {
	ApplicationID string `json:"application_id"`
	Approve       bool   `json:"approve"`
	Reason        string `json:"reason,omitempty"`
}
