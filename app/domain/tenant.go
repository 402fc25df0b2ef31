package domain

import (
	"time"

	"github.com/google/uuid"
)

// TenantStatus represents the administrative status of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
	TenantStatusInactive  TenantStatus = "inactive"
)

// Plan is the subscription plan of a tenant. Every value other than
// PlanTrial is a paid tier.
type Plan string

const (
	PlanTrial      Plan = "trial"
	PlanBasic      Plan = "basic"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// IsTrial reports whether the plan is the free trial.
func (p Plan) IsTrial() bool {
	return p == PlanTrial
}

// Tenant represents a billing/organizational unit in the multi-tenant system
type Tenant struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Status       TenantStatus `json:"status"`
	Plan         Plan         `json:"plan"`
	RegisteredAt *time.Time   `json:"registered_at,omitempty"`
	ExpiresAt    *time.Time   `json:"expires_at,omitempty"`
	MaxUsers     int          `json:"max_users"`
	MaxResources int          `json:"max_resources"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// IsActive returns true if the tenant is active
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// HasUserCapacity reports whether one more member fits in the plan.
func (t *Tenant) HasUserCapacity(currentUsers int) bool {
	return currentUsers < t.MaxUsers
}
