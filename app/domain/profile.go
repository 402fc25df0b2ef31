package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the tenant-scoped role of a profile.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// ParseRole accepts the canonical role names plus the legacy Spanish alias
// "empleado" still sent by older front-end builds.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleAdmin):
		return RoleAdmin, nil
	case string(RoleEmployee), "empleado":
		return RoleEmployee, nil
	default:
		return "", fmt.Errorf("invalid role: %q", s)
	}
}

// Profile is the tenant membership record of an identity.
type Profile struct {
	ID        string    `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// NewEmployeeProfile builds the active profile written after an identity has
// been provisioned for a tenant.
func NewEmployeeProfile(identityID string, tenantID uuid.UUID, name, email string, role Role) (*Profile, error) {
	if identityID == "" {
		return nil, fmt.Errorf("identity ID is required")
	}
	if tenantID == uuid.Nil {
		return nil, fmt.Errorf("tenant ID is required")
	}

	now := time.Now()
	return &Profile{
		ID:        identityID,
		TenantID:  tenantID,
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Role:      role,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NormalizeEmail trims and lower-cases an address for comparisons and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
