package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Jcepedarey/emmita-backend/app/domain"
	apperrors "github.com/Jcepedarey/emmita-backend/app/utils/errors"
)

// MeHandler describes the caller's resolved authorization context.
type MeHandler struct {
	policy domain.LifecyclePolicy
}

// NewMeHandler creates a handler that reports trial days with policy.
func NewMeHandler(policy domain.LifecyclePolicy) *MeHandler {
	return &MeHandler{policy: policy}
}

// MeResponse is the body of GET /api/me.
type MeResponse struct {
	IdentityID         string              `json:"identity_id"`
	Email              string              `json:"email"`
	Name               string              `json:"name"`
	Role               domain.Role         `json:"role"`
	TenantID           uuid.UUID           `json:"tenant_id"`
	TenantName         string              `json:"tenant_name"`
	Plan               domain.Plan         `json:"plan"`
	Status             domain.TenantStatus `json:"status"`
	TrialDaysRemaining *int                `json:"trial_days_remaining,omitempty"`
}

// Me handles GET /api/me.
func (h *MeHandler) Me(c echo.Context) error {
	rc, ok := domain.RequestContextFrom(c.Request().Context())
	if !ok {
		return apperrors.FromRejection(domain.Reject(domain.RejectUnauthenticated, nil))
	}

	email := rc.Profile.Email
	if email == "" {
		email = rc.Identity.Email
	}

	resp := MeResponse{
		IdentityID: rc.Identity.ID,
		Email:      email,
		Name:       rc.Profile.Name,
		Role:       rc.Profile.Role,
		TenantID:   rc.Tenant.ID,
		TenantName: rc.Tenant.Name,
		Plan:       rc.Tenant.Plan,
		Status:     rc.Tenant.Status,
	}
	if days, ok := h.policy.TrialDaysRemaining(rc.Tenant); ok {
		resp.TrialDaysRemaining = &days
	}

	return c.JSON(http.StatusOK, resp)
}
