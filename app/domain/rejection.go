package domain

import (
	"errors"
	"fmt"
)

// RejectionKind classifies why the authorization pipeline refused a request.
type RejectionKind string

const (
	RejectUnauthenticated    RejectionKind = "UNAUTHENTICATED"
	RejectProfileNotFound    RejectionKind = "PROFILE_NOT_FOUND"
	RejectProfileDeactivated RejectionKind = "PROFILE_DEACTIVATED"
	RejectTenantNotFound     RejectionKind = "TENANT_NOT_FOUND"
	RejectTenantSuspended    RejectionKind = "TENANT_SUSPENDED"
	RejectTrialExpired       RejectionKind = "TRIAL_EXPIRED"
	RejectPlanExpired        RejectionKind = "PLAN_EXPIRED"
	RejectInsufficientRole   RejectionKind = "INSUFFICIENT_ROLE"
	RejectInternal           RejectionKind = "INTERNAL_ERROR"
)

// Rejection is the failure half of an authorization decision. Cause carries
// collaborator detail for logs only; it never reaches the client.
type Rejection struct {
	Kind  RejectionKind
	Cause error
}

// Reject builds a rejection of the given kind.
func Reject(kind RejectionKind, cause error) *Rejection {
	return &Rejection{Kind: kind, Cause: cause}
}

func (r *Rejection) Error() string {
	if r.Cause != nil {
		return fmt.Sprintf("authorization rejected (%s): %v", r.Kind, r.Cause)
	}
	return fmt.Sprintf("authorization rejected (%s)", r.Kind)
}

func (r *Rejection) Unwrap() error {
	return r.Cause
}

// Is matches any other rejection of the same kind, so callers can write
// errors.Is(err, domain.ErrTrialExpired).
func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	return ok && t.Kind == r.Kind
}

// Rejection sentinels for errors.Is checks.
var (
	ErrUnauthenticated    = &Rejection{Kind: RejectUnauthenticated}
	ErrProfileMissing     = &Rejection{Kind: RejectProfileNotFound}
	ErrProfileDeactivated = &Rejection{Kind: RejectProfileDeactivated}
	ErrTenantMissing      = &Rejection{Kind: RejectTenantNotFound}
	ErrTenantSuspended    = &Rejection{Kind: RejectTenantSuspended}
	ErrTrialExpired       = &Rejection{Kind: RejectTrialExpired}
	ErrPlanExpired        = &Rejection{Kind: RejectPlanExpired}
	ErrInsufficientRole   = &Rejection{Kind: RejectInsufficientRole}
	ErrAuthorizationFault = &Rejection{Kind: RejectInternal}
)

// RejectionKindOf extracts the kind from err. Errors that are not rejections
// are reported as internal, so unknown failures never read as an allow.
func RejectionKindOf(err error) RejectionKind {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Kind
	}
	return RejectInternal
}
