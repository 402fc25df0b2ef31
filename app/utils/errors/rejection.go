package errors

import (
	"github.com/Jcepedarey/emmita-backend/app/domain"
)

// Client-facing messages for authorization rejections. Each kind has its own
// text; internal failures share one opaque message.
var rejectionMessages = map[domain.RejectionKind]struct {
	code    ErrorCode
	message string
}{
	domain.RejectUnauthenticated:    {ErrCodeUnauthenticated, "invalid or expired token"},
	domain.RejectProfileNotFound:    {ErrCodeProfileNotFound, "profile not found"},
	domain.RejectProfileDeactivated: {ErrCodeProfileDeactivated, "your account has been deactivated. Contact your administrator."},
	domain.RejectTenantNotFound:     {ErrCodeTenantNotFound, "organization not found"},
	domain.RejectTenantSuspended:    {ErrCodeTenantSuspended, "your organization's account is suspended. Contact support."},
	domain.RejectTrialExpired:       {ErrCodeTrialExpired, "your free trial has ended. Choose a plan to keep using the platform."},
	domain.RejectPlanExpired:        {ErrCodePlanExpired, "your plan has expired. Renew it to keep using the platform."},
	domain.RejectInsufficientRole:   {ErrCodeInsufficientRole, "only administrators can perform this action"},
	domain.RejectInternal:           {ErrCodeInternalError, "authentication error"},
}

// FromRejection converts an authorization pipeline error into an AppError.
// Errors that are not rejections become the internal authentication error.
func FromRejection(err error) *AppError {
	kind := domain.RejectionKindOf(err)
	entry, ok := rejectionMessages[kind]
	if !ok {
		entry = rejectionMessages[domain.RejectInternal]
	}
	return Wrap(entry.code, entry.message, err)
}
