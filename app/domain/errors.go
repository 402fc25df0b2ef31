package domain

import "errors"

// Collaborator errors. Stores and providers return these so that callers can
// tell a legitimate absence or rejection apart from an I/O failure.
var (
	// Identity provider errors
	ErrCredentialRejected          = errors.New("credential rejected by identity provider")
	ErrIdentityProviderUnavailable = errors.New("identity provider unavailable")
	ErrIdentityNotFound            = errors.New("identity not found")

	// Store lookups
	ErrProfileNotFound = errors.New("profile not found")
	ErrTenantNotFound  = errors.New("tenant not found")
)

// Provisioning and request errors
var (
	ErrEmailInUse             = errors.New("email already registered")
	ErrTenantUserLimitReached = errors.New("tenant user limit reached")
	ErrProfileProvisioning    = errors.New("profile provisioning failed")
	ErrPasswordMismatch       = errors.New("passwords do not match")
	ErrPasswordTooLong        = errors.New("password is too long")
	ErrCaptchaRejected        = errors.New("captcha verification failed")
	ErrCaptchaUnavailable     = errors.New("captcha service unavailable")
	ErrCompletionFailed       = errors.New("completion upstream failed")
)

// ValidationError represents validation errors with field-specific details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
