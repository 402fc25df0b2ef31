package domain

import (
	"strings"
	"time"
)

// DefaultMinCredentialLength is the shortest bearer credential forwarded to the
// identity provider. Anything shorter is rejected locally.
const DefaultMinCredentialLength = 20

const bearerPrefix = "Bearer "

// Identity is the principal resolved by the identity provider. ExpiresAt is
// when the underlying session or token stops being valid, if known.
type Identity struct {
	ID        string         `json:"id"`
	Email     string         `json:"email,omitempty"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
	Claims    map[string]any `json:"-"`
}

// ParseBearerCredential extracts the credential from an Authorization header
// value. It returns false when the header is absent or uses another scheme.
func ParseBearerCredential(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	credential := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if credential == "" || strings.ContainsAny(credential, " \t") {
		return "", false
	}
	return credential, true
}

// NewIdentity describes an identity to be created through the provider's
// admin API.
type NewIdentity struct {
	Email    string
	Password string
	Name     string
	TenantID string
	Role     Role
}
