package port

//go:generate mockgen -source=identity_port.go -destination=../mocks/mock_identity_port.go

import (
	"context"
	"time"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

// IdentityProvider resolves a bearer credential to an identity. It returns
// domain.ErrCredentialRejected when the provider refuses the credential and
// any other error when the provider could not be consulted.
type IdentityProvider interface {
	VerifyCredential(ctx context.Context, credential string) (*domain.Identity, error)
}

// IdentityCache stores recent verification results keyed by a credential
// digest. A miss is reported with ok == false and a nil error.
type IdentityCache interface {
	Get(ctx context.Context, key string) (identity *domain.Identity, ok bool, err error)
	Set(ctx context.Context, key string, identity *domain.Identity, ttl time.Duration) error
}

// IdentityAdmin provisions identities through the provider's admin API.
type IdentityAdmin interface {
	// FindIdentityByEmail returns domain.ErrIdentityNotFound when no identity
	// uses the address.
	FindIdentityByEmail(ctx context.Context, email string) (*domain.Identity, error)
	CreateIdentity(ctx context.Context, in domain.NewIdentity) (*domain.Identity, error)
	DeleteIdentity(ctx context.Context, identityID string) error
}

// HealthChecker is implemented by collaborators probed by the readiness
// endpoint.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
