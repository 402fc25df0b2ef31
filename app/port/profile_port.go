package port

//go:generate mockgen -source=profile_port.go -destination=../mocks/mock_profile_port.go

import (
	"context"

	"github.com/google/uuid"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

// ProfileStore looks up the profile bound to an identity. It returns
// domain.ErrProfileNotFound when none exists.
type ProfileStore interface {
	GetProfile(ctx context.Context, identityID string) (*domain.Profile, error)
}

// ProfileRepository adds the writes used by employee provisioning.
// WithTenantLock runs fn while holding an exclusive lock on the tenant, so
// that seat checks and inserts for one tenant are serialized.
type ProfileRepository interface {
	ProfileStore
	WithTenantLock(ctx context.Context, tenantID uuid.UUID, fn func(ctx context.Context) error) error
	CountProfilesByTenant(ctx context.Context, tenantID uuid.UUID) (int, error)
	UpsertProfile(ctx context.Context, profile *domain.Profile) error
}
