package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

// ProfileRepository implements port.ProfileRepository over the profiles
// table shared with the front-end.
type ProfileRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewProfileRepository creates a new PostgreSQL profile repository
func NewProfileRepository(db DatabaseIface, logger *slog.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger.With("component", "profile_repository"),
	}
}

// GetProfile loads the profile keyed by the identity id. Identity ids that
// are not UUIDs cannot have a profile.
func (r *ProfileRepository) GetProfile(ctx context.Context, identityID string) (*domain.Profile, error) {
	id, err := uuid.Parse(identityID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}

	query := `
		SELECT id, tenant_id, nombre, email, rol, activo, created_at, updated_at
		FROM profiles WHERE id = $1`

	var (
		profileID uuid.UUID
		name      *string
		email     *string
		role      string
		active    *bool
		profile   domain.Profile
	)
	err = r.db.QueryRow(ctx, query, id).Scan(
		&profileID,
		&profile.TenantID,
		&name,
		&email,
		&role,
		&active,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile.ID = profileID.String()
	if name != nil {
		profile.Name = *name
	}
	if email != nil {
		profile.Email = *email
	}
	if parsed, err := domain.ParseRole(role); err == nil {
		profile.Role = parsed
	} else {
		profile.Role = domain.Role(role)
	}
	// Only an explicit false deactivates a profile.
	profile.Active = active == nil || *active

	return &profile, nil
}

// CountProfilesByTenant returns the number of profiles attached to a tenant.
func (r *ProfileRepository) CountProfilesByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE tenant_id = $1`, tenantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}

// WithTenantLock runs fn inside a transaction holding a transaction-scoped
// advisory lock keyed by the tenant id. fn's own queries do not run in that
// transaction; the lock is released when it commits or rolls back.
func (r *ProfileRepository) WithTenantLock(ctx context.Context, tenantID uuid.UUID, fn func(ctx context.Context) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tenant lock transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				r.logger.ErrorContext(ctx, "failed to release tenant lock", "tenant_id", tenantID, "error", rbErr)
			}
		}
	}()

	if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, tenantID.String()); err != nil {
		return fmt.Errorf("failed to acquire tenant lock: %w", err)
	}

	if err = fn(ctx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to release tenant lock: %w", err)
	}
	return nil
}

// UpsertProfile inserts a profile or, when a row already exists for the
// identity, overwrites its name, email, role and active flag. The tenant of
// an existing row is never changed.
func (r *ProfileRepository) UpsertProfile(ctx context.Context, profile *domain.Profile) error {
	id, err := uuid.Parse(profile.ID)
	if err != nil {
		return fmt.Errorf("invalid profile id %q: %w", profile.ID, err)
	}

	query := `
		INSERT INTO profiles (id, tenant_id, nombre, email, rol, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			nombre = EXCLUDED.nombre,
			email = EXCLUDED.email,
			rol = EXCLUDED.rol,
			activo = EXCLUDED.activo,
			updated_at = EXCLUDED.updated_at`

	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	_, err = r.db.Exec(ctx, query,
		id,
		profile.TenantID,
		profile.Name,
		profile.Email,
		string(profile.Role),
		profile.Active,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to upsert profile", "profile_id", profile.ID, "error", err)
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	r.logger.InfoContext(ctx, "profile upserted", "profile_id", profile.ID, "tenant_id", profile.TenantID)
	return nil
}
