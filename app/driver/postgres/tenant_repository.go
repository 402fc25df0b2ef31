package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

// Stored tenant states. The tenants table keeps the values written by the
// billing flows.
var tenantStatusByColumn = map[string]domain.TenantStatus{
	"activo":     domain.TenantStatusActive,
	"active":     domain.TenantStatusActive,
	"suspendido": domain.TenantStatusSuspended,
	"suspended":  domain.TenantStatusSuspended,
	"inactivo":   domain.TenantStatusInactive,
	"inactive":   domain.TenantStatusInactive,
}

// TenantRepository implements port.TenantStore
type TenantRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewTenantRepository creates a new PostgreSQL tenant repository
func NewTenantRepository(db DatabaseIface, logger *slog.Logger) *TenantRepository {
	return &TenantRepository{
		db:     db,
		logger: logger.With("component", "tenant_repository"),
	}
}

// GetTenant retrieves a tenant by ID
func (r *TenantRepository) GetTenant(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	query := `
		SELECT id, nombre, estado, plan, fecha_registro, fecha_vencimiento,
			max_usuarios, max_recursos, created_at, updated_at
		FROM tenants WHERE id = $1`

	var (
		tenant       domain.Tenant
		name         *string
		status       string
		plan         string
		maxUsers     *int
		maxResources *int
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tenant.ID,
		&name,
		&status,
		&plan,
		&tenant.RegisteredAt,
		&tenant.ExpiresAt,
		&maxUsers,
		&maxResources,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	if name != nil {
		tenant.Name = *name
	}
	tenant.Status = tenantStatusFromColumn(status)
	tenant.Plan = domain.Plan(plan)
	if maxUsers != nil {
		tenant.MaxUsers = *maxUsers
	}
	if maxResources != nil {
		tenant.MaxResources = *maxResources
	}

	return &tenant, nil
}

// tenantStatusFromColumn maps stored states to domain states. Unknown values
// pass through unchanged so the lifecycle policy can reject them.
func tenantStatusFromColumn(value string) domain.TenantStatus {
	if status, ok := tenantStatusByColumn[value]; ok {
		return status
	}
	return domain.TenantStatus(value)
}
