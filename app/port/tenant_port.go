package port

//go:generate mockgen -source=tenant_port.go -destination=../mocks/mock_tenant_port.go

import (
	"context"

	"github.com/google/uuid"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

// TenantStore looks up tenant state. It returns domain.ErrTenantNotFound when
// the tenant does not exist.
type TenantStore interface {
	GetTenant(ctx context.Context, tenantID uuid.UUID) (*domain.Tenant, error)
}
