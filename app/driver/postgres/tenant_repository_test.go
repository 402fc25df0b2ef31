package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

var tenantColumns = []string{
	"id", "nombre", "estado", "plan", "fecha_registro", "fecha_vencimiento",
	"max_usuarios", "max_recursos", "created_at", "updated_at",
}

func TestTenantRepository_GetTenant(t *testing.T) {
	tenantID := uuid.New()
	registered := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	expires := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		setupDB func(mockDB pgxmock.PgxPoolIface)
		want    *domain.Tenant
		wantErr error
		anyErr  bool
	}{
		{
			name: "paid tenant with stored spanish status",
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectQuery("SELECT (.+) FROM tenants WHERE id").
					WithArgs(tenantID).
					WillReturnRows(pgxmock.NewRows(tenantColumns).AddRow(
						tenantID.String(), ptr("Alquileres SW"), "activo", "pro", &registered, &expires,
						ptr(10), ptr(500), registered, registered,
					))
			},
			want: &domain.Tenant{
				ID: tenantID, Name: "Alquileres SW", Status: domain.TenantStatusActive, Plan: domain.PlanPro,
				RegisteredAt: &registered, ExpiresAt: &expires, MaxUsers: 10, MaxResources: 500,
				CreatedAt: registered, UpdatedAt: registered,
			},
		},
		{
			name: "suspended trial without expiry",
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectQuery("SELECT (.+) FROM tenants WHERE id").
					WithArgs(tenantID).
					WillReturnRows(pgxmock.NewRows(tenantColumns).AddRow(
						tenantID.String(), (*string)(nil), "suspendido", "trial", &registered, (*time.Time)(nil),
						(*int)(nil), (*int)(nil), registered, registered,
					))
			},
			want: &domain.Tenant{
				ID: tenantID, Status: domain.TenantStatusSuspended, Plan: domain.PlanTrial,
				RegisteredAt: &registered, CreatedAt: registered, UpdatedAt: registered,
			},
		},
		{
			name: "no row",
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectQuery("SELECT (.+) FROM tenants WHERE id").
					WithArgs(tenantID).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrTenantNotFound,
		},
		{
			name: "database failure",
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectQuery("SELECT (.+) FROM tenants WHERE id").
					WithArgs(tenantID).
					WillReturnError(errors.New("connection refused"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mockDB.Close()

			repo := NewTenantRepository(mockDB, testLogger(t))
			tt.setupDB(mockDB)

			got, err := repo.GetTenant(context.Background(), tenantID)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				require.Error(t, err)
				assert.NotErrorIs(t, err, domain.ErrTenantNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}

func TestTenantStatusFromColumn(t *testing.T) {
	assert.Equal(t, domain.TenantStatusActive, tenantStatusFromColumn("activo"))
	assert.Equal(t, domain.TenantStatusActive, tenantStatusFromColumn("active"))
	assert.Equal(t, domain.TenantStatusInactive, tenantStatusFromColumn("inactivo"))
	assert.Equal(t, domain.TenantStatus("archivado"), tenantStatusFromColumn("archivado"))
}
