package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

var fixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedPolicy() domain.LifecyclePolicy {
	return domain.LifecyclePolicy{
		TrialPeriodDays: domain.DefaultTrialPeriodDays,
		Now:             func() time.Time { return fixedNow },
	}
}

func daysAgo(n int) *time.Time {
	t := fixedNow.Add(-time.Duration(n) * 24 * time.Hour)
	return &t
}

func TestLifecyclePolicy_CheckProfile(t *testing.T) {
	policy := fixedPolicy()

	t.Run("active profile passes", func(t *testing.T) {
		err := policy.CheckProfile(&domain.Profile{ID: "u1", TenantID: uuid.New(), Active: true})
		assert.NoError(t, err)
	})

	t.Run("inactive profile is deactivated", func(t *testing.T) {
		err := policy.CheckProfile(&domain.Profile{ID: "u1", TenantID: uuid.New(), Active: false})
		require.Error(t, err)
		assert.Equal(t, domain.RejectProfileDeactivated, domain.RejectionKindOf(err))
	})

	t.Run("nil profile is not found", func(t *testing.T) {
		err := policy.CheckProfile(nil)
		assert.True(t, errors.Is(err, domain.ErrProfileMissing))
	})
}

func TestLifecyclePolicy_CheckTenant(t *testing.T) {
	future := fixedNow.Add(30 * 24 * time.Hour)
	past := fixedNow.Add(-time.Minute)

	tests := []struct {
		name   string
		tenant *domain.Tenant
		want   domain.RejectionKind
	}{
		{
			name:   "suspended wins over expired trial",
			tenant: &domain.Tenant{Status: domain.TenantStatusSuspended, Plan: domain.PlanTrial, RegisteredAt: daysAgo(30)},
			want:   domain.RejectTenantSuspended,
		},
		{
			name:   "inactive is treated as suspended",
			tenant: &domain.Tenant{Status: domain.TenantStatusInactive, Plan: domain.PlanPro},
			want:   domain.RejectTenantSuspended,
		},
		{
			name:   "unknown status fails closed",
			tenant: &domain.Tenant{Status: "pending_review", Plan: domain.PlanPro},
			want:   domain.RejectTenantSuspended,
		},
		{
			name:   "trial at 13 days is allowed",
			tenant: &domain.Tenant{Status: domain.TenantStatusActive, Plan: domain.PlanTrial, RegisteredAt: daysAgo(13)},
		},
		{
			name:   "trial at exactly 14 days is expired",
			tenant: &domain.Tenant{Status: domain.TenantStatusActive, Plan: domain.PlanTrial, RegisteredAt: daysAgo(14)},
			want:   domain.RejectTrialExpired,
		},
		{
			name:   "trial at 20 days is expired",
			tenant: &domain.Tenant{Status: domain.TenantStatusActive, Plan: domain.PlanTrial, RegisteredAt: daysAgo(20)},
			want:   domain.RejectTrialExpired,
		},
		{
			name:   "trial without registration date is allowed",
			tenant: &domain.Tenant{Status: domain.TenantStatusActive, Plan: domain.PlanTrial},
		},
		{
			name:   "trial ignores expiry timestamp",
			tenant: &domain.Tenant{Status: domain.TenantStatusActive, Plan: domain.PlanTrial, RegisteredAt: daysAgo(1), ExpiresAt: &past},
		},
		{
			name:   "paid plan without expiry is allowed",
			tenant: &domain.Tenant{Status: domain.TenantStatusActive, Plan: domain.PlanBasic},
		},
		{
			name:   "paid plan with future expiry is allowed",
			tenant: &domain.Tenant{Status: domain.TenantStatusActive, Plan: domain.PlanPro, ExpiresAt: &future},
		},
		{
			name:   "paid plan past expiry is expired",
			tenant: &domain.Tenant{Status: domain.TenantStatusActive, Plan: domain.PlanEnterprise, ExpiresAt: &past},
			want:   domain.RejectPlanExpired,
		},
		{
			name:   "paid plan expiring exactly now is allowed",
			tenant: &domain.Tenant{Status: domain.TenantStatusActive, Plan: domain.PlanPro, ExpiresAt: &fixedNow},
		},
		{
			name:   "nil tenant is not found",
			tenant: nil,
			want:   domain.RejectTenantNotFound,
		},
	}

	policy := fixedPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.CheckTenant(tt.tenant)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.want, domain.RejectionKindOf(err))
		})
	}
}

func TestLifecyclePolicy_TrialBoundaryFollowsClock(t *testing.T) {
	registered := fixedNow
	tenant := &domain.Tenant{Status: domain.TenantStatusActive, Plan: domain.PlanTrial, RegisteredAt: &registered}

	now := registered.Add(14*24*time.Hour - time.Second)
	policy := domain.LifecyclePolicy{TrialPeriodDays: 14, Now: func() time.Time { return now }}
	assert.NoError(t, policy.CheckTenant(tenant))

	now = registered.Add(14 * 24 * time.Hour)
	assert.ErrorIs(t, policy.CheckTenant(tenant), domain.ErrTrialExpired)
}

func TestLifecyclePolicy_TrialDaysRemaining(t *testing.T) {
	policy := fixedPolicy()

	days, ok := policy.TrialDaysRemaining(&domain.Tenant{Plan: domain.PlanTrial, RegisteredAt: daysAgo(4)})
	assert.True(t, ok)
	assert.Equal(t, 10, days)

	days, ok = policy.TrialDaysRemaining(&domain.Tenant{Plan: domain.PlanTrial, RegisteredAt: daysAgo(40)})
	assert.True(t, ok)
	assert.Equal(t, 0, days)

	_, ok = policy.TrialDaysRemaining(&domain.Tenant{Plan: domain.PlanPro})
	assert.False(t, ok)

	_, ok = policy.TrialDaysRemaining(&domain.Tenant{Plan: domain.PlanTrial})
	assert.False(t, ok)
}

func TestNewLifecyclePolicy_DefaultsTrialPeriod(t *testing.T) {
	assert.Equal(t, domain.DefaultTrialPeriodDays, domain.NewLifecyclePolicy(0).TrialPeriodDays)
	assert.Equal(t, 30, domain.NewLifecyclePolicy(30).TrialPeriodDays)
}
