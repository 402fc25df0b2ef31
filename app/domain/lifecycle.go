package domain

import "time"

// DefaultTrialPeriodDays is the length of the free trial.
const DefaultTrialPeriodDays = 14

const day = 24 * time.Hour

// LifecyclePolicy evaluates profile and tenant state against the clock. It
// performs no I/O.
type LifecyclePolicy struct {
	TrialPeriodDays int
	Now             func() time.Time
}

// NewLifecyclePolicy returns a policy using the wall clock. A non-positive
// trial period falls back to DefaultTrialPeriodDays.
func NewLifecyclePolicy(trialPeriodDays int) LifecyclePolicy {
	if trialPeriodDays <= 0 {
		trialPeriodDays = DefaultTrialPeriodDays
	}
	return LifecyclePolicy{TrialPeriodDays: trialPeriodDays, Now: time.Now}
}

func (p LifecyclePolicy) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

func (p LifecyclePolicy) trialDays() int {
	if p.TrialPeriodDays <= 0 {
		return DefaultTrialPeriodDays
	}
	return p.TrialPeriodDays
}

// CheckProfile is the profile gate. It runs before any tenant lookup.
func (p LifecyclePolicy) CheckProfile(profile *Profile) error {
	if profile == nil {
		return Reject(RejectProfileNotFound, nil)
	}
	if !profile.Active {
		return Reject(RejectProfileDeactivated, nil)
	}
	return nil
}

// CheckTenant is the tenant gate. The first failing rule wins: status, then
// trial window, then paid expiry. A missing registration or expiry timestamp
// never denies access.
func (p LifecyclePolicy) CheckTenant(tenant *Tenant) error {
	if tenant == nil {
		return Reject(RejectTenantNotFound, nil)
	}
	if !tenant.IsActive() {
		return Reject(RejectTenantSuspended, nil)
	}

	now := p.now()
	if tenant.Plan.IsTrial() {
		if tenant.RegisteredAt != nil && p.elapsedDays(*tenant.RegisteredAt, now) >= p.trialDays() {
			return Reject(RejectTrialExpired, nil)
		}
		return nil
	}

	if tenant.ExpiresAt != nil && now.After(*tenant.ExpiresAt) {
		return Reject(RejectPlanExpired, nil)
	}
	return nil
}

// TrialDaysRemaining reports the whole days left in a trial. ok is false for
// paid plans and for trials without a registration timestamp.
func (p LifecyclePolicy) TrialDaysRemaining(tenant *Tenant) (days int, ok bool) {
	if tenant == nil || !tenant.Plan.IsTrial() || tenant.RegisteredAt == nil {
		return 0, false
	}
	remaining := p.trialDays() - p.elapsedDays(*tenant.RegisteredAt, p.now())
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

func (p LifecyclePolicy) elapsedDays(since, now time.Time) int {
	return int(now.Sub(since) / day)
}
