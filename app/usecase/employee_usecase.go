package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jcepedarey/emmita-backend/app/domain"
	"github.com/Jcepedarey/emmita-backend/app/port"
)

// EmployeeUsecase provisions new tenant members. The identity is created
// first; if the profile write fails the identity is deleted again.
type EmployeeUsecase struct {
	identities port.IdentityAdmin
	profiles   port.ProfileRepository
	logger     *slog.Logger
}

// NewEmployeeUsecase creates a new EmployeeUsecase instance
func NewEmployeeUsecase(identities port.IdentityAdmin, profiles port.ProfileRepository, logger *slog.Logger) *EmployeeUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmployeeUsecase{
		identities: identities,
		profiles:   profiles,
		logger:     logger,
	}
}

// CreateEmployee adds a member to the admin's tenant.
func (uc *EmployeeUsecase) CreateEmployee(ctx context.Context, admin *domain.AdminContext, req *domain.CreateEmployeeRequest) (*domain.CreatedEmployee, error) {
	if admin == nil || admin.Tenant == nil {
		return nil, errors.New("admin context is required")
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, domain.NewValidationError("rol", "invalid role")
	}
	if len([]rune(req.Password)) < domain.MinEmployeePasswordLength {
		return nil, domain.NewValidationError("password",
			fmt.Sprintf("password must be at least %d characters long", domain.MinEmployeePasswordLength))
	}
	if len(req.Password) > domain.MaxPasswordBytes {
		return nil, domain.NewValidationError("password",
			fmt.Sprintf("password must be at most %d bytes long", domain.MaxPasswordBytes))
	}

	tenant := admin.Tenant
	email := domain.NormalizeEmail(req.Email)

	var (
		identity *domain.Identity
		profile  *domain.Profile
	)
	// The seat count and the profile write share one tenant lock.
	err = uc.profiles.WithTenantLock(ctx, tenant.ID, func(ctx context.Context) error {
		var err error
		identity, profile, err = uc.provision(ctx, tenant, email, role, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "employee created",
		"tenant_id", tenant.ID,
		"identity_id", identity.ID,
		"created_by", admin.Identity.ID,
		"role", role)

	return &domain.CreatedEmployee{
		ID:       identity.ID,
		TenantID: tenant.ID,
		Name:     profile.Name,
		Email:    profile.Email,
		Role:     role,
	}, nil
}

func (uc *EmployeeUsecase) provision(ctx context.Context, tenant *domain.Tenant, email string, role domain.Role, req *domain.CreateEmployeeRequest) (*domain.Identity, *domain.Profile, error) {
	current, err := uc.profiles.CountProfilesByTenant(ctx, tenant.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("count tenant profiles: %w", err)
	}
	if !tenant.HasUserCapacity(current) {
		return nil, nil, &domain.UserLimitError{Current: current, Max: tenant.MaxUsers}
	}

	_, err = uc.identities.FindIdentityByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, nil, domain.ErrEmailInUse
	case !errors.Is(err, domain.ErrIdentityNotFound):
		return nil, nil, fmt.Errorf("look up identity by email: %w", err)
	}

	identity, err := uc.identities.CreateIdentity(ctx, domain.NewIdentity{
		Email:    email,
		Password: req.Password,
		Name:     req.Name,
		TenantID: tenant.ID.String(),
		Role:     role,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create identity: %w", err)
	}

	profile, err := domain.NewEmployeeProfile(identity.ID, tenant.ID, req.Name, email, role)
	if err == nil {
		err = uc.profiles.UpsertProfile(ctx, profile)
	}
	if err != nil {
		uc.logger.ErrorContext(ctx, "failed to write employee profile, removing identity",
			"tenant_id", tenant.ID,
			"identity_id", identity.ID,
			"error", err)
		if delErr := uc.identities.DeleteIdentity(ctx, identity.ID); delErr != nil {
			uc.logger.ErrorContext(ctx, "failed to remove orphaned identity",
				"identity_id", identity.ID,
				"error", delErr)
		}
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrProfileProvisioning, err)
	}

	return identity, profile, nil
}
