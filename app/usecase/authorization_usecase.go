package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Jcepedarey/emmita-backend/app/domain"
	"github.com/Jcepedarey/emmita-backend/app/metrics"
	"github.com/Jcepedarey/emmita-backend/app/port"
)

// DefaultCollaboratorTimeout bounds each identity, profile and tenant lookup.
const DefaultCollaboratorTimeout = 5 * time.Second

const (
	pipelineStandard = "standard"
	pipelineAdmin    = "admin"

	collaboratorIdentityProvider = "identity_provider"
	collaboratorProfileStore     = "profile_store"
	collaboratorTenantStore      = "tenant_store"
)

var (
	errMissingCredential  = errors.New("missing bearer credential")
	errCredentialTooShort = errors.New("credential shorter than minimum length")
	errEmptyIdentity      = errors.New("identity provider returned no identity")
)

var tracer = otel.Tracer("github.com/Jcepedarey/emmita-backend/app/usecase")

// AuthorizationOptions tunes the pipeline. Zero values select the defaults.
type AuthorizationOptions struct {
	MinCredentialLength int
	CollaboratorTimeout time.Duration
	Policy              domain.LifecyclePolicy
}

// AuthorizationUsecase gates protected requests. Identity, profile and tenant
// are resolved in that order and the first failing stage decides the result.
type AuthorizationUsecase struct {
	identities port.IdentityProvider
	profiles   port.ProfileStore
	tenants    port.TenantStore

	policy              domain.LifecyclePolicy
	minCredentialLength int
	collaboratorTimeout time.Duration
	logger              *slog.Logger
}

// NewAuthorizationUsecase creates a new AuthorizationUsecase instance
func NewAuthorizationUsecase(
	identities port.IdentityProvider,
	profiles port.ProfileStore,
	tenants port.TenantStore,
	opts AuthorizationOptions,
	logger *slog.Logger,
) *AuthorizationUsecase {
	if opts.MinCredentialLength <= 0 {
		opts.MinCredentialLength = domain.DefaultMinCredentialLength
	}
	if opts.CollaboratorTimeout <= 0 {
		opts.CollaboratorTimeout = DefaultCollaboratorTimeout
	}
	if opts.Policy.Now == nil {
		opts.Policy = domain.NewLifecyclePolicy(opts.Policy.TrialPeriodDays)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthorizationUsecase{
		identities:          identities,
		profiles:            profiles,
		tenants:             tenants,
		policy:              opts.Policy,
		minCredentialLength: opts.MinCredentialLength,
		collaboratorTimeout: opts.CollaboratorTimeout,
		logger:              logger,
	}
}

// Policy returns the lifecycle policy the pipeline evaluates tenants with.
func (uc *AuthorizationUsecase) Policy() domain.LifecyclePolicy {
	return uc.policy
}

// Authorize runs the standard pipeline.
func (uc *AuthorizationUsecase) Authorize(ctx context.Context, authorizationHeader string) (*domain.RequestContext, error) {
	ctx, span := tracer.Start(ctx, "authorization.Authorize")
	defer span.End()

	rc, err := uc.authorize(ctx, authorizationHeader)
	uc.recordDecision(ctx, span, pipelineStandard, err)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("tenant.id", rc.Tenant.ID.String()),
		attribute.String("identity.id", rc.Identity.ID),
	)
	return rc, nil
}

// AuthorizeAdmin runs the admin pipeline. The role and active checks come
// before the tenant lookup, so an employee is always refused with
// InsufficientRole whatever the tenant state.
func (uc *AuthorizationUsecase) AuthorizeAdmin(ctx context.Context, authorizationHeader string) (*domain.AdminContext, error) {
	ctx, span := tracer.Start(ctx, "authorization.AuthorizeAdmin")
	defer span.End()

	ac, err := uc.authorizeAdmin(ctx, authorizationHeader)
	uc.recordDecision(ctx, span, pipelineAdmin, err)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("tenant.id", ac.Tenant.ID.String()),
		attribute.String("identity.id", ac.Identity.ID),
	)
	return ac, nil
}

func (uc *AuthorizationUsecase) authorize(ctx context.Context, header string) (*domain.RequestContext, error) {
	identity, profile, err := uc.resolvePrincipal(ctx, header)
	if err != nil {
		return nil, err
	}

	if err := uc.policy.CheckProfile(profile); err != nil {
		return nil, err
	}

	tenant, err := uc.resolveTenant(ctx, profile.TenantID)
	if err != nil {
		return nil, err
	}

	if err := uc.policy.CheckTenant(tenant); err != nil {
		return nil, err
	}

	return &domain.RequestContext{Identity: identity, Profile: profile, Tenant: tenant}, nil
}

func (uc *AuthorizationUsecase) authorizeAdmin(ctx context.Context, header string) (*domain.AdminContext, error) {
	identity, profile, err := uc.resolvePrincipal(ctx, header)
	if err != nil {
		return nil, err
	}

	if !profile.IsAdmin() {
		return nil, domain.Reject(domain.RejectInsufficientRole, nil)
	}
	if err := uc.policy.CheckProfile(profile); err != nil {
		return nil, err
	}

	tenant, err := uc.resolveTenant(ctx, profile.TenantID)
	if err != nil {
		return nil, err
	}

	if err := uc.policy.CheckTenant(tenant); err != nil {
		return nil, err
	}

	return &domain.AdminContext{Identity: identity, Profile: profile, Tenant: tenant}, nil
}

// resolvePrincipal is the stage shared by both pipelines: credential
// extraction, identity verification and profile lookup.
func (uc *AuthorizationUsecase) resolvePrincipal(ctx context.Context, header string) (*domain.Identity, *domain.Profile, error) {
	credential, ok := domain.ParseBearerCredential(header)
	if !ok {
		return nil, nil, domain.Reject(domain.RejectUnauthenticated, errMissingCredential)
	}
	if utf8.RuneCountInString(credential) < uc.minCredentialLength {
		return nil, nil, domain.Reject(domain.RejectUnauthenticated, errCredentialTooShort)
	}

	identity, err := uc.verifyIdentity(ctx, credential)
	if err != nil {
		return nil, nil, err
	}

	profile, err := uc.resolveProfile(ctx, identity.ID)
	if err != nil {
		return nil, nil, err
	}

	return identity, profile, nil
}

func (uc *AuthorizationUsecase) verifyIdentity(ctx context.Context, credential string) (*domain.Identity, error) {
	callCtx, cancel := context.WithTimeout(ctx, uc.collaboratorTimeout)
	defer cancel()

	start := time.Now()
	identity, err := uc.identities.VerifyCredential(callCtx, credential)
	rejected := errors.Is(err, domain.ErrCredentialRejected)

	var observed error
	if err != nil && !rejected {
		observed = err
	}
	metrics.ObserveCollaborator(collaboratorIdentityProvider, time.Since(start), observed)

	switch {
	case rejected:
		return nil, domain.Reject(domain.RejectUnauthenticated, err)
	case err != nil:
		return nil, uc.collaboratorFailure(ctx, collaboratorIdentityProvider, err)
	case identity == nil || identity.ID == "":
		return nil, domain.Reject(domain.RejectUnauthenticated, errEmptyIdentity)
	}
	return identity, nil
}

func (uc *AuthorizationUsecase) resolveProfile(ctx context.Context, identityID string) (*domain.Profile, error) {
	callCtx, cancel := context.WithTimeout(ctx, uc.collaboratorTimeout)
	defer cancel()

	start := time.Now()
	profile, err := uc.profiles.GetProfile(callCtx, identityID)
	notFound := errors.Is(err, domain.ErrProfileNotFound)

	var observed error
	if err != nil && !notFound {
		observed = err
	}
	metrics.ObserveCollaborator(collaboratorProfileStore, time.Since(start), observed)

	switch {
	case notFound:
		return nil, domain.Reject(domain.RejectProfileNotFound, err)
	case err != nil:
		return nil, uc.collaboratorFailure(ctx, collaboratorProfileStore, err)
	case profile == nil:
		return nil, domain.Reject(domain.RejectProfileNotFound, nil)
	}
	return profile, nil
}

func (uc *AuthorizationUsecase) resolveTenant(ctx context.Context, tenantID uuid.UUID) (*domain.Tenant, error) {
	callCtx, cancel := context.WithTimeout(ctx, uc.collaboratorTimeout)
	defer cancel()

	start := time.Now()
	tenant, err := uc.tenants.GetTenant(callCtx, tenantID)
	notFound := errors.Is(err, domain.ErrTenantNotFound)

	var observed error
	if err != nil && !notFound {
		observed = err
	}
	metrics.ObserveCollaborator(collaboratorTenantStore, time.Since(start), observed)

	switch {
	case notFound:
		return nil, domain.Reject(domain.RejectTenantNotFound, err)
	case err != nil:
		return nil, uc.collaboratorFailure(ctx, collaboratorTenantStore, err)
	case tenant == nil:
		return nil, domain.Reject(domain.RejectTenantNotFound, nil)
	}
	return tenant, nil
}

func (uc *AuthorizationUsecase) collaboratorFailure(ctx context.Context, collaborator string, err error) error {
	uc.logger.ErrorContext(ctx, "authorization collaborator failed",
		"collaborator", collaborator,
		"error", err)
	return domain.Reject(domain.RejectInternal, fmt.Errorf("%s: %w", collaborator, err))
}

func (uc *AuthorizationUsecase) recordDecision(ctx context.Context, span trace.Span, pipeline string, err error) {
	if err == nil {
		metrics.RecordDecision(pipeline, "allow")
		return
	}

	kind := domain.RejectionKindOf(err)
	metrics.RecordDecision(pipeline, string(kind))
	span.SetAttributes(attribute.String("authorization.rejection", string(kind)))
	if kind == domain.RejectInternal {
		span.SetStatus(codes.Error, "authorization collaborator failed")
		return
	}
	uc.logger.InfoContext(ctx, "authorization rejected",
		"pipeline", pipeline,
		"kind", kind)
}
