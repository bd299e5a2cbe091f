package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/identity"
	"github.com/kingrain94/tenancy-api/internal/observability"
	"github.com/kingrain94/tenancy-api/internal/repository"
	"github.com/kingrain94/tenancy-api/internal/saga"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

// Provisioning states, in the order a successful run reaches them
const (
	StatePreflight         saga.State = "preflight"
	StateTenantCreated     saga.State = "tenant_created"
	StateIdentityCreated   saga.State = "identity_created"
	StateProfileCreated    saga.State = "profile_created"
	StateRoleGranted       saga.State = "role_granted"
	StateMembershipCreated saga.State = "membership_created"
)

// Provisioning step names
const (
	StepPreflight        = "preflight"
	StepCreateTenant     = "create_tenant"
	StepCreateIdentity   = "create_identity"
	StepCreateProfile    = "create_profile"
	StepGrantRole        = "grant_role"
	StepCreateMembership = "create_membership"
)

const minPasswordLength = 8

type TenantDraft struct {
	Name      string
	Subdomain string
	PlanType  domain.PlanType
	Settings  domain.Settings
}

type AdminDraft struct {
	Name     string
	Email    string
	Password string
}

type ProvisionRequest struct {
	Tenant TenantDraft
	Admin  AdminDraft
}

// AdminSummary describes the created administrator. It never carries the
// password.
type AdminSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type ProvisionResult struct {
	Tenant *domain.Tenant
	Admin  AdminSummary
}

type ProvisioningConfig struct {
	Timeout             time.Duration
	CompensationTimeout time.Duration

	// IsReserved rejects subdomains the hostname resolver would never
	// route to a tenant. Optional.
	IsReserved func(label string) bool
}

type ProvisioningService struct {
	repo     repository.Repository
	tenants  *TenantService
	identity identity.Provider
	roles    *RoleResolver
	events   EventPublisher
	metrics  *observability.Metrics
	logger   *logger.Logger
	cfg      ProvisioningConfig
}

func NewProvisioningService(
	repo repository.Repository,
	tenants *TenantService,
	identityProvider identity.Provider,
	roles *RoleResolver,
	events EventPublisher,
	metrics *observability.Metrics,
	logger *logger.Logger,
	cfg ProvisioningConfig,
) *ProvisioningService {
	return &ProvisioningService{
		repo:     repo,
		tenants:  tenants,
		identity: identityProvider,
		roles:    roles,
		events:   events,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
	}
}

// provisioning carries the artifacts of one run from step to step.
type provisioning struct {
	req        ProvisionRequest
	tenant     *domain.Tenant
	identityID string
	profile    *domain.Profile
	grant      *domain.TenantRoleGrant
	membership *domain.Membership
}

// Provision creates a tenant together with its first administrator. The
// caller must already hold the global owner grant.
func (s *ProvisioningService) Provision(ctx context.Context, req ProvisionRequest) (*ProvisionResult, error) {
	p := &provisioning{req: normalizeProvisionRequest(req)}

	run := saga.New(saga.Config{
		Name:                "provision_tenant",
		Initial:             StatePreflight,
		Timeout:             s.cfg.Timeout,
		CompensationTimeout: s.cfg.CompensationTimeout,
	}, s.logger.With(zap.String("subdomain", p.req.Tenant.Subdomain)), s.steps(p)...)

	res, err := run.Run(ctx)
	s.metrics.ObserveProvisioning(string(res.State), res.Took)
	if err != nil {
		return nil, s.fail(ctx, p, res, err)
	}

	s.logger.Info("tenant provisioned",
		zap.String("tenant_id", p.tenant.ID),
		zap.String("subdomain", p.tenant.Subdomain),
		zap.String("admin_id", p.identityID),
		zap.Duration("took", res.Took))
	publishEvent(ctx, s.events, s.logger, domain.TenantEvent{
		Type:      domain.EventTenantProvisioned,
		TenantID:  p.tenant.ID,
		Subdomain: p.tenant.Subdomain,
	})

	return &ProvisionResult{
		Tenant: p.tenant,
		Admin: AdminSummary{
			ID:    p.identityID,
			Email: p.req.Admin.Email,
			Name:  p.req.Admin.Name,
		},
	}, nil
}

// steps lists the provisioning saga. Each step reads what the previous
// ones stored in p.
func (s *ProvisioningService) steps(p *provisioning) []saga.Step {
	return []saga.Step{
		{
			Name:   StepPreflight,
			Action: func(ctx context.Context) error { return s.preflight(ctx, p.req) },
		},
		{
			Name:    StepCreateTenant,
			Reached: StateTenantCreated,
			Action: func(ctx context.Context) error {
				tenant, err := s.tenants.Create(ctx, &domain.Tenant{
					Name:      p.req.Tenant.Name,
					Subdomain: p.req.Tenant.Subdomain,
					Status:    domain.TenantActive,
					PlanType:  p.req.Tenant.PlanType,
					Settings:  p.req.Tenant.Settings,
				})
				if err != nil {
					return err
				}
				p.tenant = tenant
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.repo.Tenant().Delete(ctx, p.tenant.ID)
			},
			Artifact: func() string {
				return fmt.Sprintf("tenant %s (%s)", p.tenant.ID, p.tenant.Subdomain)
			},
		},
		{
			Name:    StepCreateIdentity,
			Reached: StateIdentityCreated,
			Action: func(ctx context.Context) error {
				// The platform owner vouches for the address, so no confirmation mail
				id, err := s.identity.CreateIdentity(ctx, p.req.Admin.Email, p.req.Admin.Password, identity.Metadata{
					Name:          p.req.Admin.Name,
					EmailVerified: true,
					Attributes:    map[string]any{"tenant_id": p.tenant.ID},
				})
				if err != nil {
					if errors.Is(err, identity.ErrIdentityExists) {
						return conflict("email already in use")
					}
					return upstream("create identity", err)
				}
				p.identityID = id
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.identity.DeleteIdentity(ctx, p.identityID)
			},
			Artifact: func() string {
				return fmt.Sprintf("identity %s (%s)", p.identityID, p.req.Admin.Email)
			},
		},
		{
			Name:    StepCreateProfile,
			Reached: StateProfileCreated,
			Action: func(ctx context.Context) error {
				profile := &domain.Profile{
					ID:       p.identityID,
					TenantID: p.tenant.ID,
					FullName: p.req.Admin.Name,
					Email:    p.req.Admin.Email,
				}
				if err := s.repo.Profile().Create(ctx, profile); err != nil {
					return upstream("create profile", err)
				}
				p.profile = profile
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.repo.Profile().Delete(ctx, p.profile.ID)
			},
			Artifact: func() string {
				return fmt.Sprintf("profile %s", p.profile.ID)
			},
		},
		{
			Name:    StepGrantRole,
			Reached: StateRoleGranted,
			Action: func(ctx context.Context) error {
				grant := &domain.TenantRoleGrant{
					TenantID:    p.tenant.ID,
					PrincipalID: p.identityID,
					Role:        domain.RoleAdmin,
				}
				if err := s.repo.RoleGrant().Create(ctx, grant); err != nil {
					return upstream("create role grant", err)
				}
				p.grant = grant
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.repo.RoleGrant().Delete(ctx, p.grant.ID)
			},
			Artifact: func() string {
				return fmt.Sprintf("role grant %s", p.grant.ID)
			},
		},
		{
			Name:    StepCreateMembership,
			Reached: StateMembershipCreated,
			Action: func(ctx context.Context) error {
				membership := &domain.Membership{
					TenantID:    p.tenant.ID,
					PrincipalID: p.identityID,
					Role:        domain.RoleAdmin,
					Status:      domain.MembershipActive,
				}
				if err := s.repo.Membership().Create(ctx, membership); err != nil {
					return upstream("create membership", err)
				}
				p.membership = membership
				return nil
			},
			Compensate: func(ctx context.Context) error {
				if err := s.repo.Membership().Delete(ctx, p.membership.ID); err != nil {
					return err
				}
				s.roles.Invalidate(ctx, p.identityID, p.tenant.ID)
				return nil
			},
			Artifact: func() string {
				return fmt.Sprintf("membership %s", p.membership.ID)
			},
		},
	}
}

// preflight validates the request and checks the subdomain without writing
// anything.
func (s *ProvisioningService) preflight(ctx context.Context, req ProvisionRequest) error {
	t, a := req.Tenant, req.Admin
	if err := validateTenantDraft(t.Name, t.Subdomain, t.PlanType); err != nil {
		return err
	}
	if s.cfg.IsReserved != nil && s.cfg.IsReserved(t.Subdomain) {
		return invalidInput("subdomain is reserved")
	}
	if a.Name == "" {
		return invalidInput("admin name is required")
	}
	if a.Email == "" {
		return invalidInput("admin email is required")
	}
	if addr, err := mail.ParseAddress(a.Email); err != nil || addr.Address != a.Email {
		return invalidInput("admin email is invalid")
	}
	if len(a.Password) < minPasswordLength {
		return invalidInput(fmt.Sprintf("admin password must be at least %d characters", minPasswordLength))
	}
	return s.tenants.ensureSubdomainFree(ctx, t.Subdomain)
}

func (s *ProvisioningService) fail(ctx context.Context, p *provisioning, res *saga.Result, cause error) error {
	if errors.Is(cause, saga.ErrStepTimeout) && !errors.Is(cause, ErrUpstreamFailure) {
		cause = upstream(res.FailedStep, cause)
	}

	perr := &ProvisioningError{
		Step:            res.FailedStep,
		State:           res.State,
		Cause:           cause,
		CompensationErr: res.CompensationErr,
		Orphans:         res.Orphans,
	}

	event := domain.TenantEvent{
		Type:       domain.EventTenantProvisioningFailed,
		Subdomain:  p.req.Tenant.Subdomain,
		FailedStep: res.FailedStep,
		Error:      cause.Error(),
	}
	if p.tenant != nil {
		event.TenantID = p.tenant.ID
	}

	if perr.PartiallyRolledBack() {
		for _, step := range res.Uncompensated {
			s.metrics.ObserveCompensationFailure(step)
		}
		s.logger.Critical("tenant provisioning left orphaned artifacts", res.CompensationErr,
			zap.String("failed_step", res.FailedStep),
			zap.NamedError("cause", cause),
			zap.Strings("orphans", res.Orphans))

		event.Type = domain.EventTenantPartialRollback
		event.Orphans = res.Orphans
		publishEvent(ctx, s.events, s.logger, event)
		return perr
	}

	if res.FailedStep == StepPreflight {
		s.logger.Info("tenant provisioning rejected",
			zap.String("subdomain", p.req.Tenant.Subdomain),
			zap.Error(cause))
		return perr
	}

	s.logger.Warn("tenant provisioning rolled back",
		zap.String("failed_step", res.FailedStep),
		zap.Error(cause))
	publishEvent(ctx, s.events, s.logger, event)
	return perr
}

func normalizeProvisionRequest(req ProvisionRequest) ProvisionRequest {
	req.Tenant.Name = strings.TrimSpace(req.Tenant.Name)
	req.Tenant.Subdomain = strings.ToLower(strings.TrimSpace(req.Tenant.Subdomain))
	if req.Tenant.PlanType == "" {
		req.Tenant.PlanType = domain.PlanBasic
	}
	req.Admin.Name = strings.TrimSpace(req.Admin.Name)
	req.Admin.Email = strings.ToLower(strings.TrimSpace(req.Admin.Email))
	return req
}
