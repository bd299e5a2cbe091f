package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/repository"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

// TenantService is the tenant directory. Reads return tenants in any
// status; callers decide what an inactive tenant means for them.
type TenantService struct {
	repo   repository.Repository
	events EventPublisher
	logger *logger.Logger
}

func NewTenantService(repo repository.Repository, events EventPublisher, logger *logger.Logger) *TenantService {
	return &TenantService{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

func (s *TenantService) FindBySubdomain(ctx context.Context, handle string) (*domain.Tenant, error) {
	tenant, err := s.repo.Tenant().GetBySubdomain(ctx, handle)
	if err != nil {
		return nil, translateLookup("find tenant", err)
	}
	return tenant, nil
}

func (s *TenantService) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	tenant, err := s.repo.Tenant().GetByID(ctx, id)
	if err != nil {
		return nil, translateLookup("get tenant", err)
	}
	return tenant, nil
}

// Create inserts a tenant. The subdomain pre-check only saves a round trip;
// the unique index decides between concurrent creates.
func (s *TenantService) Create(ctx context.Context, draft *domain.Tenant) (*domain.Tenant, error) {
	draft.Subdomain = strings.ToLower(strings.TrimSpace(draft.Subdomain))
	if err := validateTenantDraft(draft.Name, draft.Subdomain, draft.PlanType); err != nil {
		return nil, err
	}
	if draft.Status == "" {
		draft.Status = domain.TenantActive
	}
	if draft.PlanType == "" {
		draft.PlanType = domain.PlanBasic
	}
	if draft.Settings == nil {
		draft.Settings = domain.Settings{}
	}

	if err := s.ensureSubdomainFree(ctx, draft.Subdomain); err != nil {
		return nil, err
	}

	created, err := s.repo.Tenant().Create(ctx, draft)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("subdomain already in use")
		}
		return nil, upstream("create tenant", err)
	}
	return created, nil
}

func (s *TenantService) ensureSubdomainFree(ctx context.Context, subdomain string) error {
	_, err := s.repo.Tenant().GetBySubdomain(ctx, subdomain)
	switch {
	case err == nil:
		return conflict("subdomain already in use")
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return upstream("check subdomain", err)
	}
}

// Update applies patch to the tenant. The subdomain cannot change.
func (s *TenantService) Update(ctx context.Context, id string, patch domain.TenantPatch) (*domain.Tenant, error) {
	tenant, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Subdomain != nil && !strings.EqualFold(strings.TrimSpace(*patch.Subdomain), tenant.Subdomain) {
		return nil, invalidInput("subdomain cannot be changed")
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, invalidInput("name is required")
		}
		tenant.Name = name
	}
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return nil, invalidInput("invalid status")
		}
		tenant.Status = *patch.Status
	}
	if patch.PlanType != nil {
		if !patch.PlanType.IsValid() {
			return nil, invalidInput("invalid plan_type")
		}
		tenant.PlanType = *patch.PlanType
	}
	if patch.Settings != nil {
		tenant.Settings = patch.Settings
	}

	tenant.UpdatedAt = time.Now().UTC()
	if err := s.repo.Tenant().Update(ctx, tenant); err != nil {
		return nil, translateLookup("update tenant", err)
	}

	publishEvent(ctx, s.events, s.logger, domain.TenantEvent{
		Type:      domain.EventTenantUpdated,
		TenantID:  tenant.ID,
		Subdomain: tenant.Subdomain,
	})
	return tenant, nil
}

func (s *TenantService) List(ctx context.Context) ([]domain.Tenant, error) {
	tenants, err := s.repo.Tenant().List(ctx)
	if err != nil {
		return nil, upstream("list tenants", err)
	}
	return tenants, nil
}

// Deactivate is the administrative delete. Tenants referenced by
// memberships are never removed, only switched to inactive.
func (s *TenantService) Deactivate(ctx context.Context, id string) error {
	tenant, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tenant.Status == domain.TenantInactive {
		return nil
	}

	tenant.Status = domain.TenantInactive
	tenant.UpdatedAt = time.Now().UTC()
	if err := s.repo.Tenant().Update(ctx, tenant); err != nil {
		return translateLookup("deactivate tenant", err)
	}

	s.logger.Infof("tenant %s (%s) deactivated", tenant.ID, tenant.Subdomain)
	publishEvent(ctx, s.events, s.logger, domain.TenantEvent{
		Type:      domain.EventTenantDeactivated,
		TenantID:  tenant.ID,
		Subdomain: tenant.Subdomain,
	})
	return nil
}

func validateTenantDraft(name, subdomain string, plan domain.PlanType) error {
	if strings.TrimSpace(name) == "" {
		return invalidInput("tenant name is required")
	}
	if subdomain == "" {
		return invalidInput("subdomain is required")
	}
	if !domain.IsValidSubdomain(subdomain) {
		return invalidInput("subdomain must be a lowercase DNS label")
	}
	if plan != "" && !plan.IsValid() {
		return invalidInput("invalid plan_type")
	}
	return nil
}

func translateLookup(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return upstream(op, err)
}
