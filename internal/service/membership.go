package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/repository"
	"github.com/kingrain94/tenancy-api/internal/utils"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

type MembershipPatch struct {
	Role   *domain.Role
	Status *domain.MembershipStatus
}

// MembershipService manages the members of the tenant bound to the request
// context. Every write keeps the role grant in step with the membership and
// drops the cached role.
type MembershipService struct {
	repo   repository.Repository
	roles  *RoleResolver
	logger *logger.Logger
}

func NewMembershipService(repo repository.Repository, roles *RoleResolver, logger *logger.Logger) *MembershipService {
	return &MembershipService{
		repo:   repo,
		roles:  roles,
		logger: logger,
	}
}

func (s *MembershipService) List(ctx context.Context) ([]domain.Membership, error) {
	memberships, err := s.repo.Membership().List(ctx)
	if err != nil {
		if errors.Is(err, utils.ErrNoTenantInContext) {
			return nil, err
		}
		return nil, upstream("list memberships", err)
	}
	return memberships, nil
}

// Add makes principalID a member of the context tenant. Only the global
// owner can hand out the owner role.
func (s *MembershipService) Add(ctx context.Context, actor Decision, principalID string, role domain.Role) (*domain.Membership, error) {
	tenantID, err := utils.GetTenantIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkAssignable(actor, role); err != nil {
		return nil, err
	}

	if _, err := s.repo.Identity().GetByID(ctx, principalID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalidInput("unknown principal")
		}
		return nil, upstream("get identity", err)
	}

	membership := &domain.Membership{
		TenantID:    tenantID,
		PrincipalID: principalID,
		Role:        role,
		Status:      domain.MembershipActive,
	}
	if err := s.repo.Membership().Create(ctx, membership); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("principal is already a member")
		}
		return nil, upstream("create membership", err)
	}

	if err := s.syncGrant(ctx, tenantID, principalID, role); err != nil {
		// Without the grant the membership would resolve inconsistently
		if delErr := s.repo.Membership().Delete(ctx, membership.ID); delErr != nil {
			s.logger.Error("failed to remove membership after grant failure", delErr,
				zap.String("membership_id", membership.ID))
		}
		s.roles.Invalidate(ctx, principalID, tenantID)
		return nil, err
	}

	s.roles.Invalidate(ctx, principalID, tenantID)
	return membership, nil
}

// Update changes the role or status of an active membership. The last
// active admin of a tenant cannot be demoted or deactivated, and nobody but
// the global owner may touch a membership that outranks them.
func (s *MembershipService) Update(ctx context.Context, actor Decision, principalID string, patch MembershipPatch) (*domain.Membership, error) {
	tenantID, err := utils.GetTenantIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	membership, err := s.repo.Membership().GetActive(ctx, principalID, tenantID)
	if err != nil {
		return nil, translateLookup("get membership", err)
	}

	if !actor.GlobalOwner && !actor.Role.AtLeast(membership.Role) {
		return nil, ErrUnauthorized
	}

	newRole, newStatus := membership.Role, membership.Status
	if patch.Role != nil {
		if err := checkAssignable(actor, *patch.Role); err != nil {
			return nil, err
		}
		newRole = *patch.Role
	}
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return nil, invalidInput("invalid status")
		}
		newStatus = *patch.Status
	}

	losesAdmin := membership.Role.AtLeast(domain.RoleAdmin) &&
		(!newRole.AtLeast(domain.RoleAdmin) || newStatus != domain.MembershipActive)
	if losesAdmin {
		admins, err := s.repo.Membership().CountActiveAdmins(ctx, tenantID)
		if err != nil {
			return nil, upstream("count admins", err)
		}
		if admins <= 1 {
			return nil, conflict("tenant must keep at least one admin")
		}
	}

	previous := *membership
	membership.Role = newRole
	membership.Status = newStatus
	membership.UpdatedAt = time.Now().UTC()
	if err := s.repo.Membership().Update(ctx, membership); err != nil {
		return nil, translateLookup("update membership", err)
	}
	defer s.roles.Invalidate(ctx, principalID, tenantID)

	if err := s.syncGrant(ctx, tenantID, principalID, newRole); err != nil {
		// The grant still holds the old role; put the membership back to match it
		if restoreErr := s.repo.Membership().Update(ctx, &previous); restoreErr != nil {
			s.logger.Critical("membership and role grant disagree after failed update", restoreErr,
				zap.String("membership_id", previous.ID),
				zap.String("tenant_id", tenantID),
				zap.String("principal_id", principalID))
		}
		return nil, err
	}
	return membership, nil
}

func (s *MembershipService) syncGrant(ctx context.Context, tenantID, principalID string, role domain.Role) error {
	grant, err := s.repo.RoleGrant().Get(ctx, principalID, tenantID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		grant = &domain.TenantRoleGrant{TenantID: tenantID, PrincipalID: principalID, Role: role}
		if err := s.repo.RoleGrant().Create(ctx, grant); err != nil {
			return upstream("create role grant", err)
		}
		return nil
	case err != nil:
		return upstream("get role grant", err)
	case grant.Role == role:
		return nil
	}

	grant.Role = role
	grant.UpdatedAt = time.Now().UTC()
	if err := s.repo.RoleGrant().Update(ctx, grant); err != nil {
		return upstream("update role grant", err)
	}
	return nil
}

func checkAssignable(actor Decision, role domain.Role) error {
	if role == domain.RoleNone {
		return invalidInput("role is required")
	}
	if role == domain.RoleOwner && !actor.GlobalOwner {
		return ErrUnauthorized
	}
	return nil
}
