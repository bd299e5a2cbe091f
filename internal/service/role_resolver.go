package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/observability"
	"github.com/kingrain94/tenancy-api/internal/repository"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

// RoleCache is a short-lived cache of resolved tenant roles. RoleNone is
// cached as well, so non-members do not hit the store on every request.
//
//go:generate mockery --name RoleCache --output ../mocks
type RoleCache interface {
	Get(ctx context.Context, principalID, tenantID string) (domain.Role, bool, error)
	Set(ctx context.Context, principalID, tenantID string, role domain.Role) error
	Invalidate(ctx context.Context, principalID, tenantID string) error
}

//go:generate mockery --name RoleLookup --output ../mocks
type RoleLookup interface {
	ResolveRole(ctx context.Context, principalID, tenantID string) (domain.Role, bool, error)
	ResolveGlobalOwner(ctx context.Context, principalID string) (bool, error)
}

type RoleResolver struct {
	repo    repository.Repository
	cache   RoleCache
	metrics *observability.Metrics
	logger  *logger.Logger
}

// NewRoleResolver builds a resolver. cache may be nil.
func NewRoleResolver(repo repository.Repository, cache RoleCache, metrics *observability.Metrics, logger *logger.Logger) *RoleResolver {
	return &RoleResolver{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

// ResolveRole returns the principal's role in the tenant. The bool is false
// when there is no active membership. Membership and role grant must agree;
// a membership without a grant falls back to the membership role.
func (r *RoleResolver) ResolveRole(ctx context.Context, principalID, tenantID string) (domain.Role, bool, error) {
	if r.cache != nil {
		role, hit, err := r.cache.Get(ctx, principalID, tenantID)
		if err != nil {
			r.logger.Warn("role cache read failed", zap.Error(err))
		} else {
			r.metrics.ObserveRoleCache(hit)
			if hit {
				return role, role != domain.RoleNone, nil
			}
		}
	}

	role, err := r.lookupRole(ctx, principalID, tenantID)
	if err != nil {
		return domain.RoleNone, false, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, principalID, tenantID, role); err != nil {
			r.logger.Warn("role cache write failed", zap.Error(err))
		}
	}
	return role, role != domain.RoleNone, nil
}

func (r *RoleResolver) lookupRole(ctx context.Context, principalID, tenantID string) (domain.Role, error) {
	membership, err := r.repo.Membership().GetActive(ctx, principalID, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.RoleNone, nil
		}
		return domain.RoleNone, upstream("get membership", err)
	}

	grant, err := r.repo.RoleGrant().Get(ctx, principalID, tenantID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return membership.Role, nil
	case err != nil:
		return domain.RoleNone, upstream("get role grant", err)
	case grant.Role != membership.Role:
		return domain.RoleNone, fmt.Errorf("%w: membership says %s, grant says %s",
			ErrAmbiguousRole, membership.Role, grant.Role)
	}
	return membership.Role, nil
}

func (r *RoleResolver) ResolveGlobalOwner(ctx context.Context, principalID string) (bool, error) {
	ok, err := r.repo.GlobalRole().HasGrant(ctx, principalID, domain.RoleOwner)
	if err != nil {
		return false, upstream("get global role", err)
	}
	return ok, nil
}

// Invalidate drops the cached role of the pair. Called after every
// membership or role grant write.
func (r *RoleResolver) Invalidate(ctx context.Context, principalID, tenantID string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Invalidate(ctx, principalID, tenantID); err != nil {
		r.logger.Error("role cache invalidation failed", err,
			zap.String("principal_id", principalID),
			zap.String("tenant_id", tenantID))
	}
}
