package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/observability"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

// DenyReason explains a denial. It is logged and counted, never returned
// to the caller.
type DenyReason string

const (
	ReasonNotAuthenticated DenyReason = "not_authenticated"
	ReasonNoMembership     DenyReason = "no_membership"
	ReasonInsufficientRole DenyReason = "insufficient_role"
	ReasonResolverError    DenyReason = "resolver_error"
	ReasonTenantInactive   DenyReason = "tenant_inactive"
)

type Decision struct {
	Allowed     bool
	Reason      DenyReason
	Role        domain.Role
	GlobalOwner bool
}

// Err maps a denial onto the caller error taxonomy.
func (d Decision) Err() error {
	switch {
	case d.Allowed:
		return nil
	case d.Reason == ReasonNotAuthenticated:
		return ErrUnauthenticated
	default:
		return ErrUnauthorized
	}
}

// Facts is everything a decision depends on.
type Facts struct {
	Authenticated  bool
	GlobalOwner    bool
	Role           domain.Role
	TenantInactive bool
	ResolverErr    error
}

func allow(f Facts) Decision {
	return Decision{Allowed: true, Role: f.Role, GlobalOwner: f.GlobalOwner}
}

func deny(f Facts, reason DenyReason) Decision {
	return Decision{Reason: reason, Role: f.Role, GlobalOwner: f.GlobalOwner}
}

// Evaluate decides whether f satisfies min. The global owner grant wins
// over everything but a missing principal; any lookup error denies.
func Evaluate(f Facts, min domain.Role) Decision {
	switch {
	case !f.Authenticated:
		return deny(f, ReasonNotAuthenticated)
	case f.GlobalOwner:
		return allow(f)
	case f.ResolverErr != nil:
		return deny(f, ReasonResolverError)
	case f.TenantInactive:
		return deny(f, ReasonTenantInactive)
	case f.Role == domain.RoleNone:
		return deny(f, ReasonNoMembership)
	case f.Role.AtLeast(min):
		return allow(f)
	default:
		return deny(f, ReasonInsufficientRole)
	}
}

type AccessGuard struct {
	roles   RoleLookup
	metrics *observability.Metrics
	logger  *logger.Logger
}

func NewAccessGuard(roles RoleLookup, metrics *observability.Metrics, logger *logger.Logger) *AccessGuard {
	return &AccessGuard{
		roles:   roles,
		metrics: metrics,
		logger:  logger,
	}
}

// Require checks principalID against min in tenantID.
func (g *AccessGuard) Require(ctx context.Context, principalID, tenantID string, min domain.Role) Decision {
	facts := g.gather(ctx, principalID, tenantID)
	return g.record(Evaluate(facts, min), principalID, tenantID, facts.ResolverErr)
}

// RequireTenant is Require plus the tenant status rule: only the global
// owner reaches a tenant that is not active.
func (g *AccessGuard) RequireTenant(ctx context.Context, principalID string, tenant *domain.Tenant, min domain.Role) Decision {
	facts := g.gather(ctx, principalID, tenant.ID)
	facts.TenantInactive = !tenant.IsActive()
	return g.record(Evaluate(facts, min), principalID, tenant.ID, facts.ResolverErr)
}

func (g *AccessGuard) RequireGlobalOwner(ctx context.Context, principalID string) Decision {
	facts := Facts{Authenticated: principalID != ""}
	if facts.Authenticated {
		facts.GlobalOwner, facts.ResolverErr = g.roles.ResolveGlobalOwner(ctx, principalID)
	}

	d := Evaluate(facts, domain.RoleOwner)
	if d.Reason == ReasonNoMembership {
		d.Reason = ReasonInsufficientRole
	}
	return g.record(d, principalID, "", facts.ResolverErr)
}

func (g *AccessGuard) gather(ctx context.Context, principalID, tenantID string) Facts {
	facts := Facts{Authenticated: principalID != ""}
	if !facts.Authenticated {
		return facts
	}

	facts.GlobalOwner, facts.ResolverErr = g.roles.ResolveGlobalOwner(ctx, principalID)
	if facts.GlobalOwner || facts.ResolverErr != nil {
		return facts
	}

	facts.Role, _, facts.ResolverErr = g.roles.ResolveRole(ctx, principalID, tenantID)
	return facts
}

func (g *AccessGuard) record(d Decision, principalID, tenantID string, resolverErr error) Decision {
	g.metrics.ObserveGuardDecision(d.Allowed, string(d.Reason))
	if d.Allowed {
		return d
	}

	fields := []zap.Field{
		zap.String("reason", string(d.Reason)),
		zap.String("principal_id", principalID),
		zap.String("tenant_id", tenantID),
	}
	if resolverErr != nil {
		g.logger.Error("access denied", resolverErr, fields...)
		return d
	}
	g.logger.Info("access denied", fields...)
	return d
}
