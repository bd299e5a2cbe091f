package utils

import (
	"context"
	"errors"
)

type ContextKey string

const (
	TenantIDKey    ContextKey = "tenant_id"
	TenantKey      ContextKey = "tenant"
	PrincipalIDKey ContextKey = "principal_id"
	DecisionKey    ContextKey = "access_decision"
)

var (
	ErrNoTenantInContext    = errors.New("no tenant_id found in context")
	ErrInvalidTenantIDType  = errors.New("tenant_id must be a string")
	ErrNoPrincipalInContext = errors.New("no principal_id found in context")
)

// WithTenantID binds the resolved tenant to ctx. Every tenant-scoped data
// access reads it back through GetTenantIDFromContext.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, TenantIDKey, tenantID)
}

func GetTenantIDFromContext(ctx context.Context) (string, error) {
	value := ctx.Value(TenantIDKey)
	if value == nil {
		return "", ErrNoTenantInContext
	}

	tenantID, ok := value.(string)
	if !ok {
		return "", ErrInvalidTenantIDType
	}
	if tenantID == "" {
		return "", ErrNoTenantInContext
	}

	return tenantID, nil
}

func WithPrincipalID(ctx context.Context, principalID string) context.Context {
	return context.WithValue(ctx, PrincipalIDKey, principalID)
}

func GetPrincipalIDFromContext(ctx context.Context) (string, error) {
	principalID, ok := ctx.Value(PrincipalIDKey).(string)
	if !ok || principalID == "" {
		return "", ErrNoPrincipalInContext
	}
	return principalID, nil
}
