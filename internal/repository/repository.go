package repository

import (
	"context"
	"errors"

	"github.com/kingrain94/tenancy-api/internal/domain"
)

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a write violates a uniqueness constraint
	ErrDuplicate = errors.New("duplicate record")
)

//go:generate mockery --name TenantRepository --output ../mocks
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*domain.Tenant, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Tenant, error)
}

//go:generate mockery --name MembershipRepository --output ../mocks
type MembershipRepository interface {
	Create(ctx context.Context, membership *domain.Membership) error
	GetActive(ctx context.Context, principalID, tenantID string) (*domain.Membership, error)
	Update(ctx context.Context, membership *domain.Membership) error
	Delete(ctx context.Context, id string) error
	// List returns the memberships of the tenant bound to ctx.
	List(ctx context.Context) ([]domain.Membership, error)
	CountActiveAdmins(ctx context.Context, tenantID string) (int64, error)
}

//go:generate mockery --name RoleGrantRepository --output ../mocks
type RoleGrantRepository interface {
	Create(ctx context.Context, grant *domain.TenantRoleGrant) error
	Get(ctx context.Context, principalID, tenantID string) (*domain.TenantRoleGrant, error)
	Update(ctx context.Context, grant *domain.TenantRoleGrant) error
	Delete(ctx context.Context, id string) error
}

//go:generate mockery --name GlobalRoleRepository --output ../mocks
type GlobalRoleRepository interface {
	Grant(ctx context.Context, grant *domain.GlobalRoleGrant) error
	HasGrant(ctx context.Context, principalID string, role domain.Role) (bool, error)
}

//go:generate mockery --name ProfileRepository --output ../mocks
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	Delete(ctx context.Context, id string) error
}

//go:generate mockery --name IdentityRepository --output ../mocks
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) error
	GetByID(ctx context.Context, id string) (*domain.Identity, error)
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	Delete(ctx context.Context, id string) error
}

//go:generate mockery --name Repository --output ../mocks
type Repository interface {
	Tenant() TenantRepository
	Membership() MembershipRepository
	RoleGrant() RoleGrantRepository
	GlobalRole() GlobalRoleRepository
	Profile() ProfileRepository
	Identity() IdentityRepository
}
