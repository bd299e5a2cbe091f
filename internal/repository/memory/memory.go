// Package memory is a process-local Repository used when no database is
// configured (STORE_DRIVER=memory) and by the service tests. It enforces the
// same uniqueness rules as the postgres schema.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/repository"
	"github.com/kingrain94/tenancy-api/internal/utils"
)

// Store holds every table behind a single lock, so uniqueness checks and
// inserts are atomic with respect to each other.
type Store struct {
	mu          sync.RWMutex
	tenants     map[string]domain.Tenant
	memberships map[string]domain.Membership
	roleGrants  map[string]domain.TenantRoleGrant
	globalRoles map[string]domain.GlobalRoleGrant
	profiles    map[string]domain.Profile
	identities  map[string]domain.Identity
}

func NewStore() *Store {
	return &Store{
		tenants:     map[string]domain.Tenant{},
		memberships: map[string]domain.Membership{},
		roleGrants:  map[string]domain.TenantRoleGrant{},
		globalRoles: map[string]domain.GlobalRoleGrant{},
		profiles:    map[string]domain.Profile{},
		identities:  map[string]domain.Identity{},
	}
}

func (s *Store) Tenant() repository.TenantRepository         { return tenantRepo{s} }
func (s *Store) Membership() repository.MembershipRepository { return membershipRepo{s} }
func (s *Store) RoleGrant() repository.RoleGrantRepository   { return roleGrantRepo{s} }
func (s *Store) GlobalRole() repository.GlobalRoleRepository { return globalRoleRepo{s} }
func (s *Store) Profile() repository.ProfileRepository       { return profileRepo{s} }
func (s *Store) Identity() repository.IdentityRepository     { return identityRepo{s} }

func stamp(created, updated *time.Time) {
	now := time.Now().UTC()
	if created.IsZero() {
		*created = now
	}
	if updated.IsZero() {
		*updated = now
	}
}

func copySettings(in domain.Settings) domain.Settings {
	out := make(domain.Settings, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

type tenantRepo struct{ s *Store }

func (r tenantRepo) Create(_ context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, t := range r.s.tenants {
		if t.Subdomain == tenant.Subdomain {
			return nil, repository.ErrDuplicate
		}
	}
	if tenant.ID == "" {
		tenant.ID = uuid.NewString()
	}
	if _, exists := r.s.tenants[tenant.ID]; exists {
		return nil, repository.ErrDuplicate
	}
	stamp(&tenant.CreatedAt, &tenant.UpdatedAt)

	stored := *tenant
	stored.Settings = copySettings(tenant.Settings)
	r.s.tenants[tenant.ID] = stored
	return tenant, nil
}

func (r tenantRepo) GetByID(_ context.Context, id string) (*domain.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tenants[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t.Settings = copySettings(t.Settings)
	return &t, nil
}

func (r tenantRepo) GetBySubdomain(_ context.Context, subdomain string) (*domain.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, t := range r.s.tenants {
		if t.Subdomain == subdomain {
			t.Settings = copySettings(t.Settings)
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r tenantRepo) Update(_ context.Context, tenant *domain.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.tenants[tenant.ID]
	if !ok {
		return repository.ErrNotFound
	}
	current.Name = tenant.Name
	current.Status = tenant.Status
	current.PlanType = tenant.PlanType
	current.Settings = copySettings(tenant.Settings)
	current.UpdatedAt = tenant.UpdatedAt
	r.s.tenants[tenant.ID] = current
	return nil
}

func (r tenantRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tenants[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.tenants, id)
	return nil
}

func (r tenantRepo) List(_ context.Context) ([]domain.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]domain.Tenant, 0, len(r.s.tenants))
	for _, t := range r.s.tenants {
		t.Settings = copySettings(t.Settings)
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return all, nil
}

type membershipRepo struct{ s *Store }

func (r membershipRepo) Create(_ context.Context, membership *domain.Membership) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if membership.Status == "" {
		membership.Status = domain.MembershipActive
	}
	if membership.IsActive() {
		for _, m := range r.s.memberships {
			if m.IsActive() && m.TenantID == membership.TenantID && m.PrincipalID == membership.PrincipalID {
				return repository.ErrDuplicate
			}
		}
	}
	if membership.ID == "" {
		membership.ID = uuid.NewString()
	}
	stamp(&membership.CreatedAt, &membership.UpdatedAt)

	stored := *membership
	stored.Tenant = nil
	r.s.memberships[membership.ID] = stored
	return nil
}

func (r membershipRepo) GetActive(_ context.Context, principalID, tenantID string) (*domain.Membership, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, m := range r.s.memberships {
		if m.IsActive() && m.PrincipalID == principalID && m.TenantID == tenantID {
			return &m, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r membershipRepo) Update(_ context.Context, membership *domain.Membership) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.memberships[membership.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if membership.IsActive() && !current.IsActive() {
		for id, m := range r.s.memberships {
			if id != current.ID && m.IsActive() && m.TenantID == current.TenantID && m.PrincipalID == current.PrincipalID {
				return repository.ErrDuplicate
			}
		}
	}
	current.Role = membership.Role
	current.Status = membership.Status
	current.UpdatedAt = membership.UpdatedAt
	r.s.memberships[current.ID] = current
	return nil
}

func (r membershipRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.memberships[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.memberships, id)
	return nil
}

func (r membershipRepo) List(ctx context.Context) ([]domain.Membership, error) {
	tenantID, err := utils.GetTenantIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []domain.Membership
	for _, m := range r.s.memberships {
		if m.TenantID == tenantID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r membershipRepo) CountActiveAdmins(_ context.Context, tenantID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, m := range r.s.memberships {
		if m.TenantID == tenantID && m.IsActive() && m.Role.AtLeast(domain.RoleAdmin) {
			count++
		}
	}
	return count, nil
}

type roleGrantRepo struct{ s *Store }

func (r roleGrantRepo) Create(_ context.Context, grant *domain.TenantRoleGrant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, g := range r.s.roleGrants {
		if g.TenantID == grant.TenantID && g.PrincipalID == grant.PrincipalID {
			return repository.ErrDuplicate
		}
	}
	if grant.ID == "" {
		grant.ID = uuid.NewString()
	}
	stamp(&grant.CreatedAt, &grant.UpdatedAt)

	stored := *grant
	stored.Tenant = nil
	r.s.roleGrants[grant.ID] = stored
	return nil
}

func (r roleGrantRepo) Get(_ context.Context, principalID, tenantID string) (*domain.TenantRoleGrant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, g := range r.s.roleGrants {
		if g.PrincipalID == principalID && g.TenantID == tenantID {
			return &g, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r roleGrantRepo) Update(_ context.Context, grant *domain.TenantRoleGrant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.roleGrants[grant.ID]
	if !ok {
		return repository.ErrNotFound
	}
	current.Role = grant.Role
	current.UpdatedAt = grant.UpdatedAt
	r.s.roleGrants[current.ID] = current
	return nil
}

func (r roleGrantRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.roleGrants[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.roleGrants, id)
	return nil
}

type globalRoleRepo struct{ s *Store }

func (r globalRoleRepo) Grant(_ context.Context, grant *domain.GlobalRoleGrant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, g := range r.s.globalRoles {
		if g.PrincipalID == grant.PrincipalID && g.Role == grant.Role {
			return repository.ErrDuplicate
		}
	}
	if grant.ID == "" {
		grant.ID = uuid.NewString()
	}
	if grant.CreatedAt.IsZero() {
		grant.CreatedAt = time.Now().UTC()
	}
	r.s.globalRoles[grant.ID] = *grant
	return nil
}

func (r globalRoleRepo) HasGrant(_ context.Context, principalID string, role domain.Role) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, g := range r.s.globalRoles {
		if g.PrincipalID == principalID && g.Role == role {
			return true, nil
		}
	}
	return false, nil
}

type profileRepo struct{ s *Store }

func (r profileRepo) Create(_ context.Context, profile *domain.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.profiles[profile.ID]; exists {
		return repository.ErrDuplicate
	}
	stamp(&profile.CreatedAt, &profile.UpdatedAt)

	stored := *profile
	stored.Tenant = nil
	r.s.profiles[profile.ID] = stored
	return nil
}

func (r profileRepo) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r profileRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.profiles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.profiles, id)
	return nil
}

type identityRepo struct{ s *Store }

func (r identityRepo) Create(_ context.Context, identity *domain.Identity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, i := range r.s.identities {
		if i.Email == identity.Email {
			return repository.ErrDuplicate
		}
	}
	if identity.ID == "" {
		identity.ID = uuid.NewString()
	}
	stamp(&identity.CreatedAt, &identity.UpdatedAt)
	r.s.identities[identity.ID] = *identity
	return nil
}

func (r identityRepo) GetByID(_ context.Context, id string) (*domain.Identity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i, ok := r.s.identities[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &i, nil
}

func (r identityRepo) GetByEmail(_ context.Context, email string) (*domain.Identity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, i := range r.s.identities {
		if i.Email == email {
			return &i, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r identityRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.identities[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.identities, id)
	return nil
}
