package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/repository"
	"github.com/kingrain94/tenancy-api/internal/utils"
)

func TestTenantCreate_RejectsDuplicateSubdomainUnderContention(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		duplicate int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Tenant().Create(ctx, &domain.Tenant{Name: "Acme", Subdomain: "acme"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
			} else if assert.ErrorIs(t, err, repository.ErrDuplicate) {
				duplicate++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, 19, duplicate)
}

func TestTenant_ReturnedCopiesAreIsolated(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	created, err := store.Tenant().Create(ctx, &domain.Tenant{Name: "Acme", Subdomain: "acme", Settings: domain.Settings{"theme": "dark"}})
	require.NoError(t, err)

	fetched, err := store.Tenant().GetByID(ctx, created.ID)
	require.NoError(t, err)
	fetched.Settings["theme"] = "light"

	again, err := store.Tenant().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "dark", again.Settings["theme"])
}

func TestMembership_OneActivePerPair(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	first := &domain.Membership{TenantID: "t1", PrincipalID: "p1", Role: domain.RoleMember}
	require.NoError(t, store.Membership().Create(ctx, first))

	err := store.Membership().Create(ctx, &domain.Membership{TenantID: "t1", PrincipalID: "p1", Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	first.Status = domain.MembershipInactive
	require.NoError(t, store.Membership().Update(ctx, first))

	err = store.Membership().Create(ctx, &domain.Membership{TenantID: "t1", PrincipalID: "p1", Role: domain.RoleAdmin})
	assert.NoError(t, err)

	_, err = store.Membership().GetActive(ctx, "p1", "t2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMembership_ListIsTenantScoped(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Membership().Create(ctx, &domain.Membership{TenantID: "t1", PrincipalID: "p1", Role: domain.RoleAdmin}))
	require.NoError(t, store.Membership().Create(ctx, &domain.Membership{TenantID: "t1", PrincipalID: "p2", Role: domain.RoleMember}))
	require.NoError(t, store.Membership().Create(ctx, &domain.Membership{TenantID: "t2", PrincipalID: "p3", Role: domain.RoleMember}))

	_, err := store.Membership().List(ctx)
	assert.ErrorIs(t, err, utils.ErrNoTenantInContext)

	members, err := store.Membership().List(utils.WithTenantID(ctx, "t1"))
	require.NoError(t, err)
	assert.Len(t, members, 2)

	admins, err := store.Membership().CountActiveAdmins(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), admins)
}

func TestIdentity_UniqueEmail(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Identity().Create(ctx, &domain.Identity{Email: "a@example.com"}))
	err := store.Identity().Create(ctx, &domain.Identity{Email: "a@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	assert.ErrorIs(t, store.Identity().Delete(ctx, "missing"), repository.ErrNotFound)
}
