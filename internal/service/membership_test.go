package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/observability"
	"github.com/kingrain94/tenancy-api/internal/repository/memory"
	"github.com/kingrain94/tenancy-api/internal/utils"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

type MembershipServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	roles   *RoleResolver
	service *MembershipService
	ctx     context.Context
	tenant  *domain.Tenant
	admin   string

	adminActor Decision
	ownerActor Decision
}

func (s *MembershipServiceTestSuite) SetupTest() {
	s.store = memory.NewStore()
	s.roles = NewRoleResolver(s.store, nil, observability.NewMetrics(nil), logger.NewNop())
	s.service = NewMembershipService(s.store, s.roles, logger.NewNop())

	tenant, err := s.store.Tenant().Create(context.Background(), &domain.Tenant{
		Name: "Acme", Subdomain: "acme", Status: domain.TenantActive, PlanType: domain.PlanBasic,
	})
	s.Require().NoError(err)
	s.tenant = tenant
	s.ctx = utils.WithTenantID(context.Background(), tenant.ID)

	s.admin = s.newIdentity("admin@acme.test")
	_, err = s.service.Add(s.ctx, Decision{Allowed: true, GlobalOwner: true}, s.admin, domain.RoleAdmin)
	s.Require().NoError(err)

	s.adminActor = Decision{Allowed: true, Role: domain.RoleAdmin}
	s.ownerActor = Decision{Allowed: true, Role: domain.RoleOwner, GlobalOwner: true}
}

func (s *MembershipServiceTestSuite) newIdentity(email string) string {
	identity := &domain.Identity{Email: email, PasswordHash: "x", Active: true}
	s.Require().NoError(s.store.Identity().Create(context.Background(), identity))
	return identity.ID
}

func TestMembershipService(t *testing.T) {
	suite.Run(t, new(MembershipServiceTestSuite))
}

func (s *MembershipServiceTestSuite) TestAdd_CreatesMembershipAndGrant() {
	// Arrange
	member := s.newIdentity("bob@acme.test")

	// Act
	m, err := s.service.Add(s.ctx, s.adminActor, member, domain.RoleMember)

	// Assert
	s.Require().NoError(err)
	s.Equal(s.tenant.ID, m.TenantID)
	grant, err := s.store.RoleGrant().Get(s.ctx, member, s.tenant.ID)
	s.Require().NoError(err)
	s.Equal(domain.RoleMember, grant.Role)

	role, ok, err := s.roles.ResolveRole(s.ctx, member, s.tenant.ID)
	s.NoError(err)
	s.True(ok)
	s.Equal(domain.RoleMember, role)
}

func (s *MembershipServiceTestSuite) TestAdd_Duplicate() {
	// Act
	_, err := s.service.Add(s.ctx, s.adminActor, s.admin, domain.RoleMember)

	// Assert
	s.ErrorIs(err, ErrConflict)
}

func (s *MembershipServiceTestSuite) TestAdd_UnknownPrincipal() {
	// Act
	_, err := s.service.Add(s.ctx, s.adminActor, "ghost", domain.RoleMember)

	// Assert
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *MembershipServiceTestSuite) TestAdd_OwnerRoleNeedsGlobalOwner() {
	// Arrange
	member := s.newIdentity("bob@acme.test")

	// Act
	_, adminErr := s.service.Add(s.ctx, s.adminActor, member, domain.RoleOwner)
	_, ownerErr := s.service.Add(s.ctx, s.ownerActor, member, domain.RoleOwner)

	// Assert
	s.ErrorIs(adminErr, ErrUnauthorized)
	s.NoError(ownerErr)
}

func (s *MembershipServiceTestSuite) TestAdd_RequiresTenantContext() {
	// Act
	_, err := s.service.Add(context.Background(), s.adminActor, s.admin, domain.RoleMember)

	// Assert
	s.ErrorIs(err, utils.ErrNoTenantInContext)
}

func (s *MembershipServiceTestSuite) TestUpdate_LastAdminCannotBeDemoted() {
	// Arrange
	member := domain.RoleMember
	inactive := domain.MembershipInactive

	// Act
	_, demoteErr := s.service.Update(s.ctx, s.adminActor, s.admin, MembershipPatch{Role: &member})
	_, deactivateErr := s.service.Update(s.ctx, s.adminActor, s.admin, MembershipPatch{Status: &inactive})

	// Assert
	s.ErrorIs(demoteErr, ErrConflict)
	s.ErrorIs(deactivateErr, ErrConflict)
	role, _, err := s.roles.ResolveRole(s.ctx, s.admin, s.tenant.ID)
	s.NoError(err)
	s.Equal(domain.RoleAdmin, role)
}

func (s *MembershipServiceTestSuite) TestUpdate_DemoteWithSecondAdmin() {
	// Arrange
	second := s.newIdentity("eve@acme.test")
	_, err := s.service.Add(s.ctx, s.adminActor, second, domain.RoleAdmin)
	s.Require().NoError(err)
	member := domain.RoleMember

	// Act
	m, err := s.service.Update(s.ctx, s.adminActor, s.admin, MembershipPatch{Role: &member})

	// Assert
	s.Require().NoError(err)
	s.Equal(domain.RoleMember, m.Role)
	role, _, err := s.roles.ResolveRole(s.ctx, s.admin, s.tenant.ID)
	s.NoError(err)
	s.Equal(domain.RoleMember, role)
}

func (s *MembershipServiceTestSuite) TestUpdate_DeactivatedMemberLosesRole() {
	// Arrange
	member := s.newIdentity("bob@acme.test")
	_, err := s.service.Add(s.ctx, s.adminActor, member, domain.RoleMember)
	s.Require().NoError(err)
	inactive := domain.MembershipInactive

	// Act
	_, err = s.service.Update(s.ctx, s.adminActor, member, MembershipPatch{Status: &inactive})

	// Assert
	s.Require().NoError(err)
	_, ok, err := s.roles.ResolveRole(s.ctx, member, s.tenant.ID)
	s.NoError(err)
	s.False(ok)
}

func (s *MembershipServiceTestSuite) TestUpdate_AdminCannotTouchOwnerMembership() {
	// Arrange
	owner := s.newIdentity("olga@acme.test")
	_, err := s.service.Add(s.ctx, s.ownerActor, owner, domain.RoleOwner)
	s.Require().NoError(err)
	member := domain.RoleMember
	inactive := domain.MembershipInactive

	// Act
	_, demoteErr := s.service.Update(s.ctx, s.adminActor, owner, MembershipPatch{Role: &member})
	_, deactivateErr := s.service.Update(s.ctx, s.adminActor, owner, MembershipPatch{Status: &inactive})

	// Assert
	s.ErrorIs(demoteErr, ErrUnauthorized)
	s.ErrorIs(deactivateErr, ErrUnauthorized)
	role, ok, err := s.roles.ResolveRole(s.ctx, owner, s.tenant.ID)
	s.NoError(err)
	s.True(ok)
	s.Equal(domain.RoleOwner, role)
}

func (s *MembershipServiceTestSuite) TestUpdate_UnknownMember() {
	// Arrange
	member := domain.RoleMember

	// Act
	_, err := s.service.Update(s.ctx, s.adminActor, "ghost", MembershipPatch{Role: &member})

	// Assert
	s.ErrorIs(err, ErrNotFound)
}

func (s *MembershipServiceTestSuite) TestList_ScopedToTenant() {
	// Arrange
	other, err := s.store.Tenant().Create(context.Background(), &domain.Tenant{
		Name: "Other", Subdomain: "other", Status: domain.TenantActive, PlanType: domain.PlanBasic,
	})
	s.Require().NoError(err)
	otherCtx := utils.WithTenantID(context.Background(), other.ID)
	_, err = s.service.Add(otherCtx, s.ownerActor, s.newIdentity("zed@other.test"), domain.RoleAdmin)
	s.Require().NoError(err)

	// Act
	members, err := s.service.List(s.ctx)

	// Assert
	s.Require().NoError(err)
	s.Require().Len(members, 1)
	s.Equal(s.admin, members[0].PrincipalID)
}

func TestMembershipUpdate_GrantFailureRestoresMembership(t *testing.T) {
	// Arrange
	store := newFaultyStore()
	roles := NewRoleResolver(store, nil, observability.NewMetrics(nil), logger.NewNop())
	svc := NewMembershipService(store, roles, logger.NewNop())
	owner := Decision{Allowed: true, Role: domain.RoleOwner, GlobalOwner: true}

	tenant, err := store.Tenant().Create(context.Background(), &domain.Tenant{
		Name: "Acme", Subdomain: "acme", Status: domain.TenantActive, PlanType: domain.PlanBasic,
	})
	require.NoError(t, err)
	ctx := utils.WithTenantID(context.Background(), tenant.ID)

	var ids []string
	for _, email := range []string{"admin@acme.test", "bob@acme.test"} {
		identity := &domain.Identity{Email: email, PasswordHash: "x", Active: true}
		require.NoError(t, store.Identity().Create(ctx, identity))
		ids = append(ids, identity.ID)
	}
	_, err = svc.Add(ctx, owner, ids[0], domain.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.Add(ctx, owner, ids[1], domain.RoleMember)
	require.NoError(t, err)

	store.fail("grant.update", errInjected)
	promote := domain.RoleAdmin

	// Act
	_, err = svc.Update(ctx, owner, ids[1], MembershipPatch{Role: &promote})

	// Assert
	assert.ErrorIs(t, err, ErrUpstreamFailure)
	role, ok, err := roles.ResolveRole(ctx, ids[1], tenant.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.RoleMember, role)

	membership, err := store.Membership().GetActive(ctx, ids[1], tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, membership.Role)
}
