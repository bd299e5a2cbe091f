package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/mocks"
	"github.com/kingrain94/tenancy-api/internal/observability"
	"github.com/kingrain94/tenancy-api/internal/repository"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

type RoleResolverTestSuite struct {
	suite.Suite
	mockRepo       *mocks.Repository
	mockMembership *mocks.MembershipRepository
	mockGrant      *mocks.RoleGrantRepository
	mockGlobal     *mocks.GlobalRoleRepository
	mockCache      *mocks.RoleCache
	resolver       *RoleResolver
}

func (s *RoleResolverTestSuite) SetupTest() {
	s.mockRepo = new(mocks.Repository)
	s.mockMembership = new(mocks.MembershipRepository)
	s.mockGrant = new(mocks.RoleGrantRepository)
	s.mockGlobal = new(mocks.GlobalRoleRepository)
	s.mockCache = new(mocks.RoleCache)

	s.mockRepo.On("Membership").Return(s.mockMembership)
	s.mockRepo.On("RoleGrant").Return(s.mockGrant)
	s.mockRepo.On("GlobalRole").Return(s.mockGlobal)

	s.resolver = NewRoleResolver(s.mockRepo, s.mockCache, observability.NewMetrics(nil), logger.NewNop())
}

func TestRoleResolver(t *testing.T) {
	suite.Run(t, new(RoleResolverTestSuite))
}

func (s *RoleResolverTestSuite) TestResolveRole_ActiveMembership() {
	// Arrange
	ctx := context.Background()
	s.mockCache.On("Get", ctx, "p1", "t1").Return(domain.RoleNone, false, nil)
	s.mockMembership.On("GetActive", ctx, "p1", "t1").Return(&domain.Membership{Role: domain.RoleAdmin, Status: domain.MembershipActive}, nil)
	s.mockGrant.On("Get", ctx, "p1", "t1").Return(&domain.TenantRoleGrant{Role: domain.RoleAdmin}, nil)
	s.mockCache.On("Set", ctx, "p1", "t1", domain.RoleAdmin).Return(nil)

	// Act
	role, ok, err := s.resolver.ResolveRole(ctx, "p1", "t1")

	// Assert
	s.NoError(err)
	s.True(ok)
	s.Equal(domain.RoleAdmin, role)
	s.mockCache.AssertExpectations(s.T())
}

func (s *RoleResolverTestSuite) TestResolveRole_NoMembershipIsCached() {
	// Arrange
	ctx := context.Background()
	s.mockCache.On("Get", ctx, "p1", "t1").Return(domain.RoleNone, false, nil)
	s.mockMembership.On("GetActive", ctx, "p1", "t1").Return(nil, repository.ErrNotFound)
	s.mockCache.On("Set", ctx, "p1", "t1", domain.RoleNone).Return(nil)

	// Act
	role, ok, err := s.resolver.ResolveRole(ctx, "p1", "t1")

	// Assert
	s.NoError(err)
	s.False(ok)
	s.Equal(domain.RoleNone, role)
	s.mockGrant.AssertNotCalled(s.T(), "Get", mock.Anything, mock.Anything, mock.Anything)
}

func (s *RoleResolverTestSuite) TestResolveRole_CacheHitSkipsStore() {
	// Arrange
	ctx := context.Background()
	s.mockCache.On("Get", ctx, "p1", "t1").Return(domain.RoleMember, true, nil)

	// Act
	role, ok, err := s.resolver.ResolveRole(ctx, "p1", "t1")

	// Assert
	s.NoError(err)
	s.True(ok)
	s.Equal(domain.RoleMember, role)
	s.mockMembership.AssertNotCalled(s.T(), "GetActive", mock.Anything, mock.Anything, mock.Anything)
}

func (s *RoleResolverTestSuite) TestResolveRole_CacheFailureFallsBackToStore() {
	// Arrange
	ctx := context.Background()
	s.mockCache.On("Get", ctx, "p1", "t1").Return(domain.RoleNone, false, errors.New("redis down"))
	s.mockMembership.On("GetActive", ctx, "p1", "t1").Return(&domain.Membership{Role: domain.RoleMember}, nil)
	s.mockGrant.On("Get", ctx, "p1", "t1").Return(nil, repository.ErrNotFound)
	s.mockCache.On("Set", ctx, "p1", "t1", domain.RoleMember).Return(errors.New("redis down"))

	// Act
	role, ok, err := s.resolver.ResolveRole(ctx, "p1", "t1")

	// Assert
	s.NoError(err)
	s.True(ok)
	s.Equal(domain.RoleMember, role)
}

func (s *RoleResolverTestSuite) TestResolveRole_DisagreementIsAmbiguous() {
	// Arrange
	ctx := context.Background()
	s.mockCache.On("Get", ctx, "p1", "t1").Return(domain.RoleNone, false, nil)
	s.mockMembership.On("GetActive", ctx, "p1", "t1").Return(&domain.Membership{Role: domain.RoleMember}, nil)
	s.mockGrant.On("Get", ctx, "p1", "t1").Return(&domain.TenantRoleGrant{Role: domain.RoleAdmin}, nil)

	// Act
	_, ok, err := s.resolver.ResolveRole(ctx, "p1", "t1")

	// Assert
	s.ErrorIs(err, ErrAmbiguousRole)
	s.False(ok)
	s.mockCache.AssertNotCalled(s.T(), "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *RoleResolverTestSuite) TestResolveRole_StoreFailure() {
	// Arrange
	ctx := context.Background()
	s.mockCache.On("Get", ctx, "p1", "t1").Return(domain.RoleNone, false, nil)
	s.mockMembership.On("GetActive", ctx, "p1", "t1").Return(nil, errors.New("timeout"))

	// Act
	_, _, err := s.resolver.ResolveRole(ctx, "p1", "t1")

	// Assert
	s.ErrorIs(err, ErrUpstreamFailure)
}

func (s *RoleResolverTestSuite) TestResolveGlobalOwner() {
	// Arrange
	ctx := context.Background()
	s.mockGlobal.On("HasGrant", ctx, "root", domain.RoleOwner).Return(true, nil)
	s.mockGlobal.On("HasGrant", ctx, "p1", domain.RoleOwner).Return(false, nil)

	// Act
	rootIsOwner, err1 := s.resolver.ResolveGlobalOwner(ctx, "root")
	p1IsOwner, err2 := s.resolver.ResolveGlobalOwner(ctx, "p1")

	// Assert
	s.NoError(err1)
	s.NoError(err2)
	s.True(rootIsOwner)
	s.False(p1IsOwner)
}

func (s *RoleResolverTestSuite) TestInvalidate_IgnoresCacheErrors() {
	// Arrange
	ctx := context.Background()
	s.mockCache.On("Invalidate", ctx, "p1", "t1").Return(errors.New("redis down")).Once()

	// Act
	s.resolver.Invalidate(ctx, "p1", "t1")

	// Assert
	s.mockCache.AssertExpectations(s.T())
}
