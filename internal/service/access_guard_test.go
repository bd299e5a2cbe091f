package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/mocks"
	"github.com/kingrain94/tenancy-api/internal/observability"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

func TestEvaluate_RoleHierarchy(t *testing.T) {
	roles := []domain.Role{domain.RoleMember, domain.RoleAdmin, domain.RoleOwner}

	for _, held := range roles {
		for _, min := range roles {
			t.Run(fmt.Sprintf("%s_requires_%s", held, min), func(t *testing.T) {
				d := Evaluate(Facts{Authenticated: true, Role: held}, min)

				assert.Equal(t, held >= min, d.Allowed)
				if !d.Allowed {
					assert.Equal(t, ReasonInsufficientRole, d.Reason)
				}
			})
		}
	}
}

func TestEvaluate_GlobalOwnerOverridesTenantState(t *testing.T) {
	for _, f := range []Facts{
		{Authenticated: true, GlobalOwner: true},
		{Authenticated: true, GlobalOwner: true, Role: domain.RoleMember},
		{Authenticated: true, GlobalOwner: true, TenantInactive: true},
	} {
		d := Evaluate(f, domain.RoleOwner)
		assert.True(t, d.Allowed)
		assert.True(t, d.GlobalOwner)
	}
}

func TestEvaluate_DenyReasons(t *testing.T) {
	tests := []struct {
		name   string
		facts  Facts
		reason DenyReason
		err    error
	}{
		{"anonymous", Facts{}, ReasonNotAuthenticated, ErrUnauthenticated},
		{"anonymous even with role", Facts{Role: domain.RoleAdmin}, ReasonNotAuthenticated, ErrUnauthenticated},
		{"no membership", Facts{Authenticated: true}, ReasonNoMembership, ErrUnauthorized},
		{"resolver error", Facts{Authenticated: true, Role: domain.RoleAdmin, ResolverErr: errors.New("db")}, ReasonResolverError, ErrUnauthorized},
		{"inactive tenant", Facts{Authenticated: true, Role: domain.RoleAdmin, TenantInactive: true}, ReasonTenantInactive, ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.facts, domain.RoleMember)

			assert.False(t, d.Allowed)
			assert.Equal(t, tt.reason, d.Reason)
			assert.ErrorIs(t, d.Err(), tt.err)
		})
	}
}

type AccessGuardTestSuite struct {
	suite.Suite
	mockRoles *mocks.RoleLookup
	guard     *AccessGuard
}

func (s *AccessGuardTestSuite) SetupTest() {
	s.mockRoles = new(mocks.RoleLookup)
	s.guard = NewAccessGuard(s.mockRoles, observability.NewMetrics(nil), logger.NewNop())
}

func TestAccessGuard(t *testing.T) {
	suite.Run(t, new(AccessGuardTestSuite))
}

func (s *AccessGuardTestSuite) TestRequire_MemberAllowed() {
	// Arrange
	ctx := context.Background()
	s.mockRoles.On("ResolveGlobalOwner", ctx, "p1").Return(false, nil)
	s.mockRoles.On("ResolveRole", ctx, "p1", "t1").Return(domain.RoleMember, true, nil)

	// Act
	d := s.guard.Require(ctx, "p1", "t1", domain.RoleMember)

	// Assert
	s.True(d.Allowed)
	s.Equal(domain.RoleMember, d.Role)
	s.NoError(d.Err())
}

func (s *AccessGuardTestSuite) TestRequire_GlobalOwnerSkipsMembership() {
	// Arrange
	ctx := context.Background()
	s.mockRoles.On("ResolveGlobalOwner", ctx, "root").Return(true, nil)

	// Act
	d := s.guard.Require(ctx, "root", "t1", domain.RoleAdmin)

	// Assert
	s.True(d.Allowed)
	s.mockRoles.AssertNotCalled(s.T(), "ResolveRole", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccessGuardTestSuite) TestRequire_Anonymous() {
	// Act
	d := s.guard.Require(context.Background(), "", "t1", domain.RoleMember)

	// Assert
	s.False(d.Allowed)
	s.Equal(ReasonNotAuthenticated, d.Reason)
	s.mockRoles.AssertNotCalled(s.T(), "ResolveGlobalOwner", mock.Anything, mock.Anything)
}

func (s *AccessGuardTestSuite) TestRequire_FailsClosed() {
	// Arrange
	ctx := context.Background()
	s.mockRoles.On("ResolveGlobalOwner", ctx, "p1").Return(false, nil)
	s.mockRoles.On("ResolveRole", ctx, "p1", "t1").Return(domain.RoleNone, false, ErrAmbiguousRole)

	// Act
	d := s.guard.Require(ctx, "p1", "t1", domain.RoleMember)

	// Assert
	s.False(d.Allowed)
	s.Equal(ReasonResolverError, d.Reason)
}

func (s *AccessGuardTestSuite) TestRequire_GlobalLookupFailureFailsClosed() {
	// Arrange
	ctx := context.Background()
	s.mockRoles.On("ResolveGlobalOwner", ctx, "p1").Return(false, ErrUpstreamFailure)

	// Act
	d := s.guard.Require(ctx, "p1", "t1", domain.RoleMember)

	// Assert
	s.False(d.Allowed)
	s.Equal(ReasonResolverError, d.Reason)
	s.mockRoles.AssertNotCalled(s.T(), "ResolveRole", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccessGuardTestSuite) TestRequire_DenialIsIdempotent() {
	// Arrange
	ctx := context.Background()
	s.mockRoles.On("ResolveGlobalOwner", ctx, "p1").Return(false, nil)
	s.mockRoles.On("ResolveRole", ctx, "p1", "t1").Return(domain.RoleMember, true, nil)

	// Act
	first := s.guard.Require(ctx, "p1", "t1", domain.RoleAdmin)
	var rest []Decision
	for i := 0; i < 5; i++ {
		rest = append(rest, s.guard.Require(ctx, "p1", "t1", domain.RoleAdmin))
	}

	// Assert
	s.False(first.Allowed)
	s.Equal(ReasonInsufficientRole, first.Reason)
	for _, d := range rest {
		s.Equal(first, d)
	}
}

func (s *AccessGuardTestSuite) TestRequireTenant_InactiveTenant() {
	// Arrange
	ctx := context.Background()
	tenant := &domain.Tenant{ID: "t1", Status: domain.TenantSuspended}
	s.mockRoles.On("ResolveGlobalOwner", ctx, "p1").Return(false, nil)
	s.mockRoles.On("ResolveRole", ctx, "p1", "t1").Return(domain.RoleAdmin, true, nil)
	s.mockRoles.On("ResolveGlobalOwner", ctx, "root").Return(true, nil)

	// Act
	admin := s.guard.RequireTenant(ctx, "p1", tenant, domain.RoleMember)
	owner := s.guard.RequireTenant(ctx, "root", tenant, domain.RoleMember)

	// Assert
	s.False(admin.Allowed)
	s.Equal(ReasonTenantInactive, admin.Reason)
	s.True(owner.Allowed)
}

func (s *AccessGuardTestSuite) TestRequireGlobalOwner() {
	// Arrange
	ctx := context.Background()
	s.mockRoles.On("ResolveGlobalOwner", ctx, "root").Return(true, nil)
	s.mockRoles.On("ResolveGlobalOwner", ctx, "p1").Return(false, nil)

	// Act
	owner := s.guard.RequireGlobalOwner(ctx, "root")
	other := s.guard.RequireGlobalOwner(ctx, "p1")
	anonymous := s.guard.RequireGlobalOwner(ctx, "")

	// Assert
	s.True(owner.Allowed)
	s.False(other.Allowed)
	s.Equal(ReasonInsufficientRole, other.Reason)
	s.Equal(ReasonNotAuthenticated, anonymous.Reason)
}
