package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/mocks"
	"github.com/kingrain94/tenancy-api/internal/repository"
	"github.com/kingrain94/tenancy-api/internal/repository/memory"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

type TenantServiceTestSuite struct {
	suite.Suite
	mockRepo   *mocks.Repository
	mockTenant *mocks.TenantRepository
	mockEvents *mocks.EventPublisher
	service    *TenantService
}

func (s *TenantServiceTestSuite) SetupTest() {
	s.mockRepo = new(mocks.Repository)
	s.mockTenant = new(mocks.TenantRepository)
	s.mockEvents = new(mocks.EventPublisher)

	s.mockRepo.On("Tenant").Return(s.mockTenant)

	s.service = NewTenantService(s.mockRepo, s.mockEvents, logger.NewNop())
}

func TestTenantService(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}

func (s *TenantServiceTestSuite) TestCreate_Success() {
	// Arrange
	ctx := context.Background()
	draft := &domain.Tenant{Name: "Acme", Subdomain: " Acme "}

	s.mockTenant.On("GetBySubdomain", ctx, "acme").Return(nil, repository.ErrNotFound)
	s.mockTenant.On("Create", ctx, mock.AnythingOfType("*domain.Tenant")).Return(
		func(_ context.Context, t *domain.Tenant) *domain.Tenant {
			t.ID = "tenant1"
			return t
		}, nil)

	// Act
	tenant, err := s.service.Create(ctx, draft)

	// Assert
	s.NoError(err)
	s.Equal("tenant1", tenant.ID)
	s.Equal("acme", tenant.Subdomain)
	s.Equal(domain.TenantActive, tenant.Status)
	s.Equal(domain.PlanBasic, tenant.PlanType)
	s.mockTenant.AssertExpectations(s.T())
}

func (s *TenantServiceTestSuite) TestCreate_SubdomainTaken() {
	// Arrange
	ctx := context.Background()
	s.mockTenant.On("GetBySubdomain", ctx, "acme").Return(&domain.Tenant{ID: "other"}, nil)

	// Act
	_, err := s.service.Create(ctx, &domain.Tenant{Name: "Acme", Subdomain: "acme"})

	// Assert
	s.ErrorIs(err, ErrConflict)
	s.mockTenant.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *TenantServiceTestSuite) TestCreate_UniqueIndexDecidesRace() {
	// Arrange
	ctx := context.Background()
	s.mockTenant.On("GetBySubdomain", ctx, "acme").Return(nil, repository.ErrNotFound)
	s.mockTenant.On("Create", ctx, mock.AnythingOfType("*domain.Tenant")).Return(nil, repository.ErrDuplicate)

	// Act
	_, err := s.service.Create(ctx, &domain.Tenant{Name: "Acme", Subdomain: "acme"})

	// Assert
	s.ErrorIs(err, ErrConflict)
}

func (s *TenantServiceTestSuite) TestCreate_InvalidInput() {
	ctx := context.Background()

	for name, draft := range map[string]*domain.Tenant{
		"missing name":      {Subdomain: "acme"},
		"missing subdomain": {Name: "Acme"},
		"bad subdomain":     {Name: "Acme", Subdomain: "acme.corp"},
		"bad plan":          {Name: "Acme", Subdomain: "acme", PlanType: "gold"},
	} {
		_, err := s.service.Create(ctx, draft)
		s.ErrorIs(err, ErrInvalidInput, name)
	}
}

func (s *TenantServiceTestSuite) TestFindBySubdomain_NotFound() {
	// Arrange
	ctx := context.Background()
	s.mockTenant.On("GetBySubdomain", ctx, "ghost").Return(nil, repository.ErrNotFound)

	// Act
	_, err := s.service.FindBySubdomain(ctx, "ghost")

	// Assert
	s.ErrorIs(err, ErrNotFound)
}

func (s *TenantServiceTestSuite) TestGetByID_StoreFailure() {
	// Arrange
	ctx := context.Background()
	s.mockTenant.On("GetByID", ctx, "tenant1").Return(nil, errors.New("connection refused"))

	// Act
	_, err := s.service.GetByID(ctx, "tenant1")

	// Assert
	s.ErrorIs(err, ErrUpstreamFailure)
}

func (s *TenantServiceTestSuite) TestUpdate_AppliesPatch() {
	// Arrange
	ctx := context.Background()
	existing := &domain.Tenant{ID: "tenant1", Name: "Acme", Subdomain: "acme", Status: domain.TenantActive, PlanType: domain.PlanBasic}
	name := "Acme Corp"
	plan := domain.PlanPremium
	same := "ACME"

	s.mockTenant.On("GetByID", ctx, "tenant1").Return(existing, nil)
	s.mockTenant.On("Update", ctx, mock.AnythingOfType("*domain.Tenant")).Return(nil)
	s.mockEvents.On("Publish", ctx, mock.MatchedBy(func(e domain.TenantEvent) bool {
		return e.Type == domain.EventTenantUpdated && e.TenantID == "tenant1"
	})).Return(nil)

	// Act
	tenant, err := s.service.Update(ctx, "tenant1", domain.TenantPatch{Name: &name, PlanType: &plan, Subdomain: &same})

	// Assert
	s.NoError(err)
	s.Equal("Acme Corp", tenant.Name)
	s.Equal(domain.PlanPremium, tenant.PlanType)
	s.False(tenant.UpdatedAt.IsZero())
	s.mockTenant.AssertExpectations(s.T())
	s.mockEvents.AssertExpectations(s.T())
}

func (s *TenantServiceTestSuite) TestUpdate_SubdomainIsImmutable() {
	// Arrange
	ctx := context.Background()
	other := "other"
	s.mockTenant.On("GetByID", ctx, "tenant1").Return(&domain.Tenant{ID: "tenant1", Subdomain: "acme"}, nil)

	// Act
	_, err := s.service.Update(ctx, "tenant1", domain.TenantPatch{Subdomain: &other})

	// Assert
	s.ErrorIs(err, ErrInvalidInput)
	s.mockTenant.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func (s *TenantServiceTestSuite) TestDeactivate_SoftDeletes() {
	// Arrange
	ctx := context.Background()
	s.mockTenant.On("GetByID", ctx, "tenant1").Return(&domain.Tenant{ID: "tenant1", Subdomain: "acme", Status: domain.TenantActive}, nil)
	s.mockTenant.On("Update", ctx, mock.MatchedBy(func(t *domain.Tenant) bool {
		return t.Status == domain.TenantInactive
	})).Return(nil)
	s.mockEvents.On("Publish", ctx, mock.MatchedBy(func(e domain.TenantEvent) bool {
		return e.Type == domain.EventTenantDeactivated
	})).Return(errors.New("queue unavailable"))

	// Act
	err := s.service.Deactivate(ctx, "tenant1")

	// Assert
	s.NoError(err)
	s.mockTenant.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything)
	s.mockTenant.AssertExpectations(s.T())
}

func (s *TenantServiceTestSuite) TestList_Success() {
	// Arrange
	ctx := context.Background()
	s.mockTenant.On("List", ctx).Return([]domain.Tenant{
		{ID: "tenant1", Status: domain.TenantActive, CreatedAt: time.Now()},
		{ID: "tenant2", Status: domain.TenantSuspended, CreatedAt: time.Now()},
	}, nil)

	// Act
	tenants, err := s.service.List(ctx)

	// Assert
	s.NoError(err)
	s.Len(tenants, 2)
}

func TestTenantService_ConcurrentCreateKeepsSubdomainUnique(t *testing.T) {
	store := memory.NewStore()
	svc := NewTenantService(store, NopPublisher{}, logger.NewNop())
	ctx := context.Background()

	const attempts = 25
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, &domain.Tenant{Name: "Acme", Subdomain: "acme"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)

	tenants, err := store.Tenant().List(ctx)
	assert.NoError(t, err)
	assert.Len(t, tenants, 1)
}
