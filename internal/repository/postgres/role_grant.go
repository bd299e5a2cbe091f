package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/repository"
)

type RoleGrantRepository struct {
	writerDB *gorm.DB
}

func NewRoleGrantRepository(writerDB *gorm.DB) *RoleGrantRepository {
	return &RoleGrantRepository{writerDB: writerDB}
}

func (r *RoleGrantRepository) Create(ctx context.Context, grant *domain.TenantRoleGrant) error {
	if grant.ID == "" {
		grant.ID = uuid.New().String()
	}
	return translateError(r.writerDB.WithContext(ctx).Create(grant).Error)
}

func (r *RoleGrantRepository) Get(ctx context.Context, principalID, tenantID string) (*domain.TenantRoleGrant, error) {
	var grant domain.TenantRoleGrant
	err := r.writerDB.WithContext(ctx).
		Where("principal_id = ? AND tenant_id = ?", principalID, tenantID).
		First(&grant).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &grant, nil
}

func (r *RoleGrantRepository) Update(ctx context.Context, grant *domain.TenantRoleGrant) error {
	result := r.writerDB.WithContext(ctx).
		Model(&domain.TenantRoleGrant{}).
		Where("id = ?", grant.ID).
		Updates(map[string]any{"role": grant.Role, "updated_at": grant.UpdatedAt})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RoleGrantRepository) Delete(ctx context.Context, id string) error {
	result := r.writerDB.WithContext(ctx).Delete(&domain.TenantRoleGrant{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type GlobalRoleRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewGlobalRoleRepository(writerDB, readerDB *gorm.DB) *GlobalRoleRepository {
	return &GlobalRoleRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *GlobalRoleRepository) Grant(ctx context.Context, grant *domain.GlobalRoleGrant) error {
	if grant.ID == "" {
		grant.ID = uuid.New().String()
	}
	return translateError(r.writerDB.WithContext(ctx).Create(grant).Error)
}

func (r *GlobalRoleRepository) HasGrant(ctx context.Context, principalID string, role domain.Role) (bool, error) {
	var count int64
	err := r.readerDB.WithContext(ctx).
		Model(&domain.GlobalRoleGrant{}).
		Where("principal_id = ? AND role = ?", principalID, role.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
