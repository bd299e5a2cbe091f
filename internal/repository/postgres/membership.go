package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/repository"
)

type MembershipRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewMembershipRepository(writerDB, readerDB *gorm.DB) *MembershipRepository {
	return &MembershipRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *MembershipRepository) Create(ctx context.Context, membership *domain.Membership) error {
	if membership.ID == "" {
		membership.ID = uuid.New().String()
	}
	return translateError(r.writerDB.WithContext(ctx).Create(membership).Error)
}

// GetActive reads from the writer: role checks must observe membership
// changes immediately.
func (r *MembershipRepository) GetActive(ctx context.Context, principalID, tenantID string) (*domain.Membership, error) {
	var membership domain.Membership
	err := r.writerDB.WithContext(ctx).
		Where("principal_id = ? AND tenant_id = ? AND status = ?", principalID, tenantID, domain.MembershipActive).
		First(&membership).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &membership, nil
}

func (r *MembershipRepository) Update(ctx context.Context, membership *domain.Membership) error {
	result := r.writerDB.WithContext(ctx).
		Model(&domain.Membership{}).
		Where("id = ?", membership.ID).
		Updates(map[string]any{
			"role":       membership.Role,
			"status":     membership.Status,
			"updated_at": membership.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MembershipRepository) Delete(ctx context.Context, id string) error {
	result := r.writerDB.WithContext(ctx).Delete(&domain.Membership{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MembershipRepository) List(ctx context.Context) ([]domain.Membership, error) {
	db, err := getTenantScope(r.readerDB, ctx)
	if err != nil {
		return nil, err
	}

	var memberships []domain.Membership
	if err := db.Order("created_at ASC").Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *MembershipRepository) CountActiveAdmins(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := r.writerDB.WithContext(ctx).
		Model(&domain.Membership{}).
		Where("tenant_id = ? AND status = ? AND role IN ?", tenantID, domain.MembershipActive,
			[]string{domain.RoleAdmin.String(), domain.RoleOwner.String()}).
		Count(&count).Error
	return count, err
}
