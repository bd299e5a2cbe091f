package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/repository"
)

type IdentityRepository struct {
	writerDB *gorm.DB
}

func NewIdentityRepository(writerDB *gorm.DB) *IdentityRepository {
	return &IdentityRepository{writerDB: writerDB}
}

func (r *IdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	if identity.ID == "" {
		identity.ID = uuid.New().String()
	}
	return translateError(r.writerDB.WithContext(ctx).Create(identity).Error)
}

func (r *IdentityRepository) GetByID(ctx context.Context, id string) (*domain.Identity, error) {
	var identity domain.Identity
	if err := r.writerDB.WithContext(ctx).First(&identity, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &identity, nil
}

func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	var identity domain.Identity
	if err := r.writerDB.WithContext(ctx).First(&identity, "email = ?", email).Error; err != nil {
		return nil, translateError(err)
	}
	return &identity, nil
}

func (r *IdentityRepository) Delete(ctx context.Context, id string) error {
	result := r.writerDB.WithContext(ctx).Delete(&domain.Identity{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type ProfileRepository struct {
	writerDB *gorm.DB
}

func NewProfileRepository(writerDB *gorm.DB) *ProfileRepository {
	return &ProfileRepository{writerDB: writerDB}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	return translateError(r.writerDB.WithContext(ctx).Create(profile).Error)
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.writerDB.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &profile, nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	result := r.writerDB.WithContext(ctx).Delete(&domain.Profile{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
