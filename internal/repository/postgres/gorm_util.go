package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kingrain94/tenancy-api/internal/repository"
	"github.com/kingrain94/tenancy-api/internal/utils"
)

// getTenantScope returns a scoped database instance with tenant isolation
func getTenantScope(db *gorm.DB, ctx context.Context) (*gorm.DB, error) {
	tenantID, err := utils.GetTenantIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	return db.WithContext(ctx).Where("tenant_id = ?", tenantID), nil
}

// translateError maps gorm errors onto the repository sentinels.
// Duplicate detection relies on gorm.Config.TranslateError.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repository.ErrDuplicate
	default:
		return err
	}
}
