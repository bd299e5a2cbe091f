package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/kingrain94/tenancy-api/internal/config"
	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/repository"
)

type postgresRepository struct {
	tenantRepo     repository.TenantRepository
	membershipRepo repository.MembershipRepository
	roleGrantRepo  repository.RoleGrantRepository
	globalRoleRepo repository.GlobalRoleRepository
	profileRepo    repository.ProfileRepository
	identityRepo   repository.IdentityRepository
}

func NewPostgresRepository(dbConnections *config.DatabaseConnections) repository.Repository {
	writer, reader := dbConnections.Writer, dbConnections.Reader
	return &postgresRepository{
		tenantRepo:     NewTenantRepository(writer, reader),
		membershipRepo: NewMembershipRepository(writer, reader),
		roleGrantRepo:  NewRoleGrantRepository(writer),
		globalRoleRepo: NewGlobalRoleRepository(writer, reader),
		profileRepo:    NewProfileRepository(writer),
		identityRepo:   NewIdentityRepository(writer),
	}
}

func (r *postgresRepository) Tenant() repository.TenantRepository {
	return r.tenantRepo
}

func (r *postgresRepository) Membership() repository.MembershipRepository {
	return r.membershipRepo
}

func (r *postgresRepository) RoleGrant() repository.RoleGrantRepository {
	return r.roleGrantRepo
}

func (r *postgresRepository) GlobalRole() repository.GlobalRoleRepository {
	return r.globalRoleRepo
}

func (r *postgresRepository) Profile() repository.ProfileRepository {
	return r.profileRepo
}

func (r *postgresRepository) Identity() repository.IdentityRepository {
	return r.identityRepo
}

// Migrate creates the schema on the writer database. The partial index
// backs the one-active-membership-per-pair rule, which gorm tags cannot express.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.Tenant{},
		&domain.Identity{},
		&domain.Profile{},
		&domain.Membership{},
		&domain.TenantRoleGrant{},
		&domain.GlobalRoleGrant{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_memberships_active_pair
		ON memberships (tenant_id, principal_id) WHERE status = 'active'`).Error
	if err != nil {
		return fmt.Errorf("failed to create active membership index: %w", err)
	}
	return nil
}
