package domain

import "time"

type MembershipStatus string

const (
	MembershipActive   MembershipStatus = "active"
	MembershipInactive MembershipStatus = "inactive"
)

func (s MembershipStatus) IsValid() bool {
	return s == MembershipActive || s == MembershipInactive
}

// Membership binds a principal to a tenant with a role.
// At most one active membership exists per (principal, tenant); the
// partial unique index is created by the postgres migration.
type Membership struct {
	ID          string           `gorm:"primaryKey;type:uuid" json:"id"`
	TenantID    string           `gorm:"type:uuid;not null;index" json:"tenant_id"`
	PrincipalID string           `gorm:"type:uuid;not null;index" json:"principal_id"`
	Role        Role             `gorm:"type:text;not null" json:"role"`
	Status      MembershipStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	CreatedAt   time.Time        `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
	Tenant      *Tenant          `gorm:"foreignKey:TenantID" json:"-"`
}

func (Membership) TableName() string {
	return "memberships"
}

func (m *Membership) IsActive() bool {
	return m.Status == MembershipActive
}

// TenantRoleGrant is the role record read by the role resolver next to the
// membership row.
type TenantRoleGrant struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	TenantID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_tenant_role_grants_pair" json:"tenant_id"`
	PrincipalID string    `gorm:"type:uuid;not null;uniqueIndex:idx_tenant_role_grants_pair" json:"principal_id"`
	Role        Role      `gorm:"type:text;not null" json:"role"`
	CreatedAt   time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
	Tenant      *Tenant   `gorm:"foreignKey:TenantID" json:"-"`
}

func (TenantRoleGrant) TableName() string {
	return "tenant_role_grants"
}

// GlobalRoleGrant is a platform-wide grant, independent of any tenant.
type GlobalRoleGrant struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	PrincipalID string    `gorm:"type:uuid;not null;uniqueIndex:idx_global_role_grants_pair" json:"principal_id"`
	Role        Role      `gorm:"type:text;not null;uniqueIndex:idx_global_role_grants_pair" json:"role"`
	CreatedAt   time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (GlobalRoleGrant) TableName() string {
	return "global_role_grants"
}
