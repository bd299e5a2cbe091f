package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"time"
)

type TenantStatus string

const (
	TenantActive    TenantStatus = "active"
	TenantInactive  TenantStatus = "inactive"
	TenantSuspended TenantStatus = "suspended"
)

func (s TenantStatus) IsValid() bool {
	switch s {
	case TenantActive, TenantInactive, TenantSuspended:
		return true
	}
	return false
}

type PlanType string

const (
	PlanBasic      PlanType = "basic"
	PlanPremium    PlanType = "premium"
	PlanEnterprise PlanType = "enterprise"
)

func (p PlanType) IsValid() bool {
	switch p {
	case PlanBasic, PlanPremium, PlanEnterprise:
		return true
	}
	return false
}

// subdomainPattern matches a single lowercase DNS label
var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// IsValidSubdomain reports whether s can be used as a tenant subdomain.
func IsValidSubdomain(s string) bool {
	return subdomainPattern.MatchString(s)
}

// Settings is the free-form per-tenant settings map, stored as jsonb
type Settings map[string]any

func (s Settings) Value() (driver.Value, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s)
}

func (s *Settings) Scan(value any) error {
	if value == nil {
		*s = Settings{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("Settings: unsupported scan type %T", value)
	}
	return json.Unmarshal(data, s)
}

type Tenant struct {
	ID        string       `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Subdomain string       `gorm:"type:text;not null;uniqueIndex:idx_tenants_subdomain" json:"subdomain"`
	Status    TenantStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	PlanType  PlanType     `gorm:"type:text;not null;default:'basic'" json:"plan_type"`
	Settings  Settings     `gorm:"type:jsonb;not null;default:'{}'" json:"settings"`
	CreatedAt time.Time    `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}

func (t *Tenant) IsActive() bool {
	return t.Status == TenantActive
}

// TenantPatch lists the mutable tenant attributes. Nil fields are left as is.
type TenantPatch struct {
	Name      *string
	Subdomain *string
	Status    *TenantStatus
	PlanType  *PlanType
	Settings  Settings
}
