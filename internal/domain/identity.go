package domain

import (
	"encoding/json"
	"time"
)

// Identity is an account owned by the identity provider.
type Identity struct {
	ID            string          `gorm:"primaryKey;type:uuid" json:"id"`
	Email         string          `gorm:"type:text;not null;uniqueIndex:idx_identities_email" json:"email"`
	PasswordHash  string          `gorm:"type:text;not null" json:"-"`
	Name          string          `gorm:"type:text;not null" json:"name"`
	EmailVerified bool            `gorm:"not null;default:false" json:"email_verified"`
	Active        bool            `gorm:"not null;default:true" json:"active"`
	Metadata      json.RawMessage `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time       `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Identity) TableName() string {
	return "identities"
}

// Profile links an identity to the tenant it was provisioned for
type Profile struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	TenantID  string    `gorm:"type:uuid;not null;index" json:"tenant_id"`
	FullName  string    `gorm:"type:text;not null" json:"full_name"`
	Email     string    `gorm:"type:text;not null" json:"email"`
	CreatedAt time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
	Tenant    *Tenant   `gorm:"foreignKey:TenantID" json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}
