package dto

import (
	"time"

	"github.com/kingrain94/tenancy-api/internal/domain"
)

type TenantResponse struct {
	ID        string          `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name      string          `json:"name" example:"Acme Corp"`
	Subdomain string          `json:"subdomain" example:"acme"`
	Status    string          `json:"status" example:"active"`
	PlanType  string          `json:"plan_type" example:"basic"`
	Settings  domain.Settings `json:"settings" swaggertype:"object"`
	CreatedAt time.Time       `json:"created_at" example:"2025-07-17T21:20:48Z"`
	UpdatedAt time.Time       `json:"updated_at" example:"2025-07-17T21:20:48Z"`
}

// PublicTenantResponse is what anyone reaching a tenant's host may see
type PublicTenantResponse struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name      string `json:"name" example:"Acme Corp"`
	Subdomain string `json:"subdomain" example:"acme"`
}

type AdminResponse struct {
	ID    string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Email string `json:"email" example:"ada@acme.com"`
	Name  string `json:"name" example:"Ada Admin"`
}

type ProvisionTenantResponse struct {
	Tenant TenantResponse `json:"tenant"`
	Admin  AdminResponse  `json:"admin"`
}

type LoginResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
}

type MeResponse struct {
	PrincipalID string `json:"principal_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	TenantID    string `json:"tenant_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Role        string `json:"role" example:"admin"`
	GlobalOwner bool   `json:"global_owner" example:"false"`
}

type MembershipResponse struct {
	ID          string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	PrincipalID string    `json:"principal_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Role        string    `json:"role" example:"member"`
	Status      string    `json:"status" example:"active"`
	CreatedAt   time.Time `json:"created_at" example:"2025-07-17T21:20:48Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2025-07-17T21:20:48Z"`
}

type LogEntryResponse struct {
	Time    time.Time      `json:"time" example:"2025-07-17T21:20:48Z"`
	Level   string         `json:"level" example:"error"`
	Logger  string         `json:"logger,omitempty"`
	Message string         `json:"message" example:"saga compensation failed"`
	Fields  map[string]any `json:"fields,omitempty" swaggertype:"object"`
}
