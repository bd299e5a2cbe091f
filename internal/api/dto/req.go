package dto

import "encoding/json"

type TenantDraftRequest struct {
	Name      string          `json:"name" binding:"required" example:"Acme Corp"`
	Subdomain string          `json:"subdomain" binding:"required" example:"acme"`
	PlanType  string          `json:"plan_type" example:"basic"`
	Settings  json.RawMessage `json:"settings" swaggertype:"string" example:"{\"rate_limit\":500}"`
}

type AdminDraftRequest struct {
	Name     string `json:"name" binding:"required" example:"Ada Admin"`
	Email    string `json:"email" binding:"required" example:"ada@acme.com"`
	Password string `json:"password" binding:"required" example:"correct-horse-battery"`
}

type ProvisionTenantRequest struct {
	Tenant TenantDraftRequest `json:"tenant" binding:"required"`
	Admin  AdminDraftRequest  `json:"admin" binding:"required"`
}

// UpdateTenantRequest is a partial update; omitted fields are left as is.
type UpdateTenantRequest struct {
	Name      *string         `json:"name" example:"Acme Corporation"`
	Subdomain *string         `json:"subdomain"`
	Status    *string         `json:"status" example:"suspended"`
	PlanType  *string         `json:"plan_type" example:"premium"`
	Settings  json.RawMessage `json:"settings" swaggertype:"string"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"ada@acme.com"`
	Password string `json:"password" binding:"required" example:"correct-horse-battery"`
}

type AddMemberRequest struct {
	PrincipalID string `json:"principal_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Role        string `json:"role" binding:"required" example:"member"`
}

type UpdateMemberRequest struct {
	Role   *string `json:"role" example:"admin"`
	Status *string `json:"status" example:"inactive"`
}
