package dto

import (
	"encoding/json"
	"fmt"

	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/observability"
	"github.com/kingrain94/tenancy-api/internal/service"
)

// ToProvisionRequest converts the request body into the provisioning input.
// The password is only ever carried inward.
func (r *ProvisionTenantRequest) ToProvisionRequest() (service.ProvisionRequest, error) {
	settings, err := decodeSettings(r.Tenant.Settings)
	if err != nil {
		return service.ProvisionRequest{}, err
	}
	return service.ProvisionRequest{
		Tenant: service.TenantDraft{
			Name:      r.Tenant.Name,
			Subdomain: r.Tenant.Subdomain,
			PlanType:  domain.PlanType(r.Tenant.PlanType),
			Settings:  settings,
		},
		Admin: service.AdminDraft{
			Name:     r.Admin.Name,
			Email:    r.Admin.Email,
			Password: r.Admin.Password,
		},
	}, nil
}

func (r *UpdateTenantRequest) ToTenantPatch() (domain.TenantPatch, error) {
	patch := domain.TenantPatch{
		Name:      r.Name,
		Subdomain: r.Subdomain,
	}
	if r.Status != nil {
		status := domain.TenantStatus(*r.Status)
		patch.Status = &status
	}
	if r.PlanType != nil {
		plan := domain.PlanType(*r.PlanType)
		patch.PlanType = &plan
	}
	if len(r.Settings) > 0 {
		settings, err := decodeSettings(r.Settings)
		if err != nil {
			return domain.TenantPatch{}, err
		}
		patch.Settings = settings
	}
	return patch, nil
}

func (r *UpdateMemberRequest) ToMembershipPatch() (service.MembershipPatch, error) {
	var patch service.MembershipPatch
	if r.Role != nil {
		role, err := domain.ParseRole(*r.Role)
		if err != nil {
			return patch, err
		}
		patch.Role = &role
	}
	if r.Status != nil {
		status := domain.MembershipStatus(*r.Status)
		patch.Status = &status
	}
	return patch, nil
}

func decodeSettings(raw json.RawMessage) (domain.Settings, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var settings domain.Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("settings must be a JSON object")
	}
	return settings, nil
}

func FromTenant(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Subdomain: t.Subdomain,
		Status:    string(t.Status),
		PlanType:  string(t.PlanType),
		Settings:  t.Settings,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func FromTenants(tenants []domain.Tenant) []TenantResponse {
	responses := make([]TenantResponse, len(tenants))
	for i := range tenants {
		responses[i] = FromTenant(&tenants[i])
	}
	return responses
}

func FromPublicTenant(t *domain.Tenant) PublicTenantResponse {
	return PublicTenantResponse{ID: t.ID, Name: t.Name, Subdomain: t.Subdomain}
}

func FromProvisionResult(res *service.ProvisionResult) ProvisionTenantResponse {
	return ProvisionTenantResponse{
		Tenant: FromTenant(res.Tenant),
		Admin: AdminResponse{
			ID:    res.Admin.ID,
			Email: res.Admin.Email,
			Name:  res.Admin.Name,
		},
	}
}

func FromMembership(m *domain.Membership) MembershipResponse {
	return MembershipResponse{
		ID:          m.ID,
		PrincipalID: m.PrincipalID,
		Role:        m.Role.String(),
		Status:      string(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func FromMemberships(memberships []domain.Membership) []MembershipResponse {
	responses := make([]MembershipResponse, len(memberships))
	for i := range memberships {
		responses[i] = FromMembership(&memberships[i])
	}
	return responses
}

func FromLogEntries(entries []observability.LogEntry) []LogEntryResponse {
	responses := make([]LogEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = LogEntryResponse(e)
	}
	return responses
}
