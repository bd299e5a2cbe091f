package domain

import "time"

type TenantEventType string

const (
	EventTenantProvisioned        TenantEventType = "tenant.provisioned"
	EventTenantProvisioningFailed TenantEventType = "tenant.provisioning_failed"
	EventTenantPartialRollback    TenantEventType = "tenant.partially_rolled_back"
	EventTenantUpdated            TenantEventType = "tenant.updated"
	EventTenantDeactivated        TenantEventType = "tenant.deactivated"
)

// TenantEvent records a tenant lifecycle change for the event archive.
// Orphans lists artifacts left behind by a failed compensation.
type TenantEvent struct {
	Type       TenantEventType `json:"type"`
	TenantID   string          `json:"tenant_id,omitempty"`
	Subdomain  string          `json:"subdomain,omitempty"`
	ActorID    string          `json:"actor_id,omitempty"`
	FailedStep string          `json:"failed_step,omitempty"`
	Error      string          `json:"error,omitempty"`
	Orphans    []string        `json:"orphans,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}
