package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status is the subscription state of a tenant as reported by the
// billing provider. Only StatusInactive blocks resolution; suspended
// and trialing tenants still resolve so the application can decide
// what to gate.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusTrialing  Status = "trialing"
	StatusSuspended Status = "suspended"
)

// Subscription is the billing-facing slice of a tenant record that
// resolution cares about.
type Subscription struct {
	Status Status `json:"status"`
	PlanID string `json:"plan_id"`
}

// Tenant represents a tenant (business account) with the information
// needed for request-scoped operations and routing.
type Tenant struct {
	ID            uuid.UUID    `json:"id"`
	Subdomain     string       `json:"subdomain"`
	Name          string       `json:"name"`
	Domain        string       `json:"domain,omitempty"`
	CustomDomains []string     `json:"custom_domains,omitempty"`
	LogoURL       string       `json:"logo_url,omitempty"`
	Subscription  Subscription `json:"subscription"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Inactive reports whether the tenant's subscription forbids access.
func (t *Tenant) Inactive() bool {
	return t.Subscription.Status == StatusInactive
}

// Directory reads tenant records from the persisted tenant directory.
// The resolution core only ever reads through this interface; writes
// belong to administrative operations.
type Directory interface {
	// GetByKey retrieves the tenant whose subdomain, domain, or custom
	// domain equals key. Returns ErrTenantNotFound if no tenant matches.
	// Transport failures must wrap ErrDirectoryUnavailable so callers
	// can tell a missing tenant from an unreachable directory.
	GetByKey(ctx context.Context, key string) (*Tenant, error)
}
