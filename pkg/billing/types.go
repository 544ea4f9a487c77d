package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/yardbook/yardbook/pkg/tenant"
)

// EventType is the normalized billing event type. Each provider
// implementation maps its own event names onto these.
type EventType string

const (
	EventSubscriptionCreated   EventType = "subscription_created"
	EventSubscriptionUpdated   EventType = "subscription_updated"
	EventSubscriptionCancelled EventType = "subscription_cancelled"
	EventSubscriptionResumed   EventType = "subscription_resumed"
	EventSubscriptionPaused    EventType = "subscription_paused"
	EventSubscriptionTrialing  EventType = "subscription_trialing"
	EventPaymentFailed         EventType = "payment_failed"
	EventUnknown               EventType = "unknown"
)

// Event is a normalized webhook event from the billing provider.
type Event struct {
	Type           EventType      // Normalized event type
	ProviderEvent  string         // Original provider event name
	SubscriptionID string         // Provider's subscription ID
	TenantID       string         // Tenant ID from checkout custom data
	Status         string         // Provider's subscription status string
	PlanID         string         // Provider's price/plan identifier
	Raw            map[string]any // Full webhook data
}

// Provider validates and parses incoming billing webhooks.
// Implementations must verify the signature to prevent spoofing.
type Provider interface {
	ParseWebhook(ctx context.Context, payload []byte, signature string) (*Event, error)
}

// Store is the slice of the tenant store the billing sync writes to.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error)
	UpdateSubscriptionStatus(ctx context.Context, id uuid.UUID, status tenant.Status) error
}

// CacheInvalidator drops resolution cache entries after a status
// change so suspended tenants stop resolving as active immediately.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, t *tenant.Tenant)
}

// Notifier is told about subscription status transitions. Used to mail
// the operations team when a tenant gets suspended.
type Notifier interface {
	NotifyStatusChange(ctx context.Context, t *tenant.Tenant, from, to tenant.Status) error
}
