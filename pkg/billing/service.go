package billing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/yardbook/yardbook/pkg/tenant"
)

// maxWebhookBody bounds webhook payload reads. Paddle events are a few
// kilobytes; anything near the limit is not a legitimate event.
const maxWebhookBody = 1 << 20

// Service maps verified billing events onto tenant subscription status
// updates. It owns no billing business logic: proration, plan math and
// invoicing live with the provider. Only the status the resolver
// enforces is synced here.
type Service struct {
	provider Provider
	store    Store
	cache    CacheInvalidator
	notifier Notifier
	logger   *slog.Logger
}

// NewService creates a billing sync service. cache and notifier are
// optional; logger falls back to slog.Default.
func NewService(provider Provider, store Store, opts ...ServiceOption) *Service {
	s := &Service{
		provider: provider,
		store:    store,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ServiceOption configures the billing sync service.
type ServiceOption func(*Service)

// WithCacheInvalidator drops resolution cache entries after status changes.
func WithCacheInvalidator(cache CacheInvalidator) ServiceOption {
	return func(s *Service) { s.cache = cache }
}

// WithNotifier reports status transitions (suspensions in particular).
func WithNotifier(notifier Notifier) ServiceOption {
	return func(s *Service) { s.notifier = notifier }
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// statusForEvent maps a normalized event to the tenant status it
// implies, or "" when the event does not change the status.
func statusForEvent(event *Event) tenant.Status {
	switch event.Type {
	case EventSubscriptionCreated, EventSubscriptionResumed:
		return tenant.StatusActive
	case EventSubscriptionTrialing:
		return tenant.StatusTrialing
	case EventSubscriptionPaused, EventPaymentFailed:
		return tenant.StatusSuspended
	case EventSubscriptionCancelled:
		return tenant.StatusInactive
	case EventSubscriptionUpdated:
		// Updates carry the authoritative status inline.
		switch event.Status {
		case "active":
			return tenant.StatusActive
		case "trialing":
			return tenant.StatusTrialing
		case "paused", "past_due":
			return tenant.StatusSuspended
		case "canceled":
			return tenant.StatusInactive
		}
	}
	return ""
}

// HandleWebhook verifies, parses, and applies one webhook payload.
// Unknown event types and events without a status implication are
// acknowledged without error so the provider stops redelivering them.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.ParseWebhook(ctx, payload, signature)
	if err != nil {
		return err
	}

	status := statusForEvent(event)
	if status == "" {
		s.logger.InfoContext(ctx, "ignoring billing event",
			slog.String("event", event.ProviderEvent))
		return nil
	}

	tenantID, err := uuid.Parse(event.TenantID)
	if err != nil {
		return errors.Join(ErrUnknownTenant, err)
	}

	t, err := s.store.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			return errors.Join(ErrUnknownTenant, err)
		}
		return err
	}

	from := t.Subscription.Status
	if from == status {
		return nil
	}

	if err := s.store.UpdateSubscriptionStatus(ctx, tenantID, status); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, t)
	}

	s.logger.InfoContext(ctx, "tenant subscription status changed",
		slog.String("tenant_id", tenantID.String()),
		slog.String("from", string(from)),
		slog.String("to", string(status)),
		slog.String("event", event.ProviderEvent),
	)

	if s.notifier != nil {
		if err := s.notifier.NotifyStatusChange(ctx, t, from, status); err != nil {
			// Notification failures must not make the provider redeliver.
			s.logger.ErrorContext(ctx, "failed to send status change notification",
				slog.String("tenant_id", tenantID.String()),
				slog.Any("error", err))
		}
	}

	return nil
}

// Webhook returns the HTTP endpoint for provider callbacks.
//
// Response codes drive the provider's retry behavior: verification and
// parse failures are 4xx (redelivery cannot help), store failures are
// 5xx so the event is redelivered once the directory is back.
func (s *Service) Webhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			http.Error(w, "failed to read payload", http.StatusBadRequest)
			return
		}

		err = s.HandleWebhook(r.Context(), payload, r.Header.Get("Paddle-Signature"))
		switch {
		case err == nil:
			w.WriteHeader(http.StatusOK)
		case errors.Is(err, ErrVerificationFailed):
			http.Error(w, "invalid signature", http.StatusUnauthorized)
		case errors.Is(err, ErrMalformedPayload), errors.Is(err, ErrUnknownTenant):
			s.logger.WarnContext(r.Context(), "rejected billing webhook", slog.Any("error", err))
			http.Error(w, "rejected", http.StatusBadRequest)
		default:
			s.logger.ErrorContext(r.Context(), "failed to apply billing webhook", slog.Any("error", err))
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}
