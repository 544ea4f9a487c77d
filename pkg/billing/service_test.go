package billing_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yardbook/yardbook/pkg/billing"
	"github.com/yardbook/yardbook/pkg/tenant"
)

// stubProvider returns canned events without signature verification.
type stubProvider struct {
	event *billing.Event
	err   error
}

func (p *stubProvider) ParseWebhook(_ context.Context, _ []byte, _ string) (*billing.Event, error) {
	return p.event, p.err
}

// stubStore records subscription status writes.
type stubStore struct {
	mu      sync.Mutex
	tenants map[uuid.UUID]*tenant.Tenant
	updates map[uuid.UUID]tenant.Status
	err     error
}

func newStubStore(tenants ...*tenant.Tenant) *stubStore {
	byID := make(map[uuid.UUID]*tenant.Tenant, len(tenants))
	for _, t := range tenants {
		byID[t.ID] = t
	}
	return &stubStore{tenants: byID, updates: make(map[uuid.UUID]tenant.Status)}
}

func (s *stubStore) GetByID(_ context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if t, ok := s.tenants[id]; ok {
		return t, nil
	}
	return nil, tenant.ErrTenantNotFound
}

func (s *stubStore) UpdateSubscriptionStatus(_ context.Context, id uuid.UUID, status tenant.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.updates[id] = status
	return nil
}

type recordingInvalidator struct {
	mu      sync.Mutex
	tenants []*tenant.Tenant
}

func (r *recordingInvalidator) Invalidate(_ context.Context, t *tenant.Tenant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenants = append(r.tenants, t)
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []tenant.Status
}

func (n *recordingNotifier) NotifyStatusChange(_ context.Context, _ *tenant.Tenant, _, to tenant.Status) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, to)
	return nil
}

func trialingTenant() *tenant.Tenant {
	return &tenant.Tenant{
		ID:        uuid.New(),
		Subdomain: "acme",
		Name:      "Acme Landscaping",
		Subscription: tenant.Subscription{
			Status: tenant.StatusTrialing,
			PlanID: "pro-monthly",
		},
		CreatedAt: time.Now(),
	}
}

func TestServiceHandleWebhook(t *testing.T) {
	t.Parallel()

	t.Run("activation updates status and invalidates cache", func(t *testing.T) {
		t.Parallel()

		acme := trialingTenant()
		store := newStubStore(acme)
		cache := &recordingInvalidator{}
		notifier := &recordingNotifier{}

		svc := billing.NewService(
			&stubProvider{event: &billing.Event{
				Type:          billing.EventSubscriptionCreated,
				ProviderEvent: "subscription.activated",
				TenantID:      acme.ID.String(),
			}},
			store,
			billing.WithCacheInvalidator(cache),
			billing.WithNotifier(notifier),
		)

		require.NoError(t, svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
		assert.Equal(t, tenant.StatusActive, store.updates[acme.ID])
		require.Len(t, cache.tenants, 1)
		assert.Equal(t, acme.ID, cache.tenants[0].ID)
		assert.Equal(t, []tenant.Status{tenant.StatusActive}, notifier.calls)
	})

	t.Run("payment failure suspends the tenant", func(t *testing.T) {
		t.Parallel()

		acme := trialingTenant()
		acme.Subscription.Status = tenant.StatusActive
		store := newStubStore(acme)

		svc := billing.NewService(
			&stubProvider{event: &billing.Event{
				Type:     billing.EventPaymentFailed,
				TenantID: acme.ID.String(),
			}},
			store,
		)

		require.NoError(t, svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
		assert.Equal(t, tenant.StatusSuspended, store.updates[acme.ID])
	})

	t.Run("cancellation deactivates the tenant", func(t *testing.T) {
		t.Parallel()

		acme := trialingTenant()
		store := newStubStore(acme)

		svc := billing.NewService(
			&stubProvider{event: &billing.Event{
				Type:     billing.EventSubscriptionCancelled,
				TenantID: acme.ID.String(),
			}},
			store,
		)

		require.NoError(t, svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
		assert.Equal(t, tenant.StatusInactive, store.updates[acme.ID])
	})

	t.Run("no-op when status is unchanged", func(t *testing.T) {
		t.Parallel()

		acme := trialingTenant()
		acme.Subscription.Status = tenant.StatusActive
		store := newStubStore(acme)

		svc := billing.NewService(
			&stubProvider{event: &billing.Event{
				Type:     billing.EventSubscriptionResumed,
				TenantID: acme.ID.String(),
			}},
			store,
		)

		require.NoError(t, svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
		assert.Empty(t, store.updates)
	})

	t.Run("unknown events are acknowledged", func(t *testing.T) {
		t.Parallel()

		store := newStubStore()
		svc := billing.NewService(
			&stubProvider{event: &billing.Event{
				Type:          billing.EventUnknown,
				ProviderEvent: "address.created",
			}},
			store,
		)

		require.NoError(t, svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
		assert.Empty(t, store.updates)
	})

	t.Run("unknown tenant is rejected", func(t *testing.T) {
		t.Parallel()

		store := newStubStore()
		svc := billing.NewService(
			&stubProvider{event: &billing.Event{
				Type:     billing.EventSubscriptionCreated,
				TenantID: uuid.NewString(),
			}},
			store,
		)

		err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig")
		assert.ErrorIs(t, err, billing.ErrUnknownTenant)
	})

	t.Run("missing tenant id is rejected", func(t *testing.T) {
		t.Parallel()

		svc := billing.NewService(
			&stubProvider{event: &billing.Event{Type: billing.EventSubscriptionCreated}},
			newStubStore(),
		)

		err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig")
		assert.ErrorIs(t, err, billing.ErrUnknownTenant)
	})
}

func TestServiceWebhookEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("applied event returns 200", func(t *testing.T) {
		t.Parallel()

		acme := trialingTenant()
		store := newStubStore(acme)
		svc := billing.NewService(
			&stubProvider{event: &billing.Event{
				Type:     billing.EventSubscriptionCreated,
				TenantID: acme.ID.String(),
			}},
			store,
		)

		body, _ := json.Marshal(map[string]any{"event_type": "subscription.activated"})
		req := httptest.NewRequest("POST", "/webhooks/billing", strings.NewReader(string(body)))
		req.Header.Set("Paddle-Signature", "ts=1;h1=abc")
		rec := httptest.NewRecorder()
		svc.Webhook()(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, tenant.StatusActive, store.updates[acme.ID])
	})

	t.Run("bad signature returns 401", func(t *testing.T) {
		t.Parallel()

		svc := billing.NewService(
			&stubProvider{err: billing.ErrVerificationFailed},
			newStubStore(),
		)

		req := httptest.NewRequest("POST", "/webhooks/billing", strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		svc.Webhook()(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown tenant returns 400", func(t *testing.T) {
		t.Parallel()

		svc := billing.NewService(
			&stubProvider{event: &billing.Event{
				Type:     billing.EventSubscriptionCreated,
				TenantID: uuid.NewString(),
			}},
			newStubStore(),
		)

		req := httptest.NewRequest("POST", "/webhooks/billing", strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		svc.Webhook()(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store outage returns 500 for redelivery", func(t *testing.T) {
		t.Parallel()

		acme := trialingTenant()
		store := newStubStore(acme)
		store.err = tenant.ErrDirectoryUnavailable

		svc := billing.NewService(
			&stubProvider{event: &billing.Event{
				Type:     billing.EventSubscriptionCreated,
				TenantID: acme.ID.String(),
			}},
			store,
		)

		req := httptest.NewRequest("POST", "/webhooks/billing", strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		svc.Webhook()(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
