package admin

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yardbook/yardbook/pkg/storage"
	"github.com/yardbook/yardbook/pkg/tenant"
)

// Store is the slice of the tenant store the admin console uses.
type Store interface {
	Create(ctx context.Context, t *tenant.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error)
	UpdateSubscriptionStatus(ctx context.Context, id uuid.UUID, status tenant.Status) error
	SetLogo(ctx context.Context, id uuid.UUID, logoURL string) error
	List(ctx context.Context) ([]*tenant.Tenant, error)
}

// CacheInvalidator drops resolution cache entries after admin writes.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, t *tenant.Tenant)
}

// Service implements platform-operator tenant administration: the only
// code path that creates tenants or mutates them outside billing sync.
type Service struct {
	store   Store
	storage storage.Storage
	cache   CacheInvalidator
	logger  *slog.Logger
}

// NewService creates the admin service. storage and cache are optional.
func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ServiceOption configures the admin service.
type ServiceOption func(*Service)

// WithStorage enables logo uploads.
func WithStorage(st storage.Storage) ServiceOption {
	return func(s *Service) { s.storage = st }
}

// WithCacheInvalidator drops resolution cache entries after writes.
func WithCacheInvalidator(cache CacheInvalidator) ServiceOption {
	return func(s *Service) { s.cache = cache }
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// CreateTenantParams are the inputs for tenant creation.
type CreateTenantParams struct {
	Name      string `json:"name"`
	Subdomain string `json:"subdomain,omitempty"` // derived from Name when empty
	PlanID    string `json:"plan_id,omitempty"`
	Domain    string `json:"domain,omitempty"`
}

// CreateTenant registers a new tenant. New tenants start trialing; the
// billing sync moves them to active once the provider confirms payment.
func (s *Service) CreateTenant(ctx context.Context, params CreateTenantParams) (*tenant.Tenant, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidParams)
	}

	subdomain := strings.ToLower(strings.TrimSpace(params.Subdomain))
	if subdomain == "" {
		subdomain = slugify(name)
	}
	if !tenant.IsValidKey(subdomain) {
		return nil, fmt.Errorf("%w: subdomain %q", ErrInvalidParams, subdomain)
	}

	now := time.Now()
	t := &tenant.Tenant{
		ID:        uuid.New(),
		Subdomain: subdomain,
		Name:      name,
		Domain:    strings.ToLower(strings.TrimSpace(params.Domain)),
		Subscription: tenant.Subscription{
			Status: tenant.StatusTrialing,
			PlanID: params.PlanID,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "tenant created",
		slog.String("tenant_id", t.ID.String()),
		slog.String("subdomain", t.Subdomain))
	return t, nil
}

// SuspendTenant marks a tenant suspended and invalidates its resolution
// cache entries so the change applies on the next request.
func (s *Service) SuspendTenant(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, tenant.StatusSuspended)
}

// ReactivateTenant returns a suspended tenant to active.
func (s *Service) ReactivateTenant(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, tenant.StatusActive)
}

// DeactivateTenant marks a tenant inactive, blocking resolution.
func (s *Service) DeactivateTenant(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, tenant.StatusInactive)
}

func (s *Service) setStatus(ctx context.Context, id uuid.UUID, status tenant.Status) error {
	t, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.UpdateSubscriptionStatus(ctx, id, status); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, t)
	}

	s.logger.InfoContext(ctx, "tenant status changed",
		slog.String("tenant_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

// UploadLogo stores a tenant logo on the image host and records its
// public URL on the tenant.
func (s *Service) UploadLogo(ctx context.Context, id uuid.UUID, filename, contentType string, content io.Reader) (string, error) {
	if s.storage == nil {
		return "", ErrStorageDisabled
	}

	t, err := s.store.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp":
	default:
		return "", fmt.Errorf("%w: unsupported logo type %q", ErrInvalidParams, ext)
	}

	key := "logos/" + id.String() + ext
	url, err := s.storage.Save(ctx, key, contentType, content)
	if err != nil {
		return "", err
	}

	if err := s.store.SetLogo(ctx, id, url); err != nil {
		return "", err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, t)
	}
	return url, nil
}

// ListTenants returns all tenants for the console overview.
func (s *Service) ListTenants(ctx context.Context) ([]*tenant.Tenant, error) {
	return s.store.List(ctx)
}

// slugify derives a DNS-safe subdomain from a business name:
// "Ramirez Gardening & Sons" -> "ramirez-gardening-sons".
func slugify(name string) string {
	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > tenant.MaxTenantKeyLength {
		slug = strings.Trim(slug[:tenant.MaxTenantKeyLength], "-")
	}
	return slug
}
