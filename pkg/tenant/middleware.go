package tenant

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Middleware creates HTTP middleware that resolves the tenant for each
// incoming request and publishes it into the request context.
//
// Resolution is the outermost wrapping operation around the rest of the
// request's handling chain: it always completes (success or failure)
// before any tenant-scoped handler runs, and a failed resolution
// short-circuits the request. If the request is aborted mid-lookup the
// directory call is cancelled through the request context and no
// context is published.
func Middleware(resolver Resolver, directory Directory, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		cache:          NewInMemoryCache(),
		cacheTTL:       5 * time.Minute,
		errorHandler:   defaultErrorHandler,
		rejectInactive: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Administrative namespaces are never tenant-scoped.
			for _, prefix := range cfg.skipPrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			key, err := resolver(r)
			if err != nil {
				cfg.fail(w, r, "", err)
				return
			}

			// No key is the platform-domain case, not an error.
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if cached, ok := cfg.cache.Get(r.Context(), key); ok {
				cfg.serve(w, r, next, cached)
				return
			}

			tenant, err := directory.GetByKey(r.Context(), key)
			if err != nil {
				cfg.fail(w, r, key, err)
				return
			}

			cfg.cache.Set(r.Context(), key, tenant, cfg.cacheTTL)
			cfg.serve(w, r, next, tenant)
		})
	}
}

// serve enforces subscription status and runs the handler chain with
// the tenant published in context.
func (c *config) serve(w http.ResponseWriter, r *http.Request, next http.Handler, tenant *Tenant) {
	if c.rejectInactive && tenant.Inactive() {
		c.fail(w, r, tenant.Subdomain, ErrTenantInactive)
		return
	}

	ctx := WithTenant(r.Context(), tenant)
	next.ServeHTTP(w, r.WithContext(ctx))
}

// fail logs the offending key for diagnostics and delegates the
// client-facing response to the error handler, which never echoes it.
func (c *config) fail(w http.ResponseWriter, r *http.Request, key string, err error) {
	if c.logger != nil {
		c.logger.WarnContext(r.Context(), "tenant resolution failed",
			slog.String("key", key),
			slog.String("host", r.Host),
			slog.Any("error", err),
		)
	}
	c.errorHandler(w, r, err)
}

// RequireTenant creates middleware that ensures a tenant was resolved
// for the request. Mount it on route groups that must never run
// without tenant scope.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			if errors.Is(err, ErrNoTenantInContext) {
				http.Error(w, "Tenant required", http.StatusNotFound)
				return
			}
			defaultErrorHandler(w, r, err)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// MiddlewareFromConfig builds the standard resolution middleware from
// environment configuration: explicit subdomain header, then domain
// header, then Host, with the configured admin prefixes exempt.
func MiddlewareFromConfig(cfg Config, directory Directory, opts ...Option) func(http.Handler) http.Handler {
	extractor := NewDomainExtractor(cfg.PlatformHosts...)
	resolver := NewCompositeResolver(
		NewHeaderResolver(cfg.SubdomainHeader),
		NewDomainHeaderResolver(cfg.DomainHeader, extractor),
		NewHostResolver(extractor),
	)

	configOpts := make([]Option, 0, len(opts)+2)
	configOpts = append(configOpts, WithSkipPrefixes(cfg.AdminPathPrefixes...))
	if cfg.CacheTTL > 0 {
		configOpts = append(configOpts, WithCacheTTL(cfg.CacheTTL))
	}
	configOpts = append(configOpts, opts...)

	return Middleware(resolver, directory, configOpts...)
}
