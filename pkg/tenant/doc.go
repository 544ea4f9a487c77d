// Package tenant implements host-based tenant resolution and
// request-scoped tenant context propagation for the multi-tenant
// backend.
//
// Every incoming request is mapped to exactly one resolution outcome
// before any tenant-scoped handler runs: either a concrete tenant
// (looked up in the tenant directory by subdomain or custom domain) or
// an explicit no-tenant state for platform/admin traffic. The outcome
// travels in the request context, so downstream code reads the current
// tenant without threading a parameter through every call.
//
// # Resolution
//
// Tenant keys are taken with the following precedence:
//
//  1. The explicit X-Tenant-Subdomain header (trusted frontends).
//  2. The explicit X-Tenant-Domain header, run through DomainExtractor.
//  3. The request Host header, run through DomainExtractor.
//
// Requests under the configured administrative path prefixes bypass
// resolution entirely. An empty key (reserved platform hostnames such
// as localhost or the apex marketing domain) is not an error: the
// request simply proceeds without tenant scope.
//
// # Usage
//
//	extractor := tenant.NewDomainExtractor("yardbook.io", "app.yardbook.io")
//	resolver := tenant.NewCompositeResolver(
//		tenant.NewHeaderResolver("X-Tenant-Subdomain"),
//		tenant.NewDomainHeaderResolver("X-Tenant-Domain", extractor),
//		tenant.NewHostResolver(extractor),
//	)
//
//	r := chi.NewRouter()
//	r.Use(tenant.Middleware(resolver, directory,
//		tenant.WithSkipPrefixes("/admin", "/platform"),
//	))
//
//	r.Get("/jobs", func(w http.ResponseWriter, r *http.Request) {
//		t := tenant.MustFromContext(r.Context())
//		// every query below is scoped to t.ID
//	})
//
// # Isolation
//
// The resolved tenant lives in the request's context.Context, never in
// package-level state. Concurrently handled requests cannot observe
// each other's tenant, and the value falls out of scope when the
// request's handling chain completes.
package tenant
