// Package tenantstore persists the tenant directory in MongoDB and
// provides the shared Redis resolution cache.
//
// The resolution core only reads through tenant.Directory; the write
// methods here back the admin console (tenant creation, suspension,
// logos) and the billing webhook sync (subscription status changes).
// Lookup failures are mapped onto the core's error taxonomy: a missing
// document becomes tenant.ErrTenantNotFound, any transport failure
// wraps tenant.ErrDirectoryUnavailable so the two are never conflated.
package tenantstore
