package tenantstore

import "errors"

var (
	// ErrSubdomainTaken is returned when creating a tenant with a
	// subdomain that is already registered.
	ErrSubdomainTaken = errors.New("tenant subdomain already taken")

	// ErrInvalidTenantRecord is returned when a persisted tenant
	// document cannot be mapped back to a tenant.
	ErrInvalidTenantRecord = errors.New("invalid tenant record")
)
