package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no directory entry matches the
	// resolved tenant key.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrTenantInactive is returned when the resolved tenant exists but
	// its subscription status forbids access.
	ErrTenantInactive = errors.New("tenant is inactive")

	// ErrInvalidTenantKey is returned when an explicit tenant identifier
	// has an invalid format.
	ErrInvalidTenantKey = errors.New("invalid tenant key")

	// ErrDirectoryUnavailable is returned when the tenant directory
	// cannot be reached. Unlike ErrTenantNotFound this is transient.
	ErrDirectoryUnavailable = errors.New("tenant directory unavailable")

	// ErrNoTenantInContext is returned when no tenant is found in context.
	ErrNoTenantInContext = errors.New("no tenant in context")

	// ErrAccessDenied is returned when an authenticated principal does
	// not belong to the tenant resolved for the request.
	ErrAccessDenied = errors.New("tenant access denied")
)
