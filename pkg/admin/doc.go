// Package admin implements the platform-operator console API: tenant
// creation, suspension, and logo management.
//
// These routes live under a reserved admin prefix that the resolution
// middleware exempts from tenant scoping, and must be mounted behind
// super-admin authentication. This is the only code path besides the
// billing sync that writes to the tenant directory.
package admin
