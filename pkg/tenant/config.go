package tenant

import "time"

// Config represents the environment configuration for tenant resolution.
type Config struct {
	PlatformHosts     []string      `env:"TENANT_PLATFORM_HOSTS" envSeparator:","`                              // PlatformHosts are reserved hostnames that never resolve to a tenant (localhost and 127.0.0.1 are always reserved).
	SubdomainHeader   string        `env:"TENANT_SUBDOMAIN_HEADER" envDefault:"X-Tenant-Subdomain"`             // SubdomainHeader carries an explicit tenant subdomain override.
	DomainHeader      string        `env:"TENANT_DOMAIN_HEADER" envDefault:"X-Tenant-Domain"`                   // DomainHeader carries an explicit tenant domain override.
	AdminPathPrefixes []string      `env:"TENANT_ADMIN_PATH_PREFIXES" envSeparator:"," envDefault:"/admin,/platform"` // AdminPathPrefixes are path namespaces exempt from tenant resolution.
	CacheTTL          time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`                                    // CacheTTL is how long resolved tenants stay cached.
}
