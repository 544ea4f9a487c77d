package tenant

import (
	"regexp"
	"strings"
)

const (
	// MaxTenantKeyLength prevents abuse via very long keys and keeps
	// subdomain keys DNS-compatible.
	MaxTenantKeyLength = 63
	// MaxHostKeyLength bounds full-host custom domain keys (RFC 1035).
	MaxHostKeyLength = 253
)

var (
	// labelPattern ensures DNS-safe subdomain labels: alphanumeric start, allows hyphens
	labelPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*$`)
	// hostPattern ensures full-host keys contain only hostname characters
	hostPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9.-]*$`)
)

// DomainExtractor maps raw host strings to tenant key candidates.
// It is pure and side-effect free; malformed or absent input yields "".
type DomainExtractor struct {
	reserved map[string]struct{}
}

// NewDomainExtractor creates an extractor that never resolves the given
// reserved platform/admin hostnames to a tenant. The local development
// aliases "localhost" and "127.0.0.1" are always reserved.
func NewDomainExtractor(reservedHosts ...string) *DomainExtractor {
	reserved := map[string]struct{}{
		"localhost": {},
		"127.0.0.1": {},
	}
	for _, h := range reservedHosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			reserved[h] = struct{}{}
		}
	}
	return &DomainExtractor{reserved: reserved}
}

// Extract maps a Host header value to a tenant key candidate.
//
// Precedence:
//  1. Reserved platform hostnames never resolve to a tenant ("").
//  2. A dotless hyphenated host resolves to itself (local development
//     machine names like "ramirez-gardening").
//  3. A host with three or more labels whose first label is not "www"
//     resolves to its first label ("acme.example.com" -> "acme").
//  4. Anything else resolves to the full host, which the directory
//     matches against registered custom domains. Note this includes
//     "www."-prefixed apex hosts: "www.example.com" is looked up as the
//     custom-domain key "www.example.com", not "example.com".
func (e *DomainExtractor) Extract(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return ""
	}

	// Remove port if present
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	if host == "" {
		return ""
	}

	if _, ok := e.reserved[host]; ok {
		return ""
	}

	if !strings.Contains(host, ".") && strings.Contains(host, "-") {
		if !IsValidKey(host) {
			return ""
		}
		return host
	}

	labels := strings.Split(host, ".")
	if len(labels) >= 3 && labels[0] != "www" {
		if !IsValidKey(labels[0]) {
			return ""
		}
		return labels[0]
	}

	if len(host) > MaxHostKeyLength || !hostPattern.MatchString(host) {
		return ""
	}
	return host
}

// IsValidKey reports whether key is a well-formed subdomain-style
// tenant key. Used by resolution and by administrative tenant creation.
func IsValidKey(key string) bool {
	if key == "" || len(key) > MaxTenantKeyLength {
		return false
	}
	return labelPattern.MatchString(key)
}
