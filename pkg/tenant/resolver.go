package tenant

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Resolver extracts a tenant key candidate from an HTTP request.
// Returns empty string if no tenant key is present, error if an
// explicitly supplied key is malformed.
type Resolver func(r *http.Request) (string, error)

// NewHeaderResolver extracts a tenant subdomain key directly from an
// HTTP header. The header value is used as-is, which makes it the
// highest-precedence override in a composite chain.
// Defaults to "X-Tenant-Subdomain" if headerName is empty.
func NewHeaderResolver(headerName string) Resolver {
	if headerName == "" {
		headerName = "X-Tenant-Subdomain"
	}

	return func(req *http.Request) (string, error) {
		value := strings.TrimSpace(req.Header.Get(headerName))
		if value == "" {
			return "", nil
		}
		if !IsValidKey(value) {
			return "", fmt.Errorf("%w: header %s", ErrInvalidTenantKey, headerName)
		}
		return strings.ToLower(value), nil
	}
}

// NewDomainHeaderResolver extracts a tenant key from a host-like header
// value run through the domain extractor. Used for the explicit
// "X-Tenant-Domain" override supplied by trusted frontends.
func NewDomainHeaderResolver(headerName string, extractor *DomainExtractor) Resolver {
	if headerName == "" {
		headerName = "X-Tenant-Domain"
	}

	return func(req *http.Request) (string, error) {
		value := req.Header.Get(headerName)
		if value == "" {
			return "", nil
		}
		return extractor.Extract(value), nil
	}
}

// NewHostResolver extracts a tenant key from the request Host header
// run through the domain extractor. This is the fallback resolver for
// ordinary browser traffic.
func NewHostResolver(extractor *DomainExtractor) Resolver {
	return func(req *http.Request) (string, error) {
		return extractor.Extract(req.Host), nil
	}
}

// NewCompositeResolver tries resolvers in order, returning the first
// non-empty key. Order defines precedence: explicit subdomain header,
// then domain header, then Host.
func NewCompositeResolver(resolvers ...Resolver) Resolver {
	return func(r *http.Request) (string, error) {
		var errs []error

		for _, resolve := range resolvers {
			key, err := resolve(r)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if key != "" {
				return key, nil
			}
		}

		if len(errs) > 0 {
			return "", fmt.Errorf("composite resolver: %w", errors.Join(errs...))
		}

		return "", nil
	}
}
