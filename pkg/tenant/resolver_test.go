package tenant_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yardbook/yardbook/pkg/tenant"
)

func TestHeaderResolver(t *testing.T) {
	t.Parallel()

	t.Run("extracts key from header", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewHeaderResolver("X-Tenant-Subdomain")
		req := httptest.NewRequest("GET", "http://yardbook.io/", nil)
		req.Header.Set("X-Tenant-Subdomain", "acme")

		key, err := resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "acme", key)
	})

	t.Run("defaults header name", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewHeaderResolver("")
		req := httptest.NewRequest("GET", "http://yardbook.io/", nil)
		req.Header.Set("X-Tenant-Subdomain", "acme")

		key, err := resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "acme", key)
	})

	t.Run("returns empty without header", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewHeaderResolver("X-Tenant-Subdomain")
		req := httptest.NewRequest("GET", "http://yardbook.io/", nil)

		key, err := resolve(req)
		require.NoError(t, err)
		assert.Empty(t, key)
	})

	t.Run("rejects malformed key", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewHeaderResolver("X-Tenant-Subdomain")
		req := httptest.NewRequest("GET", "http://yardbook.io/", nil)
		req.Header.Set("X-Tenant-Subdomain", "not a subdomain!")

		key, err := resolve(req)
		assert.ErrorIs(t, err, tenant.ErrInvalidTenantKey)
		assert.Empty(t, key)
	})

	t.Run("lowercases the key", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewHeaderResolver("X-Tenant-Subdomain")
		req := httptest.NewRequest("GET", "http://yardbook.io/", nil)
		req.Header.Set("X-Tenant-Subdomain", "ACME")

		key, err := resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "acme", key)
	})
}

func TestDomainHeaderResolver(t *testing.T) {
	t.Parallel()

	extractor := tenant.NewDomainExtractor("yardbook.io")

	t.Run("runs header value through extractor", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewDomainHeaderResolver("X-Tenant-Domain", extractor)
		req := httptest.NewRequest("GET", "http://yardbook.io/", nil)
		req.Header.Set("X-Tenant-Domain", "acme.yardbook.io")

		key, err := resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "acme", key)
	})

	t.Run("custom domain passes through whole", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewDomainHeaderResolver("X-Tenant-Domain", extractor)
		req := httptest.NewRequest("GET", "http://yardbook.io/", nil)
		req.Header.Set("X-Tenant-Domain", "ramirezgardens.com")

		key, err := resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "ramirezgardens.com", key)
	})

	t.Run("returns empty without header", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewDomainHeaderResolver("X-Tenant-Domain", extractor)
		req := httptest.NewRequest("GET", "http://yardbook.io/", nil)

		key, err := resolve(req)
		require.NoError(t, err)
		assert.Empty(t, key)
	})
}

func TestHostResolver(t *testing.T) {
	t.Parallel()

	extractor := tenant.NewDomainExtractor("yardbook.io")

	t.Run("extracts key from request host", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewHostResolver(extractor)
		req := httptest.NewRequest("GET", "http://acme.yardbook.io/jobs", nil)

		key, err := resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "acme", key)
	})

	t.Run("platform host yields no key", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewHostResolver(extractor)
		req := httptest.NewRequest("GET", "http://yardbook.io/", nil)

		key, err := resolve(req)
		require.NoError(t, err)
		assert.Empty(t, key)
	})
}

func TestCompositeResolver(t *testing.T) {
	t.Parallel()

	extractor := tenant.NewDomainExtractor("yardbook.io")
	resolve := tenant.NewCompositeResolver(
		tenant.NewHeaderResolver("X-Tenant-Subdomain"),
		tenant.NewDomainHeaderResolver("X-Tenant-Domain", extractor),
		tenant.NewHostResolver(extractor),
	)

	t.Run("subdomain header wins over host", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://acme.yardbook.io/", nil)
		req.Header.Set("X-Tenant-Subdomain", "beta")

		key, err := resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "beta", key)
	})

	t.Run("domain header wins over host", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://acme.yardbook.io/", nil)
		req.Header.Set("X-Tenant-Domain", "beta.yardbook.io")

		key, err := resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "beta", key)
	})

	t.Run("falls back to host", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://acme.yardbook.io/", nil)

		key, err := resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "acme", key)
	})

	t.Run("no source yields empty key", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://yardbook.io/", nil)

		key, err := resolve(req)
		require.NoError(t, err)
		assert.Empty(t, key)
	})

	t.Run("aggregates errors when nothing resolves", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://yardbook.io/", nil)
		req.Header.Set("X-Tenant-Subdomain", "bad key!")

		key, err := resolve(req)
		assert.ErrorIs(t, err, tenant.ErrInvalidTenantKey)
		assert.Empty(t, key)
	})
}
