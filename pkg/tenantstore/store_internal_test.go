package tenantstore

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/yardbook/yardbook/pkg/tenant"
)

func TestTenantDocConversion(t *testing.T) {
	t.Parallel()

	t.Run("round trips a full record", func(t *testing.T) {
		t.Parallel()

		now := time.Now().Truncate(time.Millisecond)
		src := &tenant.Tenant{
			ID:            uuid.New(),
			Subdomain:     "acme",
			Name:          "Acme Landscaping",
			Domain:        "acmelandscaping.com",
			CustomDomains: []string{"acme-lawns.com"},
			LogoURL:       "https://cdn.yardbook.io/logos/acme.png",
			Subscription: tenant.Subscription{
				Status: tenant.StatusTrialing,
				PlanID: "pro-monthly",
			},
			CreatedAt: now,
			UpdatedAt: now,
		}

		got, err := docFromTenant(src).toTenant()
		require.NoError(t, err)
		assert.Equal(t, src, got)
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		t.Parallel()

		doc := tenantDoc{ID: "not-a-uuid", Subdomain: "acme"}
		_, err := doc.toTenant()
		assert.ErrorIs(t, err, ErrInvalidTenantRecord)
	})
}

func TestWrapLookupErr(t *testing.T) {
	t.Parallel()

	t.Run("missing document maps to not found", func(t *testing.T) {
		t.Parallel()

		err := wrapLookupErr(mongo.ErrNoDocuments)
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		assert.NotErrorIs(t, err, tenant.ErrDirectoryUnavailable)
	})

	t.Run("transport failure maps to directory unavailable", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("server selection timeout")
		err := wrapLookupErr(cause)
		assert.ErrorIs(t, err, tenant.ErrDirectoryUnavailable)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, tenant.ErrTenantNotFound)
	})
}
