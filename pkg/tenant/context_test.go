package tenant_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yardbook/yardbook/pkg/tenant"
)

func TestContext(t *testing.T) {
	t.Parallel()

	t.Run("round trips a tenant", func(t *testing.T) {
		t.Parallel()

		acme := activeTenant("acme")
		ctx := tenant.WithTenant(context.Background(), acme)

		got, ok := tenant.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, acme, got)
	})

	t.Run("empty context has no tenant", func(t *testing.T) {
		t.Parallel()

		got, ok := tenant.FromContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("nil tenant counts as absent", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithTenant(context.Background(), nil)
		_, ok := tenant.FromContext(ctx)
		assert.False(t, ok)
	})

	t.Run("id from context", func(t *testing.T) {
		t.Parallel()

		acme := activeTenant("acme")
		ctx := tenant.WithTenant(context.Background(), acme)

		id, ok := tenant.IDFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, acme.ID, id)

		id, ok = tenant.IDFromContext(context.Background())
		assert.False(t, ok)
		assert.Equal(t, uuid.UUID{}, id)
	})

	t.Run("must panics without tenant", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			tenant.MustFromContext(context.Background())
		})
	})

	t.Run("logger extractor emits tenant id", func(t *testing.T) {
		t.Parallel()

		extract := tenant.LoggerExtractor()

		acme := activeTenant("acme")
		ctx := tenant.WithTenant(context.Background(), acme)

		attr, ok := extract(ctx)
		require.True(t, ok)
		assert.Equal(t, "tenant_id", attr.Key)
		assert.Equal(t, acme.ID.String(), attr.Value.String())

		_, ok = extract(context.Background())
		assert.False(t, ok)
	})
}
