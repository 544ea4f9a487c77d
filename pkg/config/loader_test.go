package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yardbook/yardbook/pkg/config"
)

type testConfig struct {
	Host  string `env:"CONFIGTEST_HOST" envDefault:"localhost"`
	Port  int    `env:"CONFIGTEST_PORT" envDefault:"8080"`
	Token string `env:"CONFIGTEST_TOKEN"`
}

type requiredConfig struct {
	Secret string `env:"CONFIGTEST_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults apply when unset", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, 8080, cfg.Port)
		assert.Empty(t, cfg.Token)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("CONFIGTEST_HOST", "0.0.0.0")
		t.Setenv("CONFIGTEST_PORT", "9000")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "0.0.0.0", cfg.Host)
		assert.Equal(t, 9000, cfg.Port)
	})

	t.Run("missing required variable fails", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("unparsable value fails", func(t *testing.T) {
		t.Setenv("CONFIGTEST_PORT", "not-a-number")

		var cfg testConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer rejected", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		assert.Panics(t, func() {
			var cfg requiredConfig
			config.MustLoad(&cfg)
		})
	})

	t.Run("succeeds with environment set", func(t *testing.T) {
		t.Setenv("CONFIGTEST_SECRET", "s3cret")

		var cfg requiredConfig
		assert.NotPanics(t, func() { config.MustLoad(&cfg) })
		assert.Equal(t, "s3cret", cfg.Secret)
	})
}
