package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("CONFIG_NAME", "does-not-exist")
	t.Setenv("STOREFRONT_JWT_SECRET", "s3cret")
	t.Setenv("STOREFRONT_DATABASE_DRIVER", "sqlite")
	t.Setenv("STOREFRONT_DATABASE_DSN", ":memory:")
	t.Setenv("STOREFRONT_SERVER_PORT", "9090")
	t.Setenv("STOREFRONT_JWT_TOKEN_TTL", "2h")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.DSN)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.TokenTTL)
	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, "config/sizechart.yaml", cfg.SizeChartFile)
}

func TestNewConfig_MissingSecret(t *testing.T) {
	t.Setenv("CONFIG_NAME", "does-not-exist")
	t.Setenv("STOREFRONT_JWT_SECRET", "")

	_, err := NewConfig()
	assert.Error(t, err)
}
