package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "APP_ENV", "ROOT_DOMAIN", "DEV_HOSTS", "RESERVED_SUBDOMAINS",
		"TRUST_FORWARDED_HOST", "PROVISIONING_TIMEOUT", "STORE_DRIVER", "EVENTS_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.ServerPort)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 30*time.Second, cfg.ProvisioningTimeout)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, []string{"api", "admin", "app"}, cfg.ReservedSubdomains)
	assert.Nil(t, cfg.DevHosts)
	assert.False(t, cfg.TrustForwardedHost)
	assert.False(t, cfg.EventsEnabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ROOT_DOMAIN", "betelhub.com.br")
	t.Setenv("DEV_HOSTS", "dev.local, ,tenant.test")
	t.Setenv("TRUST_FORWARDED_HOST", "true")
	t.Setenv("PROVISIONING_TIMEOUT", "5s")
	t.Setenv("STORE_DRIVER", "MEMORY")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "betelhub.com.br", cfg.RootDomain)
	assert.Equal(t, []string{"dev.local", "tenant.test"}, cfg.DevHosts)
	assert.True(t, cfg.TrustForwardedHost)
	assert.Equal(t, 5*time.Second, cfg.ProvisioningTimeout)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PROVISIONING_TIMEOUT", "soon")
	t.Setenv("TRUST_FORWARDED_HOST", "perhaps")
	t.Setenv("LOG_BUFFER_SIZE", "many")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.ProvisioningTimeout)
	assert.False(t, cfg.TrustForwardedHost)
	assert.Equal(t, 500, cfg.LogBufferSize)
}
