package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Server.FrontendURL)
	assert.Equal(t, 600, cfg.Cache.TTLSeconds)
	assert.Equal(t, 30, cfg.Providers.HTTPTimeoutSeconds)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BACKEND_PORT", "9001")
	t.Setenv("ETHERSCAN_API_KEY", "key-123")
	t.Setenv("CACHE_TTL_SECONDS", "60")

	cfg := Load()

	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "key-123", cfg.Providers.EtherscanAPIKey)
	assert.Equal(t, 60, cfg.Cache.TTLSeconds)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("BACKEND_PORT", "not-a-port")

	cfg := Load()

	assert.Equal(t, 8000, cfg.Server.Port)
}
