package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		old, ok := os.LookupEnv(k)
		os.Unsetenv(k)
		if ok {
			t.Cleanup(func() { os.Setenv(k, old) })
		}
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t, "PORT", "ENV", "FETCH_WORKERS", "FETCH_MAX_RETRIES", "EXCHANGE_SUFFIX", "LOG_FORMAT")

	cfg, err := Load()
	require.NoError(t, err)

	// Check defaults
	assert.Equal(t, "8089", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 8, cfg.Fetch.Workers)
	assert.Equal(t, 2, cfg.Fetch.MaxRetries)
	assert.Equal(t, ".NS", cfg.Universe.ExchangeSuffix)
	assert.Equal(t, "1y", cfg.Fetch.HistoryPeriod)
}

func TestLoadWithCustomValues(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("FETCH_WORKERS", "16")
	t.Setenv("FETCH_TIMEOUT", "45s")
	t.Setenv("FETCH_RATE_PER_SEC", "2.5")
	t.Setenv("OWNERSHIP_ENABLED", "false")
	t.Setenv("EXCHANGE_SUFFIX", ".BO")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 16, cfg.Fetch.Workers)
	assert.Equal(t, 45*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 2.5, cfg.Fetch.RatePerSec)
	assert.False(t, cfg.Ownership.Enabled)
	assert.Equal(t, ".BO", cfg.Universe.ExchangeSuffix)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("FETCH_WORKERS", "many")
	t.Setenv("FETCH_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Fetch.Workers)
	assert.Equal(t, 20*time.Second, cfg.Fetch.Timeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero workers", func(c *Config) { c.Fetch.Workers = 0 }, true},
		{"too many retries", func(c *Config) { c.Fetch.MaxRetries = 9 }, true},
		{"short timeout", func(c *Config) { c.Fetch.Timeout = 100 * time.Millisecond }, true},
		{"bad env", func(c *Config) { c.Env = "qa" }, true},
		{"suffix without dot", func(c *Config) { c.Universe.ExchangeSuffix = "NS" }, true},
		{"bad yahoo url", func(c *Config) { c.Yahoo.QueryURL = "not a url" }, true},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
