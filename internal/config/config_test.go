package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ggus39/Habit-Coach/pkg/chain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HABITCOACH_DATA_DIR", "HABITCOACH_API_URL", "HABITCOACH_API_TIMEOUT",
		"HABITCOACH_CALLBACK_ADDR", "HABITCOACH_WALLET",
		"HABITCOACH_REFRESH_INTERVAL", "HABITCOACH_DEBUG",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/agent", cfg.API.BaseURL)
	assert.Equal(t, "127.0.0.1:5173", cfg.CallbackAddr)
	assert.Equal(t, []string{"injected", "metaMask"}, cfg.Wallet.Connectors)
	assert.Equal(t, time.Minute, cfg.RefreshInterval)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
api:
  base_url: https://coach.example.com/agent
  timeout: 5s
wallet:
  address: "0x1111111111111111111111111111111111111111"
  connectors: [metaMask]
refresh_interval: 2m
log:
  debug: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://coach.example.com/agent", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", cfg.Wallet.Address)
	assert.Equal(t, []chain.ConnectorKind{chain.ConnectorMetaMask}, cfg.ConnectorKinds())
	assert.Equal(t, 2*time.Minute, cfg.RefreshInterval)
	assert.True(t, cfg.Log.Debug)
	// Untouched keys keep their defaults.
	assert.Equal(t, "127.0.0.1:5173", cfg.CallbackAddr)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "api:\n  base_url: https://file.example.com\n")
	t.Setenv("HABITCOACH_API_URL", "https://env.example.com")
	t.Setenv("HABITCOACH_WALLET", "0x2222222222222222222222222222222222222222")
	t.Setenv("HABITCOACH_API_TIMEOUT", "7s")
	t.Setenv("HABITCOACH_DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	assert.Equal(t, "0x2222222222222222222222222222222222222222", cfg.Wallet.Address)
	assert.Equal(t, 7*time.Second, cfg.API.Timeout)
	assert.True(t, cfg.Log.Debug)
}

func TestLoadBadYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "api: [unterminated")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		key    string
	}{
		{"bad wallet", func(c *Config) { c.Wallet.Address = "0xnothex" }, "wallet.address"},
		{"bad url", func(c *Config) { c.API.BaseURL = "not a url" }, "api.base_url"},
		{"bad callback", func(c *Config) { c.CallbackAddr = "localhost" }, "callback_addr"},
		{"unknown connector", func(c *Config) { c.Wallet.Connectors = []string{"walletConnect"} }, "wallet.connectors[0]"},
		{"no connectors", func(c *Config) { c.Wallet.Connectors = nil }, "wallet.connectors"},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, "api.timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "coach"), expandHome("~/coach"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
}
