package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ggus39/Habit-Coach/pkg/chain"
	"github.com/ggus39/Habit-Coach/pkg/client"
)

type APIConfig struct {
	BaseURL string        `yaml:"base_url" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

type WalletConfig struct {
	// Address is the injected wallet. Empty means none is injected.
	Address    string   `yaml:"address" validate:"omitempty,eth_addr"`
	Connectors []string `yaml:"connectors" validate:"min=1,dive,oneof=injected metaMask"`
}

type LogConfig struct {
	Debug bool `yaml:"debug"`
}

type Config struct {
	DataDir         string        `yaml:"data_dir" validate:"required"`
	API             APIConfig     `yaml:"api"`
	CallbackAddr    string        `yaml:"callback_addr" validate:"required,hostname_port"`
	Wallet          WalletConfig  `yaml:"wallet"`
	RefreshInterval time.Duration `yaml:"refresh_interval" validate:"gte=0"`
	Log             LogConfig     `yaml:"log"`
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	connectors := make([]string, 0, len(chain.Default().Connectors))
	for _, k := range chain.Default().Connectors {
		connectors = append(connectors, string(k))
	}
	return &Config{
		DataDir: filepath.Join(home, ".habitcoach"),
		API: APIConfig{
			BaseURL: "http://localhost:8080/agent",
			Timeout: client.DefaultTimeout,
		},
		CallbackAddr: "127.0.0.1:5173",
		Wallet: WalletConfig{
			Connectors: connectors,
		},
		RefreshInterval: time.Minute,
	}
}

// DefaultPath is where Load looks when no --config flag is given.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".habitcoach", "config.yaml")
}

// Load reads a YAML config file and merges it with defaults. A missing file
// is not an error. Environment variables are overlaid last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("config.Load: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse %s: %w", path, err)
		}
	}

	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment variables on top of config values.
func (c *Config) applyEnv() {
	if v := os.Getenv("HABITCOACH_DATA_DIR"); v != "" {
		c.DataDir = expandHome(v)
	}
	if v := os.Getenv("HABITCOACH_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("HABITCOACH_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.API.Timeout = d
		}
	}
	if v := os.Getenv("HABITCOACH_CALLBACK_ADDR"); v != "" {
		c.CallbackAddr = v
	}
	if v := os.Getenv("HABITCOACH_WALLET"); v != "" {
		c.Wallet.Address = v
	}
	if v := os.Getenv("HABITCOACH_REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RefreshInterval = d
		}
	}
	if v := os.Getenv("HABITCOACH_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Log.Debug = b
		}
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field formats. The first failing field is reported by its
// yaml key.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("config: invalid %s (%s)", yamlKey(fe.Namespace()), fe.Tag())
	}
	return fmt.Errorf("config: %w", err)
}

// ConnectorKinds returns the configured connector order.
func (c *Config) ConnectorKinds() []chain.ConnectorKind {
	out := make([]chain.ConnectorKind, 0, len(c.Wallet.Connectors))
	for _, k := range c.Wallet.Connectors {
		out = append(out, chain.ConnectorKind(k))
	}
	return out
}

var yamlKeys = map[string]string{
	"DataDir":         "data_dir",
	"API":             "api",
	"BaseURL":         "base_url",
	"Timeout":         "timeout",
	"CallbackAddr":    "callback_addr",
	"Wallet":          "wallet",
	"Address":         "address",
	"Connectors":      "connectors",
	"RefreshInterval": "refresh_interval",
}

// yamlKey turns "Config.API.BaseURL" into "api.base_url".
func yamlKey(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		name, idx, _ := strings.Cut(p, "[")
		if k, ok := yamlKeys[name]; ok {
			name = k
		}
		if idx != "" {
			name += "[" + idx
		}
		parts[i] = name
	}
	return strings.Join(parts, ".")
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
