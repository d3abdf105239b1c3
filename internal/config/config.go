// Package config loads the application configuration from an optional YAML
// file with environment-variable overrides. Secrets are expected to come
// from the environment (a local .env is honored via godotenv).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	LogLevel string `mapstructure:"log_level"`

	Ops struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"ops"`

	Moltin struct {
		BaseURL      string `mapstructure:"base_url"`
		ClientID     string `mapstructure:"client_id"`
		ClientSecret string `mapstructure:"client_secret"`
	} `mapstructure:"moltin"`

	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Telegram struct {
		Token string `mapstructure:"token"`
	} `mapstructure:"telegram"`
}

// envOverrides maps environment variables onto dotted config paths.
var envOverrides = map[string]string{
	"LOG_LEVEL":            "log_level",
	"OPS_ADDR":             "ops.addr",
	"MOLTIN_BASE_URL":      "moltin.base_url",
	"MOLTIN_CLIENT_ID":     "moltin.client_id",
	"MOLTIN_CLIENT_SECRET": "moltin.client_secret",
	"REDIS_ADDR":           "redis.addr",
	"REDIS_PASSWORD":       "redis.password",
	"REDIS_DB":             "redis.db",
	"TG_BOT_TOKEN":         "telegram.token",
}

// Load reads the YAML file at path (may be empty for env-only setups),
// applies environment overrides, and decodes the result.
func Load(path string) (*Config, error) {
	// Best-effort: a missing .env is not an error.
	_ = godotenv.Load()

	raw := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	for env, key := range envOverrides {
		if val, ok := os.LookupEnv(env); ok && val != "" {
			setPath(raw, key, coerce(key, val))
		}
	}

	cfg := defaults()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.LogLevel = "info"
	cfg.Ops.Addr = ":9090"
	cfg.Redis.Addr = "localhost:6379"
	return cfg
}

func (c *Config) validate() error {
	var missing []string
	if c.Moltin.ClientID == "" {
		missing = append(missing, "moltin.client_id")
	}
	if c.Moltin.ClientSecret == "" {
		missing = append(missing, "moltin.client_secret")
	}
	if len(missing) > 0 {
		return errors.New("missing required config: " + strings.Join(missing, ", "))
	}
	return nil
}

// setPath writes a value into a nested map following a dotted key.
func setPath(m map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[part] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

// coerce keeps numeric env values numeric so the decode stays strict about
// shape even with weak typing on.
func coerce(key, val string) any {
	if key == "redis.db" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return val
}
