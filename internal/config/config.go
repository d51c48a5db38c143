// Package config holds the CLI configuration: defaults, an optional YAML
// file and the helpers the commands use to build collaborators from it.
package config

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreTextDB = "textdb"
)

// Config is the full CLI configuration.
type Config struct {
	// Catalog is a catalog file or a directory of question files.
	// Empty selects the built-in catalog.
	Catalog  string        `mapstructure:"catalog"`
	LogLevel string        `mapstructure:"log_level"`
	Store    StoreConfig   `mapstructure:"store"`
	HTTP     HTTPConfig    `mapstructure:"http"`
	Metrics  MetricsConfig `mapstructure:"metrics"`
}

// StoreConfig selects and configures the submission blob store.
type StoreConfig struct {
	Kind   string       `mapstructure:"kind"`
	Path   string       `mapstructure:"path"`
	Lock   bool         `mapstructure:"lock"`
	Redis  RedisConfig  `mapstructure:"redis"`
	TextDB TextDBConfig `mapstructure:"textdb"`

	// LockKey and LockTTL tune the lock taken when Lock is set. Zero values
	// keep the gateway defaults.
	LockKey string        `mapstructure:"lock_key"`
	LockTTL time.Duration `mapstructure:"lock_ttl"`

	// EncryptionKey enables at-rest encryption when set. It is a base64
	// encoded 32-byte key; FallbackKeys decrypt blobs written before a rotation.
	EncryptionKey string   `mapstructure:"encryption_key"`
	FallbackKeys  []string `mapstructure:"fallback_keys"`

	// Redact lists regular expressions masked out of answers before storage.
	Redact []string `mapstructure:"redact"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Key      string        `mapstructure:"key"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type TextDBConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Key     string `mapstructure:"key"`
}

type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel: "warn",
		Store: StoreConfig{
			Kind: StoreFile,
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		HTTP: HTTPConfig{Port: 8080},
	}
}

// Load overlays the YAML file at path on Default. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping the values of keys the document omits.
// Unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid yaml: %w", err)
	}
	if raw == nil {
		return cfg.Validate()
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate checks value ranges and cross-field requirements.
func (c Config) Validate() error {
	switch c.Store.Kind {
	case StoreMemory, StoreFile, StoreRedis:
	case StoreTextDB:
		if c.Store.TextDB.Key == "" {
			return fmt.Errorf("store.textdb.key is required for the textdb store")
		}
	default:
		return fmt.Errorf("unknown store kind %q", c.Store.Kind)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Store.LockTTL < 0 {
		return fmt.Errorf("store.lock_ttl must not be negative: %s", c.Store.LockTTL)
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port out of range: %d", c.HTTP.Port)
	}
	if c.Store.EncryptionKey != "" {
		if _, _, err := c.Store.Keys(); err != nil {
			return err
		}
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return l, nil
}

// Keys decodes the active and fallback encryption keys.
func (s StoreConfig) Keys() (active []byte, fallback [][]byte, err error) {
	decode := func(name, v string) ([]byte, error) {
		k, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("%s is not valid base64: %w", name, err)
		}
		if len(k) != 32 {
			return nil, fmt.Errorf("%s must decode to 32 bytes, got %d", name, len(k))
		}
		return k, nil
	}

	if active, err = decode("store.encryption_key", s.EncryptionKey); err != nil {
		return nil, nil, err
	}
	for i, v := range s.FallbackKeys {
		k, err := decode(fmt.Sprintf("store.fallback_keys[%d]", i), v)
		if err != nil {
			return nil, nil, err
		}
		fallback = append(fallback, k)
	}
	return active, fallback, nil
}
