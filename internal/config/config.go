// Package config loads the daemon configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/NovaPlay-Games/social_bridge/internal/social"
)

// Config is the daemon configuration.
type Config struct {
	// Platform selects which provider backends are built.
	Platform string `yaml:"platform"`

	// Providers lists the enabled network identities.
	Providers []string `yaml:"providers"`

	Boundary BoundaryConfig `yaml:"boundary"`
	Admin    AdminConfig    `yaml:"admin"`
	Store    StoreConfig    `yaml:"store"`
	Logging  LoggingConfig  `yaml:"logging"`
	Likes    LikeConfig     `yaml:"likes"`

	// Rewards maps reward ids carried in operation payloads to
	// grantable rewards.
	Rewards []RewardConfig `yaml:"rewards"`
}

// BoundaryConfig configures the websocket endpoint the native runtime
// connects to.
type BoundaryConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	Path       string `yaml:"path"`
}

// AdminConfig configures the HTTP admin surface.
type AdminConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// StoreConfig selects the profile store backend.
type StoreConfig struct {
	// Backend is one of "memory", "redis", "postgres".
	Backend string `yaml:"backend"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Postgres struct {
		DSN string `yaml:"dsn"`
	} `yaml:"postgres"`
}

// LoggingConfig configures the process loggers.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// LikeConfig caps fire-and-forget page likes.
type LikeConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// RewardConfig declares one grantable reward.
type RewardConfig struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Amount int64  `yaml:"amount"`
}

// Load reads the configuration from a specific path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefaultPath loads config/socialbridge.yaml.
func LoadDefaultPath() (*Config, error) {
	return Load(filepath.Join("config", "socialbridge.yaml"))
}

// LoadOrDefault loads the config or returns the default when the file
// is missing or unreadable.
func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns the default configuration: every android-capable
// provider enabled, memory profile store, local listeners.
func Default() *Config {
	return &Config{
		Platform:  string(social.PlatformAndroid),
		Providers: []string{string(social.ProviderFacebook), string(social.ProviderGoogle)},
		Boundary: BoundaryConfig{
			ListenAddr: ":8090",
			Path:       "/boundary",
		},
		Admin: AdminConfig{
			ListenAddr: ":8091",
		},
		Store: StoreConfig{
			Backend: "memory",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Likes: LikeConfig{
			PerSecond: 5,
			Burst:     5,
		},
	}
}

// Validate checks the fields that cannot be defaulted away.
func (c *Config) Validate() error {
	switch social.TargetPlatform(c.Platform) {
	case social.PlatformIOS, social.PlatformAndroid, social.PlatformEditor:
	default:
		return fmt.Errorf("unknown platform %q", c.Platform)
	}
	for _, raw := range c.Providers {
		if _, err := social.ParseProviderID(raw); err != nil {
			return fmt.Errorf("providers: %w", err)
		}
	}
	switch c.Store.Backend {
	case "", "memory":
	case "redis":
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("store: redis backend requires an addr")
		}
	case "postgres":
		if c.Store.Postgres.DSN == "" {
			return fmt.Errorf("store: postgres backend requires a dsn")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Boundary.ListenAddr == "" {
		return fmt.Errorf("boundary: listen_addr is required")
	}
	return nil
}

// ProviderIDs returns the enabled providers as parsed identities.
// Validate has already checked them.
func (c *Config) ProviderIDs() []social.ProviderID {
	out := make([]social.ProviderID, 0, len(c.Providers))
	for _, raw := range c.Providers {
		id, err := social.ParseProviderID(raw)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}
