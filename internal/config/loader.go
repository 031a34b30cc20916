package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides
const EnvPrefix = "PLANNER"

// Load merges defaults, the config file and PLANNER_* environment variables.
// An empty path reads DefaultPath when it exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that have no sensible fallback
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("invalid storage %q (want %q or %q)", c.Storage, StorageSQLite, StorageMemory)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.BackdropInterval < 0 {
		return fmt.Errorf("backdrop_interval must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("storage", cfg.Storage)
	v.SetDefault("quota_bytes", cfg.QuotaBytes)
	v.SetDefault("max_image_bytes", cfg.MaxImageBytes)
	v.SetDefault("default_color", cfg.DefaultColor)
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("backdrop_interval", cfg.BackdropInterval)
	v.SetDefault("notifications", cfg.Notifications)
	v.SetDefault("serve.addr", cfg.Serve.Addr)
}
