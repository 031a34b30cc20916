package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SyrineLarbi/Daily-planner/internal/db"
	"github.com/SyrineLarbi/Daily-planner/internal/icon"
	"github.com/SyrineLarbi/Daily-planner/internal/model"
	"github.com/SyrineLarbi/Daily-planner/internal/storage"
	"gopkg.in/yaml.v3"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir:          db.DefaultDataDir(),
		Storage:          StorageSQLite,
		QuotaBytes:       storage.DefaultQuota,
		MaxImageBytes:    icon.DefaultMaxBytes,
		DefaultColor:     model.DefaultColor,
		Theme:            "nord",
		BackdropInterval: 20 * time.Second,
		Notifications:    true,
		Serve: ServeConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

// DefaultPath returns the path of the user config file
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".daily-planner", "config.yaml")
	}
	return filepath.Join(dir, "daily-planner", "config.yaml")
}

const defaultHeader = `# Daily planner configuration
#
# Every key can be overridden with an environment variable:
# PLANNER_<KEY>, nested keys joined with "_" (e.g. PLANNER_SERVE_ADDR).
#
# storage: "sqlite" keeps tasks in data_dir/planner.db, "memory" forgets them on exit.
# quota_bytes mirrors the browser localStorage allowance; saves beyond it are refused.
# backdrop_interval: how often the terminal backdrop rotates, "0s" to disable.

`

// WriteDefault writes the default configuration to path, creating parent directories
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, append([]byte(defaultHeader), data...), 0644)
}
