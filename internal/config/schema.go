package config

import (
	"path/filepath"
	"time"
)

// Storage modes
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config represents the planner configuration
type Config struct {
	// Directory holding the database, lock file and debug log
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// Storage backend: "sqlite" (persistent) or "memory" (discarded on exit)
	Storage string `yaml:"storage" mapstructure:"storage"`

	// Bytes the local storage may hold across all keys
	QuotaBytes int64 `yaml:"quota_bytes" mapstructure:"quota_bytes"`

	// Largest image file accepted as a task icon
	MaxImageBytes int64 `yaml:"max_image_bytes" mapstructure:"max_image_bytes"`

	// Color preselected for new tasks
	DefaultColor string `yaml:"default_color" mapstructure:"default_color"`

	// Terminal theme name
	Theme string `yaml:"theme" mapstructure:"theme"`

	// How often the terminal backdrop rotates (0 disables)
	BackdropInterval time.Duration `yaml:"backdrop_interval" mapstructure:"backdrop_interval"`

	// Send desktop notifications for alerts
	Notifications bool `yaml:"notifications" mapstructure:"notifications"`

	// Browser board settings
	Serve ServeConfig `yaml:"serve" mapstructure:"serve"`
}

// ServeConfig configures the local browser board
type ServeConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// DBPath returns the SQLite database path inside DataDir
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "planner.db")
}

// LockPath returns the single-instance lock path inside DataDir
func (c *Config) LockPath() string {
	return filepath.Join(c.DataDir, "planner.lock")
}

// DebugLogPath returns the debug log path inside DataDir
func (c *Config) DebugLogPath() string {
	return filepath.Join(c.DataDir, "planner-debug.log")
}
