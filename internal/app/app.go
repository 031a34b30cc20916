package app

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/SyrineLarbi/Daily-planner/internal/config"
	"github.com/SyrineLarbi/Daily-planner/internal/db"
	"github.com/SyrineLarbi/Daily-planner/internal/icon"
	"github.com/SyrineLarbi/Daily-planner/internal/notify"
	"github.com/SyrineLarbi/Daily-planner/internal/storage"
	"github.com/SyrineLarbi/Daily-planner/internal/store"
	"github.com/gofrs/flock"
)

// DebugEnv enables the debug log when set to "1"
const DebugEnv = "PLANNER_DEBUG"

// App holds the application state and dependencies
type App struct {
	Config   *config.Config
	DB       *db.DB // nil in memory storage mode
	Backend  storage.Backend
	Store    *store.Store
	Icons    *icon.Loader
	Notifier *notify.Notifier
	Logger   *log.Logger

	lockFile *flock.Flock
	logFile  *os.File
}

// New creates a new application instance and loads the board
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{
		Config:   cfg,
		Icons:    icon.NewLoader(cfg.MaxImageBytes),
		Notifier: notify.NewNotifier(cfg.Notifications),
	}
	app.openLog()

	switch cfg.Storage {
	case config.StorageMemory:
		app.Backend = storage.NewMemory(cfg.QuotaBytes)

	default:
		// Acquire lock to ensure a single owner of the database
		if err := app.acquireLock(); err != nil {
			app.closeLog()
			return nil, err
		}

		database, err := db.Open(cfg.DBPath(), cfg.QuotaBytes)
		if err != nil {
			app.releaseLock()
			app.closeLog()
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		app.DB = database
		app.Backend = database
	}

	app.Store = store.New(app.Backend, store.Options{
		DefaultColor: cfg.DefaultColor,
		Logger:       app.Logger,
	})
	app.Store.Load()

	return app, nil
}

// openLog points Logger at the debug log file, or discards output
func (a *App) openLog() {
	a.Logger = log.New(io.Discard, "", 0)
	if os.Getenv(DebugEnv) != "1" {
		return
	}
	f, err := os.OpenFile(a.Config.DebugLogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return
	}
	a.logFile = f
	a.Logger = log.New(f, "planner ", log.LstdFlags|log.Lmicroseconds)
}

func (a *App) closeLog() {
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	a.lockFile = flock.New(a.Config.LockPath())

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another planner instance is already using %s", a.Config.DataDir)
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()
	a.closeLog()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
