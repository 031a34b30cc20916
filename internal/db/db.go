// Package db keeps the board's key/value local storage in a SQLite file.
package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DB is a storage.Backend over the local_storage table
type DB struct {
	*sql.DB

	// quota is the total number of key+value bytes the table may hold (<= 0: unlimited)
	quota int64
}

// DefaultDataDir is where the board file lives when the config names no data_dir
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".daily-planner"
	}
	return filepath.Join(home, ".local", "share", "daily-planner")
}

// dsn opens the file in WAL mode so the web server and a CLI command
// reading the same board wait for each other instead of failing
func dsn(path string) string {
	return fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
}

// Open opens the board file at path, creating it and its directory when
// missing, and brings the local_storage table up to date. Writes that would
// push the stored bytes past quota are rejected with storage.ErrQuotaExceeded.
func Open(path string, quota int64) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open board storage: %w", err)
	}

	// One connection: the quota check and the write must see the same table
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to board storage: %w", err)
	}

	db := &DB{DB: sqlDB, quota: quota}
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// migrate creates or upgrades the local_storage table from the embedded
// goose files. Reopening an up-to-date file applies nothing.
func (db *DB) migrate() error {
	// goose logs to stderr, which would draw over the terminal board
	goose.SetLogger(log.New(io.Discard, "", 0))
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("failed to migrate local storage: %w", err)
	}
	return nil
}

// Close closes the board file
func (db *DB) Close() error {
	return db.DB.Close()
}

// withTx runs fn in a transaction. An error from fn rolls back every
// statement fn ran, so a rejected SetItem leaves the stored value untouched.
func (db *DB) withTx(fn func(*sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return tx.Commit()
}
