package db

import (
	"database/sql"
	"time"

	"github.com/SyrineLarbi/Daily-planner/internal/storage"
)

var _ storage.Backend = (*DB)(nil)

// GetItem returns the value stored under key
func (db *DB) GetItem(key string) (string, bool, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM local_storage WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetItem stores value under key. The quota check and the write share one
// transaction so a rejected write never replaces the previous value.
func (db *DB) SetItem(key, value string) error {
	return db.withTx(func(tx *sql.Tx) error {
		if db.quota > 0 {
			var used int64
			err := tx.QueryRow(`
				SELECT COALESCE(SUM(LENGTH(CAST(key AS BLOB)) + LENGTH(CAST(value AS BLOB))), 0)
				FROM local_storage WHERE key != ?
			`, key).Scan(&used)
			if err != nil {
				return err
			}
			if used+storage.ItemSize(key, value) > db.quota {
				return storage.ErrQuotaExceeded
			}
		}

		_, err := tx.Exec(`
			INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, value, time.Now())
		return err
	})
}

// RemoveItem deletes key
func (db *DB) RemoveItem(key string) error {
	_, err := db.Exec(`DELETE FROM local_storage WHERE key = ?`, key)
	return err
}

// Usage returns the number of bytes currently counted against the quota
func (db *DB) Usage() (int64, error) {
	var used int64
	err := db.QueryRow(`
		SELECT COALESCE(SUM(LENGTH(CAST(key AS BLOB)) + LENGTH(CAST(value AS BLOB))), 0)
		FROM local_storage
	`).Scan(&used)
	return used, err
}
