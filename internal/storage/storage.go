// Package storage defines the local key-value storage the board is persisted to.
//
// The contract mirrors a browser's localStorage: string keys, string values and
// a byte quota shared by all keys. Writes over the quota fail with
// ErrQuotaExceeded and leave the previous value in place.
package storage

import "errors"

// DefaultQuota matches the common browser localStorage allowance
const DefaultQuota = 5 * 1024 * 1024

// ErrQuotaExceeded is returned when a write would exceed the storage quota
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Backend is a local key-value store
type Backend interface {
	// GetItem returns the value stored under key and whether it exists
	GetItem(key string) (string, bool, error)
	// SetItem stores value under key, replacing any previous value
	SetItem(key, value string) error
	// RemoveItem deletes key; removing a missing key is not an error
	RemoveItem(key string) error
	// Usage returns the bytes of all keys and values counted against the quota
	Usage() (int64, error)
}

// ItemSize is the number of bytes a key/value pair counts against the quota
func ItemSize(key, value string) int64 {
	return int64(len(key) + len(value))
}
