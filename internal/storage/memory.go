package storage

import "sync"

// Memory is an in-process Backend, used by tests and by the "memory" storage mode
type Memory struct {
	mu    sync.Mutex
	items map[string]string
	quota int64

	// FailWrites makes every SetItem and RemoveItem fail with the given error when non-nil
	FailWrites error
}

// NewMemory creates an empty in-memory backend.
// A quota of zero or less disables the quota check.
func NewMemory(quota int64) *Memory {
	return &Memory{
		items: make(map[string]string),
		quota: quota,
	}
}

// GetItem implements Backend
func (m *Memory) GetItem(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.items[key]
	return v, ok, nil
}

// SetItem implements Backend
func (m *Memory) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites != nil {
		return m.FailWrites
	}

	if m.quota > 0 {
		var used int64
		for k, v := range m.items {
			if k != key {
				used += ItemSize(k, v)
			}
		}
		if used+ItemSize(key, value) > m.quota {
			return ErrQuotaExceeded
		}
	}

	m.items[key] = value
	return nil
}

// Usage implements Backend
func (m *Memory) Usage() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var used int64
	for k, v := range m.items {
		used += ItemSize(k, v)
	}
	return used, nil
}

// RemoveItem implements Backend
func (m *Memory) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites != nil {
		return m.FailWrites
	}

	delete(m.items, key)
	return nil
}
