package database

import "sync"

// Manager owns the process-wide database handle. The handle is written during
// bootstrap and by the setup-initialize route; all request paths read through
// Get so an in-flight request never observes a half-updated handle.
type Manager struct {
	mu sync.RWMutex
	db *DB
}

func NewManager() *Manager {
	return &Manager{}
}

// Get returns the current handle, or nil when no database is configured.
func (m *Manager) Get() *DB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.db
}

// Swap replaces the handle and returns the previous one so the caller can
// close it after in-flight requests drain.
func (m *Manager) Swap(db *DB) *DB {
	m.mu.Lock()
	defer m.mu.Unlock()
	old := m.db
	m.db = db
	return old
}
