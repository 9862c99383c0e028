// Package cache provides a small keyed value store used to memoize
// per-patron data fetched from the ILS, such as account blocks and the
// patron group code. Entries are overwritten on every put and are never
// expired or evicted; staleness is accepted for the lifetime of the
// process.
package cache

import (
	"strings"
	"sync"
)

// Store is the interface the ILS client memoizes through.
type Store interface {
	// Get retrieves a value from the store
	Get(key string) (any, bool)
	// Put adds or overwrites a value in the store
	Put(key string, value any)
}

// Key builds a store key from a patron identifier and the kind of
// cached data (e.g. "blocks", "group").
func Key(patronID, kind string) string {
	return strings.Join([]string{patronID, kind}, "|")
}

// Memory is a thread-safe in-memory Store
type Memory struct {
	mu    sync.RWMutex
	items map[string]any
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		items: make(map[string]any),
	}
}

// Get retrieves a value from the store
func (m *Memory) Get(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.items[key]
	return value, ok
}

// Put adds or overwrites a value in the store
func (m *Memory) Put(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = value
}

// Clear removes all items from the store
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]any)
}

// Size returns the number of items in the store
func (m *Memory) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.items)
}
