package credstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used by tests and by ephemeral runs
// where nothing should touch disk.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string

	// Writes counts mutating calls; tests use it to assert that an
	// operation produced no storage side effects.
	Writes int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++
	m.values[key] = value
	return nil
}

func (m *MemoryStore) SetMany(ctx context.Context, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++
	delete(m.values, key)
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++
	m.values = make(map[string]string)
	return nil
}
