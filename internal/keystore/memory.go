package keystore

import (
	"context"
	"sync"
)

// Compile-time check: Memory implements Store.
var _ Store = (*Memory)(nil)

// Memory is an in-process Store. Safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	apiKey string
	set    bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory { return &Memory{} }

// Get returns the stored key or ErrNotFound.
func (m *Memory) Get(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.set {
		return "", ErrNotFound
	}
	return m.apiKey, nil
}

// Set stores the key, replacing any previous value.
func (m *Memory) Set(_ context.Context, apiKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiKey = apiKey
	m.set = true
	return nil
}

// Remove clears the stored key.
func (m *Memory) Remove(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiKey = ""
	m.set = false
	return nil
}

// Validate reports whether a well-formed key is stored.
func (m *Memory) Validate(ctx context.Context) (bool, error) {
	key, err := m.Get(ctx)
	if err != nil {
		if err == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return WellFormed(key), nil
}
