package store

import (
	"context"
	"sync"
)

// MemKV is an in-memory KV used by tests and throwaway sessions. It is
// safe for concurrent use but nothing survives the process.
//
// GetErr, SetErr and RemoveErr, when set, fail the matching operation
// before it touches the map. Tests use them to exercise storage error
// paths.
type MemKV struct {
	mu   sync.RWMutex
	data map[string]string

	GetErr    error
	SetErr    error
	RemoveErr error
}

// NewMemKV returns an empty in-memory store.
func NewMemKV() *MemKV {
	return &MemKV{data: make(map[string]string)}
}

func (m *MemKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.data[key] = value
	return nil
}

func (m *MemKV) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	delete(m.data, key)
	return nil
}
