package store

import (
	"io"
	"sync"
)

// Manager wires the persistence primitive to the four stores and is the
// one dependency every screen takes. All mutating operations across all
// stores share a single write lock, so a well-ordered sequence of
// operations against one key is reflected faithfully even if callers
// overlap.
type Manager struct {
	kv KV
	mu sync.Mutex

	Books   *BookStore
	Saved   *SavedStore
	Profile *ProfileStore
	Session *Session
}

// Open opens the SQLite-backed store at dbPath.
func Open(dbPath string) (*Manager, error) {
	kv, err := OpenSQLiteKV(dbPath)
	if err != nil {
		return nil, err
	}
	return NewManager(kv), nil
}

// NewManager builds a Manager over any KV. Tests use this with MemKV.
func NewManager(kv KV) *Manager {
	m := &Manager{kv: kv}
	m.Books = &BookStore{kv: kv, mu: &m.mu}
	m.Saved = &SavedStore{kv: kv, mu: &m.mu}
	m.Profile = &ProfileStore{kv: kv, mu: &m.mu}
	m.Session = &Session{kv: kv, mu: &m.mu}
	return m
}

// Close releases the underlying store, if it holds resources.
func (m *Manager) Close() error {
	if c, ok := m.kv.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
