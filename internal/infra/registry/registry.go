// Package registry implements the user registry the engagement core resolves
// identities against. The registry owns users; the core never creates or
// deletes them, only looks them up by id.
package registry

import (
	"fmt"
	"sync"

	"github.com/aircast-fm/aircast/internal/domain"
	"github.com/aircast-fm/aircast/internal/infra/sqlite"
)

// Manager implements domain.UserRegistry.
// It keeps an in-memory cache in front of the listeners table; when
// constructed without a database it is a purely in-memory registry.
type Manager struct {
	mu    sync.RWMutex
	db    *sqlite.DB
	cache map[string]domain.User
}

// NewManager creates a Manager backed by db. db may be nil.
func NewManager(db *sqlite.DB) *Manager {
	return &Manager{db: db, cache: make(map[string]domain.User)}
}

// Load warms the cache from the listeners table.
func (m *Manager) Load() error {
	if m.db == nil {
		return nil
	}
	users, err := m.db.ListListeners()
	if err != nil {
		return fmt.Errorf("load listeners: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range users {
		m.cache[u.ID] = u
	}
	return nil
}

// Resolve returns the user for id, or domain.ErrUserNotFound.
func (m *Manager) Resolve(id string) (domain.User, error) {
	if id == "" {
		return domain.User{}, domain.ErrUserNotFound
	}

	m.mu.RLock()
	u, ok := m.cache[id]
	m.mu.RUnlock()
	if ok {
		return u, nil
	}

	if m.db != nil {
		u, found, err := m.db.GetListener(id)
		if err != nil {
			return domain.User{}, fmt.Errorf("resolve %s: %w", id, err)
		}
		if found {
			m.mu.Lock()
			m.cache[id] = u
			m.mu.Unlock()
			return u, nil
		}
	}

	return domain.User{}, domain.ErrUserNotFound
}

// Register adds or updates a user.
func (m *Manager) Register(u domain.User) error {
	if u.ID == "" {
		return domain.ErrEmptyUserID
	}
	if u.DisplayName == "" {
		u.DisplayName = u.ID
	}
	if m.db != nil {
		if err := m.db.UpsertListener(u); err != nil {
			return fmt.Errorf("register %s: %w", u.ID, err)
		}
	}

	m.mu.Lock()
	m.cache[u.ID] = u
	m.mu.Unlock()
	return nil
}

// Count returns the number of known users.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cache)
}
