package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/lasersoldier/MuseMemo/application/ports"
)

// Manager hands out one Store per authenticated user. Stores are
// created lazily on first request and hydrated from the caller's
// session token.
type Manager struct {
	mu      sync.Mutex
	gateway ports.Gateway
	logger  *zap.Logger
	stores  map[string]*Store
}

// NewManager creates a store manager over the given gateway
func NewManager(gateway ports.Gateway, logger *zap.Logger) *Manager {
	return &Manager{
		gateway: gateway,
		logger:  logger,
		stores:  make(map[string]*Store),
	}
}

// Anonymous returns a fresh store with no session, for the login and
// registration flows and for demo mode.
func (m *Manager) Anonymous() *Store {
	return New(m.gateway, m.logger)
}

// ForSession returns the store for a user, creating and hydrating it on
// first access.
func (m *Manager) ForSession(ctx context.Context, userID, accessToken string) (*Store, error) {
	m.mu.Lock()
	if s, ok := m.stores[userID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	s := New(m.gateway, m.logger)
	if _, err := s.Hydrate(ctx, accessToken); err != nil {
		s.Close()
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.stores[userID]; ok {
		// Lost the race; keep the first hydrated store
		s.Close()
		return existing, nil
	}
	m.stores[userID] = s
	return s, nil
}

// Adopt registers an already-hydrated store for a user, replacing any
// previous one. Used after a successful login.
func (m *Manager) Adopt(userID string, s *Store) {
	m.mu.Lock()
	old := m.stores[userID]
	m.stores[userID] = s
	m.mu.Unlock()

	if old != nil && old != s {
		old.Close()
	}
}

// Drop logs the user's store out and discards it
func (m *Manager) Drop(ctx context.Context, userID string) {
	m.mu.Lock()
	s, ok := m.stores[userID]
	delete(m.stores, userID)
	m.mu.Unlock()

	if !ok {
		return
	}
	s.Logout(ctx)
	s.Close()
}

// Close tears down every store, waiting for in-flight sync tasks
func (m *Manager) Close() {
	m.mu.Lock()
	stores := make([]*Store, 0, len(m.stores))
	for _, s := range m.stores {
		stores = append(stores, s)
	}
	m.stores = make(map[string]*Store)
	m.mu.Unlock()

	for _, s := range stores {
		s.Close()
	}
}
