package assistant

import (
	"sync"

	"careercoach-backend/internal/llm"
)

// Manager keeps one Context per owner.
type Manager struct {
	factory    llm.ClientFactory
	defaultKey string

	mu       sync.Mutex
	sessions map[string]*Context
}

// NewManager returns a manager whose sessions start with defaultKey.
func NewManager(factory llm.ClientFactory, defaultKey string) *Manager {
	return &Manager{
		factory:    factory,
		defaultKey: defaultKey,
		sessions:   make(map[string]*Context),
	}
}

// For returns the owner's session, creating it on first use.
func (m *Manager) For(ownerID string) *Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ctx, ok := m.sessions[ownerID]; ok {
		return ctx
	}
	ctx := NewContext(m.factory, m.defaultKey)
	m.sessions[ownerID] = ctx
	return ctx
}
