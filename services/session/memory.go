package session

import (
	"context"
	"sync"
	"time"

	"hotelsupport/models"
)

// MemoryStore keeps sessions for the lifetime of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*models.Session)}
}

func (m *MemoryStore) Create(_ context.Context, s *models.Session) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[s.ID]; exists {
		return "", models.NewInvalidInput("session %s already exists", s.ID)
	}
	m.sessions[s.ID] = s.Clone()
	return s.ID, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, notFound(id)
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[s.ID]; !ok {
		return notFound(s.ID)
	}
	m.sessions[s.ID] = s.Clone()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return notFound(id)
	}
	delete(m.sessions, id)
	return nil
}

// PurgeIdle drops sessions not updated since before.
func (m *MemoryStore) PurgeIdle(_ context.Context, before time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	purged := 0
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(before) {
			delete(m.sessions, id)
			purged++
		}
	}
	return purged, nil
}
