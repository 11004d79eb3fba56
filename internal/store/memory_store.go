package store

import (
	"context"
	"sync"

	"fitcoach/coach-app/internal/domain"
)

// MemoryStore implements StateStore in process memory. It exists for tests
// and for running the app without any durable backend.
type MemoryStore struct {
	mu    sync.Mutex
	state *domain.AppState
	saves int
}

// NewMemoryStore creates an empty in-memory state store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (*domain.AppState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, ErrNoState
	}
	return m.state.Clone(), nil
}

func (m *MemoryStore) Save(ctx context.Context, state *domain.AppState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state.Clone()
	m.saves++
	return nil
}

// SaveCount reports how many saves have happened. Used by tests to check that
// every transition persisted.
func (m *MemoryStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
