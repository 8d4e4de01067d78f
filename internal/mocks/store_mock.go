package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
)

// MockDraftStore keeps wizard sessions in memory. Sessions are stored
// serialized so tests observe the same copy semantics as Redis.
type MockDraftStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte

	SaveError   error
	LoadError   error
	DeleteError error
	DeleteCalls []string
}

var _ ports.DraftStore = (*MockDraftStore)(nil)

func NewMockDraftStore() *MockDraftStore {
	return &MockDraftStore{sessions: make(map[string][]byte)}
}

func (m *MockDraftStore) Save(ctx context.Context, s ports.WizardSession) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	body, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = body
	return nil
}

func (m *MockDraftStore) Load(ctx context.Context, id string) (*ports.WizardSession, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	m.mu.RLock()
	body, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ports.ErrNotFound
	}
	var s ports.WizardSession
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *MockDraftStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockDraftStore) Has(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[id]
	return ok
}

// MockSeenStateStore is an in-memory popup seen-state.
type MockSeenStateStore struct {
	mu   sync.Mutex
	seen map[string]bool

	LookupError error
	MarkError   error
}

var _ ports.SeenStateStore = (*MockSeenStateStore)(nil)

func NewMockSeenStateStore() *MockSeenStateStore {
	return &MockSeenStateStore{seen: make(map[string]bool)}
}

func (m *MockSeenStateStore) HasBeenShown(ctx context.Context, visitorID string) (bool, error) {
	if m.LookupError != nil {
		return false, m.LookupError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seen[visitorID], nil
}

func (m *MockSeenStateStore) MarkShown(ctx context.Context, visitorID string) error {
	if m.MarkError != nil {
		return m.MarkError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen[visitorID] = true
	return nil
}
