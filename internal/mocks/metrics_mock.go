package mocks

import (
	"sync"
	"time"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
)

// MockMetrics counts recorder calls keyed by "kind/label".
type MockMetrics struct {
	mu            sync.Mutex
	Submissions   map[string]int
	Notifications map[string]int
	Transitions   map[string]int
	Persistence   int
}

var _ ports.MetricsRecorder = (*MockMetrics)(nil)

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Submissions:   make(map[string]int),
		Notifications: make(map[string]int),
		Transitions:   make(map[string]int),
	}
}

func (m *MockMetrics) SubmissionRecorded(kind domain.RegistrationType, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Submissions[string(kind)+"/"+outcome]++
}

func (m *MockMetrics) PersistenceObserved(domain.RegistrationType, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persistence++
}

func (m *MockMetrics) NotificationRecorded(kind domain.RegistrationType, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications[string(kind)+"/"+boolLabel(ok)]++
}

func (m *MockMetrics) WizardTransition(action string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transitions[action+"/"+boolLabel(ok)]++
}

// Count reads one of the maps under the lock.
func (m *MockMetrics) Count(counts map[string]int, key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return counts[key]
}

func boolLabel(ok bool) string {
	if ok {
		return "true"
	}
	return "false"
}
