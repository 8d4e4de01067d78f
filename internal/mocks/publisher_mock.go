package mocks

import (
	"context"
	"sync"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
)

// MockNotificationPublisher records notifications instead of sending them.
type MockNotificationPublisher struct {
	mu sync.RWMutex

	Published        []ports.RegistrationNotification
	PublishError     error
	PublishCallCount int

	// PanicWith, when set, makes PublishRegistration panic.
	PanicWith any
}

var _ ports.NotificationPublisher = (*MockNotificationPublisher)(nil)

func NewMockNotificationPublisher() *MockNotificationPublisher {
	return &MockNotificationPublisher{}
}

func (m *MockNotificationPublisher) PublishRegistration(ctx context.Context, n ports.RegistrationNotification) error {
	m.mu.Lock()
	m.PublishCallCount++
	panicWith, err := m.PanicWith, m.PublishError
	if panicWith == nil && err == nil {
		m.Published = append(m.Published, n)
	}
	m.mu.Unlock()

	if panicWith != nil {
		panic(panicWith)
	}
	return err
}

// GetPublished returns a copy of the recorded notifications.
func (m *MockNotificationPublisher) GetPublished() []ports.RegistrationNotification {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ports.RegistrationNotification, len(m.Published))
	copy(out, m.Published)
	return out
}

func (m *MockNotificationPublisher) GetPublishCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.PublishCallCount
}
