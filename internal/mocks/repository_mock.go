// Package mocks provides in-memory implementations of the port interfaces
// so services and handlers can be tested without Postgres, Redis or RabbitMQ.
package mocks

import (
	"context"
	"sync"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
)

// MockRegistrationRepository implements ports.RegistrationRepository and
// ports.SubjectRepository with maps.
type MockRegistrationRepository struct {
	mu sync.RWMutex

	students map[string]domain.StudentRecord
	tutors   map[string]domain.TutorRecord
	Subjects []ports.Subject

	// Call tracking for verification
	InsertStudentCalls     []domain.StudentRecord
	InsertTutorCalls       []domain.TutorRecord
	StatusUpdates          []domain.StatusUpdate
	MarkTermsAcceptedCalls []string
	ListFilters            []domain.RegistrationFilter

	// Error injection
	InsertStudentError error
	InsertTutorError   error
	ListError          error
	GetError           error
	UpdateError        error
	SubjectsError      error
}

var (
	_ ports.RegistrationRepository = (*MockRegistrationRepository)(nil)
	_ ports.SubjectRepository      = (*MockRegistrationRepository)(nil)
)

func NewMockRegistrationRepository() *MockRegistrationRepository {
	return &MockRegistrationRepository{
		students: make(map[string]domain.StudentRecord),
		tutors:   make(map[string]domain.TutorRecord),
	}
}

// SeedStudent adds a student row for test setup.
func (m *MockRegistrationRepository) SeedStudent(rec domain.StudentRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.students[rec.ID] = rec
}

// SeedTutor adds a tutor row for test setup.
func (m *MockRegistrationRepository) SeedTutor(rec domain.TutorRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tutors[rec.ID] = rec
}

func (m *MockRegistrationRepository) InsertStudent(ctx context.Context, rec domain.StudentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertStudentCalls = append(m.InsertStudentCalls, rec)
	if m.InsertStudentError != nil {
		return m.InsertStudentError
	}
	m.students[rec.ID] = rec
	return nil
}

func (m *MockRegistrationRepository) InsertTutor(ctx context.Context, rec domain.TutorRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertTutorCalls = append(m.InsertTutorCalls, rec)
	if m.InsertTutorError != nil {
		return m.InsertTutorError
	}
	m.tutors[rec.ID] = rec
	return nil
}

func (m *MockRegistrationRepository) ListStudents(ctx context.Context, filter domain.RegistrationFilter) ([]domain.StudentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListFilters = append(m.ListFilters, filter)
	if m.ListError != nil {
		return nil, m.ListError
	}
	var out []domain.StudentRecord
	for _, rec := range m.students {
		if filter.Status == "" || rec.Status == filter.Status {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *MockRegistrationRepository) ListTutors(ctx context.Context, filter domain.RegistrationFilter) ([]domain.TutorRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListFilters = append(m.ListFilters, filter)
	if m.ListError != nil {
		return nil, m.ListError
	}
	var out []domain.TutorRecord
	for _, rec := range m.tutors {
		if filter.Status == "" || rec.Status == filter.Status {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *MockRegistrationRepository) GetStudent(ctx context.Context, id string) (*domain.StudentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	rec, ok := m.students[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &rec, nil
}

func (m *MockRegistrationRepository) GetTutor(ctx context.Context, id string) (*domain.TutorRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	rec, ok := m.tutors[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &rec, nil
}

func (m *MockRegistrationRepository) UpdateStudentStatus(ctx context.Context, id string, update domain.StatusUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatusUpdates = append(m.StatusUpdates, update)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	rec, ok := m.students[id]
	if !ok {
		return ports.ErrNotFound
	}
	rec.Status = update.Status
	if update.AdminComments != nil {
		rec.AdminComments = update.AdminComments
	}
	m.students[id] = rec
	return nil
}

func (m *MockRegistrationRepository) UpdateTutorStatus(ctx context.Context, id string, update domain.StatusUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatusUpdates = append(m.StatusUpdates, update)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	rec, ok := m.tutors[id]
	if !ok {
		return ports.ErrNotFound
	}
	rec.Status = update.Status
	if update.AdminComments != nil {
		rec.AdminComments = update.AdminComments
	}
	m.tutors[id] = rec
	return nil
}

func (m *MockRegistrationRepository) MarkTermsAccepted(ctx context.Context, tutorID string, status domain.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MarkTermsAcceptedCalls = append(m.MarkTermsAcceptedCalls, tutorID)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	rec, ok := m.tutors[tutorID]
	if !ok {
		return ports.ErrNotFound
	}
	rec.Status = status
	m.tutors[tutorID] = rec
	return nil
}

func (m *MockRegistrationRepository) ListSubjects(ctx context.Context) ([]ports.Subject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.SubjectsError != nil {
		return nil, m.SubjectsError
	}
	return m.Subjects, nil
}

// Student returns a stored row for assertions.
func (m *MockRegistrationRepository) Student(id string) (domain.StudentRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.students[id]
	return rec, ok
}

// Tutor returns a stored row for assertions.
func (m *MockRegistrationRepository) Tutor(id string) (domain.TutorRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.tutors[id]
	return rec, ok
}

// InsertCount is the number of insert attempts of either kind.
func (m *MockRegistrationRepository) InsertCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.InsertStudentCalls) + len(m.InsertTutorCalls)
}
