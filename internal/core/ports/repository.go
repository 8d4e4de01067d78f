package ports

import (
	"context"
	"errors"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
)

var (
	ErrNotFound = errors.New("registration not found")
	// ErrPersistenceDenied means the store's row-level security policy refused the write.
	ErrPersistenceDenied = errors.New("persistence denied by row-level security")
)

type RegistrationRepository interface {
	InsertStudent(ctx context.Context, rec domain.StudentRecord) error
	InsertTutor(ctx context.Context, rec domain.TutorRecord) error

	ListStudents(ctx context.Context, filter domain.RegistrationFilter) ([]domain.StudentRecord, error)
	ListTutors(ctx context.Context, filter domain.RegistrationFilter) ([]domain.TutorRecord, error)
	GetStudent(ctx context.Context, id string) (*domain.StudentRecord, error)
	GetTutor(ctx context.Context, id string) (*domain.TutorRecord, error)

	UpdateStudentStatus(ctx context.Context, id string, update domain.StatusUpdate) error
	UpdateTutorStatus(ctx context.Context, id string, update domain.StatusUpdate) error
	MarkTermsAccepted(ctx context.Context, tutorID string, status domain.Status) error
}

type Subject struct {
	Name     string          `json:"name"`
	Category domain.Category `json:"category"`
}

type SubjectRepository interface {
	ListSubjects(ctx context.Context) ([]Subject, error)
}
