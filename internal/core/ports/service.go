package ports

import (
	"context"
	"io"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
)

// Outcome tells the caller what happened to a submission once it passed
// validation.
type Outcome string

const (
	OutcomePersisted                  Outcome = "persisted"
	OutcomePersistenceDeniedRetryable Outcome = "persistence_denied_retryable"
	OutcomePersistenceFailed          Outcome = "persistence_failed"
)

type SubmissionResult struct {
	Outcome       Outcome `json:"outcome"`
	ID            string  `json:"id,omitempty"`
	ReferenceCode string  `json:"reference_code,omitempty"`
	Message       string  `json:"message,omitempty"`
	WhatsAppURL   string  `json:"whatsapp_url,omitempty"`
}

type RegistrationService interface {
	SubmitStudent(ctx context.Context, draft *domain.StudentDraft) (SubmissionResult, error)
	SubmitQuick(ctx context.Context, draft *domain.QuickDraft) (SubmissionResult, error)
	SubmitTutor(ctx context.Context, draft *domain.TutorDraft) (SubmissionResult, error)
}

type WizardView struct {
	ID          string               `json:"id"`
	Step        int                  `json:"step"`
	StepName    string               `json:"step_name"`
	Steps       int                  `json:"steps"`
	Progress    int                  `json:"progress"`
	CanAdvance  bool                 `json:"can_advance"`
	Draft       *domain.StudentDraft `json:"draft"`
	Category    domain.Category      `json:"category"`
	Visibility  domain.Visibility    `json:"visibility"`
	MonthlyFee  int                  `json:"monthly_fee"`
	RateSlider  domain.Slider        `json:"rate_slider"`
	HoursSlider domain.Slider        `json:"hours_slider"`
}

type WizardService interface {
	Start(ctx context.Context) (WizardView, error)
	Get(ctx context.Context, id string) (WizardView, error)
	Update(ctx context.Context, id string, patch domain.StudentDraftPatch) (WizardView, error)
	Next(ctx context.Context, id string) (WizardView, error)
	Back(ctx context.Context, id string) (WizardView, error)
	Submit(ctx context.Context, id string) (SubmissionResult, error)
}

type TermsService interface {
	Sections() []domain.TermsSection
	Accept(ctx context.Context, tutorID string, acceptance domain.TermsAcceptance) error
}

type AdminService interface {
	ListStudents(ctx context.Context, filter domain.RegistrationFilter) ([]domain.StudentRecord, error)
	ListTutors(ctx context.Context, filter domain.RegistrationFilter) ([]domain.TutorRecord, error)
	UpdateStudentStatus(ctx context.Context, id string, update domain.StatusUpdate) error
	UpdateTutorStatus(ctx context.Context, id string, update domain.StatusUpdate) error
	StudentMessage(ctx context.Context, id string) (text, whatsAppURL string, err error)
	ExportStudentsCSV(ctx context.Context, w io.Writer, filter domain.RegistrationFilter) error
	ExportTutorsCSV(ctx context.Context, w io.Writer, filter domain.RegistrationFilter) error
}

type CatalogView struct {
	ClassGrade  string            `json:"class_grade"`
	Category    domain.Category   `json:"category"`
	Visibility  domain.Visibility `json:"visibility"`
	Subjects    []string          `json:"subjects,omitempty"`
	Syllabi     []string          `json:"syllabi,omitempty"`
	Districts   []string          `json:"districts"`
	RateSlider  domain.Slider     `json:"rate_slider"`
	HoursSlider domain.Slider     `json:"hours_slider"`
}

type CatalogService interface {
	Catalog(classGrade string) CatalogView
	Subjects(ctx context.Context) ([]Subject, error)
}

type PopupService interface {
	ShouldShow(ctx context.Context, visitorID string) (bool, error)
}

type ChatReply struct {
	Topic  string `json:"topic"`
	Answer string `json:"answer"`
}

type ChatbotService interface {
	Reply(question string) ChatReply
}
