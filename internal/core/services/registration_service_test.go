package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/mocks"
)

const testWhatsApp = "919876543210"

func testFormatter() *domain.Formatter {
	f := domain.NewFormatter("+" + testWhatsApp)
	f.Now = func() time.Time { return time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC) }
	f.RandN = func(int) int { return 123 }
	return f
}

type registrationFixture struct {
	repo      *mocks.MockRegistrationRepository
	publisher *mocks.MockNotificationPublisher
	metrics   *mocks.MockMetrics
	svc       *RegistrationService
}

func newRegistrationFixture() *registrationFixture {
	f := &registrationFixture{
		repo:      mocks.NewMockRegistrationRepository(),
		publisher: mocks.NewMockNotificationPublisher(),
		metrics:   mocks.NewMockMetrics(),
	}
	f.svc = NewRegistrationService(f.repo, f.publisher, testFormatter(), f.metrics, RegistrationConfig{
		WhatsAppNumber:      testWhatsApp,
		NotificationTimeout: time.Second,
	})
	f.svc.newID = func() string { return "reg-1" }
	return f
}

func validStudentDraft() *domain.StudentDraft {
	d := domain.NewStudentDraft()
	d.StudentName = "Anu"
	d.ParentName = "Ravi"
	d.Phone = "9847012345"
	d.Email = "ravi@example.com"
	d.SetClassGrade("5")
	d.Syllabus = "State Board"
	_ = d.Subjects.Toggle("English", true)
	d.District = "Ernakulam"
	d.Area = "Edappally"
	d.Mode = domain.ModeHome
	return d
}

func acceptedTerms() domain.TermsAcceptance {
	t := domain.NewTermsAcceptance()
	for i := range domain.TermsSections {
		_ = t.Check(i, true)
	}
	t.FinalConfirmation = true
	return t
}

func validTutorDraft() *domain.TutorDraft {
	d := &domain.TutorDraft{
		FullName:      "Lakshmi",
		Phone:         "9847000000",
		Email:         "lakshmi@example.com",
		Qualification: "BEd",
		District:      "Kottayam",
		Area:          "Nagampadam",
		Mode:          domain.ModeBoth,
		Terms:         acceptedTerms(),
	}
	_ = d.Subjects.Toggle("Mathematics", true)
	d.SetClasses([]string{"9", "10"})
	return d
}

func TestRegistrationService_SubmitStudent_Persisted(t *testing.T) {
	f := newRegistrationFixture()

	res, err := f.svc.SubmitStudent(context.Background(), validStudentDraft())
	f.svc.Wait()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Outcome != ports.OutcomePersisted {
		t.Errorf("expected persisted, got %s", res.Outcome)
	}
	if res.ID != "reg-1" || res.ReferenceCode != "EN261014123" {
		t.Errorf("unexpected id/ref %s/%s", res.ID, res.ReferenceCode)
	}
	if !strings.Contains(res.Message, "Hours: 20 hrs/month @ Rs.250/hr (approx Rs.5000/month)") {
		t.Errorf("unexpected message:\n%s", res.Message)
	}
	if !strings.HasPrefix(res.WhatsAppURL, "https://wa.me/"+testWhatsApp+"?text=") {
		t.Errorf("unexpected whatsapp url %s", res.WhatsAppURL)
	}

	rec, ok := f.repo.Student("reg-1")
	if !ok {
		t.Fatal("expected the record to be stored")
	}
	if rec.MonthlyBudget != 5000 || rec.Status != domain.StatusNew {
		t.Errorf("unexpected stored record %+v", rec)
	}

	published := f.publisher.GetPublished()
	if len(published) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(published))
	}
	if published[0].Type != domain.RegistrationStudent || published[0].ReferenceCode != res.ReferenceCode {
		t.Errorf("unexpected notification %+v", published[0])
	}
	if got := f.metrics.Count(f.metrics.Submissions, "student/persisted"); got != 1 {
		t.Errorf("expected 1 persisted submission metric, got %d", got)
	}
}

func TestRegistrationService_ValidationRejectsBeforeStore(t *testing.T) {
	tests := []struct {
		name   string
		submit func(*RegistrationService) error
	}{
		{
			name: "student_without_subjects",
			submit: func(s *RegistrationService) error {
				d := validStudentDraft()
				d.Subjects.Clear()
				_, err := s.SubmitStudent(context.Background(), d)
				return err
			},
		},
		{
			name: "non_school_student_without_custom_subjects",
			submit: func(s *RegistrationService) error {
				d := validStudentDraft()
				d.SetClassGrade("bcom")
				_, err := s.SubmitStudent(context.Background(), d)
				return err
			},
		},
		{
			name: "quick_without_phone",
			submit: func(s *RegistrationService) error {
				_, err := s.SubmitQuick(context.Background(), &domain.QuickDraft{
					StudentName: "A", ClassGrade: "5", Subjects: "Maths",
					District: "Kollam", Area: "X", Mode: domain.ModeHome, MonthlyBudget: 5000,
				})
				return err
			},
		},
		{
			name: "tutor_without_terms",
			submit: func(s *RegistrationService) error {
				d := validTutorDraft()
				d.Terms = domain.NewTermsAcceptance()
				_, err := s.SubmitTutor(context.Background(), d)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRegistrationFixture()
			err := tt.submit(f.svc)
			f.svc.Wait()

			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if f.repo.InsertCount() != 0 {
				t.Error("expected no store call")
			}
			if f.publisher.GetPublishCount() != 0 {
				t.Error("expected no notification")
			}
		})
	}
}

func TestRegistrationService_PersistenceOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		outcome  ports.Outcome
	}{
		{
			name:     "row_level_security_denial",
			storeErr: fmt.Errorf("%w: new row violates row-level security policy", ports.ErrPersistenceDenied),
			outcome:  ports.OutcomePersistenceDeniedRetryable,
		},
		{
			name:     "other_store_failure",
			storeErr: errors.New("connection reset by peer"),
			outcome:  ports.OutcomePersistenceFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRegistrationFixture()
			f.repo.InsertStudentError = tt.storeErr

			res, err := f.svc.SubmitStudent(context.Background(), validStudentDraft())
			f.svc.Wait()

			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, tt.storeErr) {
				t.Errorf("expected wrapped store error, got %v", err)
			}
			if res.Outcome != tt.outcome {
				t.Errorf("expected %s, got %s", tt.outcome, res.Outcome)
			}
			if res.ID != "" || res.WhatsAppURL != "" {
				t.Error("expected no id or link for an unsaved registration")
			}
			if f.publisher.GetPublishCount() != 0 {
				t.Error("expected no notification for an unsaved registration")
			}
		})
	}
}

func TestRegistrationService_NotificationFailureDoesNotFailSubmission(t *testing.T) {
	f := newRegistrationFixture()
	f.publisher.PublishError = errors.New("broker down")

	res, err := f.svc.SubmitStudent(context.Background(), validStudentDraft())
	f.svc.Wait()

	if err != nil || res.Outcome != ports.OutcomePersisted {
		t.Fatalf("expected persisted, got %s (%v)", res.Outcome, err)
	}
	if f.publisher.GetPublishCount() != 1 {
		t.Errorf("expected exactly one dispatch attempt, got %d", f.publisher.GetPublishCount())
	}
	if got := f.metrics.Count(f.metrics.Notifications, "student/false"); got != 1 {
		t.Errorf("expected 1 failed notification metric, got %d", got)
	}
}

func TestRegistrationService_NotificationPanicIsContained(t *testing.T) {
	f := newRegistrationFixture()
	f.publisher.PanicWith = "boom"

	res, err := f.svc.SubmitTutor(context.Background(), validTutorDraft())
	f.svc.Wait()

	if err != nil || res.Outcome != ports.OutcomePersisted {
		t.Fatalf("expected persisted, got %s (%v)", res.Outcome, err)
	}
	if got := f.metrics.Count(f.metrics.Notifications, "tutor/false"); got != 1 {
		t.Errorf("expected 1 failed notification metric, got %d", got)
	}
}

func TestRegistrationService_NotificationOutlivesRequestContext(t *testing.T) {
	f := newRegistrationFixture()
	ctx, cancel := context.WithCancel(context.Background())

	if _, err := f.svc.SubmitQuick(ctx, &domain.QuickDraft{
		StudentName: "Meera", Phone: "9847012345", ClassGrade: "jee", Subjects: "Physics",
		District: "Kannur", Area: "Thalassery", Mode: domain.ModeOnline, MonthlyBudget: 6000,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancel()
	f.svc.Wait()

	if len(f.publisher.GetPublished()) != 1 {
		t.Errorf("expected the notification to be sent after the request ended")
	}
}

func TestRegistrationService_NilPublisher(t *testing.T) {
	repo := mocks.NewMockRegistrationRepository()
	svc := NewRegistrationService(repo, nil, testFormatter(), nil, RegistrationConfig{WhatsAppNumber: testWhatsApp})

	res, err := svc.SubmitTutor(context.Background(), validTutorDraft())
	svc.Wait()
	if err != nil || res.Outcome != ports.OutcomePersisted {
		t.Fatalf("expected persisted, got %s (%v)", res.Outcome, err)
	}
	if res.WhatsAppURL != "" {
		t.Error("expected no WhatsApp link for tutor registrations")
	}
}
