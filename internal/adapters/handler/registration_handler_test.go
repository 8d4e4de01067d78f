package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
)

func studentRequest() StudentRegistrationRequest {
	return StudentRegistrationRequest{
		StudentName: "Anu",
		ParentName:  "Ravi",
		Phone:       "9847012345",
		Email:       "ravi@example.com",
		ClassGrade:  "11",
		Syllabus:    "CBSE",
		Subjects:    []string{"Physics", "chemistry"},
		District:    "Ernakulam",
		Area:        "Kakkanad",
		Mode:        "home",
		HourlyRate:  100,
	}
}

func TestRegisterStudent_Success(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/students/register", studentRequest(), nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody[SubmissionResponse](t, rec)
	if resp.Title != "Registration Successful!" || resp.Outcome != ports.OutcomePersisted {
		t.Errorf("unexpected response %+v", resp)
	}
	if !strings.HasPrefix(resp.WhatsAppURL, "https://wa.me/919876543210?text=") {
		t.Errorf("unexpected whatsapp url %q", resp.WhatsAppURL)
	}

	rec2, ok := s.repo.Student(resp.ID)
	if !ok {
		t.Fatal("expected stored student")
	}
	if *rec2.HourlyRate != 350 || rec2.MonthlyBudget != 7000 {
		t.Errorf("expected rate clamped to the class 11 floor, got %d/%d", *rec2.HourlyRate, rec2.MonthlyBudget)
	}
	if strings.Join(rec2.Subjects, ",") != "Physics,Chemistry" {
		t.Errorf("unexpected subjects %v", rec2.Subjects)
	}
}

func TestRegisterStudent_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StudentRegistrationRequest)
		field  string
	}{
		{"missing_grade", func(r *StudentRegistrationRequest) { r.ClassGrade = "" }, "class_grade"},
		{"bad_mode", func(r *StudentRegistrationRequest) { r.Mode = "hybrid" }, "mode"},
		{"no_subjects", func(r *StudentRegistrationRequest) { r.Subjects = nil }, "subjects"},
		{"unknown_subject", func(r *StudentRegistrationRequest) { r.Subjects = []string{"Alchemy"} }, "subjects"},
		{"bad_email", func(r *StudentRegistrationRequest) { r.Email = "nope" }, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			req := studentRequest()
			tt.mutate(&req)

			rec := s.do(t, http.MethodPost, "/students/register", req, nil)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
			}
			resp := decodeBody[ErrorResponse](t, rec)
			found := false
			for _, f := range resp.Fields {
				if f.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %q in %+v", tt.field, resp.Fields)
			}
			if s.repo.InsertCount() != 0 {
				t.Error("expected no store call")
			}
		})
	}
}

func TestRegisterStudent_InvalidJSON(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/students/register", "not an object", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestRegisterStudent_PersistenceOutcomes(t *testing.T) {
	tests := []struct {
		name      string
		storeErr  error
		status    int
		retryable bool
		title     string
	}{
		{"denied", fmt.Errorf("%w: policy", ports.ErrPersistenceDenied), http.StatusServiceUnavailable, true, "Submission Not Saved"},
		{"failed", errors.New("timeout"), http.StatusInternalServerError, false, "Submission Failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.repo.InsertStudentError = tt.storeErr

			rec := s.do(t, http.MethodPost, "/students/register", studentRequest(), nil)
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			resp := decodeBody[SubmissionResponse](t, rec)
			if resp.Retryable != tt.retryable || resp.Title != tt.title {
				t.Errorf("unexpected response %+v", resp)
			}
			if resp.ID != "" {
				t.Error("expected no id for an unsaved registration")
			}
		})
	}
}

func TestRegisterQuick(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/students/quick-register", QuickRegistrationRequest{
		StudentName: "Meera",
		Phone:       "9847012345",
		ClassGrade:  "neet",
		Subjects:    "Biology, Chemistry",
		District:    "Kozhikode",
		Area:        "Calicut",
		Mode:        "online",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[SubmissionResponse](t, rec)
	stored, _ := s.repo.Student(resp.ID)
	if stored.MonthlyBudget != domain.DefaultQuickBudget {
		t.Errorf("expected default budget %d, got %d", domain.DefaultQuickBudget, stored.MonthlyBudget)
	}
	if !strings.Contains(resp.Enquiry, "Budget: Rs.5000/month") {
		t.Errorf("unexpected enquiry:\n%s", resp.Enquiry)
	}
}

func tutorRequest() TutorRegistrationRequest {
	terms := domain.NewTermsAcceptance()
	for i := range domain.TermsSections {
		_ = terms.Check(i, true)
	}
	terms.FinalConfirmation = true
	return TutorRegistrationRequest{
		FullName:      "Lakshmi",
		Phone:         "9847000000",
		Email:         "lakshmi@example.com",
		Qualification: "MSc",
		Subjects:      []string{"Physics"},
		Classes:       []string{"11", "12"},
		Languages:     []string{"English"},
		District:      "Thrissur",
		Area:          "Ayyanthole",
		Mode:          "both",
		Terms:         terms,
	}
}

func TestRegisterTutor(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/tutors/register", tutorRequest(), nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[SubmissionResponse](t, rec)
	if resp.WhatsAppURL != "" {
		t.Error("expected no WhatsApp link for tutors")
	}
	stored, ok := s.repo.Tutor(resp.ID)
	if !ok || stored.TermsAcceptedAt == nil {
		t.Errorf("expected stored tutor with terms accepted, got %+v", stored)
	}
}

func TestRegisterTutor_TermsGate(t *testing.T) {
	s := newTestServer(t)
	req := tutorRequest()
	req.Terms.FinalConfirmation = false

	rec := s.do(t, http.MethodPost, "/tutors/register", req, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if s.repo.InsertCount() != 0 {
		t.Error("expected no store call")
	}
}
