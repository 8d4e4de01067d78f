package handler

import (
	"net/http"
	"testing"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
)

func TestWizardFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/wizard/students", nil, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	view := decodeBody[ports.WizardView](t, rec)
	base := "/wizard/students/" + view.ID

	rec = s.do(t, http.MethodPost, base+"/next", nil, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for an incomplete step, got %d", rec.Code)
	}
	if moved := decodeBody[WizardMoveError](t, rec); moved.Wizard.Step != 0 {
		t.Errorf("expected to stay on step 0, got %d", moved.Wizard.Step)
	}

	patches := []map[string]any{
		{"student_name": "Anu", "parent_name": "Ravi", "phone": "9847012345", "email": "ravi@example.com", "class_grade": "btech"},
		{"university": "KTU", "branch": "ECE", "custom_subjects": "Signals, Networks"},
		{"district": "Kollam", "area": "Chinnakada", "mode": "both"},
	}
	for i, p := range patches {
		if rec := s.do(t, http.MethodPatch, base, p, nil); rec.Code != http.StatusOK {
			t.Fatalf("patch %d: expected 200, got %d: %s", i, rec.Code, rec.Body.String())
		}
		if rec := s.do(t, http.MethodPost, base+"/next", nil, nil); rec.Code != http.StatusOK {
			t.Fatalf("next %d: expected 200, got %d: %s", i, rec.Code, rec.Body.String())
		}
	}

	rec = s.do(t, http.MethodPatch, base, map[string]any{"hourly_rate": 600, "hours_per_month": 12}, nil)
	view = decodeBody[ports.WizardView](t, rec)
	if view.StepName != "schedule" || view.MonthlyFee != 7200 || view.RateSlider.Min != 400 {
		t.Errorf("unexpected schedule view %+v", view)
	}

	rec = s.do(t, http.MethodPost, base+"/submit", nil, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := s.do(t, http.MethodGet, base, nil, nil); rec.Code != http.StatusNotFound {
		t.Errorf("expected the session to be gone, got %d", rec.Code)
	}
}

func TestWizard_BackFromFirstStep(t *testing.T) {
	s := newTestServer(t)
	view := decodeBody[ports.WizardView](t, s.do(t, http.MethodPost, "/wizard/students", nil, nil))

	rec := s.do(t, http.MethodPost, "/wizard/students/"+view.ID+"/back", nil, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestWizard_SubmitEarly(t *testing.T) {
	s := newTestServer(t)
	view := decodeBody[ports.WizardView](t, s.do(t, http.MethodPost, "/wizard/students", nil, nil))

	rec := s.do(t, http.MethodPost, "/wizard/students/"+view.ID+"/submit", nil, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
	if s.repo.InsertCount() != 0 {
		t.Error("expected no store call")
	}
}

func TestWizard_UnknownSession(t *testing.T) {
	s := newTestServer(t)
	if rec := s.do(t, http.MethodGet, "/wizard/students/missing", nil, nil); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
