package domain_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
)

func TestStudentDraftPatch_Apply(t *testing.T) {
	d := domain.NewStudentDraft()
	patch := domain.StudentDraftPatch{
		StudentName: ptr("  Anu "),
		ClassGrade:  ptr("11"),
		Syllabus:    ptr("ICSE"),
		University:  ptr("ignored"),
		SubjectToggles: []domain.SubjectToggle{
			{Subject: "physics", Included: true},
			{Subject: "Chemistry", Included: true},
		},
		OtherSubjects:  ptr("Abacus"),
		CustomSubjects: ptr("ignored"),
		HourlyRate:     ptr(10),
	}
	if err := patch.Apply(d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.StudentName != "Anu" {
		t.Errorf("expected trimmed name, got %q", d.StudentName)
	}
	if d.Syllabus != "ICSE" {
		t.Errorf("expected syllabus ICSE, got %q", d.Syllabus)
	}
	if d.University != "" || d.CustomSubjects != "" {
		t.Error("expected fields hidden for school to be ignored")
	}
	if !slices.Equal(d.SubjectList(), []string{"Physics", "Chemistry", "Abacus"}) {
		t.Errorf("unexpected subjects %v", d.SubjectList())
	}
	if d.Pricing.HourlyRate != 350 {
		t.Errorf("expected rate clamped to 350, got %d", d.Pricing.HourlyRate)
	}
}

func TestStudentDraftPatch_NilFieldsUntouched(t *testing.T) {
	d := schoolDraft()
	if err := (domain.StudentDraftPatch{}).Apply(d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("expected draft unchanged and valid, got %v", err)
	}
}

func TestStudentDraftPatch_UnknownSubject(t *testing.T) {
	d := schoolDraft()
	patch := domain.StudentDraftPatch{
		SubjectToggles: []domain.SubjectToggle{{Subject: "Alchemy", Included: true}},
	}
	var ve *domain.ValidationError
	if err := patch.Apply(d); !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStudentDraftPatch_GradeAppliedFirst(t *testing.T) {
	d := schoolDraft()
	patch := domain.StudentDraftPatch{
		ClassGrade:     ptr("mba"),
		University:     ptr("Kerala University"),
		Branch:         ptr("Finance"),
		CustomSubjects: ptr("Accounting"),
	}
	if err := patch.Apply(d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.University != "Kerala University" || d.Branch != "Finance" {
		t.Errorf("expected university fields set after category switch, got %q/%q", d.University, d.Branch)
	}
	if !slices.Equal(d.SubjectList(), []string{"Accounting"}) {
		t.Errorf("unexpected subjects %v", d.SubjectList())
	}
	if d.Pricing.HourlyRate != 400 {
		t.Errorf("expected rate raised to 400, got %d", d.Pricing.HourlyRate)
	}
}
