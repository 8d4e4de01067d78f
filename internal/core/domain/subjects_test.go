package domain_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
)

func TestSubjectSelection_Toggle(t *testing.T) {
	var s domain.SubjectSelection

	if err := s.Toggle("mathematics", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Toggle("Mathematics", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Toggle("Physics", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(s.Selected, []string{"Mathematics", "Physics"}) {
		t.Errorf("expected [Mathematics Physics], got %v", s.Selected)
	}

	if err := s.Toggle("Mathematics", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(s.Selected, []string{"Physics"}) {
		t.Errorf("expected [Physics], got %v", s.Selected)
	}

	if err := s.Toggle("Astrology", true); !errors.Is(err, domain.ErrUnknownSubject) {
		t.Errorf("expected ErrUnknownSubject, got %v", err)
	}
}

func TestSubjectSelection_CanonicalList(t *testing.T) {
	s := domain.SubjectSelection{}
	_ = s.Toggle("English", true)
	_ = s.Toggle("Hindi", true)
	s.SetOther(" Abacus, english ,  ,Vedic Maths, abacus ")

	expected := []string{"English", "Hindi", "Abacus", "Vedic Maths"}
	if got := s.CanonicalList(); !slices.Equal(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestSubjectSelection_Clear(t *testing.T) {
	s := domain.SubjectSelection{}
	_ = s.Toggle("English", true)
	s.SetOther("Abacus")
	s.Clear()
	if len(s.CanonicalList()) != 0 {
		t.Errorf("expected empty selection, got %v", s.CanonicalList())
	}
}

func TestParseSubjectList(t *testing.T) {
	tests := []struct {
		in       string
		expected []string
	}{
		{"", nil},
		{" , ,", nil},
		{"Guitar", []string{"Guitar"}},
		{"Organic Chemistry, Physics,organic chemistry", []string{"Organic Chemistry", "Physics"}},
	}
	for _, tt := range tests {
		if got := domain.ParseSubjectList(tt.in); !slices.Equal(got, tt.expected) {
			t.Errorf("ParseSubjectList(%q): expected %v, got %v", tt.in, tt.expected, got)
		}
	}
}
