package domain

import (
	"errors"
	"strings"
)

// SchoolSubjects is the fixed checklist offered for school grades.
var SchoolSubjects = []string{
	"Mathematics",
	"Physics",
	"Chemistry",
	"Biology",
	"Science",
	"Social Science",
	"English",
	"Malayalam",
	"Hindi",
	"Sanskrit",
	"Arabic",
	"French",
	"Computer Science",
	"Accountancy",
	"Business Studies",
	"Economics",
	"History",
	"Geography",
	"Political Science",
	"Environmental Studies",
}

var ErrUnknownSubject = errors.New("subject is not in the checklist")

// SubjectSelection holds checklist picks plus a free-text supplement.
// Selected never contains duplicates; Other is kept as typed and
// tokenized on demand.
type SubjectSelection struct {
	Selected []string `json:"selected"`
	Other    string   `json:"other,omitempty"`
}

// Toggle adds or removes a checklist subject. Matching is
// case-insensitive and the checklist spelling is stored.
func (s *SubjectSelection) Toggle(subject string, included bool) error {
	name, ok := checklistSubject(subject)
	if !ok {
		return ErrUnknownSubject
	}

	idx := indexFold(s.Selected, name)
	switch {
	case included && idx < 0:
		s.Selected = append(s.Selected, name)
	case !included && idx >= 0:
		s.Selected = append(s.Selected[:idx], s.Selected[idx+1:]...)
	}
	return nil
}

func (s *SubjectSelection) SetOther(text string) {
	s.Other = strings.TrimSpace(text)
}

func (s *SubjectSelection) Clear() {
	s.Selected = nil
	s.Other = ""
}

// CanonicalList returns the checklist picks followed by the other-subjects
// tokens, with case-insensitive duplicates dropped.
func (s SubjectSelection) CanonicalList() []string {
	out := make([]string, 0, len(s.Selected))
	for _, name := range s.Selected {
		if indexFold(out, name) < 0 {
			out = append(out, name)
		}
	}
	for _, name := range ParseSubjectList(s.Other) {
		if indexFold(out, name) < 0 {
			out = append(out, name)
		}
	}
	return out
}

// ParseSubjectList splits free text on commas, trims each entry and drops
// empty entries and case-insensitive repeats.
func ParseSubjectList(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" || indexFold(out, part) >= 0 {
			continue
		}
		out = append(out, part)
	}
	return out
}

func checklistSubject(subject string) (string, bool) {
	subject = strings.TrimSpace(subject)
	for _, s := range SchoolSubjects {
		if strings.EqualFold(s, subject) {
			return s, true
		}
	}
	return "", false
}

func indexFold(list []string, s string) int {
	for i, v := range list {
		if strings.EqualFold(v, s) {
			return i
		}
	}
	return -1
}
