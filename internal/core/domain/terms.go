package domain

import "errors"

var ErrTermsNotAccepted = errors.New("all agreement sections and the final confirmation must be accepted")

type TermsSection struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// TermsSections are the tutor agreement sections, in the order they are shown.
var TermsSections = []TermsSection{
	{Key: "conduct", Title: "Code of Conduct"},
	{Key: "payment", Title: "Fees and Commission"},
	{Key: "cancellation", Title: "Cancellation and Replacement"},
	{Key: "confidentiality", Title: "Student Privacy and Confidentiality"},
	{Key: "verification", Title: "Background Verification"},
	{Key: "disputes", Title: "Dispute Resolution"},
}

// TermsAcceptance records one checkbox per section plus the final confirmation.
type TermsAcceptance struct {
	Checked           []bool `json:"checked"`
	FinalConfirmation bool   `json:"final_confirmation"`
}

func NewTermsAcceptance() TermsAcceptance {
	return TermsAcceptance{Checked: make([]bool, len(TermsSections))}
}

func (t *TermsAcceptance) Check(section int, checked bool) error {
	if section < 0 || section >= len(TermsSections) {
		return errors.New("unknown agreement section")
	}
	if len(t.Checked) != len(TermsSections) {
		resized := make([]bool, len(TermsSections))
		copy(resized, t.Checked)
		t.Checked = resized
	}
	t.Checked[section] = checked
	return nil
}

// AllChecked is the submit gate: every section and the final confirmation.
func (t TermsAcceptance) AllChecked() bool {
	if len(t.Checked) != len(TermsSections) || !t.FinalConfirmation {
		return false
	}
	for _, c := range t.Checked {
		if !c {
			return false
		}
	}
	return true
}

// TermsWizardSteps gives one wizard step per agreement section.
func TermsWizardSteps() []Step[TermsAcceptance] {
	steps := make([]Step[TermsAcceptance], len(TermsSections))
	for i, s := range TermsSections {
		steps[i] = Step[TermsAcceptance]{
			Name: s.Title,
			Complete: func(t TermsAcceptance) bool {
				return i < len(t.Checked) && t.Checked[i]
			},
		}
	}
	return steps
}
