package domain

import "strings"

type SubjectToggle struct {
	Subject  string `json:"subject"`
	Included bool   `json:"included"`
}

// StudentDraftPatch is a partial update to a student draft. Nil fields are
// left untouched.
type StudentDraftPatch struct {
	StudentName    *string           `json:"student_name"`
	ParentName     *string           `json:"parent_name"`
	Phone          *string           `json:"phone"`
	Email          *string           `json:"email"`
	ClassGrade     *string           `json:"class_grade"`
	Syllabus       *string           `json:"syllabus"`
	University     *string           `json:"university"`
	Branch         *string           `json:"branch"`
	SubjectToggles []SubjectToggle   `json:"subject_toggles"`
	OtherSubjects  *string           `json:"other_subjects"`
	CustomSubjects *string           `json:"custom_subjects"`
	District       *string           `json:"district"`
	Area           *string           `json:"area"`
	Mode           *Mode             `json:"mode"`
	TutorGender    *GenderPreference `json:"tutor_gender"`
	TimePreference *string           `json:"time_preference"`
	Urgency        *string           `json:"urgency"`
	Languages      *string           `json:"languages"`
	HourlyRate     *int              `json:"hourly_rate"`
	HoursPerMonth  *int              `json:"hours_per_month"`
}

// Apply writes the patch onto d. The grade is applied first so that field
// resets and the rate floor see the new category. Fields the category
// hides are ignored.
func (p StudentDraftPatch) Apply(d *StudentDraft) error {
	if p.ClassGrade != nil {
		d.SetClassGrade(*p.ClassGrade)
	}

	setString(&d.StudentName, p.StudentName)
	setString(&d.ParentName, p.ParentName)
	setString(&d.Phone, p.Phone)
	setString(&d.Email, p.Email)
	setString(&d.District, p.District)
	setString(&d.Area, p.Area)
	setString(&d.TimePreference, p.TimePreference)
	setString(&d.Urgency, p.Urgency)
	setString(&d.Languages, p.Languages)
	if p.Mode != nil {
		d.Mode = *p.Mode
	}
	if p.TutorGender != nil {
		d.TutorGender = *p.TutorGender
	}

	v := d.Visibility()
	if v.ShowSyllabus {
		setString(&d.Syllabus, p.Syllabus)
	}
	if v.ShowUniversityFields {
		setString(&d.University, p.University)
		setString(&d.Branch, p.Branch)
	}
	if v.ShowSubjectChecklist {
		for _, t := range p.SubjectToggles {
			if err := d.Subjects.Toggle(t.Subject, t.Included); err != nil {
				return &ValidationError{Fields: []FieldError{{Field: "subjects", Message: "unknown subject " + t.Subject}}}
			}
		}
		if p.OtherSubjects != nil {
			d.Subjects.SetOther(*p.OtherSubjects)
		}
	}
	if v.ShowCustomSubjectInput {
		setString(&d.CustomSubjects, p.CustomSubjects)
	}

	if p.HourlyRate != nil {
		d.SetHourlyRate(*p.HourlyRate)
	}
	if p.HoursPerMonth != nil {
		d.SetHoursPerMonth(*p.HoursPerMonth)
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
