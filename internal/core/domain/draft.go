package domain

import (
	"net/mail"
	"strings"
	"time"
)

// StudentDraft is the in-progress student registration form. The category
// is always derived from ClassGrade and never stored.
type StudentDraft struct {
	StudentName    string           `json:"student_name"`
	ParentName     string           `json:"parent_name"`
	Phone          string           `json:"phone"`
	Email          string           `json:"email"`
	ClassGrade     string           `json:"class_grade"`
	Syllabus       string           `json:"syllabus,omitempty"`
	University     string           `json:"university,omitempty"`
	Branch         string           `json:"branch,omitempty"`
	Subjects       SubjectSelection `json:"subjects"`
	CustomSubjects string           `json:"custom_subjects,omitempty"`
	District       string           `json:"district"`
	Area           string           `json:"area"`
	Mode           Mode             `json:"mode"`
	TutorGender    GenderPreference `json:"tutor_gender,omitempty"`
	TimePreference string           `json:"time_preference,omitempty"`
	Urgency        string           `json:"urgency,omitempty"`
	Languages      string           `json:"languages,omitempty"`
	Pricing        Pricing          `json:"pricing"`
}

func NewStudentDraft() *StudentDraft {
	return &StudentDraft{Pricing: NewPricing("")}
}

func (d *StudentDraft) Category() Category     { return Classify(d.ClassGrade) }
func (d *StudentDraft) Visibility() Visibility { return Resolve(d.Category()) }
func (d *StudentDraft) MonthlyFee() int        { return d.Pricing.MonthlyFee() }

// SetClassGrade changes the grade, clears fields the new category does not
// use and lifts the hourly rate to the new floor if needed.
func (d *StudentDraft) SetClassGrade(code string) {
	d.ClassGrade = normalizeGrade(code)

	v := d.Visibility()
	if !v.ShowSyllabus {
		d.Syllabus = ""
	}
	if !v.ShowUniversityFields {
		d.University = ""
		d.Branch = ""
	}
	if !v.ShowSubjectChecklist {
		d.Subjects.Clear()
	}
	if !v.ShowCustomSubjectInput {
		d.CustomSubjects = ""
	}
	d.Pricing.RaiseToFloor(d.ClassGrade)
}

func (d *StudentDraft) SetHourlyRate(rate int) {
	d.Pricing.SetHourlyRate(d.ClassGrade, rate)
}

func (d *StudentDraft) SetHoursPerMonth(hours int) {
	d.Pricing.SetHoursPerMonth(hours)
}

// SubjectList is the canonical subject list for the current category.
func (d *StudentDraft) SubjectList() []string {
	if d.Visibility().ShowSubjectChecklist {
		return d.Subjects.CanonicalList()
	}
	return ParseSubjectList(d.CustomSubjects)
}

func (d *StudentDraft) basicsComplete() bool {
	return notBlank(d.StudentName, d.ParentName, d.Email, d.Phone, d.ClassGrade)
}

func (d *StudentDraft) subjectsComplete() bool {
	if len(d.SubjectList()) == 0 {
		return false
	}
	v := d.Visibility()
	if v.ShowSyllabus && !notBlank(d.Syllabus) {
		return false
	}
	if v.ShowUniversityFields && !notBlank(d.University, d.Branch) {
		return false
	}
	return true
}

func (d *StudentDraft) locationComplete() bool {
	return notBlank(d.District, d.Area) && d.Mode.Valid()
}

func (d *StudentDraft) scheduleComplete() bool {
	return d.Pricing.Valid(d.ClassGrade)
}

// StudentWizardSteps are the four pages of the student registration wizard.
func StudentWizardSteps() []Step[*StudentDraft] {
	return []Step[*StudentDraft]{
		{Name: "basics", Complete: (*StudentDraft).basicsComplete},
		{Name: "subjects", Complete: (*StudentDraft).subjectsComplete},
		{Name: "location", Complete: (*StudentDraft).locationComplete},
		{Name: "schedule", Complete: (*StudentDraft).scheduleComplete},
	}
}

// Validate checks the whole draft and reports every failing field.
func (d *StudentDraft) Validate() error {
	ve := &ValidationError{}
	ve.required("student_name", d.StudentName)
	ve.required("parent_name", d.ParentName)
	validatePhone(ve, d.Phone)
	validateEmail(ve, d.Email, true)
	validateGrade(ve, d.ClassGrade)

	v := d.Visibility()
	if v.ShowSyllabus {
		ve.required("syllabus", d.Syllabus)
	}
	if v.ShowUniversityFields {
		ve.required("university", d.University)
		ve.required("branch", d.Branch)
	}
	if len(d.SubjectList()) == 0 {
		if v.ShowSubjectChecklist {
			ve.add("subjects", "select at least one subject")
		} else {
			ve.add("custom_subjects", "enter at least one subject")
		}
	}

	validateLocation(ve, d.District, d.Area, d.Mode)
	if d.TutorGender != "" && !d.TutorGender.Valid() {
		ve.add("tutor_gender", "unknown gender preference")
	}
	if !RateSlider(d.ClassGrade).Contains(d.Pricing.HourlyRate) {
		ve.add("hourly_rate", "hourly rate is outside the allowed range")
	}
	if !HoursSlider.Contains(d.Pricing.HoursPerMonth) {
		ve.add("hours_per_month", "hours per month is outside the allowed range")
	}
	return ve.err()
}

// ToRecord builds the persistence row. Call Validate first.
func (d *StudentDraft) ToRecord(id string, now time.Time) StudentRecord {
	return StudentRecord{
		ID:             id,
		StudentName:    strings.TrimSpace(d.StudentName),
		ParentName:     nullable(d.ParentName),
		Phone:          strings.TrimSpace(d.Phone),
		Email:          nullable(d.Email),
		ClassGrade:     d.ClassGrade,
		Syllabus:       nullable(d.Syllabus),
		University:     nullable(d.University),
		Branch:         nullable(d.Branch),
		Subjects:       d.SubjectList(),
		District:       d.District,
		Area:           nullable(d.Area),
		Mode:           d.Mode,
		TutorGender:    nullable(string(d.TutorGender)),
		TimePreference: nullable(d.TimePreference),
		Urgency:        nullable(d.Urgency),
		Languages:      nullable(d.Languages),
		HourlyRate:     nullableInt(d.Pricing.HourlyRate),
		HoursPerMonth:  nullableInt(d.Pricing.HoursPerMonth),
		MonthlyBudget:  d.MonthlyFee(),
		Status:         StatusNew,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// QuickDraft is the short registration form with a flat monthly budget.
type QuickDraft struct {
	StudentName   string `json:"student_name"`
	Phone         string `json:"phone"`
	ClassGrade    string `json:"class_grade"`
	Subjects      string `json:"subjects"`
	District      string `json:"district"`
	Area          string `json:"area"`
	Mode          Mode   `json:"mode"`
	MonthlyBudget int    `json:"monthly_budget"`
}

func (d *QuickDraft) SetMonthlyBudget(v int) {
	d.MonthlyBudget = QuickBudgetSlider.Clamp(v)
}

func (d *QuickDraft) Validate() error {
	ve := &ValidationError{}
	ve.required("student_name", d.StudentName)
	validatePhone(ve, d.Phone)
	validateGrade(ve, d.ClassGrade)
	if len(ParseSubjectList(d.Subjects)) == 0 {
		ve.add("subjects", "enter at least one subject")
	}
	validateLocation(ve, d.District, d.Area, d.Mode)
	if !QuickBudgetSlider.Contains(d.MonthlyBudget) {
		ve.add("monthly_budget", "monthly budget is outside the allowed range")
	}
	return ve.err()
}

func (d *QuickDraft) ToRecord(id string, now time.Time) StudentRecord {
	return StudentRecord{
		ID:            id,
		StudentName:   strings.TrimSpace(d.StudentName),
		Phone:         strings.TrimSpace(d.Phone),
		ClassGrade:    normalizeGrade(d.ClassGrade),
		Subjects:      ParseSubjectList(d.Subjects),
		District:      d.District,
		Area:          nullable(d.Area),
		Mode:          d.Mode,
		MonthlyBudget: d.MonthlyBudget,
		Status:        StatusNew,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// TutorDraft is the tutor registration form, including the agreement.
type TutorDraft struct {
	FullName        string           `json:"full_name"`
	Phone           string           `json:"phone"`
	Email           string           `json:"email"`
	Qualification   string           `json:"qualification"`
	Specialization  string           `json:"specialization,omitempty"`
	ExperienceYears int              `json:"experience_years"`
	Availability    string           `json:"availability,omitempty"`
	Subjects        SubjectSelection `json:"subjects"`
	Classes         []string         `json:"classes"`
	Languages       []string         `json:"languages"`
	District        string           `json:"district"`
	Area            string           `json:"area"`
	Mode            Mode             `json:"mode"`
	HourlyRate      int              `json:"hourly_rate,omitempty"`
	ResumeURL       string           `json:"resume_url,omitempty"`
	Terms           TermsAcceptance  `json:"terms"`
}

func (d *TutorDraft) SetClasses(classes []string) {
	d.Classes = dedupe(classes, normalizeGrade)
}

func (d *TutorDraft) SetLanguages(langs []string) {
	d.Languages = dedupe(langs, strings.TrimSpace)
}

func (d *TutorDraft) Validate() error {
	ve := &ValidationError{}
	ve.required("full_name", d.FullName)
	validatePhone(ve, d.Phone)
	validateEmail(ve, d.Email, true)
	ve.required("qualification", d.Qualification)
	if d.ExperienceYears < 0 || d.ExperienceYears > 60 {
		ve.add("experience_years", "experience must be between 0 and 60 years")
	}
	if len(d.Subjects.CanonicalList()) == 0 {
		ve.add("subjects", "select at least one subject")
	}
	if len(d.Classes) == 0 {
		ve.add("classes", "select at least one class")
	}
	for _, c := range d.Classes {
		if !IsKnownGrade(c) {
			ve.add("classes", "unknown class "+c)
			break
		}
	}
	validateLocation(ve, d.District, d.Area, d.Mode)
	if d.HourlyRate != 0 && (d.HourlyRate < DefaultMinHourlyRate || d.HourlyRate > MaxHourlyRate) {
		ve.add("hourly_rate", "hourly rate is outside the allowed range")
	}
	if !d.Terms.AllChecked() {
		ve.add("terms", ErrTermsNotAccepted.Error())
	}
	return ve.err()
}

func (d *TutorDraft) ToRecord(id string, now time.Time) TutorRecord {
	accepted := now
	return TutorRecord{
		ID:              id,
		FullName:        strings.TrimSpace(d.FullName),
		Phone:           strings.TrimSpace(d.Phone),
		Email:           strings.TrimSpace(d.Email),
		Qualification:   strings.TrimSpace(d.Qualification),
		Specialization:  nullable(d.Specialization),
		ExperienceYears: d.ExperienceYears,
		Availability:    nullable(d.Availability),
		Subjects:        d.Subjects.CanonicalList(),
		Classes:         d.Classes,
		Languages:       d.Languages,
		District:        d.District,
		Area:            nullable(d.Area),
		Mode:            d.Mode,
		HourlyRate:      nullableInt(d.HourlyRate),
		ResumeURL:       nullable(d.ResumeURL),
		Status:          StatusNew,
		TermsAcceptedAt: &accepted,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func validatePhone(ve *ValidationError, phone string) {
	if strings.TrimSpace(phone) == "" {
		ve.add("phone", "this field is required")
		return
	}
	digits := PhoneDigits(phone)
	if len(digits) < 10 || len(digits) > 13 {
		ve.add("phone", "enter a valid phone number")
	}
}

func validateEmail(ve *ValidationError, email string, required bool) {
	email = strings.TrimSpace(email)
	if email == "" {
		if required {
			ve.add("email", "this field is required")
		}
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		ve.add("email", "enter a valid email address")
	}
}

func validateGrade(ve *ValidationError, grade string) {
	if strings.TrimSpace(grade) == "" {
		ve.add("class_grade", "this field is required")
		return
	}
	if !IsKnownGrade(grade) {
		ve.add("class_grade", "unknown class or course")
	}
}

func validateLocation(ve *ValidationError, district, area string, mode Mode) {
	switch {
	case strings.TrimSpace(district) == "":
		ve.add("district", "this field is required")
	case !IsDistrict(district):
		ve.add("district", "unknown district")
	}
	ve.required("area", area)
	if !mode.Valid() {
		ve.add("mode", "choose home, online or both")
	}
}

// PhoneDigits strips everything except digits.
func PhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func notBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

func dedupe(values []string, norm func(string) string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = norm(v)
		if v == "" || indexFold(out, v) >= 0 {
			continue
		}
		out = append(out, v)
	}
	return out
}
