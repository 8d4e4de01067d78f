package handler

import (
	"net/http"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
)

type RegistrationHandler struct {
	registrationService ports.RegistrationService
}

func NewRegistrationHandler(registration ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registration}
}

// StudentRegistrationRequest is the one-shot form of the student wizard.
type StudentRegistrationRequest struct {
	StudentName    string   `json:"student_name" validate:"max=100"`
	ParentName     string   `json:"parent_name" validate:"max=100"`
	Phone          string   `json:"phone" validate:"max=20"`
	Email          string   `json:"email" validate:"max=255"`
	ClassGrade     string   `json:"class_grade" validate:"required,max=40"`
	Syllabus       string   `json:"syllabus" validate:"max=40"`
	University     string   `json:"university" validate:"max=120"`
	Branch         string   `json:"branch" validate:"max=120"`
	Subjects       []string `json:"subjects" validate:"max=30,dive,max=60"`
	OtherSubjects  string   `json:"other_subjects" validate:"max=300"`
	CustomSubjects string   `json:"custom_subjects" validate:"max=300"`
	District       string   `json:"district" validate:"max=40"`
	Area           string   `json:"area" validate:"max=120"`
	Mode           string   `json:"mode" validate:"omitempty,oneof=home online both"`
	TutorGender    string   `json:"tutor_gender" validate:"omitempty,oneof=male female no-preference"`
	TimePreference string   `json:"time_preference" validate:"max=60"`
	Urgency        string   `json:"urgency" validate:"max=60"`
	Languages      string   `json:"languages" validate:"max=120"`
	HourlyRate     int      `json:"hourly_rate" validate:"gte=0"`
	HoursPerMonth  int      `json:"hours_per_month" validate:"gte=0"`
}

// draft replays the request through the same patch the wizard uses, so
// hidden fields are dropped and sliders are clamped identically.
func (req StudentRegistrationRequest) draft() (*domain.StudentDraft, error) {
	mode := domain.Mode(req.Mode)
	gender := domain.GenderPreference(req.TutorGender)
	patch := domain.StudentDraftPatch{
		StudentName:    &req.StudentName,
		ParentName:     &req.ParentName,
		Phone:          &req.Phone,
		Email:          &req.Email,
		ClassGrade:     &req.ClassGrade,
		Syllabus:       &req.Syllabus,
		University:     &req.University,
		Branch:         &req.Branch,
		OtherSubjects:  &req.OtherSubjects,
		CustomSubjects: &req.CustomSubjects,
		District:       &req.District,
		Area:           &req.Area,
		Mode:           &mode,
		TutorGender:    &gender,
		TimePreference: &req.TimePreference,
		Urgency:        &req.Urgency,
		Languages:      &req.Languages,
	}
	for _, s := range req.Subjects {
		patch.SubjectToggles = append(patch.SubjectToggles, domain.SubjectToggle{Subject: s, Included: true})
	}
	if req.HourlyRate > 0 {
		patch.HourlyRate = &req.HourlyRate
	}
	if req.HoursPerMonth > 0 {
		patch.HoursPerMonth = &req.HoursPerMonth
	}

	d := domain.NewStudentDraft()
	if err := patch.Apply(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (h *RegistrationHandler) RegisterStudent(w http.ResponseWriter, r *http.Request) {
	var req StudentRegistrationRequest
	if !decode(w, r, &req) {
		return
	}
	d, err := req.draft()
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := h.registrationService.SubmitStudent(r.Context(), d)
	writeSubmission(w, res, err)
}

type QuickRegistrationRequest struct {
	StudentName   string `json:"student_name" validate:"max=100"`
	Phone         string `json:"phone" validate:"max=20"`
	ClassGrade    string `json:"class_grade" validate:"required,max=40"`
	Subjects      string `json:"subjects" validate:"max=300"`
	District      string `json:"district" validate:"max=40"`
	Area          string `json:"area" validate:"max=120"`
	Mode          string `json:"mode" validate:"omitempty,oneof=home online both"`
	MonthlyBudget int    `json:"monthly_budget" validate:"gte=0"`
}

func (h *RegistrationHandler) RegisterQuick(w http.ResponseWriter, r *http.Request) {
	var req QuickRegistrationRequest
	if !decode(w, r, &req) {
		return
	}
	d := &domain.QuickDraft{
		StudentName: req.StudentName,
		Phone:       req.Phone,
		ClassGrade:  req.ClassGrade,
		Subjects:    req.Subjects,
		District:    req.District,
		Area:        req.Area,
		Mode:        domain.Mode(req.Mode),
	}
	budget := req.MonthlyBudget
	if budget == 0 {
		budget = domain.DefaultQuickBudget
	}
	d.SetMonthlyBudget(budget)

	res, err := h.registrationService.SubmitQuick(r.Context(), d)
	writeSubmission(w, res, err)
}

type TutorRegistrationRequest struct {
	FullName        string                 `json:"full_name" validate:"max=100"`
	Phone           string                 `json:"phone" validate:"max=20"`
	Email           string                 `json:"email" validate:"max=255"`
	Qualification   string                 `json:"qualification" validate:"max=120"`
	Specialization  string                 `json:"specialization" validate:"max=120"`
	ExperienceYears int                    `json:"experience_years"`
	Availability    string                 `json:"availability" validate:"max=120"`
	Subjects        []string               `json:"subjects" validate:"max=30,dive,max=60"`
	OtherSubjects   string                 `json:"other_subjects" validate:"max=300"`
	Classes         []string               `json:"classes" validate:"max=40,dive,max=40"`
	Languages       []string               `json:"languages" validate:"max=10,dive,max=40"`
	District        string                 `json:"district" validate:"max=40"`
	Area            string                 `json:"area" validate:"max=120"`
	Mode            string                 `json:"mode" validate:"omitempty,oneof=home online both"`
	HourlyRate      int                    `json:"hourly_rate" validate:"gte=0"`
	ResumeURL       string                 `json:"resume_url" validate:"omitempty,url,max=500"`
	Terms           domain.TermsAcceptance `json:"terms"`
}

func (h *RegistrationHandler) RegisterTutor(w http.ResponseWriter, r *http.Request) {
	var req TutorRegistrationRequest
	if !decode(w, r, &req) {
		return
	}
	d := &domain.TutorDraft{
		FullName:        req.FullName,
		Phone:           req.Phone,
		Email:           req.Email,
		Qualification:   req.Qualification,
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
		Availability:    req.Availability,
		District:        req.District,
		Area:            req.Area,
		Mode:            domain.Mode(req.Mode),
		HourlyRate:      req.HourlyRate,
		ResumeURL:       req.ResumeURL,
		Terms:           req.Terms,
	}
	for _, s := range req.Subjects {
		if err := d.Subjects.Toggle(s, true); err != nil {
			writeError(w, &domain.ValidationError{Fields: []domain.FieldError{{Field: "subjects", Message: "unknown subject " + s}}})
			return
		}
	}
	d.Subjects.SetOther(req.OtherSubjects)
	d.SetClasses(req.Classes)
	d.SetLanguages(req.Languages)

	res, err := h.registrationService.SubmitTutor(r.Context(), d)
	writeSubmission(w, res, err)
}
