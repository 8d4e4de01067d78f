package domain

import (
	"strings"
	"time"
)

type RegistrationType string

const (
	RegistrationStudent RegistrationType = "student"
	RegistrationTutor   RegistrationType = "tutor"
)

type Status string

const (
	StatusNew       Status = "new"
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusContacted Status = "contacted"
)

// StatusTermsAccepted is written to a tutor record once the agreement is accepted.
const StatusTermsAccepted = StatusPending

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusPending, StatusApproved, StatusRejected, StatusContacted:
		return true
	}
	return false
}

type Mode string

const (
	ModeHome   Mode = "home"
	ModeOnline Mode = "online"
	ModeBoth   Mode = "both"
)

func (m Mode) Valid() bool {
	return m == ModeHome || m == ModeOnline || m == ModeBoth
}

type GenderPreference string

const (
	GenderMale         GenderPreference = "male"
	GenderFemale       GenderPreference = "female"
	GenderNoPreference GenderPreference = "no-preference"
)

func (g GenderPreference) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderNoPreference
}

var Districts = []string{
	"Thiruvananthapuram", "Kollam", "Pathanamthitta", "Alappuzha", "Kottayam",
	"Idukki", "Ernakulam", "Thrissur", "Palakkad", "Malappuram",
	"Kozhikode", "Wayanad", "Kannur", "Kasaragod",
}

func IsDistrict(d string) bool {
	for _, v := range Districts {
		if v == d {
			return true
		}
	}
	return false
}

var Syllabi = []string{"CBSE", "ICSE", "State Board", "IGCSE", "IB"}

// StudentRecord is the row inserted into student_registrations. Optional
// fields left blank are nil so they are stored as NULL.
type StudentRecord struct {
	ID             string    `json:"id"`
	StudentName    string    `json:"student_name"`
	ParentName     *string   `json:"parent_name"`
	Phone          string    `json:"phone"`
	Email          *string   `json:"email"`
	ClassGrade     string    `json:"class_grade"`
	Syllabus       *string   `json:"syllabus"`
	University     *string   `json:"university"`
	Branch         *string   `json:"branch"`
	Subjects       []string  `json:"subjects"`
	District       string    `json:"district"`
	Area           *string   `json:"area"`
	Mode           Mode      `json:"mode"`
	TutorGender    *string   `json:"tutor_gender"`
	TimePreference *string   `json:"time_preference"`
	Urgency        *string   `json:"urgency"`
	Languages      *string   `json:"languages"`
	HourlyRate     *int      `json:"hourly_rate"`
	HoursPerMonth  *int      `json:"hours_per_month"`
	MonthlyBudget  int       `json:"monthly_budget"`
	Status         Status    `json:"status"`
	AdminComments  *string   `json:"admin_comments"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TutorRecord is the row inserted into tutor_registrations.
type TutorRecord struct {
	ID              string     `json:"id"`
	FullName        string     `json:"full_name"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email"`
	Qualification   string     `json:"qualification"`
	Specialization  *string    `json:"specialization"`
	ExperienceYears int        `json:"experience_years"`
	Availability    *string    `json:"availability"`
	Subjects        []string   `json:"subjects"`
	Classes         []string   `json:"classes"`
	Languages       []string   `json:"languages"`
	District        string     `json:"district"`
	Area            *string    `json:"area"`
	Mode            Mode       `json:"mode"`
	HourlyRate      *int       `json:"hourly_rate"`
	ResumeURL       *string    `json:"resume_url"`
	Status          Status     `json:"status"`
	AdminComments   *string    `json:"admin_comments"`
	TermsAcceptedAt *time.Time `json:"terms_accepted_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// RegistrationFilter narrows admin listings. A zero value lists everything.
type RegistrationFilter struct {
	Status Status
	Limit  int
}

// StatusUpdate is an admin review action.
type StatusUpdate struct {
	Status        Status  `json:"status"`
	AdminComments *string `json:"admin_comments"`
}

func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func nullableInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
