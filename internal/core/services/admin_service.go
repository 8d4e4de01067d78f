package services

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
)

var ErrInvalidStatus = errors.New("invalid registration status")

// AdminService backs the admin dashboard: listing, review actions, the
// enquiry text copy action and CSV exports.
type AdminService struct {
	repo           ports.RegistrationRepository
	formatter      *domain.Formatter
	whatsAppNumber string
}

var _ ports.AdminService = (*AdminService)(nil)

func NewAdminService(repo ports.RegistrationRepository, formatter *domain.Formatter, whatsAppNumber string) *AdminService {
	return &AdminService{repo: repo, formatter: formatter, whatsAppNumber: whatsAppNumber}
}

func (s *AdminService) ListStudents(ctx context.Context, filter domain.RegistrationFilter) ([]domain.StudentRecord, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListStudents(ctx, filter)
}

func (s *AdminService) ListTutors(ctx context.Context, filter domain.RegistrationFilter) ([]domain.TutorRecord, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListTutors(ctx, filter)
}

func (s *AdminService) UpdateStudentStatus(ctx context.Context, id string, update domain.StatusUpdate) error {
	update, err := cleanUpdate(update)
	if err != nil {
		return err
	}
	return s.repo.UpdateStudentStatus(ctx, id, update)
}

func (s *AdminService) UpdateTutorStatus(ctx context.Context, id string, update domain.StatusUpdate) error {
	update, err := cleanUpdate(update)
	if err != nil {
		return err
	}
	return s.repo.UpdateTutorStatus(ctx, id, update)
}

// StudentMessage rebuilds the enquiry text for a stored registration. The
// reference code is dated from the record's creation time.
func (s *AdminService) StudentMessage(ctx context.Context, id string) (string, string, error) {
	rec, err := s.repo.GetStudent(ctx, id)
	if err != nil {
		return "", "", err
	}
	msg := s.formatter.StudentMessage(*rec, s.formatter.ReferenceCodeAt(rec.CreatedAt))
	return msg, domain.WhatsAppURL(s.whatsAppNumber, msg), nil
}

var studentCSVHeader = []string{
	"id", "created_at", "status", "student_name", "parent_name", "phone", "email",
	"class_grade", "syllabus", "university", "branch", "subjects", "district", "area",
	"mode", "tutor_gender", "hourly_rate", "hours_per_month", "monthly_budget", "admin_comments",
}

func (s *AdminService) ExportStudentsCSV(ctx context.Context, w io.Writer, filter domain.RegistrationFilter) error {
	recs, err := s.ListStudents(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(studentCSVHeader); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			r.ID, r.CreatedAt.Format(time.RFC3339), string(r.Status), r.StudentName,
			str(r.ParentName), r.Phone, str(r.Email), r.ClassGrade, str(r.Syllabus),
			str(r.University), str(r.Branch), strings.Join(r.Subjects, "; "), r.District,
			str(r.Area), string(r.Mode), str(r.TutorGender), num(r.HourlyRate),
			num(r.HoursPerMonth), strconv.Itoa(r.MonthlyBudget), str(r.AdminComments),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var tutorCSVHeader = []string{
	"id", "created_at", "status", "full_name", "phone", "email", "qualification",
	"specialization", "experience_years", "subjects", "classes", "languages", "district",
	"area", "mode", "hourly_rate", "resume_url", "terms_accepted_at", "admin_comments",
}

func (s *AdminService) ExportTutorsCSV(ctx context.Context, w io.Writer, filter domain.RegistrationFilter) error {
	recs, err := s.ListTutors(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(tutorCSVHeader); err != nil {
		return err
	}
	for _, r := range recs {
		accepted := ""
		if r.TermsAcceptedAt != nil {
			accepted = r.TermsAcceptedAt.Format(time.RFC3339)
		}
		row := []string{
			r.ID, r.CreatedAt.Format(time.RFC3339), string(r.Status), r.FullName, r.Phone,
			r.Email, r.Qualification, str(r.Specialization), strconv.Itoa(r.ExperienceYears),
			strings.Join(r.Subjects, "; "), strings.Join(r.Classes, "; "),
			strings.Join(r.Languages, "; "), r.District, str(r.Area), string(r.Mode),
			num(r.HourlyRate), str(r.ResumeURL), accepted, str(r.AdminComments),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func cleanUpdate(u domain.StatusUpdate) (domain.StatusUpdate, error) {
	if !u.Status.Valid() {
		return u, ErrInvalidStatus
	}
	if u.AdminComments != nil {
		c := strings.TrimSpace(*u.AdminComments)
		u.AdminComments = &c
	}
	return u, nil
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func num(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
