package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/config"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
	"github.com/lib/pq"
	"github.com/sony/gobreaker"
)

const (
	studentTable = "student_registrations"
	tutorTable   = "tutor_registrations"
	subjectTable = "subjects"

	defaultListLimit = 500
)

// SQLRepository talks to the hosted store's Postgres tables. Every call
// goes through a circuit breaker; row-level security denials do not count
// as breaker failures.
type SQLRepository struct {
	db *sql.DB
	cb *gobreaker.CircuitBreaker
}

var (
	_ ports.RegistrationRepository = (*SQLRepository)(nil)
	_ ports.SubjectRepository      = (*SQLRepository)(nil)
)

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db, cb: config.NewCircuitBreaker(config.BreakerPostgres)}
}

func (r *SQLRepository) InsertStudent(ctx context.Context, rec domain.StudentRecord) error {
	return r.write(func() error {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO student_registrations (
				id, student_name, parent_name, phone, email, class_grade, syllabus,
				university, branch, subjects, district, area, mode, tutor_gender,
				time_preference, urgency, languages, hourly_rate, hours_per_month,
				monthly_budget, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
				$15, $16, $17, $18, $19, $20, $21, $22, $23)`,
			rec.ID, rec.StudentName, rec.ParentName, rec.Phone, rec.Email, rec.ClassGrade,
			rec.Syllabus, rec.University, rec.Branch, pq.Array(rec.Subjects), rec.District,
			rec.Area, rec.Mode, rec.TutorGender, rec.TimePreference, rec.Urgency,
			rec.Languages, rec.HourlyRate, rec.HoursPerMonth, rec.MonthlyBudget,
			rec.Status, rec.CreatedAt, rec.UpdatedAt,
		)
		return err
	})
}

func (r *SQLRepository) InsertTutor(ctx context.Context, rec domain.TutorRecord) error {
	return r.write(func() error {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO tutor_registrations (
				id, full_name, phone, email, qualification, specialization,
				experience_years, availability, subjects, classes, languages,
				district, area, mode, hourly_rate, resume_url, status,
				terms_accepted_at, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
				$15, $16, $17, $18, $19, $20)`,
			rec.ID, rec.FullName, rec.Phone, rec.Email, rec.Qualification, rec.Specialization,
			rec.ExperienceYears, rec.Availability, pq.Array(rec.Subjects), pq.Array(rec.Classes),
			pq.Array(rec.Languages), rec.District, rec.Area, rec.Mode, rec.HourlyRate,
			rec.ResumeURL, rec.Status, rec.TermsAcceptedAt, rec.CreatedAt, rec.UpdatedAt,
		)
		return err
	})
}

const studentColumns = `id, student_name, parent_name, phone, email, class_grade, syllabus,
	university, branch, subjects, district, area, mode, tutor_gender, time_preference,
	urgency, languages, hourly_rate, hours_per_month, monthly_budget, status,
	admin_comments, created_at, updated_at`

func scanStudent(row interface{ Scan(...any) error }) (domain.StudentRecord, error) {
	var rec domain.StudentRecord
	err := row.Scan(
		&rec.ID, &rec.StudentName, &rec.ParentName, &rec.Phone, &rec.Email, &rec.ClassGrade,
		&rec.Syllabus, &rec.University, &rec.Branch, pq.Array(&rec.Subjects), &rec.District,
		&rec.Area, &rec.Mode, &rec.TutorGender, &rec.TimePreference, &rec.Urgency,
		&rec.Languages, &rec.HourlyRate, &rec.HoursPerMonth, &rec.MonthlyBudget,
		&rec.Status, &rec.AdminComments, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

const tutorColumns = `id, full_name, phone, email, qualification, specialization,
	experience_years, availability, subjects, classes, languages, district, area, mode,
	hourly_rate, resume_url, status, admin_comments, terms_accepted_at, created_at, updated_at`

func scanTutor(row interface{ Scan(...any) error }) (domain.TutorRecord, error) {
	var rec domain.TutorRecord
	err := row.Scan(
		&rec.ID, &rec.FullName, &rec.Phone, &rec.Email, &rec.Qualification, &rec.Specialization,
		&rec.ExperienceYears, &rec.Availability, pq.Array(&rec.Subjects), pq.Array(&rec.Classes),
		pq.Array(&rec.Languages), &rec.District, &rec.Area, &rec.Mode, &rec.HourlyRate,
		&rec.ResumeURL, &rec.Status, &rec.AdminComments, &rec.TermsAcceptedAt,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// listQuery builds a newest-first listing with an optional status filter.
func listQuery(table, columns string, filter domain.RegistrationFilter) (string, []any) {
	limit := filter.Limit
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	q := "SELECT " + columns + " FROM " + table
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		q += " WHERE status = $1"
	}
	args = append(args, limit)
	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	return q, args
}

func (r *SQLRepository) ListStudents(ctx context.Context, filter domain.RegistrationFilter) ([]domain.StudentRecord, error) {
	q, args := listQuery(studentTable, studentColumns, filter)
	out, err := r.cb.Execute(func() (interface{}, error) {
		rows, err := r.db.QueryContext(ctx, q, args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var recs []domain.StudentRecord
		for rows.Next() {
			rec, err := scanStudent(rows)
			if err != nil {
				return nil, err
			}
			recs = append(recs, rec)
		}
		return recs, rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out.([]domain.StudentRecord), nil
}

func (r *SQLRepository) ListTutors(ctx context.Context, filter domain.RegistrationFilter) ([]domain.TutorRecord, error) {
	q, args := listQuery(tutorTable, tutorColumns, filter)
	out, err := r.cb.Execute(func() (interface{}, error) {
		rows, err := r.db.QueryContext(ctx, q, args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var recs []domain.TutorRecord
		for rows.Next() {
			rec, err := scanTutor(rows)
			if err != nil {
				return nil, err
			}
			recs = append(recs, rec)
		}
		return recs, rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out.([]domain.TutorRecord), nil
}

func (r *SQLRepository) GetStudent(ctx context.Context, id string) (*domain.StudentRecord, error) {
	var rec domain.StudentRecord
	_, err := r.cb.Execute(func() (interface{}, error) {
		var err error
		rec, err = scanStudent(r.db.QueryRowContext(ctx,
			"SELECT "+studentColumns+" FROM "+studentTable+" WHERE id = $1", id))
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	})
	if err != nil {
		return nil, err
	}
	if rec.ID == "" {
		return nil, ports.ErrNotFound
	}
	return &rec, nil
}

func (r *SQLRepository) GetTutor(ctx context.Context, id string) (*domain.TutorRecord, error) {
	var rec domain.TutorRecord
	_, err := r.cb.Execute(func() (interface{}, error) {
		var err error
		rec, err = scanTutor(r.db.QueryRowContext(ctx,
			"SELECT "+tutorColumns+" FROM "+tutorTable+" WHERE id = $1", id))
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	})
	if err != nil {
		return nil, err
	}
	if rec.ID == "" {
		return nil, ports.ErrNotFound
	}
	return &rec, nil
}

func (r *SQLRepository) UpdateStudentStatus(ctx context.Context, id string, update domain.StatusUpdate) error {
	return r.updateStatus(ctx, studentTable, id, update)
}

func (r *SQLRepository) UpdateTutorStatus(ctx context.Context, id string, update domain.StatusUpdate) error {
	return r.updateStatus(ctx, tutorTable, id, update)
}

func (r *SQLRepository) updateStatus(ctx context.Context, table, id string, update domain.StatusUpdate) error {
	return r.affectOne(func() (sql.Result, error) {
		return r.db.ExecContext(ctx,
			"UPDATE "+table+" SET status = $1, admin_comments = COALESCE($2, admin_comments), updated_at = NOW() WHERE id = $3",
			update.Status, update.AdminComments, id,
		)
	})
}

func (r *SQLRepository) MarkTermsAccepted(ctx context.Context, tutorID string, status domain.Status) error {
	return r.affectOne(func() (sql.Result, error) {
		return r.db.ExecContext(ctx,
			"UPDATE "+tutorTable+" SET status = $1, terms_accepted_at = NOW(), updated_at = NOW() WHERE id = $2",
			status, tutorID,
		)
	})
}

func (r *SQLRepository) ListSubjects(ctx context.Context) ([]ports.Subject, error) {
	out, err := r.cb.Execute(func() (interface{}, error) {
		rows, err := r.db.QueryContext(ctx, "SELECT name, category FROM "+subjectTable+" ORDER BY name")
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var subjects []ports.Subject
		for rows.Next() {
			var s ports.Subject
			if err := rows.Scan(&s.Name, &s.Category); err != nil {
				return nil, err
			}
			subjects = append(subjects, s)
		}
		return subjects, rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out.([]ports.Subject), nil
}

// affectOne runs an update that must touch exactly one row.
func (r *SQLRepository) affectOne(exec func() (sql.Result, error)) error {
	var affected int64
	err := r.write(func() error {
		res, err := exec()
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// write runs fn behind the breaker. A row-level security denial is
// returned to the caller without tripping the breaker.
func (r *SQLRepository) write(fn func() error) error {
	var denied error
	_, err := r.cb.Execute(func() (interface{}, error) {
		err := classifyWriteError(fn())
		if errors.Is(err, ports.ErrPersistenceDenied) {
			denied = err
			return nil, nil
		}
		return nil, err
	})
	if denied != nil {
		return denied
	}
	return err
}

const insufficientPrivilege = "42501"

func classifyWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == insufficientPrivilege || strings.Contains(pqErr.Message, "row-level security") {
			return fmt.Errorf("%w: %s", ports.ErrPersistenceDenied, pqErr.Message)
		}
		return err
	}
	if strings.Contains(err.Error(), "row-level security") {
		return fmt.Errorf("%w: %v", ports.ErrPersistenceDenied, err)
	}
	return err
}
