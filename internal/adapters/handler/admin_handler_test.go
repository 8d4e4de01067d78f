package handler

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
)

func seedStudents(s *testServer) {
	s.repo.SeedStudent(domain.StudentRecord{
		ID: "s-1", StudentName: "Anu", Phone: "9847012345", ClassGrade: "4",
		Subjects: []string{"English"}, District: "Kollam", Mode: domain.ModeHome,
		MonthlyBudget: 5000, Status: domain.StatusNew, CreatedAt: time.Now(),
	})
	s.repo.SeedStudent(domain.StudentRecord{
		ID: "s-2", StudentName: "Binu", Phone: "9847012346", ClassGrade: "jee",
		Subjects: []string{"Physics"}, District: "Kannur", Mode: domain.ModeOnline,
		MonthlyBudget: 8000, Status: domain.StatusContacted, CreatedAt: time.Now(),
	})
}

func TestAdminListStudents(t *testing.T) {
	s := newTestServer(t)
	seedStudents(s)

	rec := s.admin(t, http.MethodGet, "/admin/students?status=contacted", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody[StudentListResponse](t, rec)
	if resp.Count != 1 || resp.Students[0].ID != "s-2" {
		t.Errorf("unexpected list %+v", resp)
	}

	if rec := s.admin(t, http.MethodGet, "/admin/students?status=bogus", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown status, got %d", rec.Code)
	}
	if rec := s.admin(t, http.MethodGet, "/admin/students?limit=abc", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad limit, got %d", rec.Code)
	}
}

func TestAdminListTutors_Empty(t *testing.T) {
	s := newTestServer(t)
	rec := s.admin(t, http.MethodGet, "/admin/tutors", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"tutors":[]`) {
		t.Errorf("expected an empty array, got %s", rec.Body.String())
	}
}

func TestAdminUpdateStatus(t *testing.T) {
	s := newTestServer(t)
	seedStudents(s)

	rec := s.admin(t, http.MethodPatch, "/admin/students/s-1", map[string]any{"status": "approved", "admin_comments": "tutor assigned"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	stored, _ := s.repo.Student("s-1")
	if stored.Status != domain.StatusApproved || *stored.AdminComments != "tutor assigned" {
		t.Errorf("unexpected record %+v", stored)
	}

	if rec := s.admin(t, http.MethodPatch, "/admin/students/s-1", map[string]any{"status": "archived"}); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for unknown status, got %d", rec.Code)
	}
	if rec := s.admin(t, http.MethodPatch, "/admin/tutors/nobody", map[string]any{"status": "approved"}); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestAdminStudentMessage(t *testing.T) {
	s := newTestServer(t)
	seedStudents(s)

	rec := s.admin(t, http.MethodGet, "/admin/students/s-2/message", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody[StudentMessageResponse](t, rec)
	if !strings.Contains(resp.Text, "Location: Online") || !strings.HasPrefix(resp.WhatsAppURL, "https://wa.me/") {
		t.Errorf("unexpected message %+v", resp)
	}
}

func TestAdminExportStudents(t *testing.T) {
	s := newTestServer(t)
	seedStudents(s)

	rec := s.admin(t, http.MethodGet, "/admin/students/export.csv", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "students-") {
		t.Errorf("unexpected content disposition %q", cd)
	}
	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil || len(rows) != 3 {
		t.Errorf("expected header plus 2 rows, got %d (%v)", len(rows), err)
	}
}

func TestAdminExport_StoreError(t *testing.T) {
	s := newTestServer(t)
	s.repo.ListError = errors.New("db down")

	rec := s.admin(t, http.MethodGet, "/admin/tutors/export.csv", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv") {
		t.Error("expected a JSON error instead of a partial download")
	}
}
