package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
)

type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: admin}
}

var errInvalidLimit = errors.New("invalid limit")

func filterFrom(r *http.Request) (domain.RegistrationFilter, error) {
	q := r.URL.Query()
	f := domain.RegistrationFilter{Status: domain.Status(q.Get("status"))}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return f, errInvalidLimit
		}
		f.Limit = n
	}
	return f, nil
}

type StudentListResponse struct {
	Students []domain.StudentRecord `json:"students"`
	Count    int                    `json:"count"`
}

func (h *AdminHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFrom(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid limit"})
		return
	}
	recs, err := h.adminService.ListStudents(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if recs == nil {
		recs = []domain.StudentRecord{}
	}
	writeJSON(w, http.StatusOK, StudentListResponse{Students: recs, Count: len(recs)})
}

type TutorListResponse struct {
	Tutors []domain.TutorRecord `json:"tutors"`
	Count  int                  `json:"count"`
}

func (h *AdminHandler) ListTutors(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFrom(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid limit"})
		return
	}
	recs, err := h.adminService.ListTutors(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if recs == nil {
		recs = []domain.TutorRecord{}
	}
	writeJSON(w, http.StatusOK, TutorListResponse{Tutors: recs, Count: len(recs)})
}

type StatusUpdateRequest struct {
	Status        string  `json:"status" validate:"required,oneof=new pending approved rejected contacted"`
	AdminComments *string `json:"admin_comments" validate:"omitempty,max=2000"`
}

type StatusUpdateResponse struct {
	Message string `json:"message"`
}

func (h *AdminHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.adminService.UpdateStudentStatus)
}

func (h *AdminHandler) UpdateTutor(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.adminService.UpdateTutorStatus)
}

func (h *AdminHandler) updateStatus(w http.ResponseWriter, r *http.Request, update func(context.Context, string, domain.StatusUpdate) error) {
	var req StatusUpdateRequest
	if !decode(w, r, &req) {
		return
	}
	err := update(r.Context(), r.PathValue("id"), domain.StatusUpdate{
		Status:        domain.Status(req.Status),
		AdminComments: req.AdminComments,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusUpdateResponse{Message: "Status updated"})
}

type StudentMessageResponse struct {
	Text        string `json:"text"`
	WhatsAppURL string `json:"whatsapp_url"`
}

// StudentMessage backs the dashboard's copy-enquiry action.
func (h *AdminHandler) StudentMessage(w http.ResponseWriter, r *http.Request) {
	text, url, err := h.adminService.StudentMessage(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StudentMessageResponse{Text: text, WhatsAppURL: url})
}

func (h *AdminHandler) ExportStudents(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "students", h.adminService.ExportStudentsCSV)
}

func (h *AdminHandler) ExportTutors(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "tutors", h.adminService.ExportTutorsCSV)
}

// export buffers the CSV so a failed query still yields a JSON error
// instead of a truncated download.
func (h *AdminHandler) export(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	write func(context.Context, io.Writer, domain.RegistrationFilter) error,
) {
	filter, err := filterFrom(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid limit"})
		return
	}

	var buf bytes.Buffer
	if err := write(r.Context(), &buf, filter); err != nil {
		writeError(w, err)
		return
	}

	filename := name + "-" + time.Now().UTC().Format("20060102") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Failed to write export: %v", err)
	}
}
