package handler

import (
	"net/http"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/adapters/middleware"
)

type Handlers struct {
	Health       *HealthHandler
	Registration *RegistrationHandler
	Wizard       *WizardHandler
	Terms        *TermsHandler
	Catalog      *CatalogHandler
	Engagement   *EngagementHandler
	Admin        *AdminHandler
	Metrics      http.Handler
}

var adminRoles = []string{"ADMIN"}

// NewRouter mounts every endpoint. Admin routes require an ADMIN token
// issued by the hosted auth service.
func NewRouter(h Handlers, auth *middleware.AuthMiddleware, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	// Health endpoints (OpenShift compatible)
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	mux.HandleFunc("GET /catalog", h.Catalog.Catalog)
	mux.HandleFunc("GET /subjects", h.Catalog.Subjects)

	mux.HandleFunc("POST /students/register", h.Registration.RegisterStudent)
	mux.HandleFunc("POST /students/quick-register", h.Registration.RegisterQuick)
	mux.HandleFunc("POST /tutors/register", h.Registration.RegisterTutor)

	mux.HandleFunc("POST /wizard/students", h.Wizard.Start)
	mux.HandleFunc("GET /wizard/students/{id}", h.Wizard.Get)
	mux.HandleFunc("PATCH /wizard/students/{id}", h.Wizard.Update)
	mux.HandleFunc("POST /wizard/students/{id}/next", h.Wizard.Next)
	mux.HandleFunc("POST /wizard/students/{id}/back", h.Wizard.Back)
	mux.HandleFunc("POST /wizard/students/{id}/submit", h.Wizard.Submit)

	mux.HandleFunc("GET /tutor-terms/sections", h.Terms.Sections)
	mux.HandleFunc("POST /tutor-terms/{id}", h.Terms.Accept)

	mux.HandleFunc("GET /popup", h.Engagement.Popup)
	mux.HandleFunc("POST /chatbot", h.Engagement.Chat)

	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return auth.RequireRole(adminRoles, next)
	}
	mux.HandleFunc("GET /admin/students", admin(h.Admin.ListStudents))
	mux.HandleFunc("GET /admin/tutors", admin(h.Admin.ListTutors))
	mux.HandleFunc("PATCH /admin/students/{id}", admin(h.Admin.UpdateStudent))
	mux.HandleFunc("PATCH /admin/tutors/{id}", admin(h.Admin.UpdateTutor))
	mux.HandleFunc("GET /admin/students/{id}/message", admin(h.Admin.StudentMessage))
	mux.HandleFunc("GET /admin/students/export.csv", admin(h.Admin.ExportStudents))
	mux.HandleFunc("GET /admin/tutors/export.csv", admin(h.Admin.ExportTutors))

	return middleware.CORSMiddleware(allowedOrigins)(mux)
}
