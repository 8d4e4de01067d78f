package handler

import (
	"net/http"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
)

type CatalogHandler struct {
	catalogService ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalog}
}

// Catalog returns what the form should render for ?grade=.
func (h *CatalogHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalogService.Catalog(r.URL.Query().Get("grade")))
}

type SubjectsResponse struct {
	Subjects []ports.Subject `json:"subjects"`
}

func (h *CatalogHandler) Subjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.catalogService.Subjects(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SubjectsResponse{Subjects: subjects})
}
