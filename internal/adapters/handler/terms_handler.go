package handler

import (
	"net/http"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
)

type TermsHandler struct {
	termsService ports.TermsService
}

func NewTermsHandler(terms ports.TermsService) *TermsHandler {
	return &TermsHandler{termsService: terms}
}

type TermsSectionsResponse struct {
	Sections []domain.TermsSection `json:"sections"`
}

func (h *TermsHandler) Sections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TermsSectionsResponse{Sections: h.termsService.Sections()})
}

type TermsAcceptedResponse struct {
	Message string        `json:"message"`
	Status  domain.Status `json:"status"`
}

func (h *TermsHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var acceptance domain.TermsAcceptance
	if !decode(w, r, &acceptance) {
		return
	}
	if err := h.termsService.Accept(r.Context(), r.PathValue("id"), acceptance); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TermsAcceptedResponse{
		Message: "Agreement accepted",
		Status:  domain.StatusTermsAccepted,
	})
}
