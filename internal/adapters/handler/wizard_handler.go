package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
)

type WizardHandler struct {
	wizardService ports.WizardService
}

func NewWizardHandler(wizard ports.WizardService) *WizardHandler {
	return &WizardHandler{wizardService: wizard}
}

func (h *WizardHandler) Start(w http.ResponseWriter, r *http.Request) {
	v, err := h.wizardService.Start(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *WizardHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.wizardService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *WizardHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.StudentDraftPatch
	if !decode(w, r, &patch) {
		return
	}
	v, err := h.wizardService.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *WizardHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.wizardService.Next)
}

func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.wizardService.Back)
}

type WizardMoveError struct {
	ErrorResponse
	Wizard ports.WizardView `json:"wizard"`
}

// move returns the unchanged view alongside a refused transition so the
// client can keep rendering the current step.
func (h *WizardHandler) move(w http.ResponseWriter, r *http.Request, step func(context.Context, string) (ports.WizardView, error)) {
	v, err := step(r.Context(), r.PathValue("id"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, v)
	case errors.Is(err, domain.ErrStepIncomplete):
		writeJSON(w, http.StatusUnprocessableEntity, WizardMoveError{ErrorResponse{Error: err.Error()}, v})
	case errors.Is(err, domain.ErrFirstStep), errors.Is(err, domain.ErrLastStep):
		writeJSON(w, http.StatusConflict, WizardMoveError{ErrorResponse{Error: err.Error()}, v})
	default:
		writeError(w, err)
	}
}

func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	res, err := h.wizardService.Submit(r.Context(), r.PathValue("id"))
	writeSubmission(w, res, err)
}
