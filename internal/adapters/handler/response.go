package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/services"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

// newValidator reports JSON field names instead of Go struct names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// decode reads a JSON body and runs struct-tag validation on it. It writes
// the error response itself and reports whether the caller may continue.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeError(w, &domain.ValidationError{Fields: fieldErrors(verrs)})
			return false
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return false
	}
	return true
}

func fieldErrors(verrs validator.ValidationErrors) []domain.FieldError {
	out := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := "is invalid"
		switch fe.Tag() {
		case "required":
			msg = "this field is required"
		case "email":
			msg = "enter a valid email address"
		case "oneof":
			msg = "must be one of: " + fe.Param()
		case "max":
			msg = "is too long"
		}
		out = append(out, domain.FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}

// writeError maps service and domain errors to HTTP responses.
func writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: "Validation failed", Fields: verr.Fields})
	case errors.Is(err, ports.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, domain.ErrStepIncomplete), errors.Is(err, domain.ErrTermsNotAccepted):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrFirstStep), errors.Is(err, domain.ErrLastStep), errors.Is(err, domain.ErrNotAtLastStep):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		log.Printf("handler: unexpected error: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

type SubmissionResponse struct {
	Title         string        `json:"title"`
	Message       string        `json:"message"`
	Retryable     bool          `json:"retryable,omitempty"`
	Outcome       ports.Outcome `json:"outcome"`
	ID            string        `json:"id,omitempty"`
	ReferenceCode string        `json:"reference_code,omitempty"`
	Enquiry       string        `json:"enquiry,omitempty"`
	WhatsAppURL   string        `json:"whatsapp_url,omitempty"`
}

// writeSubmission turns a submission outcome into the user-facing message.
func writeSubmission(w http.ResponseWriter, res ports.SubmissionResult, err error) {
	if err == nil {
		writeJSON(w, http.StatusCreated, SubmissionResponse{
			Title:         "Registration Successful!",
			Message:       "Thank you. Our team will contact you shortly.",
			Outcome:       res.Outcome,
			ID:            res.ID,
			ReferenceCode: res.ReferenceCode,
			Enquiry:       res.Message,
			WhatsAppURL:   res.WhatsAppURL,
		})
		return
	}

	switch res.Outcome {
	case ports.OutcomePersistenceDeniedRetryable:
		writeJSON(w, http.StatusServiceUnavailable, SubmissionResponse{
			Title:     "Submission Not Saved",
			Message:   "We could not save your registration right now. Please try again in a moment.",
			Retryable: true,
			Outcome:   res.Outcome,
		})
	case ports.OutcomePersistenceFailed:
		writeJSON(w, http.StatusInternalServerError, SubmissionResponse{
			Title:   "Submission Failed",
			Message: "Something went wrong while submitting. Please try again.",
			Outcome: res.Outcome,
		})
	default:
		writeError(w, err)
	}
}
