package services

import (
	"context"
	"log"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
)

// TermsService records a tutor's acceptance of the agreement against an
// existing tutor registration.
type TermsService struct {
	repo ports.RegistrationRepository
}

var _ ports.TermsService = (*TermsService)(nil)

func NewTermsService(repo ports.RegistrationRepository) *TermsService {
	return &TermsService{repo: repo}
}

func (s *TermsService) Sections() []domain.TermsSection {
	return domain.TermsSections
}

func (s *TermsService) Accept(ctx context.Context, tutorID string, acceptance domain.TermsAcceptance) error {
	if !acceptance.AllChecked() {
		return domain.ErrTermsNotAccepted
	}
	if _, err := s.repo.GetTutor(ctx, tutorID); err != nil {
		return err
	}
	if err := s.repo.MarkTermsAccepted(ctx, tutorID, domain.StatusTermsAccepted); err != nil {
		return err
	}
	log.Printf("terms: tutor %s accepted the agreement", tutorID)
	return nil
}
