package services

import (
	"context"
	"errors"
	"log"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
	"github.com/google/uuid"
)

// WizardService drives the four-step student wizard. Drafts live in the
// draft store between requests and are removed once submitted.
type WizardService struct {
	store        ports.DraftStore
	registration ports.RegistrationService
	metrics      ports.MetricsRecorder
}

var _ ports.WizardService = (*WizardService)(nil)

func NewWizardService(store ports.DraftStore, registration ports.RegistrationService, metrics ports.MetricsRecorder) *WizardService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &WizardService{store: store, registration: registration, metrics: metrics}
}

func (s *WizardService) Start(ctx context.Context) (ports.WizardView, error) {
	sess := ports.WizardSession{
		ID:    uuid.NewString(),
		Draft: domain.NewStudentDraft(),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return ports.WizardView{}, err
	}
	return view(&sess), nil
}

func (s *WizardService) Get(ctx context.Context, id string) (ports.WizardView, error) {
	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return ports.WizardView{}, err
	}
	return view(sess), nil
}

func (s *WizardService) Update(ctx context.Context, id string, patch domain.StudentDraftPatch) (ports.WizardView, error) {
	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return ports.WizardView{}, err
	}
	if err := patch.Apply(sess.Draft); err != nil {
		return ports.WizardView{}, err
	}
	if err := s.store.Save(ctx, *sess); err != nil {
		return ports.WizardView{}, err
	}
	return view(sess), nil
}

func (s *WizardService) Next(ctx context.Context, id string) (ports.WizardView, error) {
	return s.move(ctx, id, "next", func(w *domain.Wizard[*domain.StudentDraft], d *domain.StudentDraft) error {
		return w.Next(d)
	})
}

func (s *WizardService) Back(ctx context.Context, id string) (ports.WizardView, error) {
	return s.move(ctx, id, "back", func(w *domain.Wizard[*domain.StudentDraft], _ *domain.StudentDraft) error {
		return w.Back()
	})
}

func (s *WizardService) move(
	ctx context.Context,
	id, action string,
	step func(*domain.Wizard[*domain.StudentDraft], *domain.StudentDraft) error,
) (ports.WizardView, error) {
	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return ports.WizardView{}, err
	}

	w := domain.ResumeWizard(sess.Step, domain.StudentWizardSteps()...)
	if err := step(w, sess.Draft); err != nil {
		s.metrics.WizardTransition(action, false)
		return view(sess), err
	}
	s.metrics.WizardTransition(action, true)

	sess.Step = w.Current()
	if err := s.store.Save(ctx, *sess); err != nil {
		return ports.WizardView{}, err
	}
	return view(sess), nil
}

// Submit re-validates every step, submits the draft and discards the
// session once the registration is persisted.
func (s *WizardService) Submit(ctx context.Context, id string) (ports.SubmissionResult, error) {
	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return ports.SubmissionResult{}, err
	}

	w := domain.ResumeWizard(sess.Step, domain.StudentWizardSteps()...)
	if err := w.ValidateSubmit(sess.Draft); err != nil {
		s.metrics.WizardTransition("submit", false)
		return ports.SubmissionResult{}, err
	}

	res, err := s.registration.SubmitStudent(ctx, sess.Draft)
	if err != nil {
		return res, err
	}
	s.metrics.WizardTransition("submit", true)

	if err := s.store.Delete(ctx, id); err != nil && !errors.Is(err, ports.ErrNotFound) {
		log.Printf("wizard: failed to discard session %s: %v", id, err)
	}
	return res, nil
}

func view(sess *ports.WizardSession) ports.WizardView {
	w := domain.ResumeWizard(sess.Step, domain.StudentWizardSteps()...)
	d := sess.Draft
	return ports.WizardView{
		ID:          sess.ID,
		Step:        w.Current(),
		StepName:    w.StepName(),
		Steps:       w.Len(),
		Progress:    w.Progress(),
		CanAdvance:  w.CanAdvance(d),
		Draft:       d,
		Category:    d.Category(),
		Visibility:  d.Visibility(),
		MonthlyFee:  d.MonthlyFee(),
		RateSlider:  domain.RateSlider(d.ClassGrade),
		HoursSlider: domain.HoursSlider,
	}
}
