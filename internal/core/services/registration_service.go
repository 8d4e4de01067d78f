package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
	"github.com/google/uuid"
)

const defaultNotificationTimeout = 10 * time.Second

type RegistrationConfig struct {
	WhatsAppNumber      string
	NotificationTimeout time.Duration
}

type RegistrationService struct {
	repo      ports.RegistrationRepository
	publisher ports.NotificationPublisher
	formatter *domain.Formatter
	metrics   ports.MetricsRecorder
	cfg       RegistrationConfig

	newID func() string
	now   func() time.Time

	dispatches sync.WaitGroup
}

var _ ports.RegistrationService = (*RegistrationService)(nil)

func NewRegistrationService(
	repo ports.RegistrationRepository,
	publisher ports.NotificationPublisher,
	formatter *domain.Formatter,
	metrics ports.MetricsRecorder,
	cfg RegistrationConfig,
) *RegistrationService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if cfg.NotificationTimeout <= 0 {
		cfg.NotificationTimeout = defaultNotificationTimeout
	}
	return &RegistrationService{
		repo:      repo,
		publisher: publisher,
		formatter: formatter,
		metrics:   metrics,
		cfg:       cfg,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

func (s *RegistrationService) SubmitStudent(ctx context.Context, draft *domain.StudentDraft) (ports.SubmissionResult, error) {
	if err := draft.Validate(); err != nil {
		s.metrics.SubmissionRecorded(domain.RegistrationStudent, "invalid")
		return ports.SubmissionResult{}, err
	}
	return s.persistStudent(ctx, draft.ToRecord(s.newID(), s.now()))
}

func (s *RegistrationService) SubmitQuick(ctx context.Context, draft *domain.QuickDraft) (ports.SubmissionResult, error) {
	if err := draft.Validate(); err != nil {
		s.metrics.SubmissionRecorded(domain.RegistrationStudent, "invalid")
		return ports.SubmissionResult{}, err
	}
	return s.persistStudent(ctx, draft.ToRecord(s.newID(), s.now()))
}

func (s *RegistrationService) SubmitTutor(ctx context.Context, draft *domain.TutorDraft) (ports.SubmissionResult, error) {
	if err := draft.Validate(); err != nil {
		s.metrics.SubmissionRecorded(domain.RegistrationTutor, "invalid")
		return ports.SubmissionResult{}, err
	}

	rec := draft.ToRecord(s.newID(), s.now())
	start := time.Now()
	err := s.repo.InsertTutor(ctx, rec)
	s.metrics.PersistenceObserved(domain.RegistrationTutor, time.Since(start))
	if err != nil {
		return s.persistenceFailure(domain.RegistrationTutor, rec.ID, err)
	}

	ref := s.formatter.ReferenceCode()
	s.metrics.SubmissionRecorded(domain.RegistrationTutor, string(ports.OutcomePersisted))
	s.dispatch(ctx, ports.RegistrationNotification{
		Type:          domain.RegistrationTutor,
		ReferenceCode: ref,
		Registration:  rec,
	})

	return ports.SubmissionResult{
		Outcome:       ports.OutcomePersisted,
		ID:            rec.ID,
		ReferenceCode: ref,
	}, nil
}

func (s *RegistrationService) persistStudent(ctx context.Context, rec domain.StudentRecord) (ports.SubmissionResult, error) {
	start := time.Now()
	err := s.repo.InsertStudent(ctx, rec)
	s.metrics.PersistenceObserved(domain.RegistrationStudent, time.Since(start))
	if err != nil {
		return s.persistenceFailure(domain.RegistrationStudent, rec.ID, err)
	}

	ref := s.formatter.ReferenceCode()
	msg := s.formatter.StudentMessage(rec, ref)
	s.metrics.SubmissionRecorded(domain.RegistrationStudent, string(ports.OutcomePersisted))
	s.dispatch(ctx, ports.RegistrationNotification{
		Type:          domain.RegistrationStudent,
		ReferenceCode: ref,
		Registration:  rec,
	})

	return ports.SubmissionResult{
		Outcome:       ports.OutcomePersisted,
		ID:            rec.ID,
		ReferenceCode: ref,
		Message:       msg,
		WhatsAppURL:   domain.WhatsAppURL(s.cfg.WhatsAppNumber, msg),
	}, nil
}

func (s *RegistrationService) persistenceFailure(kind domain.RegistrationType, id string, err error) (ports.SubmissionResult, error) {
	outcome := ports.OutcomePersistenceFailed
	if errors.Is(err, ports.ErrPersistenceDenied) {
		outcome = ports.OutcomePersistenceDeniedRetryable
	}
	log.Printf("registration: %s insert %s failed (%s): %v", kind, id, outcome, err)
	s.metrics.SubmissionRecorded(kind, string(outcome))
	return ports.SubmissionResult{Outcome: outcome}, fmt.Errorf("insert %s registration: %w", kind, err)
}

// dispatch sends the notification in the background. Failures are logged
// and never reach the submitter.
func (s *RegistrationService) dispatch(ctx context.Context, n ports.RegistrationNotification) {
	if s.publisher == nil {
		return
	}

	s.dispatches.Add(1)
	go func() {
		defer s.dispatches.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("notification: %s dispatch panicked: %v", n.Type, r)
				s.metrics.NotificationRecorded(n.Type, false)
			}
		}()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.NotificationTimeout)
		defer cancel()

		if err := s.publisher.PublishRegistration(ctx, n); err != nil {
			log.Printf("notification: %s %s dispatch failed: %v", n.Type, n.ReferenceCode, err)
			s.metrics.NotificationRecorded(n.Type, false)
			return
		}
		s.metrics.NotificationRecorded(n.Type, true)
	}()
}

// Wait blocks until every in-flight notification dispatch has finished.
func (s *RegistrationService) Wait() {
	s.dispatches.Wait()
}
