package ports

import (
	"time"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
)

type MetricsRecorder interface {
	SubmissionRecorded(kind domain.RegistrationType, outcome string)
	PersistenceObserved(kind domain.RegistrationType, d time.Duration)
	NotificationRecorded(kind domain.RegistrationType, ok bool)
	WizardTransition(action string, ok bool)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) SubmissionRecorded(domain.RegistrationType, string)         {}
func (NopMetrics) PersistenceObserved(domain.RegistrationType, time.Duration) {}
func (NopMetrics) NotificationRecorded(domain.RegistrationType, bool)         {}
func (NopMetrics) WizardTransition(string, bool)                              {}
