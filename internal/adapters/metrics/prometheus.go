package metrics

import (
	"strconv"
	"time"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "intake"

// Recorder implements ports.MetricsRecorder with Prometheus collectors.
type Recorder struct {
	submissions   *prometheus.CounterVec
	persistence   *prometheus.HistogramVec
	notifications *prometheus.CounterVec
	wizard        *prometheus.CounterVec
}

var _ ports.MetricsRecorder = (*Recorder)(nil)

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registration_submissions_total",
			Help:      "Registration submissions by type and outcome.",
		}, []string{"type", "outcome"}),
		persistence: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "persistence_duration_seconds",
			Help:      "Time spent inserting registrations into the store.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_dispatch_total",
			Help:      "Notification dispatches by type and result.",
		}, []string{"type", "success"}),
		wizard: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wizard_transitions_total",
			Help:      "Wizard navigation attempts by action and result.",
		}, []string{"action", "allowed"}),
	}
	reg.MustRegister(r.submissions, r.persistence, r.notifications, r.wizard)
	return r
}

func (r *Recorder) SubmissionRecorded(kind domain.RegistrationType, outcome string) {
	r.submissions.WithLabelValues(string(kind), outcome).Inc()
}

func (r *Recorder) PersistenceObserved(kind domain.RegistrationType, d time.Duration) {
	r.persistence.WithLabelValues(string(kind)).Observe(d.Seconds())
}

func (r *Recorder) NotificationRecorded(kind domain.RegistrationType, ok bool) {
	r.notifications.WithLabelValues(string(kind), strconv.FormatBool(ok)).Inc()
}

func (r *Recorder) WizardTransition(action string, ok bool) {
	r.wizard.WithLabelValues(action, strconv.FormatBool(ok)).Inc()
}
