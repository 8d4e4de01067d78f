package ports

import (
	"context"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
)

// RegistrationNotification is what the notification function receives for
// every persisted registration.
type RegistrationNotification struct {
	Type          domain.RegistrationType `json:"type"`
	ReferenceCode string                  `json:"reference_code,omitempty"`
	Registration  any                     `json:"registration"`
}

type NotificationPublisher interface {
	PublishRegistration(ctx context.Context, n RegistrationNotification) error
}
