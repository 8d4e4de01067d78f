package ports

import (
	"context"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
)

// WizardSession is a student draft in progress and the wizard step it is on.
type WizardSession struct {
	ID    string               `json:"id"`
	Step  int                  `json:"step"`
	Draft *domain.StudentDraft `json:"draft"`
}

// DraftStore keeps wizard sessions until they are submitted or expire.
type DraftStore interface {
	Save(ctx context.Context, s WizardSession) error
	Load(ctx context.Context, id string) (*WizardSession, error)
	Delete(ctx context.Context, id string) error
}

// SeenStateStore remembers whether a visitor has already seen the promo popup.
type SeenStateStore interface {
	HasBeenShown(ctx context.Context, visitorID string) (bool, error)
	MarkShown(ctx context.Context, visitorID string) error
}
