package services

import (
	"context"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
)

// PopupService shows the promo popup once per visitor.
type PopupService struct {
	seen ports.SeenStateStore
}

var _ ports.PopupService = (*PopupService)(nil)

func NewPopupService(seen ports.SeenStateStore) *PopupService {
	return &PopupService{seen: seen}
}

func (s *PopupService) ShouldShow(ctx context.Context, visitorID string) (bool, error) {
	shown, err := s.seen.HasBeenShown(ctx, visitorID)
	if err != nil || shown {
		return false, err
	}
	if err := s.seen.MarkShown(ctx, visitorID); err != nil {
		return false, err
	}
	return true, nil
}
