package cache

import (
	"context"
	"time"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
)

const (
	seenKeyPrefix = "popup:seen:"
	seenTTL       = 30 * 24 * time.Hour
)

// SeenStateStore remembers popup views per visitor for thirty days.
type SeenStateStore struct {
	client RedisClient
}

var _ ports.SeenStateStore = (*SeenStateStore)(nil)

func NewSeenStateStore(client RedisClient) *SeenStateStore {
	return &SeenStateStore{client: client}
}

func (s *SeenStateStore) HasBeenShown(ctx context.Context, visitorID string) (bool, error) {
	n, err := s.client.Exists(ctx, seenKeyPrefix+visitorID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SeenStateStore) MarkShown(ctx context.Context, visitorID string) error {
	return s.client.Set(ctx, seenKeyPrefix+visitorID, "1", seenTTL).Err()
}
