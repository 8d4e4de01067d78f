package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/config"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
)

const draftKeyPrefix = "wizard:student:"

// DraftStore keeps wizard sessions in Redis. Each save refreshes the TTL,
// so abandoned drafts expire on their own.
type DraftStore struct {
	client RedisClient
	ttl    time.Duration
	cb     *gobreaker.CircuitBreaker
}

var _ ports.DraftStore = (*DraftStore)(nil)

func NewDraftStore(client RedisClient, ttl time.Duration) *DraftStore {
	return &DraftStore{client: client, ttl: ttl, cb: config.NewCircuitBreaker(config.BreakerRedis)}
}

func (s *DraftStore) Save(ctx context.Context, sess ports.WizardSession) error {
	body, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	_, err = s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, draftKeyPrefix+sess.ID, string(body), s.ttl).Err()
	})
	return err
}

func (s *DraftStore) Load(ctx context.Context, id string) (*ports.WizardSession, error) {
	out, err := s.cb.Execute(func() (interface{}, error) {
		val, err := s.client.Get(ctx, draftKeyPrefix+id).Result()
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return val, err
	})
	if err != nil {
		return nil, err
	}
	raw := out.(string)
	if raw == "" {
		return nil, ports.ErrNotFound
	}

	var sess ports.WizardSession
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, err
	}
	if sess.Draft == nil {
		sess.Draft = domain.NewStudentDraft()
	}
	return &sess, nil
}

func (s *DraftStore) Delete(ctx context.Context, id string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Del(ctx, draftKeyPrefix+id).Err()
	})
	return err
}
