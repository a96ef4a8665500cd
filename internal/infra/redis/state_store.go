package redis

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"lakshya-career-assistant/internal/domain"
	"lakshya-career-assistant/internal/domain/ports/repository"
)

var _ repository.KeyValueStore = (*StateStore)(nil)

// StateStore keeps assistant state documents in Redis. A zero TTL means
// the documents never expire; a positive TTL turns the store into a
// session cache that forgets idle users.
type StateStore struct {
	client RedisClient
	ttl    time.Duration
	prefix string
}

func NewStateStore(client RedisClient, ttl time.Duration) *StateStore {
	return &StateStore{client: client, ttl: ttl, prefix: "assistant_state:"}
}

func (s *StateStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.prefix+key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return []byte(v), nil
}

func (s *StateStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.prefix+key, value, s.ttl)
}

func (s *StateStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key)
}
