package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by Redis, letting several processes share tokens.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(rdb *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "baseclient:"
	}
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(id string) string { return s.prefix + "token:" + id }

func (s *RedisStore) Put(ctx context.Context, t *Token) error {
	now := time.Now()
	stamp(t, now, s.ttl)
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(t.ID), data, ttlFor(t, now)).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Token, error) {
	raw, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	t := &Token{}
	if err := json.Unmarshal(raw, t); err != nil {
		return nil, fmt.Errorf("failed to decode token %v: %w", id, err)
	}
	if t.Expired(time.Now()) {
		_ = s.rdb.Del(ctx, s.key(id)).Err()
		return nil, ErrNotFound
	}
	return t, nil
}

func (s *RedisStore) Revoke(ctx context.Context, id string) error {
	deleted, err := s.rdb.Del(ctx, s.key(id)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

func ttlFor(t *Token, now time.Time) time.Duration {
	if t.ExpiresAt.IsZero() {
		return 0 // no TTL
	}
	if t.ExpiresAt.Before(now) {
		return time.Second
	}
	return t.ExpiresAt.Sub(now)
}

// String returns a diagnostic representation of the store config.
func (s *RedisStore) String() string {
	return fmt.Sprintf("RedisStore{prefix=%s ttl=%s}", s.prefix, s.ttl)
}
