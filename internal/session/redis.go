package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tamirciBul/internal/models"
)

const defaultTTL = 20 * time.Hour

// RedisStore keeps the session in Redis so it survives gateway restarts.
// The TTL follows the token expiry when the token carries one.
type RedisStore struct {
	rdb *redis.Client
	key string
}

// NewRedisStore constructs a Redis-backed store under the given key.
func NewRedisStore(rdb *redis.Client, key string) *RedisStore {
	if key == "" {
		key = "session:gateway"
	}
	return &RedisStore{rdb: rdb, key: key}
}

func (s *RedisStore) Get(ctx context.Context) (models.Session, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return models.Session{}, models.ErrNoSession
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("session: redis get: %w", err)
	}
	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return models.Session{}, fmt.Errorf("session: decode: %w", err)
	}
	if sess.Expired() {
		return models.Session{}, models.ErrSessionExpired
	}
	return sess, nil
}

func (s *RedisStore) Set(ctx context.Context, sess models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	ttl := defaultTTL
	if !sess.ExpiresAt.IsZero() {
		ttl = time.Until(sess.ExpiresAt)
		if ttl <= 0 {
			return models.ErrSessionExpired
		}
	}
	if err := s.rdb.Set(ctx, s.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}
