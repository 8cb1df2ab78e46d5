package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"cupcake-backend/application/ports"
	"cupcake-backend/domain/checkout"
)

// RedisStore keeps checkout sessions in Redis under a per-session key.
// The TTL is refreshed on every save with a small jitter so a burst of
// sessions does not expire in the same instant.
type RedisStore struct {
	client  *redis.Client
	baseTTL time.Duration
}

// NewRedisStore creates a new Redis-backed session store
func NewRedisStore(client *redis.Client, baseTTL time.Duration) *RedisStore {
	return &RedisStore{
		client:  client,
		baseTTL: baseTTL,
	}
}

func (r *RedisStore) Get(ctx context.Context, id string) (*checkout.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var sess checkout.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session failed: %w", err)
	}
	return &sess, nil
}

func (r *RedisStore) Save(ctx context.Context, sess *checkout.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(60)) * time.Second
	if err := r.client.Set(ctx, sessionKey(sess.ID), data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}
