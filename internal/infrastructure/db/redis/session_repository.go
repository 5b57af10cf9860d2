package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ddp/interlock-portal/internal/core/domain"
)

// SessionRepository stores session snapshots as opaque byte strings with a
// TTL mirroring the session cookie lifetime. Keys are passed through as-is;
// the session store owns the key layout.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func (r *SessionRepository) Save(ctx context.Context, key string, snapshot []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, snapshot, ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (r *SessionRepository) Load(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("session load: %w", err)
	}
	return raw, nil
}

func (r *SessionRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}
