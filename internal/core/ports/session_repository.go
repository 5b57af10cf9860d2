package ports

import (
	"context"
	"time"
)

// SessionRepository persists serialized session snapshots keyed by session
// ID. Implementations store the value opaquely; the session store owns the
// encoding.
type SessionRepository interface {
	Save(ctx context.Context, sessionID string, snapshot []byte, ttl time.Duration) error
	Load(ctx context.Context, sessionID string) ([]byte, error)
	Delete(ctx context.Context, sessionID string) error
}
