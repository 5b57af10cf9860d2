// Package session implements the portal's server-side session store: one
// JSON snapshot per session ID, persisted under a stable key prefix, holding
// the authenticated principal and flag. The store is an injectable object;
// consumers receive it, nothing reads ambient globals.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ddp/interlock-portal/internal/core/domain"
	"github.com/ddp/interlock-portal/internal/core/ports"
)

// KeyPrefix is the stable storage-key prefix for session snapshots. The
// full key is KeyPrefix + sessionID.
const KeyPrefix = "auth-storage:"

const defaultTTL = 24 * time.Hour

// Snapshot is the persisted session state. Principal is non-nil exactly
// when IsAuthenticated is true.
type Snapshot struct {
	Principal       *domain.Principal `json:"principal"`
	IsAuthenticated bool              `json:"isAuthenticated"`
}

// Anonymous is the zero-value snapshot read back for missing, corrupt, or
// logged-out sessions.
func Anonymous() Snapshot {
	return Snapshot{}
}

// Store owns session lifecycle: login creates a snapshot, logout destroys
// it, profile updates merge into it. Every mutation persists the updated
// snapshot before returning.
type Store struct {
	repo ports.SessionRepository
	auth ports.Authenticator
	ttl  time.Duration
}

func NewStore(repo ports.SessionRepository, auth ports.Authenticator, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{repo: repo, auth: auth, ttl: ttl}
}

// Login verifies credentials and, on success, creates a new session and
// persists its snapshot. On failure no state is written and the error is
// returned to the caller. Concurrent logins are not deduplicated: each call
// creates an independent session, and whichever response the client applies
// last wins.
func (s *Store) Login(ctx context.Context, email, password string) (*ports.LoginResult, string, error) {
	result, err := s.auth.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	sessionID := ulid.Make().String()
	snapshot := Snapshot{Principal: result.Principal, IsAuthenticated: true}
	if err := s.persist(ctx, sessionID, snapshot); err != nil {
		return nil, "", err
	}

	return result, sessionID, nil
}

// Logout destroys the session unconditionally. It does not navigate and
// does not wait on any backend revocation: local state is cleared first.
func (s *Store) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	err := s.repo.Delete(ctx, KeyPrefix+sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}
	return err
}

// Get rehydrates the snapshot for sessionID. Missing sessions read as
// anonymous. A snapshot that fails to decode, or that violates the
// principal-iff-authenticated invariant, is discarded and reads as
// anonymous rather than surfacing stale state.
func (s *Store) Get(ctx context.Context, sessionID string) (Snapshot, error) {
	if sessionID == "" {
		return Anonymous(), nil
	}

	raw, err := s.repo.Load(ctx, KeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return Anonymous(), nil
		}
		return Anonymous(), err
	}

	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil || snapshot.IsAuthenticated != (snapshot.Principal != nil) {
		_ = s.repo.Delete(ctx, KeyPrefix+sessionID)
		return Anonymous(), nil
	}

	return snapshot, nil
}

// UpdatePrincipal merges a partial update into the session's principal and
// persists the result. The authenticated flag is never altered. A session
// with no principal is a no-op.
func (s *Store) UpdatePrincipal(ctx context.Context, sessionID string, patch domain.PrincipalPatch) (*domain.Principal, error) {
	snapshot, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if snapshot.Principal == nil {
		return nil, nil
	}

	patch.Apply(snapshot.Principal, time.Now().UTC())
	if err := s.persist(ctx, sessionID, snapshot); err != nil {
		return nil, err
	}
	return snapshot.Principal, nil
}

// RedirectPath returns the default landing route for a role.
func (s *Store) RedirectPath(role domain.Role) string {
	return domain.RedirectPath(role)
}

func (s *Store) persist(ctx context.Context, sessionID string, snapshot Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return s.repo.Save(ctx, KeyPrefix+sessionID, raw, s.ttl)
}
