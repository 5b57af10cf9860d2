package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ddp/interlock-portal/internal/core/domain"
)

type stubSessionRepo struct {
	data map[string][]byte
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{data: make(map[string][]byte)}
}

func (r *stubSessionRepo) Save(_ context.Context, key string, snapshot []byte, _ time.Duration) error {
	r.data[key] = append([]byte(nil), snapshot...)
	return nil
}

func (r *stubSessionRepo) Load(_ context.Context, key string) ([]byte, error) {
	raw, ok := r.data[key]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return raw, nil
}

func (r *stubSessionRepo) Delete(_ context.Context, key string) error {
	delete(r.data, key)
	return nil
}

func newTestStore(repo *stubSessionRepo) *Store {
	auth := NewTableAuthenticator(map[string]domain.Role{
		"ops@example.com":   domain.RoleCompany,
		"admin@example.com": domain.RoleAdmin,
	})
	return NewStore(repo, auth, time.Hour)
}

func TestStore_LoginPersistsSnapshot(t *testing.T) {
	repo := newStubSessionRepo()
	store := newTestStore(repo)

	result, sid, err := store.Login(context.Background(), "admin@example.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Principal.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", result.Principal.Role)
	}
	if sid == "" {
		t.Fatalf("expected a session ID")
	}

	raw, ok := repo.data[KeyPrefix+sid]
	if !ok {
		t.Fatalf("snapshot not persisted under %q", KeyPrefix+sid)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		t.Fatalf("persisted snapshot not valid JSON: %v", err)
	}
	if !snapshot.IsAuthenticated || snapshot.Principal == nil {
		t.Fatalf("snapshot should be authenticated with a principal")
	}
}

func TestStore_LoginFailureLeavesStateUnchanged(t *testing.T) {
	repo := newStubSessionRepo()
	store := newTestStore(repo)

	if _, _, err := store.Login(context.Background(), "", "pw"); err == nil {
		t.Fatalf("expected login failure")
	}
	if len(repo.data) != 0 {
		t.Fatalf("failed login must not write state")
	}
}

func TestStore_RoundTrip(t *testing.T) {
	repo := newStubSessionRepo()
	store := newTestStore(repo)

	result, sid, err := store.Login(context.Background(), "ops@example.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	// Simulated reload: a fresh store over the same repository.
	reloaded := newTestStore(repo)
	snapshot, err := reloaded.Get(context.Background(), sid)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !snapshot.IsAuthenticated {
		t.Fatalf("rehydrated session should be authenticated")
	}
	if *snapshot.Principal != *result.Principal {
		t.Fatalf("rehydrated principal differs: got %+v want %+v", snapshot.Principal, result.Principal)
	}
}

func TestStore_LogoutClearsAtomically(t *testing.T) {
	repo := newStubSessionRepo()
	store := newTestStore(repo)

	_, sid, err := store.Login(context.Background(), "a@example.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if err := store.Logout(context.Background(), sid); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	// Any synchronous reader must observe principal and flag cleared
	// together: the snapshot is gone as a unit.
	snapshot, err := store.Get(context.Background(), sid)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if snapshot.IsAuthenticated || snapshot.Principal != nil {
		t.Fatalf("logout must clear principal and flag together, got %+v", snapshot)
	}

	// Logging out twice is fine.
	if err := store.Logout(context.Background(), sid); err != nil {
		t.Fatalf("repeat Logout returned error: %v", err)
	}
}

func TestStore_GetMissingIsAnonymous(t *testing.T) {
	store := newTestStore(newStubSessionRepo())

	snapshot, err := store.Get(context.Background(), "no-such-session")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if snapshot.IsAuthenticated || snapshot.Principal != nil {
		t.Fatalf("missing session must read as anonymous")
	}
}

func TestStore_CorruptSnapshotDiscarded(t *testing.T) {
	repo := newStubSessionRepo()
	store := newTestStore(repo)

	repo.data[KeyPrefix+"bad"] = []byte("{not json")
	snapshot, err := store.Get(context.Background(), "bad")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if snapshot.IsAuthenticated {
		t.Fatalf("corrupt snapshot must read as anonymous")
	}
	if _, ok := repo.data[KeyPrefix+"bad"]; ok {
		t.Fatalf("corrupt snapshot should be discarded")
	}

	// Invariant violation (authenticated without principal) is also corrupt.
	repo.data[KeyPrefix+"torn"] = []byte(`{"principal":null,"isAuthenticated":true}`)
	snapshot, err = store.Get(context.Background(), "torn")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if snapshot.IsAuthenticated {
		t.Fatalf("invariant-violating snapshot must read as anonymous")
	}
}

func TestStore_UpdatePrincipal(t *testing.T) {
	repo := newStubSessionRepo()
	store := newTestStore(repo)

	_, sid, err := store.Login(context.Background(), "ops@example.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	phone := "010-1234-5678"
	updated, err := store.UpdatePrincipal(context.Background(), sid, domain.PrincipalPatch{Phone: &phone})
	if err != nil {
		t.Fatalf("UpdatePrincipal returned error: %v", err)
	}
	if updated.Phone != phone {
		t.Fatalf("phone not applied: %q", updated.Phone)
	}

	snapshot, err := store.Get(context.Background(), sid)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if snapshot.Principal.Phone != phone {
		t.Fatalf("update not persisted")
	}
	if !snapshot.IsAuthenticated {
		t.Fatalf("update must not alter the authenticated flag")
	}
}

func TestStore_UpdatePrincipalWithoutSessionIsNoop(t *testing.T) {
	store := newTestStore(newStubSessionRepo())

	name := "anyone"
	updated, err := store.UpdatePrincipal(context.Background(), "missing", domain.PrincipalPatch{Name: &name})
	if err != nil {
		t.Fatalf("UpdatePrincipal returned error: %v", err)
	}
	if updated != nil {
		t.Fatalf("no-session update must be a no-op")
	}
}

func TestStore_LastLoginWins(t *testing.T) {
	repo := newStubSessionRepo()
	store := newTestStore(repo)

	// Two logins in quick succession produce independent sessions; the one
	// the client applies last determines its principal. Known behavior, not
	// necessarily desired.
	_, sid1, err := store.Login(context.Background(), "ops@example.com", "pw")
	if err != nil {
		t.Fatalf("first Login returned error: %v", err)
	}
	_, sid2, err := store.Login(context.Background(), "admin@example.com", "pw")
	if err != nil {
		t.Fatalf("second Login returned error: %v", err)
	}
	if sid1 == sid2 {
		t.Fatalf("logins must not share a session")
	}

	last, err := store.Get(context.Background(), sid2)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if last.Principal.Role != domain.RoleAdmin {
		t.Fatalf("last-resolved login should win, got role %s", last.Principal.Role)
	}
}

func TestTableAuthenticator_DefaultsToUser(t *testing.T) {
	auth := NewTableAuthenticator(map[string]domain.Role{"ops@example.com": domain.RoleCompany})

	res, err := auth.Authenticate(context.Background(), "someone@example.com", "pw")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if res.Principal.Role != domain.RoleUser {
		t.Fatalf("unlisted identifier should default to user role, got %s", res.Principal.Role)
	}
	if res.Token != "" {
		t.Fatalf("mock mode must not issue token metadata")
	}

	res, err = auth.Authenticate(context.Background(), "ops@example.com", "pw")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if res.Principal.Role != domain.RoleCompany {
		t.Fatalf("listed identifier should map to its role, got %s", res.Principal.Role)
	}
}
