package guard

import (
	"testing"

	"github.com/ddp/interlock-portal/internal/core/domain"
)

func TestDecide_PendingNeverRedirects(t *testing.T) {
	if got := Decide(Pending(), nil); got != Loading {
		t.Fatalf("pending session: got %s, want loading", got)
	}
	if got := Decide(Pending(), []domain.Role{domain.RoleAdmin}); got != Loading {
		t.Fatalf("pending session with allow-list: got %s, want loading", got)
	}
}

func TestDecide_AnonymousRedirectsToLogin(t *testing.T) {
	if got := Decide(Anonymous(), nil); got != RedirectLogin {
		t.Fatalf("anonymous: got %s, want redirect_login", got)
	}
	if got := Decide(Anonymous(), []domain.Role{domain.RoleUser}); got != RedirectLogin {
		t.Fatalf("anonymous with allow-list: got %s, want redirect_login", got)
	}
}

func TestDecide_RoleOutsideAllowListIsUnauthorized(t *testing.T) {
	allowed := []domain.Role{domain.RoleAdmin}
	for _, role := range []domain.Role{domain.RoleUser, domain.RoleCompany} {
		if got := Decide(Authenticated(role), allowed); got != RedirectUnauthorized {
			t.Fatalf("role %s against admin-only list: got %s, want redirect_unauthorized", role, got)
		}
	}
}

func TestDecide_AllowedRoleRenders(t *testing.T) {
	allowed := []domain.Role{domain.RoleCompany, domain.RoleAdmin}
	if got := Decide(Authenticated(domain.RoleCompany), allowed); got != Allow {
		t.Fatalf("company in allow-list: got %s, want allow", got)
	}
	if got := Decide(Authenticated(domain.RoleAdmin), allowed); got != Allow {
		t.Fatalf("admin in allow-list: got %s, want allow", got)
	}
}

func TestDecide_EmptyAllowListAdmitsAnyAuthenticated(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleUser, domain.RoleCompany, domain.RoleAdmin} {
		if got := Decide(Authenticated(role), nil); got != Allow {
			t.Fatalf("role %s with no allow-list: got %s, want allow", role, got)
		}
	}
}
