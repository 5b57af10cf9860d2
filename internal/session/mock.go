package session

import (
	"context"
	"strings"
	"time"

	"github.com/ddp/interlock-portal/internal/core/domain"
	"github.com/ddp/interlock-portal/internal/core/ports"
)

// TableAuthenticator derives a principal deterministically from the login
// identifier using a configured identifier-to-role table, defaulting any
// unlisted identifier to the ordinary-subject role. It backs the portal
// when it runs disconnected from its account database.
type TableAuthenticator struct {
	roles map[string]domain.Role
}

// NewTableAuthenticator builds an authenticator over the given table. The
// table may be nil; every login then resolves to RoleUser.
func NewTableAuthenticator(roles map[string]domain.Role) *TableAuthenticator {
	return &TableAuthenticator{roles: roles}
}

// Authenticate accepts any non-empty credential pair and fabricates the
// principal for it. Empty identifier or password is still rejected so the
// failure path stays exercised. No token metadata is issued in mock mode.
func (a *TableAuthenticator) Authenticate(_ context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	role, ok := a.roles[email]
	if !ok || !role.Valid() {
		role = domain.RoleUser
	}

	now := time.Now().UTC()
	return &ports.LoginResult{Principal: &domain.Principal{
		ID:        email,
		Email:     email,
		Name:      displayName(email),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}}, nil
}

func displayName(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
