package ports

import (
	"context"

	"github.com/ddp/interlock-portal/internal/core/domain"
)

// RegisterInput carries the data needed to create a portal account.
type RegisterInput struct {
	Email     string
	Password  string
	Name      string
	Role      domain.Role
	Phone     string
	Address   string
	CompanyID string
}

// AuthService implements account registration and credential verification.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	UpdateProfile(ctx context.Context, userID string, patch domain.PrincipalPatch) (*domain.User, error)
	ListUsers(ctx context.Context, role domain.Role) ([]*domain.User, error)
}

// LoginResult is what a successful credential check yields: the principal
// plus opaque token metadata from the auth backend. The portal never
// inspects the token; it only hands it back to API clients.
type LoginResult struct {
	Principal *domain.Principal
	Token     string // empty in mock mode
}

// Authenticator is the credential check consumed by the session store. The
// production implementation is the AuthService; a table-driven mock stands
// in when the portal runs without its backing database.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*LoginResult, error)
}
