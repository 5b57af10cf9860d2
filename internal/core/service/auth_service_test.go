package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ddp/interlock-portal/internal/core/domain"
	"github.com/ddp/interlock-portal/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by email
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.users[user.Email] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	for email, u := range r.users {
		if u.ID == user.ID {
			r.users[email] = cloneUser(user)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, role domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if role == "" || u.Role == role {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func registerInput(email string) ports.RegisterInput {
	return ports.RegisterInput{
		Email:    email,
		Password: "s3cret-pass",
		Name:     "Alice",
		Role:     domain.RoleUser,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	user, err := svc.Register(context.Background(), registerInput("alice@example.com"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated ID")
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Status != domain.AccountActive {
		t.Fatalf("expected active account, got %s", user.Status)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	input := registerInput("")
	if _, err := svc.Register(context.Background(), input); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	input = registerInput("bob@example.com")
	input.Role = "superuser"
	if _, err := svc.Register(context.Background(), input); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), registerInput("bob@example.com")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("bob@example.com")); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	input := registerInput("carol@example.com")
	input.Role = domain.RoleAdmin
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.Email != "carol@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["sub"] != user.ID || claims["role"] != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), registerInput("dan@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "dan@example.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	user, err := svc.Register(context.Background(), registerInput("eve@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	user.Status = domain.AccountSuspended
	if err := repo.Update(context.Background(), user); err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "eve@example.com", "s3cret-pass"); err != domain.ErrAccountInactive {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}

func TestAuthService_Authenticate_ReturnsPrincipalAndToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	input := registerInput("frank@example.com")
	input.Role = domain.RoleCompany
	input.CompanyID = "c1"
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Authenticate(context.Background(), "frank@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if result.Principal == nil || result.Principal.Role != domain.RoleCompany || result.Principal.CompanyID != "c1" {
		t.Fatalf("unexpected principal: %+v", result.Principal)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}
}

func TestAuthService_UpdateProfile_MergesPatch(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	created, err := svc.Register(context.Background(), registerInput("gail@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	name := "Gail Updated"
	phone := "555-0100"
	updated, err := svc.UpdateProfile(context.Background(), created.ID, domain.PrincipalPatch{Name: &name, Phone: &phone})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.Name != "Gail Updated" || updated.Phone != "555-0100" {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Email != "gail@example.com" {
		t.Fatalf("untouched field changed: %+v", updated)
	}

	stored, _ := repo.FindByID(context.Background(), created.ID)
	if stored.Name != "Gail Updated" {
		t.Fatalf("update not persisted")
	}
}
