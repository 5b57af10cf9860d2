package handler

import "github.com/ddp/interlock-portal/internal/core/domain"

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"     validate:"required"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// loginResponse mirrors the backend token-response contract: success flag,
// message, and on success the principal plus opaque token metadata.
type loginResponse struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message"`
	User     *domain.Principal `json:"user,omitempty"`
	Token    string            `json:"token,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

type sessionResponse struct {
	Authenticated bool              `json:"authenticated"`
	User          *domain.Principal `json:"user,omitempty"`
}

type updateProfileRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}
