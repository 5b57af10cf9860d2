package domain

import "time"

// AccountStatus represents the lifecycle state of a portal account.
type AccountStatus string

const (
	AccountPending     AccountStatus = "pending"     // created by an admin, registration not finished
	AccountActive      AccountStatus = "active"      // registration complete
	AccountSuspended   AccountStatus = "suspended"   // blocked by an admin
	AccountDeactivated AccountStatus = "deactivated" // closed at the user's request
)

// User is a portal account as persisted. PasswordHash never leaves the
// service layer.
type User struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	Name         string        `json:"name"`
	PasswordHash string        `json:"-"`
	Role         Role          `json:"role"`
	Status       AccountStatus `json:"status"`
	Phone        string        `json:"phone,omitempty"`
	Address      string        `json:"address,omitempty"`
	CompanyID    string        `json:"company_id,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Principal returns the identity slice of the account that is safe to hold
// in a session snapshot and return to clients.
func (u *User) Principal() *Principal {
	return &Principal{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Phone:     u.Phone,
		Address:   u.Address,
		CompanyID: u.CompanyID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Principal is the authenticated identity held by a session: who the caller
// is and which role tree they may enter. It carries no credentials.
type Principal struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CompanyID string    `json:"company_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PrincipalPatch is a partial update applied to a session's principal.
// Nil fields are left untouched.
type PrincipalPatch struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// Apply merges the patch into p, bumping UpdatedAt when anything changed.
func (patch PrincipalPatch) Apply(p *Principal, now time.Time) {
	if p == nil {
		return
	}
	changed := false
	if patch.Name != nil && *patch.Name != p.Name {
		p.Name = *patch.Name
		changed = true
	}
	if patch.Phone != nil && *patch.Phone != p.Phone {
		p.Phone = *patch.Phone
		changed = true
	}
	if patch.Address != nil && *patch.Address != p.Address {
		p.Address = *patch.Address
		changed = true
	}
	if changed {
		p.UpdatedAt = now
	}
}
