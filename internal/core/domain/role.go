package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of portal roles.
type Role string

const (
	RoleUser    Role = "user"    // ordinary subject enrolled in the program
	RoleCompany Role = "company" // service-company operator
	RoleAdmin   Role = "admin"   // program administrator
)

// ParseRole converts a string to a Role. Matching is case-insensitive since
// the upstream auth services emit ADMIN / Admin / admin interchangeably.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleCompany:
		return RoleCompany, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// RedirectPath maps a role to its default landing route. The mapping is
// total: every valid role has a distinct path, and anything else falls back
// to the ordinary-subject landing route.
func RedirectPath(role Role) string {
	switch role {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleCompany:
		return "/company/dashboard"
	default:
		return "/user/dashboard"
	}
}
