// Package guard holds the route-guard decision logic. The decision is a
// pure function of session state and an optional role allow-list; applying
// it (redirecting, rendering) is the HTTP layer's job.
package guard

import "github.com/ddp/interlock-portal/internal/core/domain"

// State classifies a session at decision time.
type State int

const (
	// StatePending means a session fetch is still in flight. Content must
	// not render and no redirect may be decided until it resolves.
	StatePending State = iota
	// StateAnonymous covers both "no session" and "session fetch failed":
	// failures read as unauthenticated.
	StateAnonymous
	StateAuthenticated
)

// Session is the guard's view of the current session.
type Session struct {
	State State
	Role  domain.Role
}

// Pending returns the in-flight session state.
func Pending() Session { return Session{State: StatePending} }

// Anonymous returns the unauthenticated session state.
func Anonymous() Session { return Session{State: StateAnonymous} }

// Authenticated returns a resolved session carrying the principal's role.
func Authenticated(role domain.Role) Session {
	return Session{State: StateAuthenticated, Role: role}
}

// Decision is the guard's verdict for a protected view.
type Decision int

const (
	Allow Decision = iota
	Loading
	RedirectLogin
	RedirectUnauthorized
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Loading:
		return "loading"
	case RedirectLogin:
		return "redirect_login"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	}
	return "unknown"
}

// Decide evaluates the guard contract:
//
//  1. A pending session fetch yields Loading, never content and never a
//     redirect, so protected content cannot flash before the fetch resolves.
//  2. An anonymous session yields RedirectLogin.
//  3. A non-empty allow-list that excludes the session's role yields
//     RedirectUnauthorized.
//  4. Otherwise Allow.
//
// An empty allow-list means any authenticated principal may enter.
func Decide(s Session, allowed []domain.Role) Decision {
	switch s.State {
	case StatePending:
		return Loading
	case StateAnonymous:
		return RedirectLogin
	}

	if len(allowed) == 0 {
		return Allow
	}
	for _, role := range allowed {
		if s.Role == role {
			return Allow
		}
	}
	return RedirectUnauthorized
}
