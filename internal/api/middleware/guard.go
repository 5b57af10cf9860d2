package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ddp/interlock-portal/internal/api/metrics"
	"github.com/ddp/interlock-portal/internal/auth/guard"
	"github.com/ddp/interlock-portal/internal/core/domain"
	"github.com/ddp/interlock-portal/internal/session"
)

// Context keys set by the route guard for downstream handlers.
const (
	ContextPrincipal = "principal"
	ContextSessionID = "session_id"
)

// loginPaths are exempt from guard redirects regardless of wrapping, so a
// guarded login view cannot redirect to itself.
var loginPaths = map[string]struct{}{
	"/login":         {},
	"/admin/login":   {},
	"/company/login": {},
}

// Guard gates a route subtree by authentication and, when roles are given,
// by role. The verdict comes from guard.Decide over the session snapshot;
// this middleware only resolves the session and applies the effect:
// redirect to login, redirect to the unauthorized view, or pass through
// with the principal installed in the request context.
//
// A session fetch error is treated as anonymous; the guard fails closed.
func Guard(store *session.Store, cookieName string, roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, exempt := loginPaths[c.Request().URL.Path]; exempt {
				return next(c)
			}

			state := guard.Anonymous()
			var principal *domain.Principal
			var sessionID string

			if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
				sessionID = cookie.Value
				snapshot, err := store.Get(c.Request().Context(), sessionID)
				if err == nil && snapshot.IsAuthenticated {
					state = guard.Authenticated(snapshot.Principal.Role)
					principal = snapshot.Principal
				}
			}

			decision := guard.Decide(state, roles)
			metrics.GuardDecisionsTotal.WithLabelValues(decision.String()).Inc()

			switch decision {
			case guard.RedirectLogin:
				return c.Redirect(http.StatusFound, "/login")
			case guard.RedirectUnauthorized:
				return c.Redirect(http.StatusFound, "/unauthorized")
			case guard.Loading:
				// Session resolution is synchronous here, so a loading
				// verdict cannot occur; kept for decision totality.
				return c.NoContent(http.StatusNoContent)
			}

			c.Set(ContextPrincipal, principal)
			c.Set(ContextSessionID, sessionID)
			return next(c)
		}
	}
}
