package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ddp/interlock-portal/internal/api/metrics"
)

// Edge-redirect outcomes. Each request reaches exactly one terminal outcome;
// nothing is remembered across requests.
type EdgeOutcome string

const (
	// EdgeUnchecked is the zero state before Evaluate runs. Evaluate always
	// resolves to one of the other outcomes, so it never reaches a metric.
	EdgeUnchecked         EdgeOutcome = "unchecked"
	EdgePassed            EdgeOutcome = "passed"
	EdgeRedirectedLogin   EdgeOutcome = "redirected_to_login"
	EdgeRedirectedLanding EdgeOutcome = "redirected_to_landing"
)

// EdgeConfig parameterizes the edge redirector.
type EdgeConfig struct {
	// CookieName is the session cookie whose presence is checked. The
	// cookie is never validated here; that is the session store's job.
	CookieName string
	// ProtectedPrefixes are path prefixes that require the cookie.
	ProtectedPrefixes []string
	// PublicPaths pass through unconditionally and take precedence over
	// the protected prefixes (so /admin/login is reachable under /admin).
	PublicPaths []string
	// LoginPath is where unauthenticated requests are sent, and the one
	// path that bounces cookie-holders to LandingPath.
	LoginPath string
	// LandingPath is the default landing route.
	LandingPath string
}

// DefaultEdgeConfig mirrors the portal's route layout.
func DefaultEdgeConfig(cookieName string) EdgeConfig {
	return EdgeConfig{
		CookieName:        cookieName,
		ProtectedPrefixes: []string{"/user", "/company", "/admin"},
		PublicPaths:       []string{"/login", "/admin/login", "/company/login", "/register", "/unauthorized"},
		LoginPath:         "/login",
		LandingPath:       "/user/dashboard",
	}
}

// Evaluate is the pure request-level decision: given a path and whether the
// session cookie is present, it returns the outcome and, for redirects, the
// target URL.
func (cfg EdgeConfig) Evaluate(path string, hasCookie bool) (EdgeOutcome, string) {
	for _, public := range cfg.PublicPaths {
		if path == public {
			if path == cfg.LoginPath && hasCookie {
				return EdgeRedirectedLanding, cfg.LandingPath
			}
			return EdgePassed, ""
		}
	}

	for _, prefix := range cfg.ProtectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			if !hasCookie {
				return EdgeRedirectedLogin, cfg.LoginPath + "?redirect=" + url.QueryEscape(path)
			}
			return EdgePassed, ""
		}
	}

	return EdgePassed, ""
}

// EdgeRedirect is the coarse pre-render gate: a cookie-presence check run
// before any session lookup. Unauthenticated requests to protected prefixes
// bounce to login carrying the original path; cookie-holders hitting the
// login path bounce to the landing route. Everything else passes through.
func EdgeRedirect(cfg EdgeConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			hasCookie := false
			if cookie, err := c.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
				hasCookie = true
			}

			outcome, target := cfg.Evaluate(c.Request().URL.Path, hasCookie)
			metrics.EdgeOutcomesTotal.WithLabelValues(string(outcome)).Inc()

			switch outcome {
			case EdgeRedirectedLogin, EdgeRedirectedLanding:
				return c.Redirect(http.StatusFound, target)
			default:
				return next(c)
			}
		}
	}
}
