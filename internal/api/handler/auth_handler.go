package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ddp/interlock-portal/internal/api/metrics"
	"github.com/ddp/interlock-portal/internal/core/domain"
	"github.com/ddp/interlock-portal/internal/core/ports"
	"github.com/ddp/interlock-portal/internal/session"
)

// AuthHandler owns the login/registration/session surface. Login writes the
// session cookie; logout clears it without waiting on anything.
type AuthHandler struct {
	authService ports.AuthService
	sessions    *session.Store
	cookieName  string
	cookieTTL   time.Duration
}

func NewAuthHandler(authService ports.AuthService, sessions *session.Store, cookieName string, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		cookieName:  cookieName,
		cookieTTL:   cookieTTL,
	}
}

// Register creates a new ordinary-subject account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     domain.RoleUser,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, sessionResponse{Authenticated: false, User: user.Principal()})
}

// Login authenticates, creates a server-side session, and sets the session
// cookie. A failed login changes no state and reports the failure in the
// response body.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  loginResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, sessionID, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return c.JSON(http.StatusUnauthorized, loginResponse{Success: false, Message: loginFailureMessage(err)})
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	c.SetCookie(h.sessionCookie(sessionID, h.cookieTTL))

	return c.JSON(http.StatusOK, loginResponse{
		Success:  true,
		Message:  "login successful",
		User:     result.Principal,
		Token:    result.Token,
		Redirect: h.sessions.RedirectPath(result.Principal.Role),
	})
}

// Session reports the current authentication state. Any failure reads as
// unauthenticated.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	cookie, err := c.Cookie(h.cookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusOK, sessionResponse{Authenticated: false})
	}

	snapshot, err := h.sessions.Get(c.Request().Context(), cookie.Value)
	if err != nil || !snapshot.IsAuthenticated {
		return c.JSON(http.StatusOK, sessionResponse{Authenticated: false})
	}

	return c.JSON(http.StatusOK, sessionResponse{Authenticated: true, User: snapshot.Principal})
}

// Logout destroys the session and expires the cookie. Local state is
// cleared regardless of the store's outcome.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		_ = h.sessions.Logout(c.Request().Context(), cookie.Value)
	}

	c.SetCookie(h.sessionCookie("", -time.Hour))
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// UpdateProfile merges a partial update into the account and the session
// principal.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Router       /user/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	principal, sessionID, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	patch := domain.PrincipalPatch{Name: req.Name, Phone: req.Phone, Address: req.Address}
	if _, err := h.authService.UpdateProfile(c.Request().Context(), principal.ID, patch); err != nil {
		return err
	}

	updated, err := h.sessions.UpdatePrincipal(c.Request().Context(), sessionID, patch)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{Authenticated: true, User: updated})
}

// ListUsers returns accounts, optionally filtered by ?role= (admin).
//
// @Summary      List users
// @Tags         auth
// @Produce      json
// @Param        role  query    string  false  "Filter by role"
// @Success      200   {array}  domain.User
// @Router       /admin/users [get]
func (h *AuthHandler) ListUsers(c echo.Context) error {
	var role domain.Role
	if raw := c.QueryParam("role"); raw != "" {
		parsed, err := domain.ParseRole(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
		}
		role = parsed
	}

	users, err := h.authService.ListUsers(c.Request().Context(), role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AuthHandler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		cookie.MaxAge = -1
	} else {
		cookie.Expires = time.Now().Add(ttl)
	}
	return cookie
}

func loginFailureMessage(err error) string {
	switch err {
	case domain.ErrUserNotFound, domain.ErrInvalidCredentials:
		return "invalid email or password"
	case domain.ErrAccountInactive:
		return "account is not active"
	}
	return "login failed"
}
