package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ddp/interlock-portal/internal/api/middleware"
	"github.com/ddp/interlock-portal/internal/core/domain"
)

// currentPrincipal extracts the principal installed by the route guard and
// fast-fails when it is absent: presence proves the guard ran.
func currentPrincipal(c echo.Context) (*domain.Principal, string, error) {
	principal, _ := c.Get(middleware.ContextPrincipal).(*domain.Principal)
	if principal == nil {
		return nil, "", echo.NewHTTPError(http.StatusUnauthorized, "missing session principal")
	}
	sessionID, _ := c.Get(middleware.ContextSessionID).(string)
	return principal, sessionID, nil
}

// companyPrincipal additionally requires the operator's company link; a
// session without it is structurally valid but operationally unusable.
func companyPrincipal(c echo.Context) (*domain.Principal, error) {
	principal, _, err := currentPrincipal(c)
	if err != nil {
		return nil, err
	}
	if principal.Role == domain.RoleCompany && principal.CompanyID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "session missing company identity")
	}
	return principal, nil
}
