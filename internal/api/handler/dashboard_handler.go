package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ddp/interlock-portal/internal/core/domain"
	"github.com/ddp/interlock-portal/internal/core/ports"
)

// DashboardHandler serves the per-role landing views: a principal echo plus
// the counts each dashboard renders.
type DashboardHandler struct {
	reservations ports.ReservationService
	devices      ports.DeviceService
	companies    ports.CompanyService
}

func NewDashboardHandler(reservations ports.ReservationService, devices ports.DeviceService, companies ports.CompanyService) *DashboardHandler {
	return &DashboardHandler{reservations: reservations, devices: devices, companies: companies}
}

type dashboardResponse struct {
	User  *domain.Principal `json:"user"`
	Stats map[string]int    `json:"stats"`
}

// User is the ordinary subject's landing view.
//
// @Summary      User dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Router       /user/dashboard [get]
func (h *DashboardHandler) User(c echo.Context) error {
	principal, _, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	reservations, err := h.reservations.ListForUser(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}

	stats := map[string]int{"reservations": len(reservations)}
	for _, r := range reservations {
		if r.Status == domain.ReservationPending || r.Status == domain.ReservationConfirmed {
			stats["upcoming"]++
		}
	}

	return c.JSON(http.StatusOK, dashboardResponse{User: principal, Stats: stats})
}

// Company is the operator's landing view.
//
// @Summary      Company dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Router       /company/dashboard [get]
func (h *DashboardHandler) Company(c echo.Context) error {
	principal, err := companyPrincipal(c)
	if err != nil {
		return err
	}

	reservations, err := h.reservations.ListForCompany(c.Request().Context(), principal.CompanyID)
	if err != nil {
		return err
	}
	devices, err := h.devices.ListForCompany(c.Request().Context(), principal.CompanyID)
	if err != nil {
		return err
	}

	stats := map[string]int{
		"reservations": len(reservations),
		"devices":      len(devices),
	}
	for _, r := range reservations {
		if r.Status == domain.ReservationPending {
			stats["pending"]++
		}
	}

	return c.JSON(http.StatusOK, dashboardResponse{User: principal, Stats: stats})
}

// Admin is the administrator's landing view.
//
// @Summary      Admin dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Router       /admin/dashboard [get]
func (h *DashboardHandler) Admin(c echo.Context) error {
	principal, _, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	reservations, err := h.reservations.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	devices, err := h.devices.List(c.Request().Context())
	if err != nil {
		return err
	}
	companies, err := h.companies.List(c.Request().Context(), "")
	if err != nil {
		return err
	}

	stats := map[string]int{
		"reservations": len(reservations),
		"devices":      len(devices),
		"companies":    len(companies),
	}
	for _, company := range companies {
		if company.Status == domain.CompanyPending {
			stats["pending_companies"]++
		}
	}

	return c.JSON(http.StatusOK, dashboardResponse{User: principal, Stats: stats})
}
