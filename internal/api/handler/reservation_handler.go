package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ddp/interlock-portal/internal/api/metrics"
	"github.com/ddp/interlock-portal/internal/core/domain"
	"github.com/ddp/interlock-portal/internal/core/ports"
)

type ReservationHandler struct {
	reservations ports.ReservationService
}

func NewReservationHandler(reservations ports.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

type createReservationRequest struct {
	CompanyID   string `json:"company_id"   validate:"required"`
	ServiceType string `json:"service_type" validate:"required,oneof=installation inspection maintenance repair"`
	RequestedAt string `json:"requested_at" validate:"required"`
	VehicleInfo string `json:"vehicle_info"`
	Notes       string `json:"notes"`
}

type reasonRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type completeReservationRequest struct {
	Description  string `json:"description"`
	PerformedBy  string `json:"performed_by" validate:"required"`
	Cost         int64  `json:"cost"         validate:"gte=0"`
	DeviceSerial string `json:"device_serial"`
}

// Create requests a new appointment (subject).
//
// @Summary      Create a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        body  body      createReservationRequest  true  "Reservation details"
// @Success      201   {object}  domain.Reservation
// @Failure      400   {object}  map[string]string
// @Router       /user/reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	principal, _, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reservation, err := h.reservations.Create(c.Request().Context(), ports.CreateReservationInput{
		UserID:      principal.ID,
		CompanyID:   req.CompanyID,
		ServiceType: domain.ServiceType(req.ServiceType),
		RequestedAt: req.RequestedAt,
		VehicleInfo: req.VehicleInfo,
		Notes:       req.Notes,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	metrics.ReservationsCreatedTotal.WithLabelValues(req.ServiceType).Inc()
	return c.JSON(http.StatusCreated, reservation)
}

// ListMine returns the current subject's reservations.
//
// @Summary      List own reservations
// @Tags         reservations
// @Produce      json
// @Success      200  {array}  domain.Reservation
// @Router       /user/reservations [get]
func (h *ReservationHandler) ListMine(c echo.Context) error {
	principal, _, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	reservations, err := h.reservations.ListForUser(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservations)
}

// ListForCompany returns reservations targeting the operator's company.
//
// @Summary      List company reservations
// @Tags         reservations
// @Produce      json
// @Success      200  {array}  domain.Reservation
// @Router       /company/reservations [get]
func (h *ReservationHandler) ListForCompany(c echo.Context) error {
	principal, err := companyPrincipal(c)
	if err != nil {
		return err
	}

	reservations, err := h.reservations.ListForCompany(c.Request().Context(), principal.CompanyID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservations)
}

// ListAll returns every reservation (admin).
//
// @Summary      List all reservations
// @Tags         reservations
// @Produce      json
// @Success      200  {array}  domain.Reservation
// @Router       /admin/reservations [get]
func (h *ReservationHandler) ListAll(c echo.Context) error {
	reservations, err := h.reservations.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservations)
}

// Confirm accepts a pending reservation (company).
//
// @Summary      Confirm a reservation
// @Tags         reservations
// @Produce      json
// @Param        id  path      string  true  "Reservation ID"
// @Success      200  {object}  domain.Reservation
// @Failure      422  {object}  map[string]string
// @Router       /company/reservations/{id}/confirm [post]
func (h *ReservationHandler) Confirm(c echo.Context) error {
	principal, err := companyPrincipal(c)
	if err != nil {
		return err
	}

	reservation, err := h.reservations.Confirm(c.Request().Context(), c.Param("id"), principal.CompanyID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservation)
}

// Reject declines a pending reservation with a reason (company).
//
// @Summary      Reject a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Reservation ID"
// @Param        body  body      reasonRequest  true  "Rejection reason"
// @Success      200   {object}  domain.Reservation
// @Failure      422   {object}  map[string]string
// @Router       /company/reservations/{id}/reject [post]
func (h *ReservationHandler) Reject(c echo.Context) error {
	principal, err := companyPrincipal(c)
	if err != nil {
		return err
	}

	var req reasonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reservation, err := h.reservations.Reject(c.Request().Context(), c.Param("id"), principal.CompanyID, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservation)
}

// Cancel withdraws the subject's own reservation.
//
// @Summary      Cancel a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Reservation ID"
// @Param        body  body      reasonRequest  true  "Cancellation reason"
// @Success      200   {object}  domain.Reservation
// @Failure      422   {object}  map[string]string
// @Router       /user/reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c echo.Context) error {
	principal, _, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req reasonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	reservation, err := h.reservations.Cancel(c.Request().Context(), c.Param("id"), principal.ID, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservation)
}

// Complete closes out a confirmed reservation, writing the service record
// (company).
//
// @Summary      Complete a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id    path      string                      true  "Reservation ID"
// @Param        body  body      completeReservationRequest  true  "Completion details"
// @Success      200   {object}  domain.Reservation
// @Failure      422   {object}  map[string]string
// @Router       /company/reservations/{id}/complete [post]
func (h *ReservationHandler) Complete(c echo.Context) error {
	principal, err := companyPrincipal(c)
	if err != nil {
		return err
	}

	var req completeReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reservation, err := h.reservations.Complete(c.Request().Context(), ports.CompleteReservationInput{
		ReservationID: c.Param("id"),
		CompanyID:     principal.CompanyID,
		Description:   req.Description,
		PerformedBy:   req.PerformedBy,
		Cost:          req.Cost,
		DeviceSerial:  req.DeviceSerial,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservation)
}
