package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ddp/interlock-portal/internal/core/domain"
	"github.com/ddp/interlock-portal/internal/core/ports"
)

type DeviceHandler struct {
	devices ports.DeviceService
}

func NewDeviceHandler(devices ports.DeviceService) *DeviceHandler {
	return &DeviceHandler{devices: devices}
}

type registerDeviceRequest struct {
	SerialNumber string `json:"serial_number" validate:"required"`
	ModelName    string `json:"model_name"    validate:"required"`
	CompanyID    string `json:"company_id"`
}

type changeDeviceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available installed under_maintenance deactivated"`
}

type assignDeviceRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// Register adds a device to the inventory (admin).
//
// @Summary      Register a device
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        body  body      registerDeviceRequest  true  "Device details"
// @Success      201   {object}  domain.Device
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /admin/devices [post]
func (h *DeviceHandler) Register(c echo.Context) error {
	var req registerDeviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	device, err := h.devices.Register(c.Request().Context(), ports.RegisterDeviceInput{
		SerialNumber: req.SerialNumber,
		ModelName:    req.ModelName,
		CompanyID:    req.CompanyID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, device)
}

// ListAll returns the full inventory (admin).
//
// @Summary      List all devices
// @Tags         devices
// @Produce      json
// @Success      200  {array}  domain.Device
// @Router       /admin/devices [get]
func (h *DeviceHandler) ListAll(c echo.Context) error {
	devices, err := h.devices.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, devices)
}

// ListForCompany returns devices managed by the operator's company.
//
// @Summary      List company devices
// @Tags         devices
// @Produce      json
// @Success      200  {array}  domain.Device
// @Router       /company/devices [get]
func (h *DeviceHandler) ListForCompany(c echo.Context) error {
	principal, err := companyPrincipal(c)
	if err != nil {
		return err
	}

	devices, err := h.devices.ListForCompany(c.Request().Context(), principal.CompanyID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, devices)
}

// Mine returns the device installed for the current subject, if any.
//
// @Summary      Current subject's device
// @Tags         devices
// @Produce      json
// @Success      200  {object}  domain.Device
// @Failure      404  {object}  map[string]string
// @Router       /user/device [get]
func (h *DeviceHandler) Mine(c echo.Context) error {
	principal, _, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	device, err := h.devices.GetForUser(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, device)
}

// Assign installs a device for a subject (company).
//
// @Summary      Assign a device
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Device ID"
// @Param        body  body      assignDeviceRequest  true  "Assignment"
// @Success      200   {object}  domain.Device
// @Failure      422   {object}  map[string]string
// @Router       /company/devices/{id}/assign [post]
func (h *DeviceHandler) Assign(c echo.Context) error {
	var req assignDeviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	device, err := h.devices.Assign(c.Request().Context(), c.Param("id"), req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, device)
}

// ChangeStatus moves a device through its lifecycle (admin).
//
// @Summary      Change device status
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "Device ID"
// @Param        body  body      changeDeviceStatusRequest  true  "New status"
// @Success      200   {object}  domain.Device
// @Failure      422   {object}  map[string]string
// @Router       /admin/devices/{id}/status [put]
func (h *DeviceHandler) ChangeStatus(c echo.Context) error {
	var req changeDeviceStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	device, err := h.devices.ChangeStatus(c.Request().Context(), c.Param("id"), domain.DeviceStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, device)
}
