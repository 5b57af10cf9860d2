package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ddp/interlock-portal/internal/core/ports"
)

type RecordHandler struct {
	records ports.RecordRepository
}

func NewRecordHandler(records ports.RecordRepository) *RecordHandler {
	return &RecordHandler{records: records}
}

// ListMine returns the service history for the current subject.
//
// @Summary      Own service records
// @Tags         records
// @Produce      json
// @Success      200  {array}  domain.ServiceRecord
// @Router       /user/records [get]
func (h *RecordHandler) ListMine(c echo.Context) error {
	principal, _, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	records, err := h.records.ListBySubject(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// ListForCompany returns records written by the operator's company.
//
// @Summary      Company service records
// @Tags         records
// @Produce      json
// @Success      200  {array}  domain.ServiceRecord
// @Router       /company/service-records [get]
func (h *RecordHandler) ListForCompany(c echo.Context) error {
	principal, err := companyPrincipal(c)
	if err != nil {
		return err
	}

	records, err := h.records.ListByCompany(c.Request().Context(), principal.CompanyID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// ListAll returns the program-wide service log (admin).
//
// @Summary      All service records
// @Tags         records
// @Produce      json
// @Success      200  {array}  domain.ServiceRecord
// @Router       /admin/log [get]
func (h *RecordHandler) ListAll(c echo.Context) error {
	records, err := h.records.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}
