package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ddp/interlock-portal/internal/core/domain"
	"github.com/ddp/interlock-portal/internal/core/ports"
)

type CompanyHandler struct {
	companies ports.CompanyService
}

func NewCompanyHandler(companies ports.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

type createCompanyRequest struct {
	Name    string `json:"name"    validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Address string `json:"address"`
}

type companyStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected suspended"`
}

// Create registers a service company pending approval (admin).
//
// @Summary      Create a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body      createCompanyRequest  true  "Company details"
// @Success      201   {object}  domain.Company
// @Failure      400   {object}  map[string]string
// @Router       /admin/companies [post]
func (h *CompanyHandler) Create(c echo.Context) error {
	var req createCompanyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	company, err := h.companies.Create(c.Request().Context(), ports.CreateCompanyInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, company)
}

// List returns companies, optionally filtered by ?status=.
//
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Param        status  query    string  false  "Filter by status"
// @Success      200     {array}  domain.Company
// @Router       /admin/companies [get]
func (h *CompanyHandler) List(c echo.Context) error {
	status := domain.CompanyStatus(c.QueryParam("status"))
	companies, err := h.companies.List(c.Request().Context(), status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, companies)
}

// ListApproved returns approved companies for subjects picking an operator.
//
// @Summary      List approved companies
// @Tags         companies
// @Produce      json
// @Success      200  {array}  domain.Company
// @Router       /user/operators [get]
func (h *CompanyHandler) ListApproved(c echo.Context) error {
	companies, err := h.companies.List(c.Request().Context(), domain.CompanyApproved)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, companies)
}

// SetStatus approves, rejects, or suspends a company (admin).
//
// @Summary      Change company status
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Company ID"
// @Param        body  body      companyStatusRequest  true  "New status"
// @Success      200   {object}  domain.Company
// @Failure      404   {object}  map[string]string
// @Router       /admin/companies/{id}/status [put]
func (h *CompanyHandler) SetStatus(c echo.Context) error {
	var req companyStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	company, err := h.companies.SetStatus(c.Request().Context(), c.Param("id"), domain.CompanyStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}
