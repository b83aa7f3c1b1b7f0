package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/contaflow/ledgerhub/lib/responses"
	"github.com/contaflow/ledgerhub/lib/service"
)

// AdminController : Company and period collaborator endpoints, admin only
type AdminController struct {
	svc *service.LedgerService
}

func NewAdminController(svc *service.LedgerService) *AdminController {
	return &AdminController{svc: svc}
}

type CreateCompanyRequestBody struct {
	Name           string `json:"name" validate:"required"`
	Identification string `json:"identification" validate:"required"`
}

// CreateCompany godoc
// @Summary      Create a company
// @Accept       json
// @Produce      json
// @Tags         Admin
// @Param        CreateCompanyRequestBody  body      CreateCompanyRequestBody  true  "Create Company"
// @Success      200  {object}  models.Company
// @Failure      400  {object}  responses.ErrorResponse
// @Router       /v2/admin/companies [post]
func (controller *AdminController) CreateCompany(c echo.Context) error {
	var body CreateCompanyRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	company, err := controller.svc.CreateCompany(c.Request().Context(), body.Name, body.Identification)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}

type CreatePeriodRequestBody struct {
	CompanyID int64 `json:"company_id" validate:"required"`
	Year      int   `json:"year" validate:"required"`
	Month     int   `json:"month" validate:"required,min=1,max=12"`
}

// CreatePeriod godoc
// @Summary      Create an open accounting period
// @Accept       json
// @Produce      json
// @Tags         Admin
// @Param        CreatePeriodRequestBody  body      CreatePeriodRequestBody  true  "Create Period"
// @Success      200  {object}  models.Period
// @Failure      400  {object}  responses.ErrorResponse
// @Router       /v2/admin/periods [post]
func (controller *AdminController) CreatePeriod(c echo.Context) error {
	var body CreatePeriodRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	period, err := controller.svc.CreatePeriod(c.Request().Context(), body.CompanyID, body.Year, body.Month)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, period)
}

type ClosePeriodRequestBody struct {
	CompanyID int64 `json:"company_id" validate:"required"`
}

// ClosePeriod godoc
// @Summary      Close a period
// @Description  Entries can no longer be attached to a closed period
// @Accept       json
// @Produce      json
// @Tags         Admin
// @Param        id  path  int  true  "Period ID"
// @Success      200  {object}  models.Period
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/admin/periods/{id}/close [put]
func (controller *AdminController) ClosePeriod(c echo.Context) error {
	periodId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}
	var body ClosePeriodRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	period, err := controller.svc.ClosePeriod(c.Request().Context(), body.CompanyID, periodId)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, period)
}
