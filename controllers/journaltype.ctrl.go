package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/contaflow/ledgerhub/lib/responses"
	"github.com/contaflow/ledgerhub/lib/service"
)

// JournalTypeController : Document series controller struct
type JournalTypeController struct {
	svc *service.LedgerService
}

func NewJournalTypeController(svc *service.LedgerService) *JournalTypeController {
	return &JournalTypeController{svc: svc}
}

type CreateJournalTypeRequestBody struct {
	CompanyID        int64  `json:"company_id" validate:"required"`
	Code             string `json:"code" validate:"required"`
	Name             string `json:"name" validate:"required"`
	Prefix           string `json:"prefix" validate:"required"`
	RequiresApproval bool   `json:"requires_approval"`
	AutoPost         bool   `json:"auto_post"`
}

type JournalTypeResponseBody struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Prefix   string `json:"prefix"`
	AutoPost bool   `json:"auto_post"`
	IsActive bool   `json:"is_active"`
}

// CreateJournalType godoc
// @Summary      Create a journal type
// @Description  Creates a per-tenant document series with its own number sequence
// @Accept       json
// @Produce      json
// @Tags         JournalType
// @Param        CreateJournalTypeRequestBody  body      CreateJournalTypeRequestBody  true  "Create Journal Type"
// @Success      200  {object}  JournalTypeResponseBody
// @Failure      400  {object}  responses.ErrorResponse
// @Router       /v2/journal-types [post]
func (controller *JournalTypeController) CreateJournalType(c echo.Context) error {
	var body CreateJournalTypeRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create journal type request body: %v", err)
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	journalType, err := controller.svc.CreateJournalType(c.Request().Context(), service.CreateJournalTypeParams{
		CompanyID:        body.CompanyID,
		Code:             body.Code,
		Name:             body.Name,
		Prefix:           body.Prefix,
		RequiresApproval: body.RequiresApproval,
		AutoPost:         body.AutoPost,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &JournalTypeResponseBody{
		ID:       journalType.ID,
		Code:     journalType.Code,
		Name:     journalType.Name,
		Prefix:   journalType.Prefix,
		AutoPost: journalType.AutoPost,
		IsActive: journalType.IsActive,
	})
}

type NextNumberResponseBody struct {
	Number string `json:"number"`
}

// NextNumber godoc
// @Summary      Reserve a document number
// @Description  Atomically reserves the next number of the series; used by cross-module auto-postings
// @Produce      json
// @Tags         JournalType
// @Param        id  path  int  true  "Journal type ID"
// @Success      200  {object}  NextNumberResponseBody
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      503  {object}  responses.ErrorResponse
// @Router       /v2/journal-types/{id}/next-number [post]
// @Security     OAuth2Password
func (controller *JournalTypeController) NextNumber(c echo.Context) error {
	companyId := c.Get("CompanyID").(int64)

	journalTypeId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	number, err := controller.svc.NextNumber(c.Request().Context(), companyId, journalTypeId)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &NextNumberResponseBody{Number: number})
}
