package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/contaflow/ledgerhub/db/models"
	"github.com/contaflow/ledgerhub/lib/responses"
	"github.com/contaflow/ledgerhub/lib/service"
)

// EntryController : Journal entry controller struct
type EntryController struct {
	svc *service.LedgerService
}

func NewEntryController(svc *service.LedgerService) *EntryController {
	return &EntryController{svc: svc}
}

type EntryLineRequestBody struct {
	AccountCode  string          `json:"account_code" validate:"required"`
	Description  string          `json:"description"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CostCenter   string          `json:"cost_center"`
	Project      string          `json:"project"`
	ThirdPartyID string          `json:"third_party_id"`
}

type CreateEntryRequestBody struct {
	JournalTypeID int64                  `json:"journal_type_id" validate:"required"`
	PeriodID      int64                  `json:"period_id" validate:"required"`
	Date          string                 `json:"date" validate:"required"`
	Reference     string                 `json:"reference"`
	Description   string                 `json:"description"`
	Currency      string                 `json:"currency"`
	Lines         []EntryLineRequestBody `json:"lines"`
}

type EntryLineResponseBody struct {
	LineNumber   int    `json:"line_number"`
	AccountCode  string `json:"account_code"`
	Description  string `json:"description,omitempty"`
	Debit        string `json:"debit"`
	Credit       string `json:"credit"`
	CostCenter   string `json:"cost_center,omitempty"`
	Project      string `json:"project,omitempty"`
	ThirdPartyID string `json:"third_party_id,omitempty"`
}

type EntryResponseBody struct {
	ID          int64                   `json:"id"`
	Number      string                  `json:"number"`
	Date        time.Time               `json:"date"`
	Reference   string                  `json:"reference,omitempty"`
	Description string                  `json:"description,omitempty"`
	Currency    string                  `json:"currency"`
	TotalDebit  string                  `json:"total_debit"`
	TotalCredit string                  `json:"total_credit"`
	IsBalanced  bool                    `json:"is_balanced"`
	Status      string                  `json:"status"`
	HashValue   string                  `json:"hash_value,omitempty"`
	PostedBy    int64                   `json:"posted_by,omitempty"`
	PostingDate *time.Time              `json:"posting_date,omitempty"`
	Lines       []EntryLineResponseBody `json:"lines"`
}

func entryResponse(entry *models.JournalEntry) *EntryResponseBody {
	response := &EntryResponseBody{
		ID:          entry.ID,
		Number:      entry.Number,
		Date:        entry.Date,
		Reference:   entry.Reference,
		Description: entry.Description,
		Currency:    entry.Currency,
		TotalDebit:  entry.TotalDebit.StringFixed(2),
		TotalCredit: entry.TotalCredit.StringFixed(2),
		IsBalanced:  entry.IsBalanced,
		Status:      entry.Status,
		HashValue:   entry.HashValue,
		PostedBy:    entry.PostedBy,
		Lines:       []EntryLineResponseBody{},
	}
	if !entry.PostingDate.IsZero() {
		postingDate := entry.PostingDate.Time
		response.PostingDate = &postingDate
	}
	for _, line := range entry.Lines {
		lineResponse := EntryLineResponseBody{
			LineNumber:   line.LineNumber,
			Description:  line.Description,
			Debit:        line.Debit.StringFixed(2),
			Credit:       line.Credit.StringFixed(2),
			CostCenter:   line.CostCenter,
			Project:      line.Project,
			ThirdPartyID: line.ThirdPartyID,
		}
		if line.Account != nil {
			lineResponse.AccountCode = line.Account.Code
		}
		response.Lines = append(response.Lines, lineResponse)
	}
	return response
}

func lineParams(body EntryLineRequestBody) service.LineParams {
	return service.LineParams{
		AccountCode:  body.AccountCode,
		Description:  body.Description,
		Debit:        body.Debit,
		Credit:       body.Credit,
		CostCenter:   body.CostCenter,
		Project:      body.Project,
		ThirdPartyID: body.ThirdPartyID,
	}
}

// CreateEntry godoc
// @Summary      Create a draft journal entry
// @Description  Reserves a document number and creates a draft entry, optionally with its lines
// @Accept       json
// @Produce      json
// @Tags         Entry
// @Param        CreateEntryRequestBody  body      CreateEntryRequestBody  true  "Create Entry"
// @Success      200  {object}  EntryResponseBody
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /v2/entries [post]
// @Security     OAuth2Password
func (controller *EntryController) CreateEntry(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	companyId := c.Get("CompanyID").(int64)

	var body CreateEntryRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create entry request body: %v", err)
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}
	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	params := service.CreateEntryParams{
		CompanyID:     companyId,
		JournalTypeID: body.JournalTypeID,
		PeriodID:      body.PeriodID,
		Date:          date,
		Reference:     body.Reference,
		Description:   body.Description,
		Currency:      body.Currency,
		Actor:         userId,
	}
	for _, line := range body.Lines {
		params.Lines = append(params.Lines, lineParams(line))
	}

	entry, err := controller.svc.CreateEntry(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entryResponse(entry))
}

// GetEntry godoc
// @Summary      Retrieve a journal entry
// @Description  Returns the entry with its lines ordered by line number
// @Produce      json
// @Tags         Entry
// @Param        id  path  int  true  "Entry ID"
// @Success      200  {object}  EntryResponseBody
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/entries/{id} [get]
// @Security     OAuth2Password
func (controller *EntryController) GetEntry(c echo.Context) error {
	companyId := c.Get("CompanyID").(int64)

	entryId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	entry, err := controller.svc.FindEntry(c.Request().Context(), companyId, entryId)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entryResponse(entry))
}

// AddLine godoc
// @Summary      Add a line to a draft entry
// @Description  Validates the line against the referenced account and recomputes the totals
// @Accept       json
// @Produce      json
// @Tags         Entry
// @Param        id  path  int  true  "Entry ID"
// @Param        EntryLineRequestBody  body      EntryLineRequestBody  true  "Line"
// @Success      200  {object}  EntryResponseBody
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /v2/entries/{id}/lines [post]
// @Security     OAuth2Password
func (controller *EntryController) AddLine(c echo.Context) error {
	companyId := c.Get("CompanyID").(int64)

	entryId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}
	var body EntryLineRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load add line request body: %v", err)
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	entry, err := controller.svc.AddLine(c.Request().Context(), companyId, entryId, lineParams(body))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entryResponse(entry))
}

// RemoveLine godoc
// @Summary      Remove a line from a draft entry
// @Produce      json
// @Tags         Entry
// @Param        id           path  int  true  "Entry ID"
// @Param        line_number  path  int  true  "Line number"
// @Success      200  {object}  EntryResponseBody
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /v2/entries/{id}/lines/{line_number} [delete]
// @Security     OAuth2Password
func (controller *EntryController) RemoveLine(c echo.Context) error {
	companyId := c.Get("CompanyID").(int64)

	entryId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}
	lineNumber, err := strconv.Atoi(c.Param("line_number"))
	if err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	entry, err := controller.svc.RemoveLine(c.Request().Context(), companyId, entryId, lineNumber)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entryResponse(entry))
}

// PostEntry godoc
// @Summary      Post a journal entry
// @Description  Transitions a balanced draft to its terminal, integrity-hashed posted state
// @Produce      json
// @Tags         Entry
// @Param        id  path  int  true  "Entry ID"
// @Success      200  {object}  EntryResponseBody
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /v2/entries/{id}/post [post]
// @Security     OAuth2Password
func (controller *EntryController) PostEntry(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	companyId := c.Get("CompanyID").(int64)

	entryId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	entry, err := controller.svc.PostEntry(c.Request().Context(), companyId, entryId, userId)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entryResponse(entry))
}

// CancelEntry godoc
// @Summary      Cancel a draft journal entry
// @Produce      json
// @Tags         Entry
// @Param        id  path  int  true  "Entry ID"
// @Success      200  {object}  EntryResponseBody
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /v2/entries/{id}/cancel [post]
// @Security     OAuth2Password
func (controller *EntryController) CancelEntry(c echo.Context) error {
	companyId := c.Get("CompanyID").(int64)

	entryId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	entry, err := controller.svc.CancelEntry(c.Request().Context(), companyId, entryId)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entryResponse(entry))
}

// DeleteEntry godoc
// @Summary      Delete a draft or cancelled entry
// @Description  Posted entries are never deletable
// @Tags         Entry
// @Param        id  path  int  true  "Entry ID"
// @Success      204
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /v2/entries/{id} [delete]
// @Security     OAuth2Password
func (controller *EntryController) DeleteEntry(c echo.Context) error {
	companyId := c.Get("CompanyID").(int64)

	entryId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	if err := controller.svc.DeleteEntry(c.Request().Context(), companyId, entryId); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
