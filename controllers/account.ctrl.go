package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contaflow/ledgerhub/db/models"
	"github.com/contaflow/ledgerhub/ledger"
	"github.com/contaflow/ledgerhub/lib/responses"
	"github.com/contaflow/ledgerhub/lib/service"
)

// AccountController : Chart of accounts controller struct
type AccountController struct {
	svc *service.LedgerService
}

func NewAccountController(svc *service.LedgerService) *AccountController {
	return &AccountController{svc: svc}
}

type CreateAccountRequestBody struct {
	CompanyID          int64  `json:"company_id"`
	ParentCode         string `json:"parent_code"`
	Code               string `json:"code" validate:"required"`
	Name               string `json:"name" validate:"required"`
	AccountClass       string `json:"account_class" validate:"required"`
	Level              int    `json:"level" validate:"required,min=1,max=4"`
	IsDetail           bool   `json:"is_detail"`
	RequiresThirdParty bool   `json:"requires_third_party"`
	RequiresCostCenter bool   `json:"requires_cost_center"`
	RequiresProject    bool   `json:"requires_project"`
}

type AccountResponseBody struct {
	ID                 int64  `json:"id"`
	Code               string `json:"code"`
	Name               string `json:"name"`
	AccountClass       string `json:"account_class"`
	Level              int    `json:"level"`
	IsDetail           bool   `json:"is_detail"`
	IsStandard         bool   `json:"is_standard"`
	RequiresThirdParty bool   `json:"requires_third_party"`
	RequiresCostCenter bool   `json:"requires_cost_center"`
	RequiresProject    bool   `json:"requires_project"`
	IsActive           bool   `json:"is_active"`
}

// CreateAccount godoc
// @Summary      Create an account
// @Description  Creates a standard (shared) or tenant-custom account after PUC code validation
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        CreateAccountRequestBody  body      CreateAccountRequestBody  true  "Create Account"
// @Success      200  {object}  AccountResponseBody
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /v2/accounts [post]
// @Security     OAuth2Password
func (controller *AccountController) CreateAccount(c echo.Context) error {
	var body CreateAccountRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create account request body: %v", err)
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid create account request body: %v", err)
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	account, err := controller.svc.CreateAccount(c.Request().Context(), service.CreateAccountParams{
		CompanyID:          body.CompanyID,
		ParentCode:         body.ParentCode,
		Code:               body.Code,
		Name:               body.Name,
		AccountClass:       body.AccountClass,
		Level:              body.Level,
		IsDetail:           body.IsDetail,
		RequiresThirdParty: body.RequiresThirdParty,
		RequiresCostCenter: body.RequiresCostCenter,
		RequiresProject:    body.RequiresProject,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, accountResponse(account))
}

// GetAccount godoc
// @Summary      Resolve a detail account
// @Description  Returns the detail account visible to the caller's company under the given code
// @Produce      json
// @Tags         Account
// @Param        code  path  string  true  "Account code"
// @Success      200  {object}  AccountResponseBody
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/accounts/{code} [get]
// @Security     OAuth2Password
func (controller *AccountController) GetAccount(c echo.Context) error {
	companyId := c.Get("CompanyID").(int64)

	account, err := controller.svc.ResolveDetailAccount(c.Request().Context(), companyId, c.Param("code"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountResponse(account))
}

type AccountTypeResponseBody struct {
	Code              string `json:"code"`
	Classification    string `json:"classification"`
	NormalSide        string `json:"normal_side"`
	IsBalanceSheet    bool   `json:"is_balance_sheet"`
	IsIncomeStatement bool   `json:"is_income_statement"`
}

// ListAccountTypes godoc
// @Summary      List the account classes
// @Description  Returns the six account classes with their normal side and statement placement
// @Produce      json
// @Tags         Account
// @Success      200  {array}  AccountTypeResponseBody
// @Router       /v2/account-types [get]
func (controller *AccountController) ListAccountTypes(c echo.Context) error {
	types := ledger.AllTypes()
	response := make([]AccountTypeResponseBody, 0, len(types))
	for _, accountType := range types {
		response = append(response, AccountTypeResponseBody{
			Code:              accountType.Code,
			Classification:    string(accountType.Classification),
			NormalSide:        accountType.NormalSide,
			IsBalanceSheet:    accountType.IsBalanceSheet,
			IsIncomeStatement: accountType.IsIncomeStatement,
		})
	}
	return c.JSON(http.StatusOK, response)
}

type FullCodeResponseBody struct {
	Code     string `json:"code"`
	FullCode string `json:"full_code"`
}

// GetFullCode godoc
// @Summary      Full dotted code
// @Description  Returns the dotted code composed along the account's parent chain
// @Produce      json
// @Tags         Account
// @Param        code  path  string  true  "Account code"
// @Success      200  {object}  FullCodeResponseBody
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/accounts/{code}/fullcode [get]
// @Security     OAuth2Password
func (controller *AccountController) GetFullCode(c echo.Context) error {
	companyId := c.Get("CompanyID").(int64)
	ctx := c.Request().Context()

	account, err := controller.svc.ResolveDetailAccount(ctx, companyId, c.Param("code"))
	if err != nil {
		return err
	}
	fullCode, err := controller.svc.FullCode(ctx, account)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &FullCodeResponseBody{Code: account.Code, FullCode: fullCode})
}

type SetActiveRequestBody struct {
	CompanyID int64 `json:"company_id"`
	Active    *bool `json:"active" validate:"required"`
}

// SetActive godoc
// @Summary      Toggle account activation
// @Description  Activation is the only structural change allowed once posted lines reference the account
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        code  path  string  true  "Account code"
// @Success      200  {object}  AccountResponseBody
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/accounts/{code}/active [put]
func (controller *AccountController) SetActive(c echo.Context) error {
	var body SetActiveRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(responses.BadArgumentsError.HttpStatusCode, responses.BadArgumentsError)
	}

	account, err := controller.svc.SetAccountActive(c.Request().Context(), body.CompanyID, c.Param("code"), *body.Active)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountResponse(account))
}

func accountResponse(account *models.Account) AccountResponseBody {
	return AccountResponseBody{
		ID:                 account.ID,
		Code:               account.Code,
		Name:               account.Name,
		AccountClass:       account.AccountClass,
		Level:              account.Level,
		IsDetail:           account.IsDetail,
		IsStandard:         account.IsStandard(),
		RequiresThirdParty: account.RequiresThirdParty,
		RequiresCostCenter: account.RequiresCostCenter,
		RequiresProject:    account.RequiresProject,
		IsActive:           account.IsActive,
	}
}
