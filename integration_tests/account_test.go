package integration_tests

import (
	"encoding/json"
	"log"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/contaflow/ledgerhub/controllers"
	"github.com/contaflow/ledgerhub/lib"
	"github.com/contaflow/ledgerhub/lib/responses"
	"github.com/contaflow/ledgerhub/lib/service"
	"github.com/contaflow/ledgerhub/lib/tokens"
	"github.com/contaflow/ledgerhub/lib/transport"
)

type AccountTestSuite struct {
	TestSuite
	service *service.LedgerService
	fixture *testCompany
}

func (suite *AccountTestSuite) SetupSuite() {
	svc, err := LedgerTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc

	fixture, err := createTestCompany(svc, "Distribuciones La Sabana", 2024, 3)
	if err != nil {
		log.Fatalf("Error creating test company: %v", err)
	}
	suite.fixture = fixture

	// register through the production wiring so the cache placement on the
	// account routes is part of what these tests exercise
	e := echo.New()
	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	suite.echo = e
	secured := e.Group("", tokens.Middleware(suite.service.Config.JWTSecret))
	strict := e.Group("", tokens.Middleware(suite.service.Config.JWTSecret))
	cacheClient, err := transport.CreateCacheClient()
	if err != nil {
		log.Fatalf("Error creating cache client: %v", err)
	}
	logMw := transport.CreateLoggingMiddleware(suite.service.Logger)
	transport.RegisterEndpoints(suite.service, e, secured, strict, tokens.AdminTokenMiddleware(""), logMw, cacheClient)
}

func (suite *AccountTestSuite) createAccount(body *controllers.CreateAccountRequestBody) (*controllers.AccountResponseBody, *responses.ErrorResponse, int) {
	rec := suite.request(http.MethodPost, "/v2/accounts", "", body)
	if rec.Code != http.StatusOK {
		return nil, decodeError(&suite.TestSuite, rec), rec.Code
	}
	account := &controllers.AccountResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(account))
	return account, nil, rec.Code
}

func (suite *AccountTestSuite) TestCreateCustomAccount() {
	account, _, code := suite.createAccount(&controllers.CreateAccountRequestBody{
		CompanyID:    suite.fixture.company.ID,
		ParentCode:   "1105",
		Code:         "110515",
		Name:         "Caja sucursal norte",
		AccountClass: "1",
		Level:        4,
		IsDetail:     true,
	})
	assert.Equal(suite.T(), http.StatusOK, code)
	assert.False(suite.T(), account.IsStandard)
	assert.True(suite.T(), account.IsActive)

	// the new code resolves for its company
	rec := suite.request(http.MethodGet, "/v2/accounts/110515", suite.fixture.accessToken, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	// but not for another tenant
	other, err := createTestCompany(suite.service, "Otra Compania", 2024, 3)
	assert.NoError(suite.T(), err)
	rec = suite.request(http.MethodGet, "/v2/accounts/110515", other.accessToken, nil)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *AccountTestSuite) TestCodeValidationErrors() {
	_, errResp, code := suite.createAccount(&controllers.CreateAccountRequestBody{
		CompanyID:    suite.fixture.company.ID,
		Code:         "11A5",
		Name:         "Broken",
		AccountClass: "1",
		Level:        3,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, code)
	assert.Equal(suite.T(), "invalid_account_code", errResp.Code)

	_, errResp, code = suite.createAccount(&controllers.CreateAccountRequestBody{
		CompanyID:    suite.fixture.company.ID,
		Code:         "2105",
		Name:         "Wrong class",
		AccountClass: "1",
		Level:        3,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, code)
	assert.Equal(suite.T(), "hierarchy_mismatch", errResp.Code)

	_, errResp, code = suite.createAccount(&controllers.CreateAccountRequestBody{
		CompanyID:    suite.fixture.company.ID,
		ParentCode:   "13",
		Code:         "110520",
		Name:         "Wrong parent",
		AccountClass: "1",
		Level:        4,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, code)
	assert.Equal(suite.T(), "hierarchy_mismatch", errResp.Code)
}

func (suite *AccountTestSuite) TestDuplicateCodeScopes() {
	body := &controllers.CreateAccountRequestBody{
		CompanyID:    suite.fixture.company.ID,
		ParentCode:   "1110",
		Code:         "111020",
		Name:         "Banco secundario",
		AccountClass: "1",
		Level:        4,
		IsDetail:     true,
	}
	_, _, code := suite.createAccount(body)
	assert.Equal(suite.T(), http.StatusOK, code)

	// same code in the same chart conflicts
	_, errResp, code := suite.createAccount(body)
	assert.Equal(suite.T(), http.StatusConflict, code)
	assert.Equal(suite.T(), "duplicate_account_code", errResp.Code)

	// standard codes are globally unique
	_, errResp, code = suite.createAccount(&controllers.CreateAccountRequestBody{
		Code:         "110505",
		Name:         "Duplicate standard",
		AccountClass: "1",
		Level:        4,
		IsDetail:     true,
	})
	assert.Equal(suite.T(), http.StatusConflict, code)
	assert.Equal(suite.T(), "duplicate_account_code", errResp.Code)

	// a tenant may override a standard code inside its own chart
	override, _, code := suite.createAccount(&controllers.CreateAccountRequestBody{
		CompanyID:    suite.fixture.company.ID,
		ParentCode:   "1105",
		Code:         "110505",
		Name:         "Caja general propia",
		AccountClass: "1",
		Level:        4,
		IsDetail:     true,
	})
	assert.Equal(suite.T(), http.StatusOK, code)
	assert.False(suite.T(), override.IsStandard)

	// the override wins over the standard account for this tenant
	rec := suite.request(http.MethodGet, "/v2/accounts/110505", suite.fixture.accessToken, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	resolved := &controllers.AccountResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(resolved))
	assert.Equal(suite.T(), override.ID, resolved.ID)
}

func (suite *AccountTestSuite) TestResolutionIsPerTenant() {
	// two tenants override the same standard code
	mine, _, code := suite.createAccount(&controllers.CreateAccountRequestBody{
		CompanyID:    suite.fixture.company.ID,
		ParentCode:   "1110",
		Code:         "111005",
		Name:         "Banco propio",
		AccountClass: "1",
		Level:        4,
		IsDetail:     true,
	})
	assert.Equal(suite.T(), http.StatusOK, code)

	other, err := createTestCompany(suite.service, "Comercial El Faro", 2024, 3)
	assert.NoError(suite.T(), err)
	theirs, _, code := suite.createAccount(&controllers.CreateAccountRequestBody{
		CompanyID:    other.company.ID,
		ParentCode:   "1110",
		Code:         "111005",
		Name:         "Banco ajeno",
		AccountClass: "1",
		Level:        4,
		IsDetail:     true,
	})
	assert.Equal(suite.T(), http.StatusOK, code)

	// back-to-back requests for the same URL resolve per caller, never from
	// a shared cache
	rec := suite.request(http.MethodGet, "/v2/accounts/111005", suite.fixture.accessToken, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	resolved := &controllers.AccountResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(resolved))
	assert.Equal(suite.T(), mine.ID, resolved.ID)

	rec = suite.request(http.MethodGet, "/v2/accounts/111005", other.accessToken, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	resolved = &controllers.AccountResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(resolved))
	assert.Equal(suite.T(), theirs.ID, resolved.ID)
}

func (suite *AccountTestSuite) TestAccountTypes() {
	rec := suite.request(http.MethodGet, "/v2/account-types", "", nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	var types []controllers.AccountTypeResponseBody
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&types))
	assert.Len(suite.T(), types, 6)
	assert.Equal(suite.T(), "1", types[0].Code)
	assert.Equal(suite.T(), "debit", types[0].NormalSide)

	// tenant-independent, so the cached response is correct for everyone
	rec = suite.request(http.MethodGet, "/v2/account-types", suite.fixture.accessToken, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	var again []controllers.AccountTypeResponseBody
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&again))
	assert.Equal(suite.T(), types, again)
}

func (suite *AccountTestSuite) TestFullCode() {
	rec := suite.request(http.MethodGet, "/v2/accounts/110505/fullcode", suite.fixture.accessToken, nil)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	fullCode := &controllers.FullCodeResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(fullCode))
	assert.Equal(suite.T(), "110505", fullCode.Code)
	assert.Equal(suite.T(), "1.11.1105.110505", fullCode.FullCode)
}

func (suite *AccountTestSuite) TestDeactivatedAccountDoesNotResolve() {
	account, _, code := suite.createAccount(&controllers.CreateAccountRequestBody{
		CompanyID:    suite.fixture.company.ID,
		ParentCode:   "1110",
		Code:         "111030",
		Name:         "Banco clausurado",
		AccountClass: "1",
		Level:        4,
		IsDetail:     true,
	})
	assert.Equal(suite.T(), http.StatusOK, code)
	assert.True(suite.T(), account.IsActive)

	active := false
	rec := suite.request(http.MethodPut, "/v2/accounts/111030/active", "", &controllers.SetActiveRequestBody{
		CompanyID: suite.fixture.company.ID,
		Active:    &active,
	})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	rec = suite.request(http.MethodGet, "/v2/accounts/111030", suite.fixture.accessToken, nil)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func TestAccountSuite(t *testing.T) {
	suite.Run(t, new(AccountTestSuite))
}
