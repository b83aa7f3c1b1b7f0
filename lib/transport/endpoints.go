package transport

import (
	cache "github.com/SporkHubr/echo-http-cache"
	"github.com/labstack/echo/v4"

	"github.com/contaflow/ledgerhub/controllers"
	"github.com/contaflow/ledgerhub/lib/service"
)

func RegisterEndpoints(svc *service.LedgerService, e *echo.Echo, secured *echo.Group, securedWithStrictRateLimit *echo.Group, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc, cacheClient *cache.Client) {
	e.GET("/health", controllers.NewHealthController(svc).Health, logMw)

	accountCtrl := controllers.NewAccountController(svc)
	e.POST("/v2/accounts", accountCtrl.CreateAccount, adminMw, logMw)
	e.PUT("/v2/accounts/:code/active", accountCtrl.SetActive, adminMw, logMw)
	// the response cache keys by URL only, so nothing resolved per the
	// caller's company may go through it
	secured.GET("/v2/accounts/:code", accountCtrl.GetAccount)
	secured.GET("/v2/accounts/:code/fullcode", accountCtrl.GetFullCode)
	e.GET("/v2/account-types", accountCtrl.ListAccountTypes, logMw, cacheClient.Middleware())

	journalTypeCtrl := controllers.NewJournalTypeController(svc)
	e.POST("/v2/journal-types", journalTypeCtrl.CreateJournalType, adminMw, logMw)
	securedWithStrictRateLimit.POST("/v2/journal-types/:id/next-number", journalTypeCtrl.NextNumber)

	entryCtrl := controllers.NewEntryController(svc)
	secured.POST("/v2/entries", entryCtrl.CreateEntry)
	secured.GET("/v2/entries/:id", entryCtrl.GetEntry)
	secured.POST("/v2/entries/:id/lines", entryCtrl.AddLine)
	secured.DELETE("/v2/entries/:id/lines/:line_number", entryCtrl.RemoveLine)
	securedWithStrictRateLimit.POST("/v2/entries/:id/post", entryCtrl.PostEntry)
	secured.POST("/v2/entries/:id/cancel", entryCtrl.CancelEntry)
	secured.DELETE("/v2/entries/:id", entryCtrl.DeleteEntry)

	adminCtrl := controllers.NewAdminController(svc)
	e.POST("/v2/admin/companies", adminCtrl.CreateCompany, adminMw, logMw)
	e.POST("/v2/admin/periods", adminCtrl.CreatePeriod, adminMw, logMw)
	e.PUT("/v2/admin/periods/:id/close", adminCtrl.ClosePeriod, adminMw, logMw)
}
