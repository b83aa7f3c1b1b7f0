package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contaflow/ledgerhub/lib/service"
)

// HealthController : Health check controller struct
type HealthController struct {
	svc *service.LedgerService
}

func NewHealthController(svc *service.LedgerService) *HealthController {
	return &HealthController{svc: svc}
}

// Health godoc
// @Summary      Health check
// @Description  Returns 200 if the service and its database are reachable
// @Produce      json
// @Tags         Health
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (controller *HealthController) Health(c echo.Context) error {
	if err := controller.svc.DB.PingContext(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "database unreachable")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
