package http

import (
	"net/http"

	"lamf-backoffice/internal/usecase/dashboard"

	"github.com/labstack/echo/v4"
)

type DashboardHandler struct{ uc *dashboard.Usecase }

func NewDashboardHandler(uc *dashboard.Usecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) Stats(c echo.Context) error {
	s, err := h.uc.Compute(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *DashboardHandler) Trend(c echo.Context) error {
	pts, err := h.uc.DisbursementTrend(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pts)
}
