package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nicbank/internal/service"
)

// DashboardHandler serves the aggregate read API.
type DashboardHandler struct {
	svc service.DashboardService
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Metrics godoc
// @Summary Dashboard headline metrics
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Metrics
// @Failure 401 {object} errors.Response
// @Router /dashboard/metrics [get]
func (h *DashboardHandler) Metrics(c echo.Context) error {
	metrics, err := h.svc.Metrics(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, metrics)
}

// Sales godoc
// @Summary Monthly sales series
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {array} repository.MonthlySales
// @Failure 401 {object} errors.Response
// @Router /dashboard/sales [get]
func (h *DashboardHandler) Sales(c echo.Context) error {
	sales, err := h.svc.Sales(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sales)
}

// Traffic godoc
// @Summary Traffic by source
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {array} repository.TrafficBySource
// @Failure 401 {object} errors.Response
// @Router /dashboard/traffic [get]
func (h *DashboardHandler) Traffic(c echo.Context) error {
	traffic, err := h.svc.Traffic(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, traffic)
}
