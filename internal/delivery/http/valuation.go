package http

import (
	"net/http"

	"market-insight/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupValuation(base *echo.Group) {
	v1 := base.Group("/v1/valuation")
	{
		v1.GET("/:stock", h.GetValuation)
		v1.GET("/:stock/history", h.GetValuationHistory)
	}
}

func (h *HttpAPIHandler) GetValuation(c echo.Context) error {
	result, err := h.service.ValuationService.Valuate(c.Request().Context(), c.Param("stock"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Valuation computed", result))
}

func (h *HttpAPIHandler) GetValuationHistory(c echo.Context) error {
	reports, err := h.service.ValuationService.ListHistory(c.Request().Context(), c.Param("stock"), historyLimit(c))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Valuation history", reports))
}
