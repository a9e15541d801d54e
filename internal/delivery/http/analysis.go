package http

import (
	"net/http"

	"market-insight/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupAnalysis(base *echo.Group) {
	v1 := base.Group("/v1")
	{
		v1.POST("/analysis", h.AnalyzeMarket)
		v1.POST("/compare", h.CompareAssets)
	}
}

func (h *HttpAPIHandler) AnalyzeMarket(c echo.Context) error {
	var req dto.MarketAnalysisRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return h.badRequest(c, err)
	}

	result, err := h.service.MarketAnalysisService.Analyze(c.Request().Context(), req)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Market analysis generated", result))
}

func (h *HttpAPIHandler) CompareAssets(c echo.Context) error {
	var req dto.CompareRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return h.badRequest(c, err)
	}

	result, err := h.service.ComparisonService.Compare(c.Request().Context(), req.Assets)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Assets compared", result))
}
