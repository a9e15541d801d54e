package http

import (
	"net/http"
	"strconv"

	"market-insight/internal/dto"

	"github.com/labstack/echo/v4"
)

const defaultHistoryLimit = 20

func (h *HttpAPIHandler) SetupSentiment(base *echo.Group) {
	v1 := base.Group("/v1")
	{
		v1.GET("/sentiment", h.GetSentiment)
		v1.GET("/sentiment/timeframes", h.GetTimeframes)
		v1.GET("/sentiment/history", h.GetSentimentHistory)
		v1.GET("/volatility", h.GetVolatility)
	}
}

func (h *HttpAPIHandler) GetSentiment(c echo.Context) error {
	var req dto.SentimentRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return h.badRequest(c, err)
	}

	report, err := h.service.SentimentService.GetSentiment(c.Request().Context(), req.Timeframe, req.Variant)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Sentiment computed", report))
}

func (h *HttpAPIHandler) GetTimeframes(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Available timeframes", dto.Timeframes))
}

func (h *HttpAPIHandler) GetSentimentHistory(c echo.Context) error {
	snapshots, err := h.service.SentimentService.ListHistory(c.Request().Context(), historyLimit(c))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Sentiment history", snapshots))
}

func (h *HttpAPIHandler) GetVolatility(c echo.Context) error {
	report, err := h.service.SentimentService.GetVolatility(c.Request().Context())
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Volatility index", report))
}

func historyLimit(c echo.Context) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		return defaultHistoryLimit
	}
	return limit
}
