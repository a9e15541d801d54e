package http

import (
	"context"
	"errors"
	"net/http"

	"market-insight/internal/dto"
	"market-insight/internal/repository"
	"market-insight/internal/service"
	"market-insight/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type HttpAPIHandler struct {
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
	log       *logger.Logger
}

func NewHttpAPIHandler(ctx context.Context, echo *echo.Echo, validator *goValidator.Validate, service *service.Service, log *logger.Logger) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      echo,
		validator: validator,
		service:   service,
		log:       log,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	base := h.echo.Group("/api")
	base.GET("/health", h.Health)
	h.SetupSentiment(base)
	h.SetupValuation(base)
	h.SetupAnalysis(base)
}

func (h *HttpAPIHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", nil))
}

// bindAndValidate binds the request into req and runs struct validation.
func (h *HttpAPIHandler) bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return h.validator.Struct(req)
}

func (h *HttpAPIHandler) badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
}

// errorResponse maps service and repository errors to HTTP responses.
func (h *HttpAPIHandler) errorResponse(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case service.IsValidationError(err):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrAINotConfigured):
		code = http.StatusServiceUnavailable
	case errors.Is(err, repository.ErrNoData):
		code = http.StatusNotFound
	}

	if code == http.StatusInternalServerError {
		h.log.ErrorContext(c.Request().Context(), "Request failed",
			logger.StringField("path", c.Path()),
			logger.ErrorField(err),
		)
	}
	return c.JSON(code, dto.NewBaseResponse(code, err.Error(), nil))
}
