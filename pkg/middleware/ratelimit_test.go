package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(NewRateLimiterMiddleware(0.001, 2, time.Minute))
	e.GET("/api/v1/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
	e.GET("/api/health", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	do := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("/api/v1/ping"))
	assert.Equal(t, http.StatusOK, do("/api/v1/ping"))
	assert.Equal(t, http.StatusTooManyRequests, do("/api/v1/ping"))

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do("/api/health"), "health checks are never limited")
	}
}
