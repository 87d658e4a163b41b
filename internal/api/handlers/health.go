package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Pinger is anything whose reachability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	cache Pinger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cache Pinger) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 if the token cache is reachable, 503 otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if h.cache != nil {
		if err := h.cache.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
