package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkx/community/internal/core/ports"
)

// HealthHandler handles GET /health, the liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// HealthDependenciesHandler handles GET /health/ready, the readiness probe.
// Pings the store backend when it supports it; in-process stores are
// always ready.
type HealthDependenciesHandler struct {
	store  ports.Store
	driver string
}

func NewHealthDependenciesHandler(store ports.Store, driver string) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{store: store, driver: driver}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Driver string `json:"driver,omitempty"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	dep := dependencyStatus{Status: "ok", Driver: h.driver}
	if p, ok := h.store.(ports.Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			dep.Status = "unhealthy"
			dep.Error = err.Error()
			healthy = false
		}
	}
	deps["store"] = dep

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
