// Package handler provides HTTP handlers for the carbonwise API.
package handler

import (
	"net/http"
	"time"

	"github.com/carbonwise/carbonwise/internal/api/models"
	"github.com/carbonwise/carbonwise/internal/api/response"
	"github.com/carbonwise/carbonwise/internal/footprint"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	engine    *footprint.Engine
}

// NewOpsHandler creates a new OpsHandler. The engine is probed by the
// readiness check and may be nil before startup completes.
func NewOpsHandler(version, buildTime string, engine *footprint.Engine) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		engine:    engine,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]any{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready. The service is ready once the
// engine is configured and can compute the default questionnaire.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	check := h.engineCheck()

	ready := models.Readiness{
		Status: check.Status,
		Time:   models.Timestamp(time.Now()),
		Checks: []models.Check{check},
	}

	status := http.StatusOK
	if check.Status != models.HealthStatusOK {
		status = http.StatusServiceUnavailable
	}
	response.JSON(w, r, status, ready)
}

func (h *OpsHandler) engineCheck() models.Check {
	check := models.Check{Name: "engine", Status: models.HealthStatusOK}
	if h.engine == nil {
		check.Status = models.HealthStatusFail
		check.Detail = "engine not configured"
		return check
	}
	if _, err := h.engine.Compute(footprint.DefaultInput()); err != nil {
		check.Status = models.HealthStatusFail
		check.Detail = err.Error()
	}
	return check
}
