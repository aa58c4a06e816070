package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/formlytic/formlytic-api/internal/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const healthCheckTimeout = 3 * time.Second

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewHealthHandler(db *gorm.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// Live godoc
// @Summary Liveness probe
// @Tags Health
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Database godoc
// @Summary Database health with pool statistics
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *HealthHandler) Database(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	stats, err := database.HealthCheckWithStats(ctx, h.db)
	if err != nil {
		h.logger.Error("Database health check failed", zap.Error(err))
		respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unhealthy",
			"error":   err.Error(),
			"service": "database",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "database",
		"stats":   stats,
	})
}

// Ready godoc
// @Summary Readiness probe
// @Description Checks every dependency the API needs to serve traffic
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	checks := make(map[string]interface{})
	allHealthy := true

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.logger.Error("Database health check failed", zap.Error(err))
		checks["database"] = map[string]interface{}{
			"status": "unhealthy",
			"error":  err.Error(),
		}
		allHealthy = false
	} else {
		checks["database"] = map[string]interface{}{"status": "healthy"}
	}

	status, label := http.StatusOK, "healthy"
	if !allHealthy {
		status, label = http.StatusServiceUnavailable, "unhealthy"
	}
	respondJSON(w, status, map[string]interface{}{
		"status": label,
		"checks": checks,
	})
}
