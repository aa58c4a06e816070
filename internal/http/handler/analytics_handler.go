package handler

import (
	"net/http"
	"strconv"

	"github.com/formlytic/formlytic-api/internal/service"
	"go.uber.org/zap"
)

// AnalyticsHandler serves per-form analytics and CSV exports
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	exportService    *service.ExportService
	logger           *zap.Logger
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService, exportService *service.ExportService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		exportService:    exportService,
		logger:           logger,
	}
}

// GetAnalytics godoc
// @Summary Form analytics
// @Description Response overview and per-question answer distribution
// @Tags Analytics
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} domain.FormAnalyticsDTO
// @Failure 404 {object} domain.ErrorResponse "Form not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /forms/{id}/analytics [get]
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	formID, ok := parseUUIDParam(w, r, "id", "form")
	if !ok {
		return
	}

	analytics, err := h.analyticsService.GetFormAnalytics(r.Context(), formID)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to compute analytics")
		return
	}

	respondJSON(w, http.StatusOK, analytics)
}

// ExportCSV godoc
// @Summary Export responses as CSV
// @Description One row per response, newest first, with one column per question
// @Tags Analytics
// @Produce text/csv
// @Param id path string true "Form ID"
// @Success 200 {file} file
// @Failure 404 {object} domain.ErrorResponse "Form not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /forms/{id}/export [get]
func (h *AnalyticsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	formID, ok := parseUUIDParam(w, r, "id", "form")
	if !ok {
		return
	}

	export, err := h.exportService.ExportCSV(r.Context(), formID)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to export responses")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", contentDisposition(export.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Content)
}
