package handler

import (
	"net/http"
	"time"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/repository"
	"github.com/formlytic/formlytic-api/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditHandler handles audit log related HTTP requests
type AuditHandler struct {
	auditService *service.AuditLogService
	logger       *zap.Logger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditLogService, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		logger:       logger,
	}
}

// List godoc
// @Summary List audit logs
// @Description Returns the caller's audit entries, newest first. API key callers see all entries.
// @Tags Audit
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 20, max: 200)"
// @Param action query string false "Filter by action (create, update, delete)"
// @Param entityType query string false "Filter by entity type"
// @Param entityId query string false "Filter by entity ID"
// @Param startTime query string false "Filter by start time (RFC3339)"
// @Param endTime query string false "Filter by end time (RFC3339)"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.AuditLogDTO}
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /audit [get]
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.AuditLogFilter{
		EntityType: q.Get("entityType"),
	}

	if actionStr := q.Get("action"); actionStr != "" {
		action := domain.AuditAction(actionStr)
		filter.Action = &action
	}

	if entityIDStr := q.Get("entityId"); entityIDStr != "" {
		entityID, err := uuid.Parse(entityIDStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid entityId: must be a valid UUID")
			return
		}
		filter.EntityID = &entityID
	}

	if startStr := q.Get("startTime"); startStr != "" {
		startTime, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid startTime: must be RFC3339")
			return
		}
		filter.StartTime = &startTime
	}

	if endStr := q.Get("endTime"); endStr != "" {
		endTime, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid endTime: must be RFC3339")
			return
		}
		filter.EndTime = &endTime
	}

	result, err := h.auditService.List(r.Context(), filter, parseIntQuery(r, "page", 1), parseIntQuery(r, "pageSize", 20))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to retrieve audit logs")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
