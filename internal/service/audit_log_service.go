package service

import (
	"context"
	"fmt"
	"time"

	"github.com/formlytic/formlytic-api/internal/auth"
	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/mapper"
	"github.com/formlytic/formlytic-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditLogService handles audit logging operations
type AuditLogService struct {
	auditRepo *repository.AuditLogRepository
	logger    *zap.Logger
}

// NewAuditLogService creates a new audit log service
func NewAuditLogService(auditRepo *repository.AuditLogRepository, logger *zap.Logger) *AuditLogService {
	return &AuditLogService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// LogEntry describes one audited request
type LogEntry struct {
	Action     domain.AuditAction
	EntityType string
	EntityID   *uuid.UUID
	Method     string
	Path       string
	StatusCode int
	IPAddress  string
	UserAgent  string
	RequestID  string
	Values     map[string]interface{}
}

// Log stores an audit entry attributed to the user in ctx
func (s *AuditLogService) Log(ctx context.Context, entry LogEntry) error {
	auditLog := &domain.AuditLog{
		Action:      entry.Action,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Method:      entry.Method,
		Path:        entry.Path,
		StatusCode:  entry.StatusCode,
		IPAddress:   entry.IPAddress,
		UserAgent:   entry.UserAgent,
		RequestID:   entry.RequestID,
		PerformedAt: time.Now().UTC(),
	}
	if entry.Values != nil {
		auditLog.Values = domain.JSONMap(entry.Values)
	}

	if userCtx, ok := auth.FromContext(ctx); ok {
		auditLog.UserID = userCtx.UserID.String()
		auditLog.UserEmail = userCtx.Email
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.logger.Error("failed to create audit log",
			zap.String("action", string(entry.Action)),
			zap.String("entity_type", entry.EntityType),
			zap.Error(err))
		return err
	}
	return nil
}

// List returns audit entries newest first. Signed-in users only see their
// own entries; API key callers see everything matching the filter.
func (s *AuditLogService) List(ctx context.Context, filter repository.AuditLogFilter, page, pageSize int) (*domain.PaginatedResponse, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if !userCtx.IsSystem {
		filter.UserID = userCtx.UserID.String()
	}

	page, pageSize = repository.NormalizePage(page, pageSize)
	logs, total, err := s.auditRepo.List(ctx, &filter, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	dtos := make([]domain.AuditLogDTO, len(logs))
	for i := range logs {
		dtos[i] = mapper.ToAuditLogDTO(&logs[i])
	}

	resp := domain.NewPaginatedResponse(dtos, total, page, pageSize)
	return &resp, nil
}
