package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/formlytic/formlytic-api/internal/auth"
	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxAuditBodyBytes caps how much of a JSON request body is captured
const maxAuditBodyBytes = 64 << 10

// AuditConfig holds configuration for audit middleware
type AuditConfig struct {
	// SkipPaths contains path prefixes that should not be audited
	SkipPaths []string
	// SkipMethods contains HTTP methods that should not be audited (e.g., GET, OPTIONS)
	SkipMethods []string
	// AuditReads enables auditing of GET requests (defaults to false)
	AuditReads bool
	// SensitiveKeys are removed from captured request bodies
	SensitiveKeys []string
}

// DefaultAuditConfig returns default audit configuration
func DefaultAuditConfig() *AuditConfig {
	return &AuditConfig{
		SkipPaths: []string{
			"/health",
			"/swagger",
			"/api/v1/auth",
		},
		SkipMethods: []string{
			http.MethodOptions,
			http.MethodHead,
		},
		AuditReads:    false,
		SensitiveKeys: []string{"password", "secret", "token", "apiKey", "accessCode"},
	}
}

// AuditLogger persists audit entries
type AuditLogger interface {
	Log(ctx context.Context, entry service.LogEntry) error
}

// AuditMiddleware records successful mutating requests made by authenticated callers
type AuditMiddleware struct {
	auditLogger AuditLogger
	config      *AuditConfig
	logger      *zap.Logger
}

// NewAuditMiddleware creates a new audit middleware
func NewAuditMiddleware(auditLogger AuditLogger, config *AuditConfig, logger *zap.Logger) *AuditMiddleware {
	if config == nil {
		config = DefaultAuditConfig()
	}
	return &AuditMiddleware{
		auditLogger: auditLogger,
		config:      config,
		logger:      logger,
	}
}

// Audit returns middleware that logs modifications to the audit log
func (m *AuditMiddleware) Audit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.shouldAudit(r) {
			next.ServeHTTP(w, r)
			return
		}

		var requestBody []byte
		if r.Body != nil && isJSON(r) && (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) {
			requestBody, _ = io.ReadAll(io.LimitReader(r.Body, maxAuditBodyBytes+1))
			rest := r.Body
			r.Body = struct {
				io.Reader
				io.Closer
			}{io.MultiReader(bytes.NewReader(requestBody), rest), rest}
			if len(requestBody) > maxAuditBodyBytes {
				requestBody = nil
			}
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		if rw.statusCode < 200 || rw.statusCode >= 300 {
			return
		}
		userCtx, ok := auth.FromContext(r.Context())
		if !ok {
			return
		}

		// The route context is only complete once the router has matched
		entry := m.buildEntry(r, rw.statusCode, requestBody)
		ctx := auth.WithUserContext(context.WithoutCancel(r.Context()), userCtx)
		go m.write(ctx, entry)
	})
}

func (m *AuditMiddleware) write(ctx context.Context, entry service.LogEntry) {
	if m.auditLogger == nil {
		return
	}
	if err := m.auditLogger.Log(ctx, entry); err != nil {
		m.logger.Warn("failed to create audit log entry",
			zap.String("path", entry.Path),
			zap.String("method", entry.Method),
			zap.Error(err))
	}
}

// shouldAudit determines if a request should be audited
func (m *AuditMiddleware) shouldAudit(r *http.Request) bool {
	for _, method := range m.config.SkipMethods {
		if r.Method == method {
			return false
		}
	}

	if r.Method == http.MethodGet && !m.config.AuditReads {
		return false
	}

	path := r.URL.Path
	for _, skipPath := range m.config.SkipPaths {
		if strings.HasPrefix(path, skipPath) {
			return false
		}
	}

	return true
}

func (m *AuditMiddleware) buildEntry(r *http.Request, statusCode int, requestBody []byte) service.LogEntry {
	entityType, entityID := m.extractEntityInfo(r)

	var values map[string]interface{}
	if len(requestBody) > 0 {
		var parsed map[string]interface{}
		if json.Unmarshal(requestBody, &parsed) == nil {
			for _, key := range m.config.SensitiveKeys {
				delete(parsed, key)
			}
			values = parsed
		}
	}

	return service.LogEntry{
		Action:     methodToAction(r.Method),
		EntityType: entityType,
		EntityID:   entityID,
		Method:     r.Method,
		Path:       r.URL.Path,
		StatusCode: statusCode,
		IPAddress:  ClientIP(r),
		UserAgent:  r.UserAgent(),
		RequestID:  r.Header.Get(RequestIDHeader),
		Values:     values,
	}
}

// methodToAction converts HTTP method to audit action
func methodToAction(method string) domain.AuditAction {
	switch method {
	case http.MethodPut, http.MethodPatch:
		return domain.AuditActionUpdate
	case http.MethodDelete:
		return domain.AuditActionDelete
	default:
		return domain.AuditActionCreate
	}
}

// extractEntityInfo extracts entity type and ID from the matched route
func (m *AuditMiddleware) extractEntityInfo(r *http.Request) (string, *uuid.UUID) {
	routeCtx := chi.RouteContext(r.Context())
	if routeCtx == nil || routeCtx.RoutePattern() == "" {
		return parseEntityFromPath(r.URL.Path), nil
	}

	var entityID *uuid.UUID
	if idStr := routeCtx.URLParam("id"); idStr != "" {
		if id, err := uuid.Parse(idStr); err == nil {
			entityID = &id
		}
	}

	return parseEntityFromPath(routeCtx.RoutePattern()), entityID
}

var entityMap = map[string]string{
	"forms":         "Form",
	"questions":     "Question",
	"responses":     "Response",
	"quizzes":       "Quiz",
	"quiz":          "Quiz",
	"files":         "File",
	"purchases":     "FormPurchase",
	"subscriptions": "Subscription",
}

// parseEntityFromPath returns the entity of the deepest known path segment,
// so /forms/{id}/questions is a Question
func parseEntityFromPath(path string) string {
	entityType := "Unknown"
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		if t, ok := entityMap[part]; ok {
			entityType = t
		}
	}
	return entityType
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}
