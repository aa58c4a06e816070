package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/formlytic/formlytic-api/internal/domain"
	"go.uber.org/zap"
)

// TokenValidator verifies bearer tokens
type TokenValidator interface {
	ValidateToken(token string) (*UserContext, error)
}

// Middleware handles authentication for HTTP requests
type Middleware struct {
	validator TokenValidator
	apiKey    string
	logger    *zap.Logger
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(validator TokenValidator, apiKey string, logger *zap.Logger) *Middleware {
	return &Middleware{
		validator: validator,
		apiKey:    apiKey,
		logger:    logger,
	}
}

func systemUser() *UserContext {
	return &UserContext{
		UserID:      SystemUserID,
		DisplayName: "System",
		Email:       "system@formlytic.local",
		IsSystem:    true,
	}
}

// Authenticate requires either a valid x-api-key header or a bearer token
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if apiKey := r.Header.Get("x-api-key"); apiKey != "" {
			if !m.validateAPIKey(apiKey) {
				m.logger.Warn("invalid API key attempt",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "Invalid API key")
				return
			}
			userCtx := systemUser()
			m.logger.Debug("request authenticated",
				zap.String("path", r.URL.Path),
				zap.String("auth_type", "api_key"),
				zap.Duration("auth_duration", time.Since(start)),
			)
			next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), userCtx)))
			return
		}

		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Missing or malformed authorization header")
			return
		}

		userCtx, err := m.validator.ValidateToken(token)
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}

		m.logger.Debug("request authenticated",
			zap.String("path", r.URL.Path),
			zap.String("auth_type", "jwt"),
			zap.String("user_id", userCtx.UserID.String()),
			zap.Duration("auth_duration", time.Since(start)),
		)

		next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), userCtx)))
	})
}

// OptionalAuthenticate attaches a user context when the caller presents valid
// credentials and otherwise serves the request anonymously. Public routes use
// it so a creator can preview their own unpublished form.
func (m *Middleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if apiKey := r.Header.Get("x-api-key"); apiKey != "" && m.validateAPIKey(apiKey) {
			next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), systemUser())))
			return
		}

		if token, ok := bearerToken(r); ok {
			userCtx, err := m.validator.ValidateToken(token)
			if err == nil {
				next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), userCtx)))
				return
			}
			m.logger.Debug("optional auth: invalid token, continuing anonymously",
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
		}

		next.ServeHTTP(w, r)
	})
}

// RequireUser rejects API key callers on routes that act on behalf of a creator
func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userCtx, ok := FromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if userCtx.IsSystem {
			writeError(w, http.StatusForbidden, "A user token is required for this endpoint")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSystem restricts a route to API key callers
func (m *Middleware) RequireSystem(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userCtx, ok := FromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !userCtx.IsSystem {
			writeError(w, http.StatusForbidden, "System access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) validateAPIKey(key string) bool {
	if m.apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) == 1
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}
