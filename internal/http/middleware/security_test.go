package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/formlytic/formlytic-api/internal/config"
	"github.com/formlytic/formlytic-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityHeaders_DefaultConfig(t *testing.T) {
	cfg := &config.SecurityConfig{
		ContentTypeNosniff:    true,
		FrameOptions:          "DENY",
		XSSProtection:         "1; mode=block",
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		PermissionsPolicy:     "geolocation=()",
	}

	w := httptest.NewRecorder()
	middleware.SecurityHeaders(cfg)(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "default-src 'self'", w.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Equal(t, "geolocation=()", w.Header().Get("Permissions-Policy"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestSecurityHeaders_HSTS(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.SecurityConfig
		expected string
	}{
		{"plain", config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: 3600}, "max-age=3600"},
		{"subdomains", config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: 60, HSTSIncludeSubdomains: true}, "max-age=60; includeSubDomains"},
		{"preload", config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: 60, HSTSIncludeSubdomains: true, HSTSPreload: true}, "max-age=60; includeSubDomains; preload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			w := httptest.NewRecorder()
			middleware.SecurityHeaders(&cfg)(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.expected, w.Header().Get("Strict-Transport-Security"))
		})
	}
}

func TestSecurityHeaders_MinimalConfig(t *testing.T) {
	w := httptest.NewRecorder()
	middleware.SecurityHeaders(&config.SecurityConfig{})(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Frame-Options"))
	assert.Empty(t, w.Header().Get("X-Content-Type-Options"))
}
