package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/formlytic/formlytic-api/internal/auth"
	"github.com/formlytic/formlytic-api/internal/config"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// RateLimiter holds rate limiting middleware and configuration
type RateLimiter struct {
	cfg            *config.RateLimitConfig
	logger         *zap.Logger
	ipLimiter      func(http.Handler) http.Handler
	userLimiter    func(http.Handler) http.Handler
	submitLimiter  func(http.Handler) http.Handler
	whitelistIPs   map[string]bool
	whitelistPaths map[string]bool
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(cfg *config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		cfg:            cfg,
		logger:         logger,
		whitelistIPs:   make(map[string]bool),
		whitelistPaths: make(map[string]bool),
	}

	// Build whitelist maps for O(1) lookup
	for _, ip := range cfg.WhitelistIPs {
		rl.whitelistIPs[ip] = true
	}
	for _, path := range cfg.WhitelistPaths {
		rl.whitelistPaths[path] = true
	}

	// Create IP-based rate limiter for unauthenticated requests
	rl.ipLimiter = httprate.Limit(
		cfg.RequestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(rl.keyByIP),
		httprate.WithLimitHandler(rl.rateLimitExceededHandler),
	)

	// Create user-based rate limiter for authenticated requests
	rl.userLimiter = httprate.Limit(
		cfg.RequestsPerMinuteAuth,
		time.Minute,
		httprate.WithKeyFuncs(rl.keyByUserOrIP),
		httprate.WithLimitHandler(rl.rateLimitExceededHandler),
	)

	// Public form and quiz submissions get their own, stricter budget
	submissions := cfg.SubmissionsPerMinute
	if submissions <= 0 {
		submissions = cfg.RequestsPerMinute
	}
	rl.submitLimiter = httprate.Limit(
		submissions,
		time.Minute,
		httprate.WithKeyFuncs(rl.keyByIP),
		httprate.WithLimitHandler(rl.rateLimitExceededHandler),
	)

	logger.Info("Rate limiter initialized",
		zap.Int("requests_per_minute", cfg.RequestsPerMinute),
		zap.Int("requests_per_minute_auth", cfg.RequestsPerMinuteAuth),
		zap.Int("submissions_per_minute", submissions),
		zap.Strings("whitelist_ips", cfg.WhitelistIPs),
		zap.Strings("whitelist_paths", cfg.WhitelistPaths),
	)

	return rl
}

// Limit returns the rate limiting middleware
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check if path is whitelisted
		if rl.isPathWhitelisted(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		// Check if IP is whitelisted
		clientIP := ClientIP(r)
		if rl.isIPWhitelisted(clientIP) {
			next.ServeHTTP(w, r)
			return
		}

		// Check if user is authenticated
		userCtx, ok := auth.FromContext(r.Context())
		if ok && userCtx != nil {
			// Use user-based rate limiting for authenticated requests
			rl.userLimiter(next).ServeHTTP(w, r)
		} else {
			// Use IP-based rate limiting for unauthenticated requests
			rl.ipLimiter(next).ServeHTTP(w, r)
		}
	})
}

// LimitByIP returns IP-based rate limiting middleware (for use before auth)
func (rl *RateLimiter) LimitByIP(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check if path is whitelisted
		if rl.isPathWhitelisted(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		// Check if IP is whitelisted
		clientIP := ClientIP(r)
		if rl.isIPWhitelisted(clientIP) {
			next.ServeHTTP(w, r)
			return
		}

		rl.ipLimiter(next).ServeHTTP(w, r)
	})
}

// LimitSubmissions applies the per-IP submission budget to public write endpoints
func (rl *RateLimiter) LimitSubmissions(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.isIPWhitelisted(ClientIP(r)) {
			next.ServeHTTP(w, r)
			return
		}
		rl.submitLimiter(next).ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) keyByIP(r *http.Request) (string, error) {
	return "ip:" + ClientIP(r), nil
}

// keyByUserOrIP returns user ID for authenticated requests, or IP for unauthenticated
func (rl *RateLimiter) keyByUserOrIP(r *http.Request) (string, error) {
	if userCtx, ok := auth.FromContext(r.Context()); ok && userCtx != nil {
		return "user:" + userCtx.UserID.String(), nil
	}
	return "ip:" + ClientIP(r), nil
}

// ClientIP extracts the client IP from the request: the first
// X-Forwarded-For hop, then X-Real-IP, then the connection address
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// isIPWhitelisted checks if the IP is in the whitelist
func (rl *RateLimiter) isIPWhitelisted(ip string) bool {
	return rl.whitelistIPs[ip]
}

// isPathWhitelisted checks if the path is in the whitelist
func (rl *RateLimiter) isPathWhitelisted(path string) bool {
	// Check exact match
	if rl.whitelistPaths[path] {
		return true
	}

	// Check prefix match for paths ending with /*
	for wp := range rl.whitelistPaths {
		if strings.HasSuffix(wp, "/*") {
			prefix := strings.TrimSuffix(wp, "/*")
			if strings.HasPrefix(path, prefix) {
				return true
			}
		}
	}

	return false
}

// rateLimitExceededHandler handles rate limit exceeded responses
func (rl *RateLimiter) rateLimitExceededHandler(w http.ResponseWriter, r *http.Request) {
	clientIP := ClientIP(r)
	userID := ""
	if userCtx, ok := auth.FromContext(r.Context()); ok && userCtx != nil {
		userID = userCtx.UserID.String()
	}

	rl.logger.Warn("rate limit exceeded",
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.String("client_ip", clientIP),
		zap.String("user_id", userID),
	)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "60")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"error":"rate limit exceeded","message":"Too many requests. Please try again later."}`))
}
