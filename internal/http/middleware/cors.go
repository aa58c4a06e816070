package middleware

import (
	"net/http"

	"github.com/formlytic/formlytic-api/internal/config"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func isDevEnvironment(environment string) bool {
	switch environment {
	case "", "development", "local", "test":
		return true
	}
	return false
}

// CORS returns a CORS middleware configured from the application config.
// Public form pages are usually served from another origin than the API,
// so the exposed headers must include Content-Disposition for exports.
func CORS(cfg *config.CORSConfig, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	allowAny := func(r *http.Request, origin string) bool { return origin != "" }

	wildcard := false
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			wildcard = true
			break
		}
	}

	switch {
	case wildcard:
		if !isDevEnvironment(environment) {
			logger.Warn("CORS configured with wildcard origin in non-development environment",
				zap.String("environment", environment))
		}
		options.AllowOriginFunc = allowAny
	case len(cfg.AllowedOrigins) > 0:
		options.AllowedOrigins = cfg.AllowedOrigins
		logger.Info("CORS configured with explicit origins",
			zap.Strings("origins", cfg.AllowedOrigins))
	case isDevEnvironment(environment):
		options.AllowOriginFunc = allowAny
		logger.Info("CORS configured to allow all origins in development mode")
	default:
		// An empty AllowedOrigins means "*" to go-chi/cors
		options.AllowOriginFunc = func(r *http.Request, origin string) bool { return false }
		logger.Warn("CORS configured with no allowed origins - all cross-origin requests will be denied",
			zap.String("environment", environment))
	}

	return cors.Handler(options)
}
