package logger

import (
	"fmt"
	"net/netip"

	"github.com/formlytic/formlytic-api/internal/auth"
	"github.com/formlytic/formlytic-api/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger. Production and logging.format=json use
// the sampled JSON encoder with ISO8601 timestamps; anything else gets the
// colored console encoder without sampling.
func NewLogger(cfg *config.LoggingConfig, appCfg *config.AppConfig) (*zap.Logger, error) {
	zapCfg := baseConfig(cfg.Format, appCfg.Environment)
	zapCfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	zapCfg.InitialFields = map[string]interface{}{
		"app":         appCfg.Name,
		"environment": appCfg.Environment,
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

func baseConfig(format, environment string) zap.Config {
	if format == "json" || environment == "production" {
		zapCfg := zap.NewProductionConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapCfg.EncoderConfig.TimeKey = "ts"
		return zapCfg
	}

	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	return zapCfg
}

// parseLevel falls back to info for unknown level names
func parseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// WithRequest adds request context to logger
func WithRequest(log *zap.Logger, method, path, requestID string) *zap.Logger {
	return log.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)
}

// WithCaller tags a logger with the authenticated caller. API key callers are
// logged as system without a user id.
func WithCaller(log *zap.Logger, caller *auth.UserContext) *zap.Logger {
	if caller == nil {
		return log
	}
	if caller.IsSystem {
		return log.With(zap.Bool("system", true))
	}
	return log.With(
		zap.String("user_id", caller.UserID.String()),
		zap.String("user_name", caller.DisplayName),
	)
}

// WithForm scopes a logger to a form
func WithForm(log *zap.Logger, formID, publicID string) *zap.Logger {
	return log.With(
		zap.String("form_id", formID),
		zap.String("public_id", publicID),
	)
}

// RespondentIP masks an anonymous respondent's address before it is logged:
// the last octet of IPv4 and the low 80 bits of IPv6 are zeroed. Unparseable
// input is logged as "invalid".
func RespondentIP(ip string) zap.Field {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		if ip == "" {
			return zap.Skip()
		}
		return zap.String("respondent_ip", "invalid")
	}
	addr = addr.Unmap()
	bits := 24
	if addr.Is6() {
		bits = 48
	}
	prefix, _ := addr.Prefix(bits)
	return zap.String("respondent_ip", prefix.Addr().String())
}
