package logger_test

import (
	"testing"

	"github.com/formlytic/formlytic-api/internal/auth"
	"github.com/formlytic/formlytic-api/internal/config"
	"github.com/formlytic/formlytic-api/internal/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_Levels(t *testing.T) {
	log, err := logger.NewLogger(
		&config.LoggingConfig{Level: "warn", Format: "json"},
		&config.AppConfig{Name: "Formlytic API", Environment: "test"},
	)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNewLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	log, err := logger.NewLogger(
		&config.LoggingConfig{Level: "loud", Format: "console"},
		&config.AppConfig{Name: "Formlytic API", Environment: "development"},
	)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestWithCaller(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)
	userID := uuid.New()

	logger.WithCaller(base, &auth.UserContext{UserID: userID, DisplayName: "Ada"}).Info("user")
	logger.WithCaller(base, &auth.UserContext{IsSystem: true, DisplayName: "System"}).Info("system")
	logger.WithCaller(base, nil).Info("anonymous")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, userID.String(), entries[0].ContextMap()["user_id"])
	assert.Equal(t, "Ada", entries[0].ContextMap()["user_name"])
	assert.Equal(t, true, entries[1].ContextMap()["system"])
	assert.NotContains(t, entries[1].ContextMap(), "user_id")
	assert.Empty(t, entries[2].ContextMap())
}

func TestWithForm(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger.WithForm(zap.New(core), "form-1", "pub-1").Info("submitted")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "form-1", fields["form_id"])
	assert.Equal(t, "pub-1", fields["public_id"])
}

func TestRespondentIP(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "198.51.100.23", want: "198.51.100.0"},
		{in: "::ffff:203.0.113.9", want: "203.0.113.0"},
		{in: "2001:db8:abcd:12:34:56:78:9a", want: "2001:db8:abcd::"},
		{in: "not-an-ip", want: "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			zap.New(core).Info("submitted", logger.RespondentIP(tt.in))
			assert.Equal(t, tt.want, logs.All()[0].ContextMap()["respondent_ip"])
		})
	}

	t.Run("empty address is omitted", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		zap.New(core).Info("submitted", logger.RespondentIP(""))
		assert.NotContains(t, logs.All()[0].ContextMap(), "respondent_ip")
	})
}
