package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAccessDeniedIsLoggedAtErrorLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	al := NewAuditLoggerWithZap(zap.New(core), "jobboard-api", "test")

	al.LogAccessDenied(context.Background(), 7, "candidate", "10.0.0.1", "req-1", "DELETE", "/v1/jobs/3", "You can only manage jobs you created")

	entries := logs.FilterMessage(string(EventAccessDenied)).All()
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, int64(7), fields["user_id"])
	assert.Equal(t, "candidate", fields["role"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "/v1/jobs/3", fields["path"])
	assert.Equal(t, "HIGH", fields["severity"])
}

func TestUserAgentIsHashed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	al := NewAuditLoggerWithZap(zap.New(core), "jobboard-api", "test")

	al.LogRateLimitTriggered(context.Background(), "10.0.0.1", "curl/8.0", "req-2", "/v1/jobs")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, HashValue("curl/8.0"), entries[0].ContextMap()["user_agent_hash"])
	assert.NotContains(t, entries[0].ContextMap(), "user_agent")
}

func TestNilAuditLoggerIsSafe(t *testing.T) {
	var al *AuditLogger
	assert.NotPanics(t, func() {
		al.LogJobDeleted(context.Background(), 1, 2, "req")
	})
	assert.NoError(t, al.Sync())
}

func TestGetSeverityDefaults(t *testing.T) {
	assert.Equal(t, SeverityMEDIUM, GetSeverity("unknown"))
	assert.True(t, IsHighOrAbove(EventAccessDenied))
	assert.False(t, IsHighOrAbove(EventJobDeleted))
}
