package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventAuthenticationFailed EventType = "authentication_failed"
	EventAccessDenied         EventType = "access_denied"
	EventRateLimitTriggered   EventType = "rate_limit_triggered"
	EventJobDeleted           EventType = "job_deleted"
	EventApplicantsExported   EventType = "applicants_exported"
	EventAuthBlockCreated     EventType = "auth_block_created"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Timestamp time.Time
	Event     EventType
	UserID    int64
	Role      string
	IP        string
	UserAgent string
	RequestID string
	Method    string
	Path      string
	Reason    string
	Details   map[string]interface{}
}

// AuditLogger writes security events as structured zap entries, separate
// from the application log.
type AuditLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// NewAuditLogger builds a production zap logger writing JSON to stdout.
func NewAuditLogger(serviceName, environment string) *AuditLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return NewAuditLoggerWithZap(logger, serviceName, environment)
}

// NewAuditLoggerWithZap wraps an existing zap logger; tests pass an observer core.
func NewAuditLoggerWithZap(logger *zap.Logger, serviceName, environment string) *AuditLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditLogger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}
}

// Log logs a security event
func (al *AuditLogger) Log(_ context.Context, event SecurityEvent) {
	if al == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	fields := []zap.Field{
		zap.String("service", al.serviceName),
		zap.String("env", al.environment),
		zap.String("event", string(event.Event)),
		zap.String("severity", string(GetSeverity(event.Event))),
		zap.Time("occurred_at", event.Timestamp),
	}
	if event.UserID != 0 {
		fields = append(fields, zap.Int64("user_id", event.UserID))
	}
	if event.Role != "" {
		fields = append(fields, zap.String("role", event.Role))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent_hash", HashValue(event.UserAgent)))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if event.Method != "" {
		fields = append(fields, zap.String("method", event.Method))
	}
	if event.Path != "" {
		fields = append(fields, zap.String("path", event.Path))
	}
	if event.Reason != "" {
		fields = append(fields, zap.String("reason", event.Reason))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}

	al.zapLogger.Log(levelFor(event.Event), string(event.Event), fields...)
}

// LogAccessDenied logs a 403 answered to an authenticated caller
func (al *AuditLogger) LogAccessDenied(ctx context.Context, userID int64, role, ip, requestID, method, path, reason string) {
	al.Log(ctx, SecurityEvent{
		Event:     EventAccessDenied,
		UserID:    userID,
		Role:      role,
		IP:        ip,
		RequestID: requestID,
		Method:    method,
		Path:      path,
		Reason:    reason,
	})
}

// LogAuthenticationFailed logs a rejected or missing token
func (al *AuditLogger) LogAuthenticationFailed(ctx context.Context, ip, userAgent, requestID, path, reason string) {
	al.Log(ctx, SecurityEvent{
		Event:     EventAuthenticationFailed,
		IP:        ip,
		UserAgent: userAgent,
		RequestID: requestID,
		Path:      path,
		Reason:    reason,
	})
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (al *AuditLogger) LogRateLimitTriggered(ctx context.Context, ip, userAgent, requestID, endpoint string) {
	al.Log(ctx, SecurityEvent{
		Event:     EventRateLimitTriggered,
		IP:        ip,
		UserAgent: userAgent,
		RequestID: requestID,
		Path:      endpoint,
	})
}

// LogJobDeleted records a job removal together with its cascaded rows
func (al *AuditLogger) LogJobDeleted(ctx context.Context, userID, jobID int64, requestID string) {
	al.Log(ctx, SecurityEvent{
		Event:     EventJobDeleted,
		UserID:    userID,
		RequestID: requestID,
		Details:   map[string]interface{}{"job_id": jobID},
	})
}

// LogApplicantsExported records a download of applicant personal data
func (al *AuditLogger) LogApplicantsExported(ctx context.Context, userID, jobID int64, requestID, filename string) {
	al.Log(ctx, SecurityEvent{
		Event:     EventApplicantsExported,
		UserID:    userID,
		RequestID: requestID,
		Details:   map[string]interface{}{"job_id": jobID, "filename": filename},
	})
}

// LogAuthBlockCreated records a temporary block after repeated failed authentication
func (al *AuditLogger) LogAuthBlockCreated(ctx context.Context, ip, requestID string, attempts int, duration time.Duration) {
	al.Log(ctx, SecurityEvent{
		Event:     EventAuthBlockCreated,
		IP:        ip,
		RequestID: requestID,
		Details: map[string]interface{}{
			"attempts":         attempts,
			"duration_minutes": int(duration.Minutes()),
		},
	})
}

// Sync flushes any buffered log entries
func (al *AuditLogger) Sync() error {
	if al == nil {
		return nil
	}
	return al.zapLogger.Sync()
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}
