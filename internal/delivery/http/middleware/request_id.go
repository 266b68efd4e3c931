package middleware

import (
	"context"
	"strings"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID propagates an incoming X-Request-ID or generates one, exposing it
// on the gin context, the request context and the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}

		c.Set(string(domain.KeyRequestID), requestID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), domain.KeyRequestID, requestID))
		c.Header(requestIDHeader, requestID)

		c.Next()
	}
}

// RequestIDFrom returns the request id set by RequestID, if any.
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(string(domain.KeyRequestID))
}

// AccessLog emits one structured line per request.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
			"request_id", RequestIDFrom(c),
		}
		if caller, ok := CallerFrom(c); ok {
			attrs = append(attrs, "user_id", caller.UserID)
		}

		switch {
		case status >= 500:
			logger.Log.Error("http_request", attrs...)
		case status >= 400:
			logger.Log.Warn("http_request", attrs...)
		default:
			logger.Log.Info("http_request", attrs...)
		}
	}
}
