package middleware

import (
	"net/http"
	"strconv"

	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/logger"
	"jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// AuthFailureGuard rejects clients blocked for repeated bad credentials and
// counts every request that AuthMiddleware turns away. It must run before
// AuthMiddleware. Tracker errors fail open.
func AuthFailureGuard(tracker *security.AuthFailureTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ip := c.ClientIP()

		blocked, remaining, err := tracker.IsBlocked(ctx, ip)
		if err != nil {
			logger.Log.Warn("auth failure tracker unavailable", "error", err)
		} else if blocked {
			retryAfter := int(remaining.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.Error(c, http.StatusTooManyRequests, "Too many failed authentication attempts. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()

		if _, authenticated := CallerFrom(c); authenticated || len(c.Errors) == 0 {
			return
		}
		if !apperror.Is(c.Errors.Last().Err, apperror.KindUnauthenticated) {
			return
		}
		if _, err := tracker.RecordFailure(ctx, ip, RequestIDFrom(c)); err != nil {
			logger.Log.Warn("failed to record auth failure", "error", err)
		}
	}
}
