package middleware

import (
	"errors"

	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/logger"
	"jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// Status codes come only from the error kind.
func ErrorHandler(audit *security.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) || appErr.Kind == apperror.KindInternal {
			// Never expose internal error details to clients.
			logger.Log.Error("request failed",
				"error", err,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", RequestIDFrom(c),
			)
			internal := apperror.Internal(err)
			response.Error(c, internal.Code, "An unexpected error occurred. Please try again later.", errorBody(internal))
			return
		}

		if appErr.Kind == apperror.KindForbidden {
			var role string
			caller, ok := CallerFrom(c)
			if ok {
				role = caller.Role.String()
			}
			audit.LogAccessDenied(c.Request.Context(), caller.UserID, role, c.ClientIP(), RequestIDFrom(c), c.Request.Method, c.FullPath(), appErr.Message)
		}

		response.Error(c, appErr.Kind.Status(), appErr.Message, errorBody(appErr))
	}
}

type errorDetail struct {
	Kind    apperror.Kind `json:"kind"`
	Details []string      `json:"details,omitempty"`
}

func errorBody(appErr *apperror.AppError) errorDetail {
	return errorDetail{Kind: appErr.Kind, Details: appErr.Details}
}
