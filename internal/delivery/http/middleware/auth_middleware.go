package middleware

import (
	"strings"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

const authCookieName = "auth_token"

// AuthMiddleware resolves the caller from the Authorization bearer header,
// falling back to the auth_token cookie. The role is loaded from storage by
// the auth usecase, never trusted from the token.
func AuthMiddleware(authUC domain.AuthUsecase, audit *security.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)

		caller, err := authUC.Identify(c.Request.Context(), token)
		if err != nil {
			if apperror.Is(err, apperror.KindUnauthenticated) {
				audit.LogAuthenticationFailed(c.Request.Context(), c.ClientIP(), c.Request.UserAgent(), RequestIDFrom(c), c.FullPath(), err.Error())
			}
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyCaller), caller)
		c.Next()
	}
}

// RequireRole rejects callers whose stored role differs from role.
// It must run after AuthMiddleware.
func RequireRole(authUC domain.AuthUsecase, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			_ = c.Error(apperror.Unauthorized("Authentication required"))
			c.Abort()
			return
		}
		if err := authUC.RequireRole(caller, role); err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerFrom returns the caller stored by AuthMiddleware.
func CallerFrom(c *gin.Context) (domain.Caller, bool) {
	v, ok := c.Get(string(domain.KeyCaller))
	if !ok {
		return domain.Caller{}, false
	}
	caller, ok := v.(domain.Caller)
	return caller, ok
}

func extractToken(c *gin.Context) string {
	if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := c.Cookie(authCookieName); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}
