package v1

import (
	"net/http"

	"jobboard-backend/config"
	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/usecase"
	"jobboard-backend/pkg/logger"
	"jobboard-backend/pkg/security"
	"jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	FavouriteUC   domain.FavouriteUsecase
	HealthUC      usecase.HealthUsecase
	RateLimiter   *middleware.RateLimiter // nil disables rate limiting
	AuthTracker   *security.AuthFailureTracker
	Audit         *security.AuditLogger
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()
	// ClientIP keys rate limits and auth blocking, so forwarded headers
	// count only when they come from a configured proxy.
	if err := r.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		logger.Log.Warn("invalid TRUSTED_PROXIES, trusting none", "error", err)
		_ = r.SetTrustedProxies(nil)
	}

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendOrigins(), deps.Config.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, deps.Config.RateLimitWindow())))
	}
	r.Use(middleware.ErrorHandler(deps.Audit))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", healthHandler(deps.HealthUC))

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	if deps.AuthTracker != nil {
		protected.Use(middleware.AuthFailureGuard(deps.AuthTracker))
	}
	protected.Use(middleware.CSRFMiddleware(deps.Config.IsProduction()))
	protected.Use(middleware.AuthMiddleware(deps.AuthUC, deps.Audit))
	if deps.RateLimiter != nil {
		protected.Use(deps.RateLimiter.Middleware(middleware.WriteRateLimitConfig(deps.Config.RateLimitWriteThreshold, deps.Config.RateLimitWindow())))
	}

	adminOnly := protected.Group("")
	adminOnly.Use(middleware.RequireRole(deps.AuthUC, domain.RoleAdmin))

	candidateOnly := protected.Group("")
	candidateOnly.Use(middleware.RequireRole(deps.AuthUC, domain.RoleCandidate))

	{
		NewJobHandler(v1, adminOnly, deps.JobUC, deps.Audit)
		NewAdminHandler(adminOnly, deps.JobUC, deps.ApplicationUC, deps.Audit)
		NewApplicationHandler(candidateOnly, deps.ApplicationUC)
		NewFavouriteHandler(candidateOnly, deps.FavouriteUC)
	}

	return r
}

// Health godoc
// @Summary      Health check
// @Description  Reports database and cache status. 503 when the database is unreachable.
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func healthHandler(healthUC usecase.HealthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		if healthUC == nil {
			response.Success(c, http.StatusOK, "System operational", nil)
			return
		}
		status, healthy := healthUC.Check(c.Request.Context())
		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, "System unavailable", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	}
}
