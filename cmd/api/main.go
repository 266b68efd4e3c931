package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobboard-backend/config"
	_ "jobboard-backend/docs" // Important for Swagger
	"jobboard-backend/internal/delivery/http/middleware"
	v1 "jobboard-backend/internal/delivery/http/v1"
	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/repository/memory"
	"jobboard-backend/internal/repository/postgres"
	"jobboard-backend/internal/seed"
	"jobboard-backend/internal/usecase"
	"jobboard-backend/pkg/auth"
	"jobboard-backend/pkg/database"
	"jobboard-backend/pkg/logger"
	redispkg "jobboard-backend/pkg/redis"
	"jobboard-backend/pkg/security"
	"jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

type repositories struct {
	users        domain.UserRepository
	jobs         domain.JobRepository
	applications domain.ApplicationRepository
	favourites   domain.FavouriteRepository
	database     usecase.Pinger
	close        func()
}

// @title           Job Board API
// @version         1.0
// @description     Job postings, applications and favourites with role and ownership checks.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job board backend", "port", cfg.Port, "storage", cfg.StorageDriver, "env", cfg.Environment)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup Storage
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to initialise storage", "error", err)
		os.Exit(1)
	}
	defer repos.close()

	// 4. Setup Redis (optional)
	var redisClient *goredis.Client
	var cache usecase.Pinger
	redisClient, err = redispkg.NewClient(ctx, redispkg.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	switch {
	case err == nil:
		defer redisClient.Close()
		cache = usecase.PingFunc(func(ctx context.Context) error { return redispkg.HealthCheck(ctx, redisClient) })
		logger.Log.Info("Redis connected, rate limits are shared across instances")
	case errors.Is(err, redispkg.ErrNotConfigured):
		redisClient = nil
	default:
		redisClient = nil
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}

	// 5. Setup Audit Logger
	audit := security.NewAuditLogger("jobboard-backend", cfg.Environment)
	defer func() { _ = audit.Sync() }()

	// 6. Setup Token Verifier
	verifier, err := auth.NewVerifier(auth.Config{
		Secret:  cfg.JWTSecret,
		Issuer:  cfg.JWTIssuer,
		JWKSURL: cfg.JWKSURL,
	})
	if err != nil {
		logger.Log.Error("Failed to configure token verification", "error", err)
		os.Exit(1)
	}

	// 7. Setup UseCases
	authUC := usecase.NewAuthUsecase(repos.users, verifier)
	jobUC := usecase.NewJobUsecase(repos.jobs, validation.New())
	applicationUC := usecase.NewApplicationUsecase(repos.applications, repos.jobs)
	favouriteUC := usecase.NewFavouriteUsecase(repos.favourites, repos.jobs)
	healthUC := usecase.NewHealthUsecase(repos.database, cache)

	if cfg.StorageDriver == config.StorageDriverMemory {
		seedMemory(ctx, repos.users, jobUC)
	}

	// 8. Setup Rate Limiter
	rateLimiter := middleware.NewRateLimiter(redisClient, audit)
	rateLimiter.StartCleanup(ctx, time.Minute)
	authTracker := security.NewAuthFailureTracker(redisClient, security.AuthFailureConfig{
		MaxAttempts:   cfg.AuthFailureMaxAttempts,
		AttemptWindow: cfg.AuthFailureWindow,
		BlockDuration: cfg.AuthFailureBlock,
	}, audit)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		FavouriteUC:   favouriteUC,
		HealthUC:      healthUC,
		RateLimiter:   rateLimiter,
		AuthTracker:   authTracker,
		Audit:         audit,
		Config:        cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Log.Warn("Using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			users:        memory.NewUserRepository(store),
			jobs:         memory.NewJobRepository(store),
			applications: memory.NewApplicationRepository(store),
			favourites:   memory.NewFavouriteRepository(store),
			close:        func() {},
		}, nil

	case config.StorageDriverPostgres:
		if cfg.AutoMigrate {
			if err := database.Migrate(ctx, cfg.DBUrl); err != nil {
				return nil, err
			}
			logger.Log.Info("Database migrations applied")
		}
		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		return &repositories{
			users:        postgres.NewUserRepository(dbPool),
			jobs:         postgres.NewJobRepository(dbPool),
			applications: postgres.NewApplicationRepository(dbPool),
			favourites:   postgres.NewFavouriteRepository(dbPool),
			database:     usecase.PingFunc(dbPool.Ping),
			close:        dbPool.Close,
		}, nil

	default:
		return nil, errors.New("unknown STORAGE_DRIVER " + cfg.StorageDriver)
	}
}

// seedMemory loads demo accounts so the in-memory server is usable straight away.
func seedMemory(ctx context.Context, users domain.UserRepository, jobUC domain.JobUsecase) {
	accounts, err := seed.Users(ctx, users, bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("Failed to seed demo users", "error", err)
		return
	}
	for _, u := range accounts {
		if u.Role != domain.RoleAdmin {
			continue
		}
		if _, err := seed.Jobs(ctx, jobUC, domain.Caller{UserID: u.ID, Role: u.Role}); err != nil {
			logger.Log.Error("Failed to seed demo jobs", "error", err)
		}
		break
	}
	logger.Log.Info("Seeded demo accounts", "count", len(accounts))
}
