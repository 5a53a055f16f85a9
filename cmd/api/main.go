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

	"portfolio-web/config"
	_ "portfolio-web/docs" // Important for Swagger
	"portfolio-web/internal/delivery/http/middleware"
	v1 "portfolio-web/internal/delivery/http/v1"
	"portfolio-web/internal/domain"
	"portfolio-web/internal/i18n"
	"portfolio-web/internal/repository/postgres"
	"portfolio-web/internal/routing"
	"portfolio-web/internal/usecase"
	"portfolio-web/internal/view"
	"portfolio-web/pkg/database"
	"portfolio-web/pkg/email"
	"portfolio-web/pkg/logger"
	"portfolio-web/pkg/redis"
	"portfolio-web/pkg/security"

	"github.com/gin-gonic/gin"
)

// @title           Portfolio API
// @version         1.0
// @description     Contact relay and health endpoints of the portfolio site.
// @host            localhost:8080
// @BasePath        /
func main() {
	startedAt := time.Now()

	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	logger.Init(cfg.IsProduction())
	logger.Log.Info("Starting portfolio", "port", cfg.Port)

	site, err := config.LoadSite(cfg.SiteFile)
	if err != nil {
		log.Fatalf("Failed to load site profile: %v", err)
	}
	if cfg.SiteURL != "" {
		site.BaseURL = cfg.SiteURL
	}

	// 3. Locales and messages
	locale, err := domain.ParseLocale(cfg.DefaultLocale)
	if err != nil {
		log.Fatalf("Invalid DEFAULT_LOCALE: %v", err)
	}
	registry, err := domain.NewLocaleRegistry(domain.AllLocales(), locale, domain.PrefixMode(cfg.LocalePrefix))
	if err != nil {
		log.Fatalf("Invalid locale configuration: %v", err)
	}

	store := i18n.NewStore(registry, i18n.EmbeddedLoaders(), logger.Log)
	gaps, err := store.CheckAll()
	if err != nil {
		log.Fatalf("Failed to load message files: %v", err)
	}
	for _, gap := range gaps {
		if gap.Structural {
			log.Fatalf("Message files are broken: %s", gap)
		}
		logger.Log.Warn("Message gap", "gap", gap.String())
	}

	resolver := routing.NewResolver(registry)

	renderer, err := view.New()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	ctx := context.Background()

	// 4. Security logger, optionally persisted to Postgres
	audit := security.NewSecurityLogger("portfolio-web", cfg.GinMode)
	defer func() { _ = audit.Sync() }()

	pingers := map[string]usecase.Pinger{}

	if cfg.SecurityLogToDB && cfg.DBUrl != "" {
		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database, security events stay in logs only", "error", err)
		} else {
			defer dbPool.Close()
			repo := postgres.NewSecurityEventRepository(dbPool)
			if err := repo.EnsureSchema(ctx); err != nil {
				logger.Log.Error("Failed to prepare security events table", "error", err)
			} else {
				audit.SetPersistFunc(repo.Persist)
			}
			pingers["database"] = usecase.PingFunc(dbPool.Ping)
		}
	}

	// 5. Redis for rate limiting (in-memory fallback)
	redisClient, err := redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
	case err != nil:
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
	default:
		defer func() { _ = redisClient.Close() }()
		pingers["redis"] = usecase.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}
	limiter := middleware.NewRateLimiter(
		middleware.ContactRateLimitConfig(cfg.ContactRateLimit, time.Duration(cfg.RateLimitWindowSeconds)*time.Second),
		redisClient,
		audit,
	)

	// 6. Email Service
	sender := email.NewFromConfig(cfg, site)
	if !sender.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact form will be unavailable")
	}

	// 7. Setup UseCases
	pageUC := usecase.NewPageUsecase(store, resolver, site)
	contactUC := usecase.NewContactUsecase(sender, audit)
	healthUC := usecase.NewHealthUsecase(sender.Provider(), sender.IsConfigured(), pingers)

	staticDir := ""
	if fi, err := os.Stat(cfg.StaticDir); err == nil && fi.IsDir() {
		staticDir = cfg.StaticDir
	}

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		PageUC:         pageUC,
		ContactUC:      contactUC,
		HealthUC:       healthUC,
		Renderer:       renderer,
		Resolver:       resolver,
		Matcher:        i18n.NewNegotiator(registry),
		Site:           site,
		Config:         cfg,
		ContactLimiter: limiter,
		Audit:          audit,
		StaticDir:      staticDir,
		StartedAt:      startedAt,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
