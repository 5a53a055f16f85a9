package v1

import (
	"time"

	"portfolio-web/config"
	"portfolio-web/internal/delivery/http/middleware"
	"portfolio-web/internal/domain"
	"portfolio-web/internal/routing"
	"portfolio-web/internal/usecase"
	"portfolio-web/pkg/security"
	"portfolio-web/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	PageUC    domain.PageUsecase
	ContactUC domain.ContactUsecase
	HealthUC  usecase.HealthUsecase
	Renderer  PageRenderer
	Resolver  *routing.Resolver
	Matcher   middleware.LanguageMatcher
	Site      *config.Site
	Config    *config.Config
	// ContactLimiter throttles /api/send; nil disables throttling.
	ContactLimiter *middleware.RateLimiter
	Audit          *security.SecurityLogger
	// StaticDir is served under /static when set.
	StaticDir string
	// StartedAt is reported as the sitemap lastmod.
	StartedAt time.Time
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
		validation.UseJSONNames(v)
	}

	r := gin.New()

	production := deps.Config != nil && deps.Config.IsProduction()
	var origins []string
	if deps.Config != nil {
		origins = deps.Config.AllowedOrigins
	}

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(origins, production)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.AccessLogger(gin.DefaultWriter))
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(production))
	r.Use(middleware.ErrorHandler(deps.Audit))
	r.Use(middleware.LocaleResolver(deps.Resolver, deps.Matcher, r, production))

	// Health Check
	if deps.HealthUC == nil {
		deps.HealthUC = usecase.NewHealthUsecase("", false, nil)
	}
	r.GET("/health", healthHandler(deps.HealthUC))

	// Contact relay
	api := r.Group("/api")
	var limit gin.HandlerFunc
	if deps.ContactLimiter != nil {
		limit = deps.ContactLimiter.Middleware()
	}
	NewContactHandler(api, deps.ContactUC, deps.Audit, limit)

	// SEO
	startedAt := deps.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	NewSEOHandler(r, deps.Site, deps.Resolver, startedAt)

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if deps.StaticDir != "" {
		r.Static("/static", deps.StaticDir)
	}

	// Pages
	pages := NewPageHandler(r, deps.PageUC, deps.Renderer, deps.Resolver)
	r.NoRoute(pages.NotFound)

	return r
}
