package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-web/internal/delivery/http/middleware"
	"portfolio-web/internal/domain"
	"portfolio-web/internal/i18n"
	"portfolio-web/internal/routing"
	"portfolio-web/pkg/apperror"
	"portfolio-web/pkg/logger"
	"portfolio-web/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func localeEngine(t *testing.T, mode domain.PrefixMode) *gin.Engine {
	t.Helper()
	registry, err := domain.NewLocaleRegistry(domain.AllLocales(), domain.LocaleEN, mode)
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.LocaleResolver(routing.NewResolver(registry), i18n.NewNegotiator(registry), r, false))

	page := func(c *gin.Context) {
		l, _ := middleware.LocaleFrom(c)
		c.String(http.StatusOK, string(l)+" "+c.Request.URL.Path)
	}
	for _, l := range registry.Locales() {
		g := r.Group("/" + string(l))
		g.GET("", page)
		g.GET("/*path", page)
	}
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.NoRoute(func(c *gin.Context) { c.String(http.StatusNotFound, "missing") })
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLocaleResolver(t *testing.T) {
	r := localeEngine(t, domain.PrefixAlways)

	t.Run("Should pass prefixed paths without redirect", func(t *testing.T) {
		for _, l := range []string{"en", "cs", "sk"} {
			w := serve(r, httptest.NewRequest(http.MethodGet, "/"+l+"/work", nil))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, l+" /"+l+"/work", w.Body.String())
		}
	})

	t.Run("Should redirect the root to the default locale", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/?ref=x", nil))
		assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
		assert.Equal(t, "/en?ref=x", w.Header().Get("Location"))
	})

	t.Run("Should follow Accept-Language", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "sk-SK,sk;q=0.9,en;q=0.5")
		w := serve(r, req)
		assert.Equal(t, "/sk", w.Header().Get("Location"))
	})

	t.Run("Should prefer the locale cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "sk")
		req.AddCookie(&http.Cookie{Name: middleware.LocaleCookieName, Value: "cs"})
		w := serve(r, req)
		assert.Equal(t, "/cs", w.Header().Get("Location"))
	})

	t.Run("Should not treat unsupported codes as a locale", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/de/about", nil))
		assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
		assert.Equal(t, "/en/de/about", w.Header().Get("Location"))
	})

	t.Run("Should leave excluded paths alone", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})

	t.Run("Should remember the served locale in a cookie", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/sk", nil))
		require.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		require.NotEmpty(t, cookies)
		assert.Equal(t, middleware.LocaleCookieName, cookies[0].Name)
		assert.Equal(t, "sk", cookies[0].Value)
	})
}

func TestLocaleResolverAsNeeded(t *testing.T) {
	r := localeEngine(t, domain.PrefixAsNeeded)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "en /en", w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "cs")
	w = serve(r, req)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/cs", w.Header().Get("Location"))
}

func TestAccessLogger(t *testing.T) {
	registry, err := domain.NewLocaleRegistry(domain.AllLocales(), domain.LocaleEN, domain.PrefixAsNeeded)
	require.NoError(t, err)

	var buf bytes.Buffer
	r := gin.New()
	r.Use(middleware.AccessLogger(&buf))
	r.Use(middleware.LocaleResolver(routing.NewResolver(registry), i18n.NewNegotiator(registry), r, false))
	r.GET("/en", func(c *gin.Context) { c.String(http.StatusOK, "home") })

	t.Run("Should log a rewritten request once under its original path", func(t *testing.T) {
		buf.Reset()
		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "200")
		assert.Contains(t, lines[0], `"/"`)
	})

	t.Run("Should log a prefixed request once", func(t *testing.T) {
		buf.Reset()
		serve(r, httptest.NewRequest(http.MethodGet, "/en", nil))
		assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	})
}

func TestRateLimiter(t *testing.T) {
	rl := middleware.NewRateLimiter(middleware.ContactRateLimitConfig(2, time.Minute), nil, nil)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.POST("/api/send", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := serve(r, httptest.NewRequest(http.MethodPost, "/api/send", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
	w := serve(r, httptest.NewRequest(http.MethodPost, "/api/send", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), `"success":false`)

	t.Run("Should not share counters between limiters", func(t *testing.T) {
		other := middleware.NewRateLimiter(middleware.ContactRateLimitConfig(1, time.Minute), nil, nil)
		r2 := gin.New()
		r2.POST("/api/send", other.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
		w := serve(r2, httptest.NewRequest(http.MethodPost, "/api/send", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should be disabled with a zero limit", func(t *testing.T) {
		off := middleware.NewRateLimiter(middleware.ContactRateLimitConfig(0, time.Minute), nil, nil)
		r3 := gin.New()
		r3.POST("/api/send", off.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, serve(r3, httptest.NewRequest(http.MethodPost, "/api/send", nil)).Code)
		}
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-12345678")
	w = serve(r, req)
	assert.Equal(t, "trace-12345678", w.Header().Get(middleware.RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(middleware.RequestIDHeader, "bad id\r\n")
	w = serve(r, req)
	assert.NotEqual(t, "bad id\r\n", w.Header().Get(middleware.RequestIDHeader))
}

func TestErrorHandler(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	audit := security.NewWithZap(zap.New(core), "portfolio", "test")

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler(audit))
	r.GET("/app", func(c *gin.Context) {
		_ = c.Error(apperror.BadRequest("Invalid request").WithDetail("Missing required fields"))
	})
	r.GET("/raw", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/app", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"Missing required fields"`)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/raw", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())

	require.Equal(t, 1, logs.FilterMessage(string(security.EventServerError)).Len())
	assert.Equal(t, 1, logs.Len(), "client errors are not audited")
}

func TestErrorHandlerLogLevel(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.Log
	logger.Log = logger.New(&buf, slog.LevelDebug)
	t.Cleanup(func() { logger.Log = prev })

	r := gin.New()
	r.Use(middleware.ErrorHandler(security.NewWithZap(nil, "portfolio", "test")))
	r.GET("/client", func(c *gin.Context) {
		_ = c.Error(apperror.New(http.StatusBadRequest, "Invalid request", assert.AnError))
	})
	r.GET("/upstream", func(c *gin.Context) {
		_ = c.Error(apperror.ServiceUnavailable("Service unavailable", assert.AnError))
	})

	t.Run("Should log client errors at warn", func(t *testing.T) {
		buf.Reset()
		w := serve(r, httptest.NewRequest(http.MethodGet, "/client", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, buf.String(), `"level":"WARN"`)
		assert.NotContains(t, buf.String(), `"level":"ERROR"`)
	})

	t.Run("Should log server errors at error", func(t *testing.T) {
		buf.Reset()
		w := serve(r, httptest.NewRequest(http.MethodGet, "/upstream", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
	})
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORSMiddleware([]string{"https://example.com"}, true))
	r.POST("/api/send", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/send", nil)
	req.Header.Set("Origin", "https://example.com")
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/send", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w = serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
