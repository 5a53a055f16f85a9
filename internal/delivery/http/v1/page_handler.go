package v1

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"portfolio-web/internal/delivery/http/middleware"
	"portfolio-web/internal/delivery/http/response"
	"portfolio-web/internal/domain"
	"portfolio-web/internal/routing"
	"portfolio-web/pkg/logger"

	"github.com/gin-gonic/gin"
)

// PageRenderer turns a composed page into HTML.
type PageRenderer interface {
	RenderPage(w io.Writer, page *domain.Page) error
	RenderNotFound(w io.Writer, page *domain.Page, homeURL string) error
}

type PageHandler struct {
	pageUC   domain.PageUsecase
	renderer PageRenderer
	resolver *routing.Resolver
}

// NewPageHandler registers the home page of every locale under its prefix.
func NewPageHandler(r *gin.Engine, pageUC domain.PageUsecase, renderer PageRenderer, resolver *routing.Resolver) *PageHandler {
	handler := &PageHandler{
		pageUC:   pageUC,
		renderer: renderer,
		resolver: resolver,
	}

	for _, l := range resolver.Registry().Locales() {
		g := r.Group("/" + string(l))
		g.GET("", handler.Home)
		g.GET("/*path", handler.Home)
	}
	return handler
}

// Home serves the single-page portfolio; any deeper path is a localized 404.
func (h *PageHandler) Home(c *gin.Context) {
	if rest := h.resolver.StripLocale(c.Request.URL.Path); rest != "/" {
		h.NotFound(c)
		return
	}

	locale := h.locale(c)
	page, err := h.pageUC.Compose(c.Request.Context(), locale)
	if err != nil {
		h.fail(c, locale, err)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderPage(&buf, page); err != nil {
		h.fail(c, locale, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// NotFound answers unknown paths. API paths get the JSON envelope, pages the
// not-found page of the effective locale.
func (h *PageHandler) NotFound(c *gin.Context) {
	if isAPIPath(c.Request.URL.Path) {
		response.Error(c, http.StatusNotFound, "Resource not found", "Not Found")
		return
	}

	locale := h.locale(c)
	page, err := h.pageUC.Compose(c.Request.Context(), locale)
	if err != nil {
		logger.Log.Error("compose not-found page", "locale", locale, "error", err)
		c.String(http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderNotFound(&buf, page, h.resolver.LocalizedPath(locale, "/")); err != nil {
		logger.Log.Error("render not-found page", "locale", locale, "error", err)
		c.String(http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}
	c.Data(http.StatusNotFound, "text/html; charset=utf-8", buf.Bytes())
}

func (h *PageHandler) locale(c *gin.Context) domain.Locale {
	if l, ok := middleware.LocaleFrom(c); ok {
		return l
	}
	return h.resolver.Registry().Default()
}

func (h *PageHandler) fail(c *gin.Context, locale domain.Locale, err error) {
	attrs := []any{"locale", locale, "request_id", response.RequestID(c), "error", err}
	if errors.Is(err, domain.ErrMissingNamespace) {
		logger.Log.Error("message file is missing a namespace", attrs...)
	} else {
		logger.Log.Error("page rendering failed", attrs...)
	}
	c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func isAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}
