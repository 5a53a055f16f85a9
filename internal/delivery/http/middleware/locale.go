package middleware

import (
	"context"
	"net/http"
	"strings"

	"portfolio-web/internal/domain"
	"portfolio-web/internal/routing"

	"github.com/gin-gonic/gin"
)

const (
	// LocaleCookieName remembers the locale of the last visited page.
	LocaleCookieName = "NEXT_LOCALE"
	localeCookieAge  = 365 * 24 * 60 * 60
	localeKey        = "locale"
)

// Paths that are never locale-prefixed.
var localeExcludedPrefixes = []string{"/api/", "/static/", "/swagger/"}

var localeExcludedPaths = map[string]bool{
	"/api":         true,
	"/health":      true,
	"/sitemap.xml": true,
	"/robots.txt":  true,
	"/favicon.ico": true,
}

// LanguageMatcher picks a locale from an Accept-Language header.
type LanguageMatcher interface {
	Match(acceptLanguage string) (domain.Locale, bool)
}

// LocaleResolver redirects or rewrites unprefixed page paths to a locale and
// stores the effective locale on the context. engine is used to re-dispatch
// rewritten requests.
func LocaleResolver(resolver *routing.Resolver, matcher LanguageMatcher, engine *gin.Engine, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if localeExcluded(path) {
			c.Next()
			return
		}

		res := resolver.Resolve(path, localeHint(c, resolver.Registry(), matcher))

		switch res.Action {
		case routing.Redirect:
			target := res.Path
			if q := c.Request.URL.RawQuery; q != "" {
				target += "?" + q
			}
			c.Redirect(http.StatusTemporaryRedirect, target)
			c.Abort()
			return

		case routing.Rewrite:
			c.Request.URL.Path = res.Path
			c.Request.URL.RawPath = ""
			markRedispatched(c)
			engine.HandleContext(c)
			c.Abort()
			return
		}

		if cookie, err := c.Cookie(LocaleCookieName); err != nil || cookie != string(res.Locale) {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(LocaleCookieName, string(res.Locale), localeCookieAge, "/", "", secureCookie, false)
		}

		c.Set(localeKey, res.Locale)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), domain.KeyLocale, res.Locale))
		c.Next()
	}
}

// LocaleFrom returns the locale chosen by LocaleResolver.
func LocaleFrom(c *gin.Context) (domain.Locale, bool) {
	v, ok := c.Get(localeKey)
	if !ok {
		return "", false
	}
	l, ok := v.(domain.Locale)
	return l, ok
}

// localeHint prefers a supported cookie value over Accept-Language.
func localeHint(c *gin.Context, registry *domain.LocaleRegistry, matcher LanguageMatcher) string {
	if cookie, err := c.Cookie(LocaleCookieName); err == nil {
		if l, ok := registry.Lookup(cookie); ok {
			return string(l)
		}
	}
	if matcher != nil {
		if l, ok := matcher.Match(c.GetHeader("Accept-Language")); ok {
			return string(l)
		}
	}
	return ""
}

func localeExcluded(path string) bool {
	if localeExcludedPaths[path] {
		return true
	}
	for _, p := range localeExcludedPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
