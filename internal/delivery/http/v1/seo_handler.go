package v1

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"portfolio-web/config"
	"portfolio-web/internal/routing"

	"github.com/gin-gonic/gin"
)

type SEOHandler struct {
	site     *config.Site
	resolver *routing.Resolver
	modified time.Time
}

// NewSEOHandler registers /sitemap.xml and /robots.txt. modified is the
// lastmod reported for every page.
func NewSEOHandler(r *gin.Engine, site *config.Site, resolver *routing.Resolver, modified time.Time) *SEOHandler {
	handler := &SEOHandler{site: site, resolver: resolver, modified: modified.UTC()}
	r.GET("/sitemap.xml", handler.Sitemap)
	r.GET("/robots.txt", handler.Robots)
	return handler
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string      `xml:"loc"`
	LastMod    string      `xml:"lastmod,omitempty"`
	ChangeFreq string      `xml:"changefreq,omitempty"`
	Priority   string      `xml:"priority,omitempty"`
	Alternates []xhtmlLink `xml:"xhtml:link"`
}

type xhtmlLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// Sitemap lists the home page of every locale with hreflang alternates.
func (h *SEOHandler) Sitemap(c *gin.Context) {
	registry := h.resolver.Registry()

	var alternates []xhtmlLink
	for _, l := range registry.Locales() {
		alternates = append(alternates, xhtmlLink{
			Rel:      "alternate",
			Hreflang: string(l),
			Href:     h.site.BaseURL + h.resolver.LocalizedPath(l, "/"),
		})
	}

	set := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		XHTML: "http://www.w3.org/1999/xhtml",
	}
	for _, l := range registry.Locales() {
		priority := h.site.Sitemap.LocalePriority
		if l == registry.Default() {
			priority = h.site.Sitemap.DefaultPriority
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        h.site.BaseURL + h.resolver.LocalizedPath(l, "/"),
			LastMod:    h.modified.Format("2006-01-02"),
			ChangeFreq: h.site.Sitemap.ChangeFrequency,
			Priority:   strconv.FormatFloat(priority, 'f', 1, 64),
			Alternates: alternates,
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
}

// Robots renders the crawler rules of the site profile.
func (h *SEOHandler) Robots(c *gin.Context) {
	var b strings.Builder
	for i, rule := range h.site.Robots {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "User-agent: %s\n", rule.UserAgent)
		if rule.Allow != "" {
			fmt.Fprintf(&b, "Allow: %s\n", rule.Allow)
		}
		for _, d := range rule.Disallow {
			fmt.Fprintf(&b, "Disallow: %s\n", d)
		}
		if rule.CrawlDelay > 0 {
			fmt.Fprintf(&b, "Crawl-delay: %d\n", rule.CrawlDelay)
		}
	}
	if len(h.site.Robots) > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Sitemap: %s/sitemap.xml\n", h.site.BaseURL)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(b.String()))
}
