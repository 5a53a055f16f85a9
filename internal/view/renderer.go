// Package view renders composed pages to HTML.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"portfolio-web/internal/domain"
	"portfolio-web/internal/uistate"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

// Raw HTML in copy is dropped; only markdown syntax is rendered.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Rendered copy still goes through the UGC policy before it is marked safe.
var sanitizer = bluemonday.UGCPolicy().RequireNoFollowOnLinks(false)

// NotFoundText is the copy of the not-found page.
type NotFoundText struct {
	Message  string
	BackHome string
	HomeURL  string
}

var notFoundCopy = map[domain.Locale]NotFoundText{
	domain.LocaleEN: {Message: "This page does not exist.", BackHome: "Back to the homepage"},
	domain.LocaleCS: {Message: "Tato stránka neexistuje.", BackHome: "Zpět na úvodní stránku"},
	domain.LocaleSK: {Message: "Táto stránka neexistuje.", BackHome: "Späť na úvodnú stránku"},
}

// ClientState is what a browser session adds to the page: whether the hero
// still has to play its entrance and the saved contact draft.
type ClientState struct {
	AnimateHero bool
	Draft       uistate.Draft
}

type pageView struct {
	*domain.Page
	Client ClientState
}

type notFoundView struct {
	*domain.Page
	NotFound NotFoundText
}

type Renderer struct {
	page     *template.Template
	notFound *template.Template
	now      func() time.Time
}

func New() (*Renderer, error) {
	r := &Renderer{now: time.Now}

	base, err := template.New("layout").Funcs(template.FuncMap{
		"markdown": renderMarkdown,
		"upper":    strings.ToUpper,
		"year":     func() int { return r.now().Year() },
	}).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	if r.page, err = extend(base, "templates/page.html"); err != nil {
		return nil, err
	}
	if r.notFound, err = extend(base, "templates/notfound.html"); err != nil {
		return nil, err
	}
	return r, nil
}

func extend(base *template.Template, name string) (*template.Template, error) {
	t, err := base.Clone()
	if err != nil {
		return nil, err
	}
	if _, err := t.ParseFS(templateFS, name); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return t, nil
}

// RenderPage writes the home page. Output is buffered so a template error
// never leaves a half-written response.
// A request served by the site is always a session's first render.
func (r *Renderer) RenderPage(w io.Writer, page *domain.Page) error {
	return r.RenderPageFor(w, page, ClientState{AnimateHero: true})
}

// RenderPageFor writes the home page as seen by a session with client state.
func (r *Renderer) RenderPageFor(w io.Writer, page *domain.Page, client ClientState) error {
	return execute(w, r.page, pageView{Page: page, Client: client})
}

// RenderNotFound writes the localized not-found page inside the regular layout.
func (r *Renderer) RenderNotFound(w io.Writer, page *domain.Page, homeURL string) error {
	text, ok := notFoundCopy[page.Locale]
	if !ok {
		text = notFoundCopy[domain.LocaleEN]
	}
	text.HomeURL = homeURL
	return execute(w, r.notFound, notFoundView{Page: page, NotFound: text})
}

func execute(w io.Writer, t *template.Template, data interface{}) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}
