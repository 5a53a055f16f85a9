// Package routing decides which locale serves a request path and whether the
// path has to be redirected or rewritten to carry a locale prefix.
package routing

import (
	"strings"

	"portfolio-web/internal/domain"
)

type Action int

const (
	// Pass serves the path as is; its first segment is a supported locale.
	Pass Action = iota
	// Redirect sends the client to Path.
	Redirect
	// Rewrite serves Path internally while the client keeps its URL.
	Rewrite
)

func (a Action) String() string {
	switch a {
	case Pass:
		return "pass"
	case Redirect:
		return "redirect"
	case Rewrite:
		return "rewrite"
	}
	return "unknown"
}

// Resolution is the effective locale and the path to serve for one request.
type Resolution struct {
	Locale domain.Locale
	Path   string
	Action Action
}

type Resolver struct {
	registry *domain.LocaleRegistry
}

func NewResolver(registry *domain.LocaleRegistry) *Resolver {
	return &Resolver{registry: registry}
}

func (r *Resolver) Registry() *domain.LocaleRegistry {
	return r.registry
}

// Resolve inspects path and an optional locale hint from a previous visit.
// An unsupported hint is ignored.
func (r *Resolver) Resolve(path, hint string) Resolution {
	if path == "" || path[0] != '/' {
		path = "/" + path
	}

	if l, ok := r.registry.Lookup(firstSegment(path)); ok {
		return Resolution{Locale: l, Path: path, Action: Pass}
	}

	fallback := r.registry.Default()
	if l, ok := r.registry.Lookup(hint); ok {
		fallback = l
	}

	target := prefixed(fallback, path)
	if r.registry.Mode() == domain.PrefixAsNeeded && fallback == r.registry.Default() {
		return Resolution{Locale: fallback, Path: target, Action: Rewrite}
	}
	return Resolution{Locale: fallback, Path: target, Action: Redirect}
}

// LocalizedPath is the public URL path of rest in locale l.
func (r *Resolver) LocalizedPath(l domain.Locale, rest string) string {
	if rest == "" {
		rest = "/"
	}
	if r.registry.Mode() == domain.PrefixAsNeeded && l == r.registry.Default() {
		return rest
	}
	return prefixed(l, rest)
}

// StripLocale removes a supported locale prefix from path.
func (r *Resolver) StripLocale(path string) string {
	seg := firstSegment(path)
	if _, ok := r.registry.Lookup(seg); !ok {
		return path
	}
	rest := strings.TrimPrefix(strings.TrimPrefix(path, "/"), seg)
	if rest == "" {
		return "/"
	}
	return rest
}

func firstSegment(path string) string {
	seg := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		seg = seg[:i]
	}
	return seg
}

func prefixed(l domain.Locale, path string) string {
	if path == "/" || path == "" {
		return "/" + string(l)
	}
	return "/" + string(l) + path
}
