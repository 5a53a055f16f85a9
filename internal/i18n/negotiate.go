package i18n

import (
	"portfolio-web/internal/domain"

	"golang.org/x/text/language"
)

// Negotiator picks a registry locale from an Accept-Language header.
type Negotiator struct {
	locales []domain.Locale
	matcher language.Matcher
}

func NewNegotiator(registry *domain.LocaleRegistry) *Negotiator {
	// Default first, so it is what the matcher falls back to.
	locales := []domain.Locale{registry.Default()}
	for _, l := range registry.Locales() {
		if l != registry.Default() {
			locales = append(locales, l)
		}
	}
	tags := make([]language.Tag, len(locales))
	for i, l := range locales {
		tags[i] = language.Make(string(l))
	}
	return &Negotiator{locales: locales, matcher: language.NewMatcher(tags)}
}

// Match returns the best supported locale, or false when nothing in the header is supported.
func (n *Negotiator) Match(acceptLanguage string) (domain.Locale, bool) {
	if acceptLanguage == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := n.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(n.locales) {
		return "", false
	}
	return n.locales[idx], true
}
