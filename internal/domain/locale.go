package domain

import (
	"errors"
	"fmt"
	"slices"
)

// Locale is a supported language code used as URL prefix and message file key.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleCS Locale = "cs"
	LocaleSK Locale = "sk"
)

var (
	ErrUnsupportedLocale   = errors.New("unsupported locale")
	ErrInvalidLocaleConfig = errors.New("invalid locale configuration")
)

// AllLocales lists every locale the site ships messages for.
func AllLocales() []Locale {
	return []Locale{LocaleEN, LocaleCS, LocaleSK}
}

// ParseLocale accepts only the exact lowercase codes in AllLocales.
func ParseLocale(s string) (Locale, error) {
	l := Locale(s)
	if !slices.Contains(AllLocales(), l) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, s)
	}
	return l, nil
}

func (l Locale) String() string {
	return string(l)
}

// PrefixMode controls whether the default locale must appear in the URL.
type PrefixMode string

const (
	PrefixAlways   PrefixMode = "always"
	PrefixAsNeeded PrefixMode = "as-needed"
)

// LocaleRegistry is the configured set of locales, the default one and the prefix mode.
type LocaleRegistry struct {
	locales []Locale
	def     Locale
	mode    PrefixMode
}

// NewLocaleRegistry validates the routing configuration. Any error here is a startup failure.
func NewLocaleRegistry(locales []Locale, def Locale, mode PrefixMode) (*LocaleRegistry, error) {
	if len(locales) == 0 {
		return nil, fmt.Errorf("%w: no locales configured", ErrInvalidLocaleConfig)
	}
	for _, l := range locales {
		if _, err := ParseLocale(string(l)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLocaleConfig, err)
		}
	}
	if !slices.Contains(locales, def) {
		return nil, fmt.Errorf("%w: default locale %q is not in the supported set", ErrInvalidLocaleConfig, def)
	}
	switch mode {
	case PrefixAlways, PrefixAsNeeded:
	case "":
		mode = PrefixAlways
	default:
		return nil, fmt.Errorf("%w: unknown prefix mode %q", ErrInvalidLocaleConfig, mode)
	}
	return &LocaleRegistry{locales: slices.Clone(locales), def: def, mode: mode}, nil
}

func (r *LocaleRegistry) Locales() []Locale {
	return slices.Clone(r.locales)
}

func (r *LocaleRegistry) Default() Locale {
	return r.def
}

func (r *LocaleRegistry) Mode() PrefixMode {
	return r.mode
}

// Lookup returns the locale for s when it is part of the registry.
func (r *LocaleRegistry) Lookup(s string) (Locale, bool) {
	l := Locale(s)
	if slices.Contains(r.locales, l) {
		return l, true
	}
	return "", false
}
