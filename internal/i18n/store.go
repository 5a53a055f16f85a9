package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"portfolio-web/internal/domain"
	"portfolio-web/messages"
	"portfolio-web/pkg/validation"

	"github.com/go-playground/validator/v10"
)

var (
	ErrLocaleNotFound = errors.New("locale not found")
	errNoLoader       = errors.New("no message loader registered")
)

// Loader returns the raw JSON message file of one locale.
type Loader func() ([]byte, error)

// EmbeddedLoaders maps every shipped locale to its embedded message file.
func EmbeddedLoaders() map[domain.Locale]Loader {
	return FSLoaders(messages.FS)
}

// FSLoaders reads <locale>.json from fsys for every shipped locale.
func FSLoaders(fsys fs.FS) map[domain.Locale]Loader {
	loaders := make(map[domain.Locale]Loader)
	for _, l := range domain.AllLocales() {
		loaders[l] = embeddedFile(fsys, string(l)+".json")
	}
	return loaders
}

func embeddedFile(fsys fs.FS, name string) Loader {
	return func() ([]byte, error) {
		return fs.ReadFile(fsys, name)
	}
}

// Store resolves message dictionaries. Every Load decodes a fresh copy.
type Store struct {
	registry *domain.LocaleRegistry
	loaders  map[domain.Locale]Loader
	log      *slog.Logger
	validate *validator.Validate
}

func NewStore(registry *domain.LocaleRegistry, loaders map[domain.Locale]Loader, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{registry: registry, loaders: loaders, log: log, validate: validation.New()}
}

// Load returns the dictionary of locale. A locale outside the registry is an
// error; a registered locale whose file cannot be read degrades to the default
// locale's dictionary.
func (s *Store) Load(ctx context.Context, locale domain.Locale) (*domain.Dictionary, error) {
	if _, ok := s.registry.Lookup(string(locale)); !ok {
		return nil, fmt.Errorf("%w: %q", ErrLocaleNotFound, locale)
	}

	dict, err := s.decode(locale)
	if err == nil {
		return dict, nil
	}

	def := s.registry.Default()
	if locale == def {
		return nil, fmt.Errorf("load messages for default locale %s: %w", def, err)
	}

	s.log.WarnContext(ctx, "messages unavailable, falling back to default locale",
		"locale", locale,
		"fallback", def,
		"error", err,
	)

	dict, err = s.decode(def)
	if err != nil {
		return nil, fmt.Errorf("load messages for default locale %s: %w", def, err)
	}
	return dict, nil
}

func (s *Store) decode(locale domain.Locale) (*domain.Dictionary, error) {
	loader, ok := s.loaders[locale]
	if !ok || loader == nil {
		return nil, fmt.Errorf("%s: %w", locale, errNoLoader)
	}
	raw, err := loader()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", locale, err)
	}
	var dict domain.Dictionary
	if err := json.Unmarshal(raw, &dict); err != nil {
		return nil, fmt.Errorf("%s: decode messages: %w", locale, err)
	}
	return &dict, nil
}

// Gap is a namespace or key missing from a locale's message file.
type Gap struct {
	Locale domain.Locale
	Path   string
	// Structural is set when a whole namespace is absent.
	Structural bool
}

func (g Gap) String() string {
	kind := "missing key"
	if g.Structural {
		kind = "missing namespace"
	}
	return fmt.Sprintf("%s: %s %s", g.Locale, kind, g.Path)
}

// Check reports every gap in locale's own message file, without fallback.
func (s *Store) Check(locale domain.Locale) ([]Gap, error) {
	if _, ok := s.registry.Lookup(string(locale)); !ok {
		return nil, fmt.Errorf("%w: %q", ErrLocaleNotFound, locale)
	}
	dict, err := s.decode(locale)
	if err != nil {
		return nil, err
	}

	err = s.validate.Struct(dict)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	gaps := make([]Gap, 0, len(verrs))
	for _, fe := range verrs {
		path := strings.TrimPrefix(fe.Namespace(), "Dictionary.")
		gaps = append(gaps, Gap{
			Locale:     locale,
			Path:       path,
			Structural: !strings.Contains(path, "."),
		})
	}
	return gaps, nil
}

// CheckAll runs Check over every registered locale.
func (s *Store) CheckAll() ([]Gap, error) {
	var all []Gap
	for _, l := range s.registry.Locales() {
		gaps, err := s.Check(l)
		if err != nil {
			return all, err
		}
		all = append(all, gaps...)
	}
	return all, nil
}
