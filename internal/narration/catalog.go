// Package narration turns battle narration into localized text and delivers
// it to message sinks.
//
// Narration formats double as catalog keys: a locale file maps each English
// format to its translation, and a key missing from a locale falls back to
// the English format itself.
package narration

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	apperrors "github.com/louisbranch/creaturebattle/internal/platform/errors"
)

// BaseLocale is the locale narration formats are written in.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embeddedLocales embed.FS

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

type localeMessages struct {
	tag        language.Tag
	namespaces map[string]map[string]string
	messages   map[string]string
}

// Catalog holds every translated narration format, grouped by locale.
type Catalog struct {
	locales map[string]*localeMessages
	builder *catalog.Builder
	matcher language.Matcher
	tags    []language.Tag
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return NewCatalog(embeddedLocales)
})

// DefaultCatalog returns the catalog built from the embedded locale files.
func DefaultCatalog() (*Catalog, error) {
	return defaultCatalog()
}

// NewCatalog loads locales/<locale>/<namespace>.yaml files from fsys.
func NewCatalog(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale files: %w", err)
	}
	if len(paths) == 0 {
		return nil, apperrors.New(apperrors.CodeCatalogInvalid, "no locale files found")
	}
	sort.Strings(paths)

	c := &Catalog{
		locales: map[string]*localeMessages{},
		builder: catalog.NewBuilder(catalog.Fallback(language.AmericanEnglish)),
	}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read locale file %s: %w", p, err)
		}
		var file catalogFile
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return nil, apperrors.WrapWithMetadata(apperrors.CodeCatalogInvalid, "decode locale file", map[string]string{"path": p}, err)
		}
		if err := c.add(p, file); err != nil {
			return nil, err
		}
	}
	if _, ok := c.locales[BaseLocale]; !ok {
		return nil, apperrors.New(apperrors.CodeCatalogInvalid, fmt.Sprintf("base locale %s is not defined", BaseLocale))
	}

	c.tags = make([]language.Tag, 0, len(c.locales))
	for _, locale := range c.Locales() {
		c.tags = append(c.tags, c.locales[locale].tag)
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

func (c *Catalog) add(p string, file catalogFile) error {
	invalid := func(format string, args ...any) error {
		return apperrors.WithMetadata(apperrors.CodeCatalogInvalid, fmt.Sprintf(format, args...), map[string]string{"path": p})
	}

	dirLocale := path.Base(path.Dir(p))
	fileNamespace := strings.TrimSuffix(path.Base(p), path.Ext(p))
	locale := strings.TrimSpace(file.Locale)
	namespace := strings.TrimSpace(file.Namespace)
	switch {
	case locale == "":
		return invalid("locale is required")
	case locale != dirLocale:
		return invalid("locale %q must match directory %q", locale, dirLocale)
	case namespace == "":
		return invalid("namespace is required")
	case namespace != fileNamespace:
		return invalid("namespace %q must match file name %q", namespace, fileNamespace)
	case len(file.Messages) == 0:
		return invalid("messages are required")
	}

	lm, ok := c.locales[locale]
	if !ok {
		tag, err := language.Parse(locale)
		if err != nil {
			return apperrors.WrapWithMetadata(apperrors.CodeCatalogInvalid, "parse locale", map[string]string{"path": p}, err)
		}
		lm = &localeMessages{tag: tag, namespaces: map[string]map[string]string{}, messages: map[string]string{}}
		c.locales[locale] = lm
	}
	if _, exists := lm.namespaces[namespace]; exists {
		return invalid("namespace %q already defined for %s", namespace, locale)
	}

	ns := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		if strings.TrimSpace(key) == "" {
			return invalid("message key cannot be blank")
		}
		if _, exists := lm.messages[key]; exists {
			return invalid("duplicate key %q in %s", key, locale)
		}
		if err := c.builder.SetString(lm.tag, key, value); err != nil {
			return apperrors.WrapWithMetadata(apperrors.CodeCatalogInvalid, "register message", map[string]string{"path": p, "key": key}, err)
		}
		lm.messages[key] = value
		ns[key] = value
	}
	lm.namespaces[namespace] = ns
	return nil
}

// Locales returns the sorted locale identifiers.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.locales))
	for locale := range c.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// HasLocale reports whether locale has its own messages.
func (c *Catalog) HasLocale(locale string) bool {
	_, ok := c.locales[strings.TrimSpace(locale)]
	return ok
}

// Namespaces returns the sorted namespaces defined for locale.
func (c *Catalog) Namespaces(locale string) []string {
	lm, ok := c.locales[strings.TrimSpace(locale)]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(lm.namespaces))
	for ns := range lm.namespaces {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// NamespaceMessages returns a copy of the messages locale defines in
// namespace.
func (c *Catalog) NamespaceMessages(locale, namespace string) map[string]string {
	lm, ok := c.locales[strings.TrimSpace(locale)]
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(lm.namespaces[namespace]))
	for key, value := range lm.namespaces[namespace] {
		out[key] = value
	}
	return out
}

// Message returns the translation of key for locale, falling back to the
// base locale.
func (c *Catalog) Message(locale, key string) (string, bool) {
	if lm, ok := c.locales[strings.TrimSpace(locale)]; ok {
		if value, ok := lm.messages[key]; ok {
			return value, true
		}
	}
	if lm, ok := c.locales[BaseLocale]; ok {
		value, ok := lm.messages[key]
		return value, ok
	}
	return "", false
}

// Missing returns the keys locale does not translate, in input order.
func (c *Catalog) Missing(locale string, keys []string) []string {
	lm := c.locales[strings.TrimSpace(locale)]
	var out []string
	for _, key := range keys {
		if lm == nil {
			out = append(out, key)
			continue
		}
		if _, ok := lm.messages[key]; !ok {
			out = append(out, key)
		}
	}
	return out
}

// Printer returns a printer for the closest supported locale. Unknown or
// malformed locales narrate in the base locale.
func (c *Catalog) Printer(locale string) *message.Printer {
	tag := language.AmericanEnglish
	if requested, err := language.Parse(strings.TrimSpace(locale)); err == nil {
		if _, index, confidence := c.matcher.Match(requested); confidence != language.No {
			tag = c.tags[index]
		}
	}
	return message.NewPrinter(tag, message.Catalog(c.builder))
}
