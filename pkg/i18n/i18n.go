package i18n

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLang is used when no default language is configured.
const DefaultLang = "en"

// M holds placeholder values.
type M map[string]any

// Catalog stores translations keyed by language, namespace and dotted key.
// It is immutable after New returns and safe for concurrent use.
type Catalog struct {
	// "lang:namespace:key.path" -> template
	entries map[string]string

	missing     func(lang, namespace, key string)
	defaultLang string
	languages   []string
	matcher     language.Matcher
}

// Option configures a Catalog during construction.
type Option func(*Catalog) error

// New builds a Catalog from opts.
func New(opts ...Option) (*Catalog, error) {
	c := &Catalog{
		entries:     make(map[string]string),
		defaultLang: DefaultLang,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("i18n: apply option: %w", err)
		}
	}
	if c.defaultLang == "" {
		return nil, ErrEmptyLanguage
	}

	c.languages = c.collectLanguages()
	tags := make([]language.Tag, 0, len(c.languages))
	for _, l := range c.languages {
		tags = append(tags, language.Make(l))
	}
	c.matcher = language.NewMatcher(tags)

	return c, nil
}

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(c *Catalog) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		c.defaultLang = lang
		return nil
	}
}

// WithTranslations registers a (possibly nested) map for lang and namespace.
func WithTranslations(lang, namespace string, translations map[string]any) Option {
	return func(c *Catalog) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		c.add(lang, namespace, translations)
		return nil
	}
}

// WithMissingKeyHandler registers a callback for keys absent in every
// fallback language.
func WithMissingKeyHandler(fn func(lang, namespace, key string)) Option {
	return func(c *Catalog) error {
		c.missing = fn
		return nil
	}
}

// T returns the translation of key, trying lang, its base language and the
// default language in that order. The key itself is returned when nothing
// matches.
func (c *Catalog) T(lang, namespace, key string, placeholders ...M) string {
	for _, l := range c.fallbacks(lang) {
		if tmpl, ok := c.entries[entryKey(l, namespace, key)]; ok {
			return render(tmpl, placeholders...)
		}
	}
	if c.missing != nil {
		c.missing(lang, namespace, key)
	}
	return key
}

// Has reports whether key resolves for lang through the fallback chain.
func (c *Catalog) Has(lang, namespace, key string) bool {
	for _, l := range c.fallbacks(lang) {
		if _, ok := c.entries[entryKey(l, namespace, key)]; ok {
			return true
		}
	}
	return false
}

// Match returns the available language that best fits the given
// preferences. Each preference may be a tag ("pt-BR") or a full
// Accept-Language value. The default language is returned when nothing fits.
func (c *Catalog) Match(prefs ...string) string {
	prefs = slices.DeleteFunc(slices.Clone(prefs), func(s string) bool {
		return strings.TrimSpace(s) == ""
	})
	if len(prefs) == 0 {
		return c.defaultLang
	}
	_, idx := language.MatchStrings(c.matcher, prefs...)
	return c.languages[idx]
}

// Languages lists the loaded languages, default first then alphabetical.
func (c *Catalog) Languages() []string {
	return slices.Clone(c.languages)
}

// DefaultLanguage returns the fallback language.
func (c *Catalog) DefaultLanguage() string {
	return c.defaultLang
}

func (c *Catalog) add(lang, namespace string, tree map[string]any) {
	for key, value := range flatten(tree, "") {
		c.entries[entryKey(lang, namespace, key)] = value
	}
}

func (c *Catalog) fallbacks(lang string) []string {
	out := make([]string, 0, 3)
	if lang != "" {
		out = append(out, lang)
		if base := baseLanguage(lang); base != lang {
			out = append(out, base)
		}
	}
	if !slices.Contains(out, c.defaultLang) {
		out = append(out, c.defaultLang)
	}
	return out
}

func (c *Catalog) collectLanguages() []string {
	seen := map[string]bool{c.defaultLang: true}
	var others []string
	for k := range c.entries {
		lang, _, _ := strings.Cut(k, ":")
		if !seen[lang] {
			seen[lang] = true
			others = append(others, lang)
		}
	}
	slices.Sort(others)
	return append([]string{c.defaultLang}, others...)
}

func entryKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

func flatten(tree map[string]any, prefix string) map[string]string {
	out := make(map[string]string)
	for k, v := range tree {
		full := k
		if prefix != "" {
			full = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[full] = val
		case map[string]any:
			maps.Copy(out, flatten(val, full))
		case map[string]string:
			for sk, sv := range val {
				out[full+"."+sk] = sv
			}
		default:
			out[full] = fmt.Sprint(val)
		}
	}
	return out
}

// baseLanguage strips the region: "pt-BR" -> "pt".
func baseLanguage(lang string) string {
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		return lang[:i]
	}
	return lang
}
