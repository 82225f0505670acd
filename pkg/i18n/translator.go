package i18n

// Translator binds a Catalog to one language and namespace.
type Translator struct {
	catalog   *Catalog
	language  string
	namespace string
}

// NewTranslator returns a Translator for lang and namespace. An empty lang
// selects the catalog default. It panics on a nil catalog.
func NewTranslator(c *Catalog, lang, namespace string) *Translator {
	if c == nil {
		panic("i18n: catalog is nil")
	}
	if lang == "" {
		lang = c.DefaultLanguage()
	}
	return &Translator{catalog: c, language: lang, namespace: namespace}
}

// T translates key in the bound language and namespace.
func (t *Translator) T(key string, placeholders ...M) string {
	return t.catalog.T(t.language, t.namespace, key, placeholders...)
}

// TranslateMessage matches the callback expected by
// validator.ValidationErrors.Translate.
func (t *Translator) TranslateMessage(key string, values map[string]any) string {
	return t.catalog.T(t.language, t.namespace, key, values)
}

// Has reports whether key resolves in the bound language.
func (t *Translator) Has(key string) bool {
	return t.catalog.Has(t.language, t.namespace, key)
}

// Language returns the bound language.
func (t *Translator) Language() string { return t.language }

// Namespace returns the bound namespace.
func (t *Translator) Namespace() string { return t.namespace }
