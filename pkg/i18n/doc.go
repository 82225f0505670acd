// Package i18n is a small immutable translation catalog.
//
// Translations are registered per language and namespace, either from maps
// or from a directory of YAML files laid out as {lang}/{namespace}.yaml:
//
//	cat, err := i18n.New(
//		i18n.WithDefaultLanguage("en"),
//		i18n.WithYAMLDir(localesFS),
//	)
//	msg := cat.T("pt", "errors", "posts.list")
//
// Lookups fall back from the requested language to its base ("pt-BR" to
// "pt") and then to the default language. Unknown keys are returned as is.
// Templates use {{name}} placeholders.
//
// [Catalog.Match] picks the best loaded language for a tag or an
// Accept-Language value using golang.org/x/text/language.
//
// A [Translator] binds one language and namespace and plugs directly into
// validator.ValidationErrors.Translate.
package i18n
