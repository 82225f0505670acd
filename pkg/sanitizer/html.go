package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	postPolicy   *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		// formatting allowed in post bodies and comments
		postPolicy = bluemonday.NewPolicy()
		postPolicy.AllowStandardURLs()
		postPolicy.AllowElements(
			"p", "br", "hr",
			"h1", "h2", "h3", "h4",
			"strong", "b", "em", "i", "del",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		postPolicy.AllowAttrs("href").OnElements("a")
		postPolicy.RequireNoFollowOnLinks(true)
	})
}

// StripHTML removes every tag and returns plain text.
func StripHTML(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// SanitizeHTML keeps basic formatting tags and links and drops scripts,
// event handlers and javascript: URLs.
func SanitizeHTML(s string) string {
	initPolicies()
	return postPolicy.Sanitize(s)
}

// SanitizeHTMLCustom applies policy, or returns s unchanged for a nil policy.
func SanitizeHTMLCustom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
