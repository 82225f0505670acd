package i18n

import (
	"fmt"
	"maps"
	"strings"
)

// ReplacePlaceholders substitutes {{name}} tokens with values from ph.
// Unknown tokens are left as is.
func ReplacePlaceholders(template string, ph M) string {
	if len(ph) == 0 || !strings.Contains(template, "{{") {
		return template
	}
	pairs := make([]string, 0, len(ph)*2)
	for k, v := range ph {
		pairs = append(pairs, "{{"+k+"}}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func render(template string, placeholders ...M) string {
	switch len(placeholders) {
	case 0:
		return template
	case 1:
		return ReplacePlaceholders(template, placeholders[0])
	}
	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}
	return ReplacePlaceholders(template, merged)
}
