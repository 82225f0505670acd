// Package sanitizer cleans user-authored post content for display.
//
// [StripHTML] and [PlainText] remove all markup, [Excerpt] builds list
// previews, [SanitizeHTML] keeps a small formatting allowlist, and
// [RenderMarkdown] turns markdown into sanitized HTML with goldmark.
package sanitizer
