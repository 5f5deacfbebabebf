// Package sanitize provides text sanitization for user-provided form fields.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// htmlTagRegex matches HTML tags
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
	// whitespaceRegex matches runs of whitespace including line breaks
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// StripHTML removes all HTML tags from a string, making it safe for text-only display.
func StripHTML(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = strings.ReplaceAll(result, "&lt;", "<")
	result = strings.ReplaceAll(result, "&gt;", ">")
	result = strings.ReplaceAll(result, "&amp;", "&")
	result = strings.ReplaceAll(result, "&quot;", "\"")
	result = strings.ReplaceAll(result, "&#39;", "'")
	// Re-strip after entity decode to catch encoded tags
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text sanitizes multi-line free text such as the form's message field.
func Text(s string) string {
	return StripHTML(s)
}

// Line sanitizes a single-line value. Line breaks are collapsed so the value
// is safe to place in an email subject header.
func Line(s string) string {
	return whitespaceRegex.ReplaceAllString(StripHTML(s), " ")
}
