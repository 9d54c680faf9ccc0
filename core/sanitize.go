package core

import (
	"html"
	htmltmpl "html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// SanitizeHTML keeps safe formatting markup (links, lists, emphasis..) and drops anything else.
func SanitizeHTML(s string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(s))
}

// StripHTML removes every tag from s. Special characters stay escaped, so the result is safe to store and display.
func StripHTML(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// PlainText strips s like StripHTML and unescapes the entities left, for text that is never rendered as HTML
// (classifier input, e-mail subjects and text parts).
func PlainText(s string) string {
	return html.UnescapeString(StripHTML(s))
}

// SafeHTML sanitizes s for use as-is in html templates.
func SafeHTML(s string) htmltmpl.HTML {
	return htmltmpl.HTML(SanitizeHTML(s)) // nolint:gosec
}
