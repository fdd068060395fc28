// Package sanitize cleans user-entered display strings before they enter the
// form tree. Identifiers and visibleIf rules are not display strings and are
// never passed through here.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	defaultOnce   sync.Once
	defaultPolicy *Policy
)

// Policy strips markup from titles, choices and button labels, and limits
// descriptions to a small set of inline formatting tags.
type Policy struct {
	text        *bluemonday.Policy
	description *bluemonday.Policy
}

// New builds a policy.
func New() *Policy {
	description := bluemonday.StrictPolicy()
	description.AllowElements("b", "strong", "i", "em", "u", "br", "code")
	description.AllowAttrs("href").OnElements("a")
	description.AllowURLSchemes("http", "https", "mailto")
	description.RequireNoFollowOnLinks(true)
	description.AddTargetBlankToFullyQualifiedLinks(true)

	return &Policy{
		text:        bluemonday.StrictPolicy(),
		description: description,
	}
}

// Default returns the shared policy.
func Default() *Policy {
	defaultOnce.Do(func() {
		defaultPolicy = New()
	})
	return defaultPolicy
}

// Text removes every tag from raw and returns plain text. Entities produced
// by the sanitizer are decoded again so that "a < b" survives unchanged.
func (p *Policy) Text(raw string) string {
	if !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	return html.UnescapeString(p.text.Sanitize(raw))
}

// Description keeps inline formatting and safe links and drops the rest.
func (p *Policy) Description(raw string) string {
	if !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	return p.description.Sanitize(raw)
}

// Text sanitizes raw with the default policy.
func Text(raw string) string { return Default().Text(raw) }
