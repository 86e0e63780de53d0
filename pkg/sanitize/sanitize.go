// Package sanitize wraps bluemonday behind the small Sanitizer surface
// the editor core consumes.
package sanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips script-executing content from HTML fragments. It is
// synchronous and total: malformed markup degrades to escaped text
// rather than an error.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// New builds the section-content policy: the block and inline elements
// the normalizer and codecs emit, plus safe links.
func New() *Sanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br",
		"strong", "em", "b", "i", "u",
		"h1", "h2", "h3",
		"ul", "ol", "li",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireNoFollowOnLinks(true)
	return &Sanitizer{policy: p}
}

// Sanitize returns html with disallowed markup stripped.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
