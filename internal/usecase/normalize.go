package usecase

import (
	"html"
	"regexp"
	"strings"
)

// Source sections arrive from heterogeneous producers (AI generation,
// manual paste, prior exports) with inconsistent markup. Normalizer
// guarantees a single canonical sanitized-HTML representation so the
// rest of the system only ever deals with one shape.

var (
	// tagTokenRe detects content that already looks like markup.
	tagTokenRe = regexp.MustCompile(`<[a-zA-Z][a-zA-Z0-9]*(\s[^>]*)?/?>`)
	// boldRunRe matches paired ** tokens; unmatched ** stays literal.
	boldRunRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	blankLineRe = regexp.MustCompile(`\n{2,}`)
)

// Normalizer converts raw heterogeneous section input into canonical
// sanitized HTML. It is a pure function over its input: total over all
// strings, never errors.
type Normalizer struct {
	sanitizer Sanitizer
}

func NewNormalizer(s Sanitizer) *Normalizer {
	return &Normalizer{sanitizer: s}
}

// Normalize resolves raw content to canonical HTML, in priority order:
// already-HTML passes through untouched, **Category** markers over
// bulleted text become heading+list blocks, bullet-delimited text
// becomes a single list, and anything else is wrapped as paragraphs.
// The result is always sanitized before it is returned.
func (n *Normalizer) Normalize(raw, title string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	// Never re-parse content that is already structured.
	if tagTokenRe.MatchString(raw) {
		return n.sanitizer.Sanitize(raw)
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	if strings.Contains(text, "•") {
		if out := categoryBlocks(text); out != "" {
			return n.sanitizer.Sanitize(out)
		}
		if items := splitBullets(text); len(items) > 0 {
			return n.sanitizer.Sanitize(renderList(items))
		}
	}
	return n.sanitizer.Sanitize(paragraphs(text))
}

// categoryBlocks parses bold-marked category text: every **Category**
// marker opens a block whose body runs to the next marker (or end of
// input) and is split on the bullet character. Returns "" when the text
// carries no markers.
func categoryBlocks(text string) string {
	marks := boldRunRe.FindAllStringSubmatchIndex(text, -1)
	if len(marks) == 0 {
		return ""
	}

	var b strings.Builder
	for i, m := range marks {
		category := strings.TrimSpace(text[m[2]:m[3]])
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		body := text[m[1]:end]

		b.WriteString("<p><strong>")
		b.WriteString(html.EscapeString(category))
		b.WriteString("</strong></p>")
		// A marker with no trailing bullet text still emits the heading.
		if items := splitBullets(body); len(items) > 0 {
			b.WriteString(renderList(items))
		}
	}
	return b.String()
}

// splitBullets splits text on the bullet character, trimming each item
// and dropping empties.
func splitBullets(text string) []string {
	var items []string
	for _, part := range strings.Split(text, "•") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// renderList emits a single <ul> with one <li> per item.
func renderList(items []string) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, item := range items {
		b.WriteString("<li>")
		b.WriteString(convertBold(html.EscapeString(item)))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// paragraphs wraps plain prose: blank lines separate paragraphs, single
// newlines become line breaks, paired ** runs become <strong>.
func paragraphs(text string) string {
	var b strings.Builder
	for _, para := range blankLineRe.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		lines := strings.Split(para, "\n")
		for i := range lines {
			lines[i] = convertBold(html.EscapeString(strings.TrimSpace(lines[i])))
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(lines, "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}

// convertBold replaces paired **x** runs with <strong>x</strong>.
// Unmatched ** tokens are left as literal text.
func convertBold(s string) string {
	return boldRunRe.ReplaceAllString(s, "<strong>$1</strong>")
}
