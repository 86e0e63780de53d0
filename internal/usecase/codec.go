package usecase

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"competence-editor/internal/domain"
)

// Codecs between canonical section HTML and the two structured
// sub-editor representations: skill tag lists and language/proficiency
// lists. Encode and decode are symmetric for canonical output the
// codecs themselves produced; decoding arbitrary external HTML is
// best-effort and lossy by design.

var (
	// segmentSplitRe splits tag-stripped text into candidate items.
	segmentSplitRe = regexp.MustCompile(`[•,;\n]`)
	// langPartRe splits a language item into name and proficiency hint.
	langPartRe = regexp.MustCompile(`[-–()]`)
	// stripTagRe knocks out tags when no list structure is present.
	stripTagRe = regexp.MustCompile(`<[^>]+>`)
)

// DecodeSkills extracts a skill tag list from canonical HTML. List
// items win; otherwise the tag-stripped text is split on bullet, comma,
// semicolon or newline. An empty result is not an error: it means zero
// items.
func DecodeSkills(htmlStr string) []string {
	if items := listItemTexts(htmlStr); len(items) > 0 {
		return items
	}
	return splitSegments(stripTags(htmlStr))
}

// EncodeSkills emits the canonical <ul> representation of a skill list.
// Empty entries are dropped; each skill is escaped individually.
func EncodeSkills(skills []string) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(s))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// DecodeLanguages extracts language/proficiency pairs from canonical
// HTML, with the same list-first / split-second strategy as skills.
func DecodeLanguages(htmlStr string) []domain.LanguageItem {
	segs := listItemTexts(htmlStr)
	if len(segs) == 0 {
		segs = splitSegments(stripTags(htmlStr))
	}

	var out []domain.LanguageItem
	for _, seg := range segs {
		if item, ok := parseLanguageSegment(seg); ok {
			out = append(out, item)
		}
	}
	return out
}

// EncodeLanguages emits the canonical list representation, one
// "<strong>Name</strong> - Label" item per language.
func EncodeLanguages(items []domain.LanguageItem) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			continue
		}
		b.WriteString("<li><strong>")
		b.WriteString(html.EscapeString(name))
		b.WriteString("</strong> - ")
		b.WriteString(domain.LevelLabel(it.Level))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// parseLanguageSegment splits one item on -, –, ( or ): the first
// non-empty part is the name, the rest is the proficiency hint.
func parseLanguageSegment(seg string) (domain.LanguageItem, bool) {
	var name string
	var rest []string
	for _, p := range langPartRe.Split(seg, -1) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if name == "" {
			name = p
			continue
		}
		rest = append(rest, p)
	}
	if name == "" {
		return domain.LanguageItem{}, false
	}
	hint := strings.ToLower(strings.Join(rest, " "))
	return domain.LanguageItem{Name: name, Level: levelFromHint(hint)}, true
}

// levelHints is checked in priority order; the first substring match
// wins. "basic" resolves to Elementary (tier 2) and "none" maps to tier
// 0 so encoded labels always decode back to their level.
var levelHints = []struct {
	keys  []string
	level int
}{
	{[]string{"native", "mother tongue"}, 5},
	{[]string{"advanced", "professional", "fluent"}, 4},
	{[]string{"intermediate", "professional working", "conversational"}, 3},
	{[]string{"elementary", "basic"}, 2},
	{[]string{"beginner"}, 1},
	{[]string{"none"}, 0},
}

func levelFromHint(hint string) int {
	for _, h := range levelHints {
		for _, k := range h.keys {
			if strings.Contains(hint, k) {
				return h.level
			}
		}
	}
	return 3
}

// listItemTexts returns the trimmed text of every <li> in the fragment.
func listItemTexts(htmlStr string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil
	}
	var out []string
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			out = append(out, t)
		}
	})
	return out
}

// stripTags removes markup, keeping tag boundaries as newlines so
// adjacent blocks stay separate segments.
func stripTags(htmlStr string) string {
	return html.UnescapeString(stripTagRe.ReplaceAllString(htmlStr, "\n"))
}

// splitSegments splits stripped text into trimmed non-empty items.
func splitSegments(text string) []string {
	var out []string
	for _, part := range segmentSplitRe.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
