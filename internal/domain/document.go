package domain

import (
	"strings"
	"time"
)

// SectionKind tags the semantic type of a section. Sections tagged
// technical-skills or languages get a structured sub-editor; everything
// else is edited as plain rich text.
type SectionKind string

const (
	KindTechnicalSkills SectionKind = "technical-skills"
	KindLanguages       SectionKind = "languages"
	KindExperience      SectionKind = "experience"
	KindGeneric         SectionKind = "generic"
)

// ClassifySection resolves the effective kind of a section. An
// authoritative kind tag wins; otherwise the title is matched
// case-insensitively against known markers.
func ClassifySection(kind, title string) SectionKind {
	switch SectionKind(kind) {
	case KindTechnicalSkills, KindLanguages, KindExperience:
		return SectionKind(kind)
	}
	t := strings.ToUpper(title)
	switch {
	case strings.Contains(t, "TECHNICAL"):
		return KindTechnicalSkills
	case strings.Contains(t, "LANGUAGE"):
		return KindLanguages
	case strings.Contains(t, "EXPERIENCE"):
		return KindExperience
	}
	return KindGeneric
}

// Section is one titled block of a competence document. HTML is the
// canonical sanitized representation and the single source of truth for
// rendering. Hidden sections stay in the document but are excluded from
// the export view.
type Section struct {
	ID      string `json:"id"`
	Kind    string `json:"kind,omitempty"`
	Title   string `json:"title"`
	HTML    string `json:"html"`
	Order   int    `json:"order"`
	Visible bool   `json:"visible"`
}

// EffectiveKind applies the kind/title classification heuristic.
func (s Section) EffectiveKind() SectionKind {
	return ClassifySection(s.Kind, s.Title)
}

// Document is the ordered collection of sections under edit. Insertion
// order is the authoritative tiebreak when Order values collide.
type Document struct {
	ID        string    `json:"id"`
	SourceURL string    `json:"source_url,omitempty"`
	Sections  []Section `json:"sections"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LanguageItem pairs a language name with a proficiency level 0-5.
type LanguageItem struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// levelLabels maps proficiency levels to display labels, index = level.
var levelLabels = [...]string{
	"None",
	"Beginner",
	"Elementary",
	"Intermediate",
	"Advanced",
	"Native",
}

// LevelLabel returns the display label for a proficiency level.
// Out-of-range levels clamp to the nearest valid tier so the mapping
// stays total.
func LevelLabel(level int) string {
	if level < 0 {
		level = 0
	}
	if level > 5 {
		level = 5
	}
	return levelLabels[level]
}
