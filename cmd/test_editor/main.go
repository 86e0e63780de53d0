// Offline smoke harness for the editing core: loads a sample document,
// exercises the normalizer, the structured codecs and the export view,
// and prints the results. No network, no database.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"competence-editor/internal/domain"
	"competence-editor/internal/model"
	"competence-editor/internal/usecase"
	"competence-editor/pkg/sanitize"
)

func main() {
	sanitizer := sanitize.New()
	normalizer := usecase.NewNormalizer(sanitizer)

	session := usecase.NewSession("sample", normalizer, sanitizer, nil, nil, 0)
	defer session.Close()

	session.Load("https://www.linkedin.com/in/sample", []model.SectionInput{
		{
			ID:      "summary",
			Title:   "Summary",
			Content: "Seasoned backend engineer.\n\nTen years building data-heavy platforms.",
			Order:   1,
		},
		{
			ID:      "skills",
			Kind:    "technical-skills",
			Title:   "Technical Skills",
			Content: "**Languages & Frameworks**\n• Go • Python • React **Tooling**\n• Docker • Terraform",
			Order:   2,
		},
		{
			ID:      "languages",
			Kind:    "languages",
			Title:   "Languages",
			Content: "English - Fluent • German - Intermediate • French - Basic",
			Order:   3,
		},
	})

	for _, s := range session.Model().Sections() {
		fmt.Printf("== %s (%s)\n%s\n\n", s.Title, s.EffectiveKind(), s.HTML)
	}

	fmt.Printf("skills: %v\n", session.Skills("skills"))
	fmt.Printf("languages: %v\n", session.Languages("languages"))

	session.SetLanguages("languages", []domain.LanguageItem{
		{Name: "English", Level: 4},
		{Name: "German", Level: 3},
		{Name: "French", Level: 2},
	})

	out, err := json.MarshalIndent(session.Export(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal export: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("export:\n%s\n", out)
}
