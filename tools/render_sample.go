// Renders a saved export snapshot (sections.json) to standalone HTML
// for eyeballing the document template without a browser roundtrip.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"competence-editor/internal/usecase"
)

func main() {
	in := "sections.json"
	if len(os.Args) > 1 {
		in = os.Args[1]
	}
	b, err := os.ReadFile(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read sections: %v\n", err)
		os.Exit(2)
	}

	var sections []usecase.ExportSection
	if err := json.Unmarshal(b, &sections); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal: %v\n", err)
		os.Exit(2)
	}

	render := usecase.NewRenderService(nil, "templates")
	html, err := render.BuildHTML("Competence File", "", sections)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build html: %v\n", err)
		os.Exit(2)
	}

	out := "sections.html"
	if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write html: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("wrote %s (%d bytes)\n", out, len(html))
}
