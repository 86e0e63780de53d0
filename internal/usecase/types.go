package usecase

import (
	"context"
)

// Sanitizer strips script-executing content from an HTML fragment and
// returns markup safe for direct rendering. Implementations must be
// synchronous and total: any input yields some safe output.
type Sanitizer interface {
	Sanitize(html string) string
}

// Store persists the export view of a document. Overwrite semantics:
// saving the same document id twice replaces the previous snapshot.
type Store interface {
	Save(ctx context.Context, documentID string, sections []ExportSection, status string) error
}

// Renderer converts an assembled HTML document into output bytes
// (PDF). Opaque beyond this contract.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// Rewriter proposes a replacement HTML fragment for a section. The
// result is offered to the user as a diff, never auto-applied.
type Rewriter interface {
	Rewrite(ctx context.Context, intent, text, sectionID, kind string) (string, error)
}

// ExportSection is the ordered, visibility-filtered projection of a
// section handed to renderers and the persistence store.
type ExportSection struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Content  string `json:"content"`
	Order    int    `json:"order"`
	Editable bool   `json:"editable"`
	Visible  bool   `json:"visible"`
}
