package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"competence-editor/internal/usecase"
)

// DocumentsRepo persists autosave snapshots. Save is an idempotent
// overwrite: the documents row is the authoritative snapshot, and
// per-section rows are maintained best-effort for querying.
type DocumentsRepo struct {
	pool *pgxpool.Pool
}

func NewDocumentsRepo(pool *pgxpool.Pool) *DocumentsRepo {
	return &DocumentsRepo{pool: pool}
}

func (r *DocumentsRepo) Save(ctx context.Context, documentID string, sections []usecase.ExportSection, status string) error {
	if r.pool == nil {
		return nil
	}

	payload, err := json.Marshal(sections)
	if err != nil {
		return fmt.Errorf("marshal sections: %w", err)
	}

	now := time.Now()
	_, err = r.pool.Exec(ctx, `INSERT INTO documents (id, status, sections, updated_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, sections = EXCLUDED.sections, updated_at = EXCLUDED.updated_at`,
		documentID, status, payload, now)
	if err != nil {
		return fmt.Errorf("upsert document %s: %w", documentID, err)
	}

	// Best-effort: mirror sections into their own rows.
	for _, s := range sections {
		if _, e := r.pool.Exec(ctx, `INSERT INTO document_sections (document_id, section_id, title, type, content, position, visible, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			ON CONFLICT (document_id, section_id) DO UPDATE SET title = EXCLUDED.title, type = EXCLUDED.type, content = EXCLUDED.content, position = EXCLUDED.position, visible = EXCLUDED.visible, updated_at = EXCLUDED.updated_at`,
			documentID, s.ID, s.Title, s.Type, s.Content, s.Order, s.Visible, now); e != nil {
			slog.Warn("unable to upsert section row (non-fatal)",
				slog.String("document", documentID),
				slog.String("section", s.ID),
				slog.Any("error", e),
			)
		}
	}

	return nil
}

// Fetch returns the last persisted snapshot of a document.
func (r *DocumentsRepo) Fetch(ctx context.Context, documentID string) ([]usecase.ExportSection, string, error) {
	if r.pool == nil {
		return nil, "", fmt.Errorf("documents store unavailable")
	}

	var raw []byte
	var status string
	err := r.pool.QueryRow(ctx, `SELECT sections, status FROM documents WHERE id = $1`, documentID).Scan(&raw, &status)
	if err != nil {
		return nil, "", fmt.Errorf("fetch document %s: %w", documentID, err)
	}

	var sections []usecase.ExportSection
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, "", fmt.Errorf("decode document %s: %w", documentID, err)
	}
	return sections, status, nil
}
