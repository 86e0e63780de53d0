package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	migrations := []Migration{
		{
			Name: "create_documents",
			Up: func(ctx context.Context, pool *pgxpool.Pool) error {
				return createDocuments(ctx, pool)
			},
		},
		{
			Name: "create_document_sections",
			Up: func(ctx context.Context, pool *pgxpool.Pool) error {
				return createDocumentSections(ctx, pool)
			},
		},
	}

	for _, m := range migrations {
		if err := m.Up(ctx, pool); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// createDocuments creates the autosave snapshot table if needed
func createDocuments(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS documents (
			id         TEXT PRIMARY KEY,
			status     TEXT NOT NULL DEFAULT 'draft',
			sections   JSONB NOT NULL DEFAULT '[]'::jsonb,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`

	if _, err := pool.Exec(ctx, query); err != nil {
		slog.Warn("Error creating documents table (may already exist)", "error", err)
		return nil
	}

	slog.Info("Successfully ensured documents table")
	return nil
}

// createDocumentSections creates the per-section mirror table if needed
func createDocumentSections(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS document_sections (
			document_id TEXT NOT NULL,
			section_id  TEXT NOT NULL,
			title       TEXT NOT NULL DEFAULT '',
			type        TEXT NOT NULL DEFAULT 'generic',
			content     TEXT NOT NULL DEFAULT '',
			position    INTEGER NOT NULL DEFAULT 0,
			visible     BOOLEAN NOT NULL DEFAULT TRUE,
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (document_id, section_id)
		);
	`

	if _, err := pool.Exec(ctx, query); err != nil {
		slog.Warn("Error creating document_sections table (may already exist)", "error", err)
		return nil
	}

	slog.Info("Successfully ensured document_sections table")
	return nil
}
