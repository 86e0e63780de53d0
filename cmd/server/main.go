package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"

	httpadapter "competence-editor/internal/adapter/http"
	repo "competence-editor/internal/adapter/repository"
	"competence-editor/internal/config"
	"competence-editor/internal/infrastructure/migration"
	"competence-editor/internal/usecase"
	"competence-editor/pkg/ai"
	infra "competence-editor/pkg/infrastructure"
	"competence-editor/pkg/sanitize"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	// infra setup
	pool, err := infra.NewDocumentsPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Warn("documents DB not available, autosave disabled", slog.Any("error", err))
	} else {
		if err := migration.RunMigrations(ctx, pool); err != nil {
			slog.Error("migrations failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	sanitizer := sanitize.New()
	normalizer := usecase.NewNormalizer(sanitizer)
	documentsRepo := repo.NewDocumentsRepo(pool)
	rewriter := ai.NewClient(cfg.AIServiceURL)
	renderer := infra.NewChromedpRenderer()

	sessions := usecase.NewRegistry(normalizer, sanitizer, documentsRepo, rewriter, cfg.AutosaveDebounce)
	render := usecase.NewRenderService(renderer, cfg.TemplateDir)

	app := fiber.New()
	h := httpadapter.NewHandler(sessions, render, documentsRepo)
	h.Register(app)

	slog.Info("starting competence editor", slog.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}
