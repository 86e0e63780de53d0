package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"competence-editor/internal/adapter/repository"
	"competence-editor/internal/domain"
	"competence-editor/internal/model"
	"competence-editor/internal/usecase"
)

// Handler exposes the editing-session API to the UI shell. All document
// state lives in the session registry; the repo only serves persisted
// autosave snapshots.
type Handler struct {
	sessions *usecase.Registry
	render   *usecase.RenderService
	repo     *repository.DocumentsRepo
}

func NewHandler(sessions *usecase.Registry, render *usecase.RenderService, repo *repository.DocumentsRepo) *Handler {
	return &Handler{sessions: sessions, render: render, repo: repo}
}

// Register mounts all routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Post("/documents", h.CreateDocument)
	app.Get("/documents/:id", h.GetDocument)
	app.Delete("/documents/:id", h.CloseDocument)

	app.Put("/documents/:id/sections/:sid/content", h.UpdateContent)
	app.Put("/documents/:id/sections/:sid/visibility", h.SetVisibility)
	app.Delete("/documents/:id/sections/:sid", h.RemoveSection)

	app.Post("/documents/:id/sections/:sid/activate", h.Activate)
	app.Post("/documents/:id/sections/:sid/deactivate", h.Deactivate)

	app.Get("/documents/:id/sections/:sid/skills", h.GetSkills)
	app.Put("/documents/:id/sections/:sid/skills", h.SetSkills)
	app.Get("/documents/:id/sections/:sid/languages", h.GetLanguages)
	app.Put("/documents/:id/sections/:sid/languages", h.SetLanguages)

	app.Post("/documents/:id/sections/:sid/rewrite", h.ProposeRewrite)
	app.Post("/documents/:id/sections/:sid/rewrite/accept", h.AcceptRewrite)
	app.Post("/documents/:id/sections/:sid/rewrite/discard", h.DiscardRewrite)

	app.Get("/documents/:id/export", h.Export)
	app.Post("/documents/:id/render", h.Render)
	app.Get("/documents/:id/draft", h.GetDraft)
}

// CreateDocument validates the load payload, opens an editing session
// and loads the normalized document into it.
func (h *Handler) CreateDocument(c *fiber.Ctx) error {
	raw := c.Body()
	if err := model.ValidateLoadRequest(raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req model.LoadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	id := uuid.New().String()
	session := h.sessions.Open(id)
	session.Load(req.SourceURL, req.Sections)

	slog.Info("document session opened",
		slog.String("document", id),
		slog.Int("sections", len(req.Sections)),
	)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"documentId": id})
}

// GetDocument returns the live state of an open session: every section
// with its editing state, plus the saving indicator.
func (h *Handler) GetDocument(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}

	sections := session.Model().Sections()
	out := make([]fiber.Map, 0, len(sections))
	for _, s := range sections {
		out = append(out, fiber.Map{
			"id":      s.ID,
			"title":   s.Title,
			"type":    string(s.EffectiveKind()),
			"html":    s.HTML,
			"order":   s.Order,
			"visible": s.Visible,
			"state":   session.SectionState(s.ID),
		})
	}
	return c.JSON(fiber.Map{
		"documentId": session.Model().ID(),
		"sections":   out,
		"isSaving":   session.IsSaving(),
	})
}

// CloseDocument tears the session down, cancelling pending autosaves.
func (h *Handler) CloseDocument(c *fiber.Ctx) error {
	h.sessions.Close(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

type contentReq struct {
	HTML string `json:"html"`
}

func (h *Handler) UpdateContent(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	var req contentReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	session.UpdateSectionContent(c.Params("sid"), req.HTML)
	return c.SendStatus(fiber.StatusNoContent)
}

type visibilityReq struct {
	Visible bool `json:"visible"`
}

func (h *Handler) SetVisibility(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	var req visibilityReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	session.SetSectionVisible(c.Params("sid"), req.Visible)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) RemoveSection(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	session.RemoveSection(c.Params("sid"))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) Activate(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	session.Activate(c.Params("sid"))
	return c.JSON(fiber.Map{"active": session.ActiveSection()})
}

type deactivateReq struct {
	HTML string `json:"html,omitempty"`
}

func (h *Handler) Deactivate(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	var req deactivateReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
	}
	session.Deactivate(c.Params("sid"), req.HTML)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) GetSkills(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	skills := session.Skills(c.Params("sid"))
	if skills == nil {
		skills = []string{}
	}
	return c.JSON(fiber.Map{"skills": skills})
}

type skillsReq struct {
	Skills []string `json:"skills"`
}

func (h *Handler) SetSkills(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	var req skillsReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	session.SetSkills(c.Params("sid"), req.Skills)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) GetLanguages(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	languages := session.Languages(c.Params("sid"))
	if languages == nil {
		languages = []domain.LanguageItem{}
	}
	return c.JSON(fiber.Map{"languages": languages})
}

type languagesReq struct {
	Languages []domain.LanguageItem `json:"languages"`
}

func (h *Handler) SetLanguages(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	var req languagesReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	session.SetLanguages(c.Params("sid"), req.Languages)
	return c.SendStatus(fiber.StatusNoContent)
}

type rewriteReq struct {
	Intent string `json:"intent"`
}

// ProposeRewrite asks the AI collaborator for a replacement fragment.
// Failures surface as retryable errors; nothing is applied until the
// proposal is accepted.
func (h *Handler) ProposeRewrite(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	var req rewriteReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	proposal, err := session.ProposeRewrite(c.Context(), c.Params("sid"), req.Intent)
	if err != nil {
		slog.Warn("rewrite failed",
			slog.String("document", c.Params("id")),
			slog.String("section", c.Params("sid")),
			slog.Any("error", err),
		)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "rewrite failed, retry"})
	}
	return c.JSON(fiber.Map{"proposal": proposal})
}

func (h *Handler) AcceptRewrite(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	if !session.AcceptRewrite(c.Params("sid")) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no pending proposal"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) DiscardRewrite(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	session.DiscardRewrite(c.Params("sid"))
	return c.SendStatus(fiber.StatusNoContent)
}

// Export returns the ordered, visibility-filtered projection handed to
// downstream renderers.
func (h *Handler) Export(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}
	return c.JSON(fiber.Map{"sections": session.Export()})
}

// Render produces a PDF of the current export view.
func (h *Handler) Render(c *fiber.Ctx) error {
	session, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return sessionNotFound(c)
	}

	title := c.Query("title", "Competence File")
	pdf, err := h.render.RenderPDF(c.Context(), title, session.Model().SourceURL(), session.Export())
	if err != nil {
		slog.Warn("render failed",
			slog.String("document", c.Params("id")),
			slog.Any("error", err),
		)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "render failed, retry"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}

// GetDraft serves the last persisted autosave snapshot.
func (h *Handler) GetDraft(c *fiber.Ctx) error {
	if h.repo == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "store unavailable"})
	}
	sections, status, err := h.repo.Fetch(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "draft not found"})
	}
	return c.JSON(fiber.Map{"status": status, "sections": sections})
}

func sessionNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "document session not found"})
}
