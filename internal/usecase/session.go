package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"competence-editor/internal/domain"
	"competence-editor/internal/model"
)

// SectionState is the per-section editing state.
type SectionState string

const (
	// StateInactive renders the section read-only.
	StateInactive SectionState = "inactive"
	// StateActive mounts an edit surface for the section.
	StateActive SectionState = "active"
)

// Session owns one document for the duration of an editing session and
// enforces the UI-level invariants the per-section state machine cannot:
// at most one section is active at a time, structured sections route
// mutations through the codecs, and proposed AI rewrites are applied
// only on explicit accept.
type Session struct {
	mu        sync.Mutex
	model     *Model
	autosave  *Autosaver
	sanitizer Sanitizer
	rewriter  Rewriter

	active    string
	proposals map[string]string
	closed    bool
}

// NewSession creates a session owning a fresh document model wired to
// the given collaborators. store and rewriter may be nil; autosave and
// rewrites then degrade to no-ops.
func NewSession(documentID string, normalizer *Normalizer, sanitizer Sanitizer, store Store, rewriter Rewriter, debounce time.Duration) *Session {
	m := NewModel(documentID, normalizer)
	return &Session{
		model:     m,
		autosave:  NewAutosaver(m, store, debounce),
		sanitizer: sanitizer,
		rewriter:  rewriter,
		proposals: map[string]string{},
	}
}

// Model exposes read access to the underlying document model.
func (s *Session) Model() *Model {
	return s.model
}

// Load (re)initializes the document from externally supplied sections.
func (s *Session) Load(sourceURL string, inputs []model.SectionInput) {
	s.model.Load(sourceURL, inputs)
}

// Activate flips a section to the editing state. Activating a new
// section implicitly deactivates the previously active one; its latest
// content has already flowed in through content updates, so nothing is
// lost. Unknown id: no-op.
func (s *Session) Activate(id string) {
	if _, ok := s.model.Section(id); !ok {
		return
	}
	s.mu.Lock()
	s.active = id
	s.mu.Unlock()
}

// Deactivate flips a section back to the rendered read-only state,
// pushing the edit surface's final HTML into canonical storage so the
// read view reflects the latest edits. Pass editedHTML == "" to keep
// the current content.
func (s *Session) Deactivate(id, editedHTML string) {
	s.mu.Lock()
	if s.active == id {
		s.active = ""
	}
	s.mu.Unlock()

	if editedHTML != "" {
		s.model.UpdateSectionContent(id, s.sanitizer.Sanitize(editedHTML))
	}
}

// SectionState reports the editing state of a section.
func (s *Session) SectionState(id string) SectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == id {
		return StateActive
	}
	return StateInactive
}

// ActiveSection returns the id of the active section, "" if none.
func (s *Session) ActiveSection() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// UpdateSectionContent sanitizes rich-text surface output and writes it
// into canonical storage. Unknown id: no-op.
func (s *Session) UpdateSectionContent(id, html string) {
	s.model.UpdateSectionContent(id, s.sanitizer.Sanitize(html))
}

// SetSectionVisible toggles export visibility. Unknown id: no-op.
func (s *Session) SetSectionVisible(id string, visible bool) {
	s.model.SetSectionVisible(id, visible)
}

// RemoveSection deletes a section for good, clearing any activation or
// pending rewrite proposal tied to it. Unknown id: no-op.
func (s *Session) RemoveSection(id string) {
	s.mu.Lock()
	if s.active == id {
		s.active = ""
	}
	delete(s.proposals, id)
	s.mu.Unlock()

	s.model.RemoveSection(id)
}

// Skills decodes the current skill tags of a technical-skills section.
// Zero items is not an error; the caller falls back to raw HTML.
func (s *Session) Skills(id string) []string {
	sec, ok := s.model.Section(id)
	if !ok {
		return nil
	}
	return DecodeSkills(sec.HTML)
}

// SetSkills regenerates a technical-skills section's canonical HTML
// from the tag list. Sections of any other kind are left untouched.
func (s *Session) SetSkills(id string, skills []string) {
	sec, ok := s.model.Section(id)
	if !ok || sec.EffectiveKind() != domain.KindTechnicalSkills {
		return
	}
	s.model.UpdateSectionContent(id, EncodeSkills(skills))
}

// Languages decodes the current language list of a languages section.
func (s *Session) Languages(id string) []domain.LanguageItem {
	sec, ok := s.model.Section(id)
	if !ok {
		return nil
	}
	return DecodeLanguages(sec.HTML)
}

// SetLanguages regenerates a languages section's canonical HTML from
// the structured list. Sections of any other kind are left untouched.
func (s *Session) SetLanguages(id string, items []domain.LanguageItem) {
	sec, ok := s.model.Section(id)
	if !ok || sec.EffectiveKind() != domain.KindLanguages {
		return
	}
	s.model.UpdateSectionContent(id, EncodeLanguages(items))
}

// ProposeRewrite asks the rewrite collaborator for a replacement
// fragment and parks the sanitized result as a proposal. The canonical
// content is untouched until AcceptRewrite.
func (s *Session) ProposeRewrite(ctx context.Context, id, intent string) (string, error) {
	if s.rewriter == nil {
		return "", fmt.Errorf("rewrite service not configured")
	}
	sec, ok := s.model.Section(id)
	if !ok {
		return "", fmt.Errorf("section %s not found", id)
	}

	html, err := s.rewriter.Rewrite(ctx, intent, sec.HTML, id, string(sec.EffectiveKind()))
	if err != nil {
		return "", fmt.Errorf("rewrite %s: %w", id, err)
	}
	proposal := s.sanitizer.Sanitize(html)

	s.mu.Lock()
	s.proposals[id] = proposal
	s.mu.Unlock()
	return proposal, nil
}

// Proposal returns the pending rewrite proposal for a section, if any.
func (s *Session) Proposal(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.proposals[id]
	return p, ok
}

// AcceptRewrite applies the pending proposal to canonical storage.
func (s *Session) AcceptRewrite(id string) bool {
	s.mu.Lock()
	proposal, ok := s.proposals[id]
	delete(s.proposals, id)
	s.mu.Unlock()

	if !ok {
		return false
	}
	s.model.UpdateSectionContent(id, proposal)
	return true
}

// DiscardRewrite drops the pending proposal without applying it.
func (s *Session) DiscardRewrite(id string) {
	s.mu.Lock()
	delete(s.proposals, id)
	s.mu.Unlock()
}

// Export returns the ordered, visibility-filtered projection of the
// document for rendering or persistence.
func (s *Session) Export() []ExportSection {
	return s.model.ExportVisibleOrdered()
}

// IsSaving reports whether an autosave is in flight.
func (s *Session) IsSaving() bool {
	return s.autosave.IsSaving()
}

// Close tears the session down: pending debounce timers are cancelled
// and any in-flight autosave is aborted.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	s.autosave.Close()
}
