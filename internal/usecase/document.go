package usecase

import (
	"sort"
	"sync"
	"time"

	"competence-editor/internal/domain"
	"competence-editor/internal/model"
)

// Model is the in-memory document under edit. It is owned by exactly
// one editing session; no two sessions may hold a writable reference to
// the same document. Mutation methods addressing an unknown section id
// are deliberate silent no-ops: UI callbacks may race with deletion,
// and the model favors resilience over strictness there.
type Model struct {
	mu         sync.RWMutex
	doc        domain.Document
	normalizer *Normalizer
	listeners  []func()
}

func NewModel(documentID string, normalizer *Normalizer) *Model {
	return &Model{
		doc:        domain.Document{ID: documentID},
		normalizer: normalizer,
	}
}

// ID returns the document id.
func (m *Model) ID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doc.ID
}

// SourceURL returns the upstream origin of the document, if any.
func (m *Model) SourceURL() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doc.SourceURL
}

// OnChange registers a listener invoked after every document mutation.
// Listeners run outside the model lock.
func (m *Model) OnChange(fn func()) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// Load replaces the document contents with the normalized form of the
// supplied sections. Repeating a Load with the same input yields the
// same state; nothing accumulates. Visibility defaults to true when the
// input omits it.
func (m *Model) Load(sourceURL string, inputs []model.SectionInput) {
	sections := make([]domain.Section, 0, len(inputs))
	for _, in := range inputs {
		visible := true
		if in.Visible != nil {
			visible = *in.Visible
		}
		sections = append(sections, domain.Section{
			ID:      in.ID,
			Kind:    in.Kind,
			Title:   in.Title,
			HTML:    m.normalizer.Normalize(in.Content, in.Title),
			Order:   in.Order,
			Visible: visible,
		})
	}

	m.mu.Lock()
	m.doc.SourceURL = sourceURL
	m.doc.Sections = sections
	m.doc.UpdatedAt = time.Now()
	fns := append([]func(){}, m.listeners...)
	m.mu.Unlock()
	notify(fns)
}

// UpdateSectionContent replaces a section's canonical HTML verbatim.
// Callers are responsible for sanitizing rich-text input or encoding
// structured input first. Unknown id: no-op.
func (m *Model) UpdateSectionContent(id, html string) {
	m.mutateSection(id, func(s *domain.Section) {
		s.HTML = html
	})
}

// SetSectionVisible toggles a section in or out of the export view
// without touching its content. Unknown id: no-op.
func (m *Model) SetSectionVisible(id string, visible bool) {
	m.mutateSection(id, func(s *domain.Section) {
		s.Visible = visible
	})
}

// RemoveSection permanently deletes a section for the rest of the
// session. Distinct from hiding, and irreversible. Unknown id: no-op.
func (m *Model) RemoveSection(id string) {
	m.mu.Lock()
	idx := m.indexOf(id)
	if idx < 0 {
		m.mu.Unlock()
		return
	}
	m.doc.Sections = append(m.doc.Sections[:idx], m.doc.Sections[idx+1:]...)
	m.doc.UpdatedAt = time.Now()
	fns := append([]func(){}, m.listeners...)
	m.mu.Unlock()
	notify(fns)
}

// Section returns a copy of the section with the given id.
func (m *Model) Section(id string) (domain.Section, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if idx := m.indexOf(id); idx >= 0 {
		return m.doc.Sections[idx], true
	}
	return domain.Section{}, false
}

// Sections returns a copy of all sections in insertion order.
func (m *Model) Sections() []domain.Section {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Section, len(m.doc.Sections))
	copy(out, m.doc.Sections)
	return out
}

// ExportVisibleOrdered projects the document to the renderer shape:
// hidden sections dropped, ascending by Order with ties keeping
// insertion order. Pure read, never mutates the document.
func (m *Model) ExportVisibleOrdered() []ExportSection {
	m.mu.RLock()
	visible := make([]domain.Section, 0, len(m.doc.Sections))
	for _, s := range m.doc.Sections {
		if s.Visible {
			visible = append(visible, s)
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Order < visible[j].Order
	})

	out := make([]ExportSection, 0, len(visible))
	for _, s := range visible {
		out = append(out, ExportSection{
			ID:       s.ID,
			Title:    s.Title,
			Type:     string(s.EffectiveKind()),
			Content:  s.HTML,
			Order:    s.Order,
			Editable: true,
			Visible:  true,
		})
	}
	return out
}

func (m *Model) mutateSection(id string, fn func(*domain.Section)) {
	m.mu.Lock()
	idx := m.indexOf(id)
	if idx < 0 {
		m.mu.Unlock()
		return
	}
	fn(&m.doc.Sections[idx])
	m.doc.UpdatedAt = time.Now()
	fns := append([]func(){}, m.listeners...)
	m.mu.Unlock()
	notify(fns)
}

// indexOf requires the caller to hold at least the read lock.
func (m *Model) indexOf(id string) int {
	for i := range m.doc.Sections {
		if m.doc.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

func notify(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
