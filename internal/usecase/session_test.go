package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"competence-editor/internal/domain"
)

func newTestSession(store Store, rewriter Rewriter) *Session {
	s := NewSession("doc-1", newTestNormalizer(), passSanitizer{}, store, rewriter, time.Millisecond)
	s.Load("", threeSections())
	return s
}

func TestSession_SingleActiveSection(t *testing.T) {
	s := newTestSession(nil, nil)
	defer s.Close()

	s.Activate("sum")
	if s.SectionState("sum") != StateActive {
		t.Fatal("sum should be active")
	}

	s.Activate("skills")
	if s.SectionState("skills") != StateActive {
		t.Error("skills should be active")
	}
	if s.SectionState("sum") != StateInactive {
		t.Error("activating skills must deactivate sum")
	}
	if got := s.ActiveSection(); got != "skills" {
		t.Errorf("ActiveSection = %q", got)
	}
}

func TestSession_ActivateUnknownIsNoOp(t *testing.T) {
	s := newTestSession(nil, nil)
	defer s.Close()

	s.Activate("sum")
	s.Activate("ghost")
	if got := s.ActiveSection(); got != "sum" {
		t.Errorf("unknown activation changed active section to %q", got)
	}
}

func TestSession_DeactivatePushesContent(t *testing.T) {
	s := newTestSession(nil, nil)
	defer s.Close()

	s.Activate("sum")
	s.Deactivate("sum", "<p>edited</p>")

	if s.SectionState("sum") != StateInactive {
		t.Error("sum still active after deactivate")
	}
	sec, _ := s.Model().Section("sum")
	if sec.HTML != "<p>edited</p>" {
		t.Errorf("content = %q, want the edited HTML", sec.HTML)
	}
}

func TestSession_DeactivateEmptyKeepsContent(t *testing.T) {
	s := newTestSession(nil, nil)
	defer s.Close()

	before, _ := s.Model().Section("sum")
	s.Activate("sum")
	s.Deactivate("sum", "")

	after, _ := s.Model().Section("sum")
	if after.HTML != before.HTML {
		t.Errorf("empty deactivate changed content: %q -> %q", before.HTML, after.HTML)
	}
}

func TestSession_SetSkillsGatedOnKind(t *testing.T) {
	s := newTestSession(nil, nil)
	defer s.Close()

	s.SetSkills("skills", []string{"Go", "Kubernetes"})
	if got := s.Skills("skills"); !reflect.DeepEqual(got, []string{"Go", "Kubernetes"}) {
		t.Errorf("Skills = %v", got)
	}

	before, _ := s.Model().Section("sum")
	s.SetSkills("sum", []string{"nope"})
	after, _ := s.Model().Section("sum")
	if after.HTML != before.HTML {
		t.Error("SetSkills wrote into a non-skills section")
	}
}

func TestSession_SetLanguagesGatedOnKind(t *testing.T) {
	s := newTestSession(nil, nil)
	defer s.Close()

	items := []domain.LanguageItem{{Name: "English", Level: 5}, {Name: "German", Level: 3}}
	s.SetLanguages("lang", items)
	if got := s.Languages("lang"); !reflect.DeepEqual(got, items) {
		t.Errorf("Languages = %v, want %v", got, items)
	}

	before, _ := s.Model().Section("skills")
	s.SetLanguages("skills", items)
	after, _ := s.Model().Section("skills")
	if after.HTML != before.HTML {
		t.Error("SetLanguages wrote into a non-languages section")
	}
}

func TestSession_RewriteLifecycle(t *testing.T) {
	rw := &stubRewriter{html: "<p>Punchier summary.</p>"}
	s := newTestSession(nil, rw)
	defer s.Close()

	original, _ := s.Model().Section("sum")

	proposal, err := s.ProposeRewrite(context.Background(), "sum", "improve")
	if err != nil {
		t.Fatalf("ProposeRewrite: %v", err)
	}
	if proposal != rw.html {
		t.Errorf("proposal = %q", proposal)
	}

	// Proposing must not touch canonical content.
	sec, _ := s.Model().Section("sum")
	if sec.HTML != original.HTML {
		t.Error("proposal leaked into canonical content")
	}

	if !s.AcceptRewrite("sum") {
		t.Fatal("AcceptRewrite returned false with a pending proposal")
	}
	sec, _ = s.Model().Section("sum")
	if sec.HTML != rw.html {
		t.Errorf("content after accept = %q", sec.HTML)
	}
	if _, ok := s.Proposal("sum"); ok {
		t.Error("proposal still pending after accept")
	}
	if s.AcceptRewrite("sum") {
		t.Error("second accept should report no proposal")
	}
}

func TestSession_DiscardRewrite(t *testing.T) {
	rw := &stubRewriter{html: "<p>unused</p>"}
	s := newTestSession(nil, rw)
	defer s.Close()

	original, _ := s.Model().Section("sum")
	if _, err := s.ProposeRewrite(context.Background(), "sum", "shorten"); err != nil {
		t.Fatalf("ProposeRewrite: %v", err)
	}
	s.DiscardRewrite("sum")

	if _, ok := s.Proposal("sum"); ok {
		t.Error("proposal survived discard")
	}
	sec, _ := s.Model().Section("sum")
	if sec.HTML != original.HTML {
		t.Error("discard changed canonical content")
	}
}

func TestSession_RewriteErrors(t *testing.T) {
	s := newTestSession(nil, &stubRewriter{err: errors.New("service down")})
	defer s.Close()

	if _, err := s.ProposeRewrite(context.Background(), "sum", "improve"); err == nil {
		t.Error("expected error from failing rewriter")
	}
	if _, ok := s.Proposal("sum"); ok {
		t.Error("failed rewrite left a proposal")
	}

	none := newTestSession(nil, nil)
	defer none.Close()
	if _, err := none.ProposeRewrite(context.Background(), "sum", "improve"); err == nil {
		t.Error("expected error with no rewriter configured")
	}
}

func TestSession_RemoveSectionClearsState(t *testing.T) {
	rw := &stubRewriter{html: "<p>x</p>"}
	s := newTestSession(nil, rw)
	defer s.Close()

	s.Activate("sum")
	if _, err := s.ProposeRewrite(context.Background(), "sum", "improve"); err != nil {
		t.Fatalf("ProposeRewrite: %v", err)
	}
	s.RemoveSection("sum")

	if got := s.ActiveSection(); got != "" {
		t.Errorf("active section after remove = %q", got)
	}
	if _, ok := s.Proposal("sum"); ok {
		t.Error("proposal survived section removal")
	}
	if _, ok := s.Model().Section("sum"); ok {
		t.Error("section survived removal")
	}
}

func TestSession_CloseStopsAutosave(t *testing.T) {
	store := &memStore{}
	s := NewSession("doc-1", newTestNormalizer(), passSanitizer{}, store, nil, 30*time.Millisecond)
	s.Load("", threeSections())
	s.Close()
	s.Close() // idempotent
	time.Sleep(120 * time.Millisecond)

	if got := store.count(); got != 0 {
		t.Errorf("saves after close = %d, want 0", got)
	}
}
