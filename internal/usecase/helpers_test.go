package usecase

import (
	"context"
	"sync"
)

// passSanitizer keeps tests focused on the transformation under test;
// the real policy lives in pkg/sanitize with its own tests.
type passSanitizer struct{}

func (passSanitizer) Sanitize(html string) string { return html }

// memStore records every save for assertions.
type memStore struct {
	mu    sync.Mutex
	saves []savedSnapshot
	err   error
}

type savedSnapshot struct {
	documentID string
	sections   []ExportSection
	status     string
}

func (s *memStore) Save(_ context.Context, documentID string, sections []ExportSection, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append(s.saves, savedSnapshot{documentID: documentID, sections: sections, status: status})
	return s.err
}

func (s *memStore) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saves)
}

func (s *memStore) last() (savedSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.saves) == 0 {
		return savedSnapshot{}, false
	}
	return s.saves[len(s.saves)-1], true
}

// stubRewriter returns a fixed fragment or error.
type stubRewriter struct {
	html string
	err  error
}

func (r *stubRewriter) Rewrite(_ context.Context, _, _, _, _ string) (string, error) {
	return r.html, r.err
}

func newTestNormalizer() *Normalizer {
	return NewNormalizer(passSanitizer{})
}
