package usecase

import (
	"sync"
	"time"
)

// Registry hands out at most one writable session per document id. The
// document is owned exclusively by its session; opening a document that
// is already open tears down the previous session first, aborting its
// pending autosave work.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	normalizer *Normalizer
	sanitizer  Sanitizer
	store      Store
	rewriter   Rewriter
	debounce   time.Duration
}

func NewRegistry(normalizer *Normalizer, sanitizer Sanitizer, store Store, rewriter Rewriter, debounce time.Duration) *Registry {
	return &Registry{
		sessions:   map[string]*Session{},
		normalizer: normalizer,
		sanitizer:  sanitizer,
		store:      store,
		rewriter:   rewriter,
		debounce:   debounce,
	}
}

// Open creates the session for a document, replacing and closing any
// existing one.
func (r *Registry) Open(documentID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.sessions[documentID]; ok {
		prev.Close()
	}
	s := NewSession(documentID, r.normalizer, r.sanitizer, r.store, r.rewriter, r.debounce)
	r.sessions[documentID] = s
	return s
}

// Get returns the open session for a document, if any.
func (r *Registry) Get(documentID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[documentID]
	return s, ok
}

// Close tears down and forgets the session for a document.
func (r *Registry) Close(documentID string) {
	r.mu.Lock()
	s, ok := r.sessions[documentID]
	delete(r.sessions, documentID)
	r.mu.Unlock()
	if ok {
		s.Close()
	}
}
