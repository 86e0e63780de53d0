package usecase

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultAutosaveDebounce is the quiet window before a changed document
// is persisted.
const DefaultAutosaveDebounce = 800 * time.Millisecond

// autosaveStatus marks every autosaved snapshot as a draft.
const autosaveStatus = "draft"

// Autosaver observes document mutations, coalesces them with a
// trailing-edge debounce, and persists the export view. Persistence
// failures are swallowed: the caller only ever observes IsSaving()
// going back to false, never a hard error. No retry or backoff here;
// the next document change schedules the next attempt.
type Autosaver struct {
	model    *Model
	store    Store
	debounce time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	closed bool

	saving atomic.Bool
	ctx    context.Context
	cancel context.CancelFunc
}

// NewAutosaver wires an autosaver to a model's change notifications.
// debounce <= 0 selects the default window.
func NewAutosaver(model *Model, store Store, debounce time.Duration) *Autosaver {
	if debounce <= 0 {
		debounce = DefaultAutosaveDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &Autosaver{
		model:    model,
		store:    store,
		debounce: debounce,
		ctx:      ctx,
		cancel:   cancel,
	}
	model.OnChange(a.DocumentChanged)
	return a
}

// DocumentChanged (re)arms the debounce timer. Only the last change in
// a quiet window triggers a save; earlier intermediate states within
// the window are superseded, not queued.
func (a *Autosaver) DocumentChanged() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.debounce, a.flush)
}

// IsSaving reports whether a save is currently in flight.
func (a *Autosaver) IsSaving() bool {
	return a.saving.Load()
}

// Close cancels any pending debounce timer and aborts an in-flight
// save, so no stale write lands after the session is gone.
func (a *Autosaver) Close() {
	a.mu.Lock()
	a.closed = true
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
	a.cancel()
}

func (a *Autosaver) flush() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()

	if a.store == nil {
		return
	}

	a.saving.Store(true)
	defer a.saving.Store(false)

	id := a.model.ID()
	sections := a.model.ExportVisibleOrdered()
	if err := a.store.Save(a.ctx, id, sections, autosaveStatus); err != nil {
		slog.Warn("autosave failed",
			slog.String("document", id),
			slog.Any("error", err),
		)
	}
}
