// Package store owns the canonical transaction collection on the client
// side. It mediates every mutation through the remote gateway, tracks the
// shared edit selection, and notifies listeners after each committed change
// so dependent views re-derive from consistent state.
package store

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"gagyebu/internal/core"
	"gagyebu/internal/log"
	"gagyebu/internal/selection"
)

// Gateway is the outbound port the store drives. Satisfied by
// gateway.Client.
type Gateway interface {
	List(ctx context.Context) ([]core.Transaction, error)
	Create(ctx context.Context, d core.Draft) (core.Transaction, error)
	Update(ctx context.Context, id string, d core.Draft) (core.Transaction, error)
	Delete(ctx context.Context, id string) error
}

// View modes of the shell. Switching the top-level view clears the edit
// selection.
const (
	ViewList     ViewMode = "list"
	ViewCalendar ViewMode = "calendar"
)

type ViewMode string

// Config tunes store behavior. DeleteDelay is the pause between a confirmed
// delete and the gateway call; the original UI uses it to let a removal
// animation play. Zero means the 1s default.
type Config struct {
	DeleteDelay time.Duration
}

const defaultDeleteDelay = time.Second

type Store struct {
	gw  Gateway
	sel *selection.Coordinator
	cfg Config
	log *slog.Logger

	mu            sync.Mutex
	records       []core.Transaction
	loading       bool
	lastErr       string
	version       uint64
	viewMode      ViewMode
	pendingDelete string
	options       optionSets
	draft         core.Draft
	listeners     []func(Event)

	// Latest issued refresh token; a completion carrying any other token
	// is stale and discarded, so the last refresh issued wins regardless
	// of completion order.
	refreshSeq atomic.Uint64
}

func New(gw Gateway, cfg Config) *Store {
	if cfg.DeleteDelay == 0 {
		cfg.DeleteDelay = defaultDeleteDelay
	}
	return &Store{
		gw:       gw,
		sel:      selection.New(),
		cfg:      cfg,
		log:      slog.Default().With(log.FieldComponent, log.ComponentStore),
		viewMode: ViewList,
		options:  defaultOptionSets(),
	}
}

// Subscribe registers a listener invoked after every committed state
// change. Listeners run outside the store lock, in registration order.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), len(s.listeners))
	copy(fns, s.listeners)
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// Records returns a copy of the current collection.
func (s *Store) Records() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last recorded failure message, or "" when the previous
// operation succeeded.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Version identifies the current collection state; it increases on every
// committed collection change and keys derived-view memoization.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Refresh replaces the collection with the backend's. Failures never
// propagate to the caller; they are recorded in store state for the shell
// to render. Overlapping refreshes are sequenced: only the response of the
// last issued call is applied.
func (s *Store) Refresh(ctx context.Context) {
	seq := s.refreshSeq.Add(1)

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	records, err := s.gw.List(ctx)

	s.mu.Lock()
	if seq != s.refreshSeq.Load() {
		// A newer refresh was issued while this one was in flight.
		s.mu.Unlock()
		s.log.Debug("discarding stale refresh response", log.FieldToken, seq)
		return
	}
	s.loading = false
	if err != nil {
		s.lastErr = err.Error()
		s.mu.Unlock()
		s.log.Error("refresh failed", log.FieldError, err)
		s.notify(Event{Kind: EventError})
		return
	}
	s.records = records
	s.lastErr = ""
	s.version++
	s.mu.Unlock()

	s.notify(Event{Kind: EventRefreshed})
}

// Submit validates the draft and then creates a new record (editingID "")
// or replaces the record with that id. Validation failures return before
// any network call. On a successful update the edit selection is cleared.
func (s *Store) Submit(ctx context.Context, draft core.Draft, editingID string) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	if editingID == "" {
		rec, err := s.gw.Create(ctx, draft)
		if err != nil {
			s.recordErr(err)
			return err
		}
		s.mu.Lock()
		s.records = append(s.records, rec)
		s.lastErr = ""
		s.version++
		s.mu.Unlock()
		s.log.Info("transaction created", log.FieldID, rec.ID, log.FieldType, rec.Type, log.FieldAmount, rec.Amount)
		s.notify(Event{Kind: EventCreated, ID: rec.ID})
		return nil
	}

	rec, err := s.gw.Update(ctx, editingID, draft)
	if err != nil {
		s.recordErr(err)
		return err
	}
	s.mu.Lock()
	for i := range s.records {
		if s.records[i].ID == editingID {
			s.records[i] = rec
			break
		}
	}
	s.lastErr = ""
	s.version++
	cleared := s.sel.Clear()
	s.mu.Unlock()
	s.log.Info("transaction updated", log.FieldID, rec.ID)
	s.notify(Event{Kind: EventUpdated, ID: rec.ID})
	if cleared {
		s.notify(Event{Kind: EventSelection})
	}
	return nil
}

// RequestDelete records delete intent for the confirmation prompt. State
// is otherwise untouched.
func (s *Store) RequestDelete(id string) {
	s.mu.Lock()
	s.pendingDelete = id
	s.mu.Unlock()
}

// PendingDelete returns the id awaiting confirmation, if any.
func (s *Store) PendingDelete() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingDelete, s.pendingDelete != ""
}

// CancelDelete drops a recorded delete intent.
func (s *Store) CancelDelete() {
	s.mu.Lock()
	s.pendingDelete = ""
	s.mu.Unlock()
}

// ConfirmDelete waits the configured delay, then deletes through the
// gateway. The record leaves the collection only after both the delay has
// elapsed and the gateway call succeeded; on failure it stays and the
// error is recorded. The wait is cancellable through ctx and holds no
// lock, so other operations proceed while a delete is pending.
func (s *Store) ConfirmDelete(ctx context.Context, id string) error {
	timer := time.NewTimer(s.cfg.DeleteDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	if err := s.gw.Delete(ctx, id); err != nil {
		s.recordErr(err)
		return err
	}

	s.mu.Lock()
	kept := s.records[:0]
	for _, r := range s.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.records = kept
	if s.pendingDelete == id {
		s.pendingDelete = ""
	}
	s.lastErr = ""
	s.version++
	s.mu.Unlock()
	s.log.Info("transaction deleted", log.FieldID, id)
	s.notify(Event{Kind: EventDeleted, ID: id})
	return nil
}

// SelectForEdit makes id the edit target. Idempotent for the current
// target.
func (s *Store) SelectForEdit(id string) {
	if s.sel.Select(id) {
		s.notify(Event{Kind: EventSelection, ID: id})
	}
}

// ClearSelection returns to create mode.
func (s *Store) ClearSelection() {
	if s.sel.Clear() {
		s.notify(Event{Kind: EventSelection})
	}
}

// Selection returns the current edit target, if any.
func (s *Store) Selection() (string, bool) {
	return s.sel.Editing()
}

// SetRegion and PointerDown expose the outside-click rule to the shell:
// regions are the interactive areas that keep a selection alive, and a
// pointer press inside none of them clears it.
func (s *Store) SetRegion(name string, bounds image.Rectangle) {
	s.sel.SetRegion(name, bounds)
}

func (s *Store) RemoveRegion(name string) {
	s.sel.RemoveRegion(name)
}

func (s *Store) PointerDown(p image.Point) {
	if s.sel.PointerDown(p) {
		s.notify(Event{Kind: EventSelection})
	}
}

// SetViewMode switches the top-level view; any active edit selection is
// cleared on the way.
func (s *Store) SetViewMode(m ViewMode) {
	s.mu.Lock()
	changed := s.viewMode != m
	s.viewMode = m
	s.mu.Unlock()
	if changed && s.sel.Clear() {
		s.notify(Event{Kind: EventSelection})
	}
}

func (s *Store) ViewMode() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewMode
}

func (s *Store) recordErr(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	s.notify(Event{Kind: EventError})
}
