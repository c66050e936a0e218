// Package editor holds the per-session editing state: the Document Store that
// owns the current snapshot, and the session-only shell settings.
package editor

import (
	"sync"
	"time"

	"github.com/jonathan/folio-builder/internal/history"
	"github.com/jonathan/folio-builder/internal/types"
)

// Op is one Mutation Layer operation bound to its arguments.
type Op func(doc *types.Document) (*types.Document, error)

// Reason says why the snapshot changed.
type Reason string

const (
	ReasonApply   Reason = "apply"
	ReasonUndo    Reason = "undo"
	ReasonRedo    Reason = "redo"
	ReasonReplace Reason = "replace"
)

// Change is delivered to subscribers after the snapshot changes.
type Change struct {
	Reason Reason
	Prev   *types.Document
	Doc    *types.Document
}

// Store owns the current document snapshot of one editing session. Operations
// run one at a time; subscribers are notified outside the lock and should read
// Snapshot rather than rely on delivery order.
type Store struct {
	mu      sync.Mutex
	doc     *types.Document
	history *history.History
	subs    map[int]func(Change)
	nextSub int
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithHistory enables undo/redo keeping at most depth steps.
func WithHistory(depth int) Option {
	return func(s *Store) {
		s.history = history.New(depth)
	}
}

// WithClock sets the clock used to stamp replacements.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore returns a store holding doc.
func NewStore(doc *types.Document, opts ...Option) *Store {
	s := &Store{doc: doc, subs: make(map[int]func(Change)), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current document. The value must not be modified.
func (s *Store) Snapshot() *types.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Apply runs op against the current snapshot. If op returns a different
// document it becomes current, the previous one is recorded for undo and
// subscribers are notified. The returned error is op's own.
func (s *Store) Apply(op Op) (*types.Document, error) {
	prev, next, subs, err := s.apply(op)
	if next != prev {
		notify(subs, Change{Reason: ReasonApply, Prev: prev, Doc: next})
	}
	return next, err
}

// apply runs op under the lock. A panicking op leaves the store unlocked and
// unchanged.
func (s *Store) apply(op Op) (prev, next *types.Document, subs []func(Change), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev = s.doc
	next, err = op(prev)
	if next == nil || next == prev {
		return prev, prev, nil, err
	}
	s.doc = next
	if s.history != nil {
		s.history.Record(prev)
	}
	return prev, next, s.subscribers(), err
}

// Undo restores the previous snapshot. It reports false when there is no
// history or nothing to undo.
func (s *Store) Undo() (*types.Document, bool) {
	return s.travel(ReasonUndo)
}

// Redo re-applies the last undone snapshot.
func (s *Store) Redo() (*types.Document, bool) {
	return s.travel(ReasonRedo)
}

func (s *Store) travel(reason Reason) (*types.Document, bool) {
	s.mu.Lock()
	if s.history == nil {
		defer s.mu.Unlock()
		return s.doc, false
	}
	prev := s.doc
	var (
		target *types.Document
		ok     bool
	)
	if reason == ReasonUndo {
		target, ok = s.history.Undo(prev)
	} else {
		target, ok = s.history.Redo(prev)
	}
	if !ok {
		s.mu.Unlock()
		return prev, false
	}
	s.doc = withIdentity(target, prev)
	next := s.doc
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, Change{Reason: reason, Prev: prev, Doc: next})
	return next, true
}

// CanUndo reports whether Undo would succeed.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history != nil && s.history.CanUndo()
}

// CanRedo reports whether Redo would succeed.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history != nil && s.history.CanRedo()
}

// HasHistory reports whether undo/redo is enabled.
func (s *Store) HasHistory() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history != nil
}

// Replace swaps in a wholly new document, as an import does. The store keeps
// its persisted identity so the next save updates the same row. The
// replacement is undoable and is stamped with the current time, never earlier
// than the document it replaces.
func (s *Store) Replace(doc *types.Document) *types.Document {
	s.mu.Lock()
	prev := s.doc
	next := withIdentity(doc, prev)
	stamp := s.now().UTC()
	if stamp.Before(prev.UpdatedAt) {
		stamp = prev.UpdatedAt
	}
	if !next.UpdatedAt.Equal(stamp) {
		if next == doc {
			next = doc.Clone()
		}
		next.UpdatedAt = stamp
	}
	s.doc = next
	if s.history != nil {
		s.history.Record(prev)
	}
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, Change{Reason: ReasonReplace, Prev: prev, Doc: next})
	return next
}

// AdoptIdentity writes back the identity assigned by the row store after a
// save. It is not a content change: no history entry, no notification.
func (s *Store) AdoptIdentity(id string, version int64, createdAt, updatedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.doc.Clone()
	next.ID = id
	next.Version = version
	next.CreatedAt = createdAt
	if updatedAt.After(next.UpdatedAt) {
		next.UpdatedAt = updatedAt
	}
	s.doc = next
}

// Subscribe registers fn for every change and returns a function that removes it.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// subscribers returns a copy of the subscriber list. Callers hold mu.
func (s *Store) subscribers() []func(Change) {
	out := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(Change), c Change) {
	for _, fn := range subs {
		fn(c)
	}
}

// withIdentity returns doc carrying cur's persisted identity. Snapshots taken
// before the first save have no id; restoring one must not detach the
// session from its row.
func withIdentity(doc, cur *types.Document) *types.Document {
	if doc.ID == cur.ID && doc.Version == cur.Version && doc.Kind == cur.Kind && doc.CreatedAt.Equal(cur.CreatedAt) {
		return doc
	}
	next := doc.Clone()
	next.ID = cur.ID
	next.Kind = cur.Kind
	next.Version = cur.Version
	next.CreatedAt = cur.CreatedAt
	return next
}
