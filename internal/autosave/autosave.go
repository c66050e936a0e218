// Package autosave persists an editor store after a quiet period.
package autosave

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/folio-builder/internal/editor"
	"github.com/jonathan/folio-builder/internal/types"
	"golang.org/x/sync/semaphore"
)

// Defaults used when no option overrides them.
const (
	DefaultDelay      = 2 * time.Second
	DefaultResetAfter = 2 * time.Second
	DefaultTimeout    = 15 * time.Second
)

// ErrClosed is returned by Flush after Close.
var ErrClosed = errors.New("autosave closed")

// Status is the save indicator shown to the user.
type Status string

const (
	StatusIdle   Status = "idle"
	StatusSaving Status = "saving"
	StatusSaved  Status = "saved"
	StatusError  Status = "error"
)

// DocumentSaver persists a snapshot and returns it with its stored identity.
type DocumentSaver interface {
	Save(ctx context.Context, userID uuid.UUID, doc *types.Document) (*types.Document, error)
}

// Notice is a user-facing save event.
type Notice struct {
	Status  Status
	Message string
	Err     error
}

// Notifier receives save notices. Implementations must not block.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Option configures a Saver.
type Option func(*Saver)

// WithDelay sets the debounce window.
func WithDelay(d time.Duration) Option {
	return func(s *Saver) { s.delay = d }
}

// WithResetAfter sets how long saved/error stay visible before idle.
func WithResetAfter(d time.Duration) Option {
	return func(s *Saver) { s.resetAfter = d }
}

// WithTimeout bounds each scheduled save.
func WithTimeout(d time.Duration) Option {
	return func(s *Saver) { s.timeout = d }
}

// WithNotifier sets the receiver of save notices.
func WithNotifier(n Notifier) Option {
	return func(s *Saver) { s.notifier = n }
}

// Saver watches a store and saves its newest snapshot once edits pause.
// At most one save is in flight at a time.
type Saver struct {
	store    *editor.Store
	docs     DocumentSaver
	userID   uuid.UUID
	notifier Notifier

	delay      time.Duration
	resetAfter time.Duration
	timeout    time.Duration

	inflight *semaphore.Weighted

	mu          sync.Mutex
	timer       *time.Timer
	resetTimer  *time.Timer
	status      Status
	lastErr     error
	lastSavedAt time.Time
	dirty       bool
	closed      bool
	generation  int
	unsubscribe func()
}

// New starts watching store. Saves run as userID; with uuid.Nil nothing is
// scheduled and Flush reports the adapter's auth error.
func New(store *editor.Store, docs DocumentSaver, userID uuid.UUID, opts ...Option) *Saver {
	s := &Saver{
		store:      store,
		docs:       docs,
		userID:     userID,
		delay:      DefaultDelay,
		resetAfter: DefaultResetAfter,
		timeout:    DefaultTimeout,
		inflight:   semaphore.NewWeighted(1),
		status:     StatusIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.unsubscribe = store.Subscribe(s.onChange)
	return s
}

func (s *Saver) onChange(c editor.Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.dirty = true
	if s.userID == uuid.Nil || !c.Doc.HasIdentity() {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

func (s *Saver) fire() {
	s.mu.Lock()
	if s.closed || !s.dirty {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	// errors are already reported through the status and the notifier
	_ = s.save(ctx)
}

// Flush saves the current snapshot now, whether or not it changed.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
	return s.save(ctx)
}

func (s *Saver) save(ctx context.Context) error {
	if err := s.inflight.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("failed to wait for in-flight save: %w", err)
	}
	defer s.inflight.Release(1)

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
	s.setStatus(StatusSaving, nil)

	doc := s.store.Snapshot()
	saved, err := s.docs.Save(ctx, s.userID, doc)
	if err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		log.Printf("[autosave] save of document %q failed: %v", doc.ID, err)
		s.setStatus(StatusError, err)
		s.notify(Notice{Status: StatusError, Message: "Failed to save changes", Err: err})
		return err
	}

	s.store.AdoptIdentity(saved.ID, saved.Version, saved.CreatedAt, saved.UpdatedAt)
	s.mu.Lock()
	s.lastSavedAt = saved.UpdatedAt
	s.mu.Unlock()
	s.setStatus(StatusSaved, nil)
	s.notify(Notice{Status: StatusSaved, Message: "All changes saved"})
	return nil
}

// setStatus records st and, for saved and error, schedules the return to idle.
func (s *Saver) setStatus(st Status, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = st
	s.lastErr = err
	s.generation++
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
	if st != StatusSaved && st != StatusError {
		return
	}
	gen := s.generation
	s.resetTimer = time.AfterFunc(s.resetAfter, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.generation == gen {
			s.status = StatusIdle
		}
	})
}

func (s *Saver) notify(n Notice) {
	if s.notifier != nil {
		s.notifier.Notify(n)
	}
}

// Status returns the indicator state and the error of the last failed save,
// which stays available after the indicator returns to idle.
func (s *Saver) Status() (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.lastErr
}

// LastSavedAt returns the stored updatedAt of the last successful save.
func (s *Saver) LastSavedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSavedAt
}

// Dirty reports whether there are changes not yet saved.
func (s *Saver) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Close stops scheduling saves. A save already running completes.
func (s *Saver) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.resetTimer != nil {
		s.resetTimer.Stop()
	}
	s.unsubscribe()
}
