package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/folio-builder/internal/autosave"
	"github.com/jonathan/folio-builder/internal/editor"
	"github.com/jonathan/folio-builder/internal/importer"
	"github.com/jonathan/folio-builder/internal/mutation"
	"github.com/jonathan/folio-builder/internal/persistence"
	"github.com/jonathan/folio-builder/internal/types"
	"golang.org/x/sync/errgroup"
)

// OpStatus is the outcome of one command in a batch.
type OpStatus string

const (
	OpApplied   OpStatus = "applied"
	OpNotFound  OpStatus = "not_found"
	OpImmovable OpStatus = "immovable"
	OpInvalid   OpStatus = "invalid"
)

// OpResult reports one command of an ops batch.
type OpResult struct {
	Op        string   `json:"op"`
	Status    OpStatus `json:"status"`
	CreatedID string   `json:"createdId,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// SessionState is what clients see of a session.
type SessionState struct {
	ID          string          `json:"id"`
	Kind        types.Kind      `json:"kind"`
	Document    *types.Document `json:"document"`
	Settings    editor.Settings `json:"settings"`
	SaveStatus  autosave.Status `json:"saveStatus"`
	SaveError   string          `json:"saveError,omitempty"`
	Notice      string          `json:"notice,omitempty"`
	Dirty       bool            `json:"dirty"`
	LastSavedAt *time.Time      `json:"lastSavedAt,omitempty"`
	CanUndo     bool            `json:"canUndo"`
	CanRedo     bool            `json:"canRedo"`
}

// Session is one open editor: a document store with history, its autosaver
// and the shell settings.
type Session struct {
	ID     string
	UserID uuid.UUID
	Kind   types.Kind

	store   *editor.Store
	saver   *autosave.Saver
	mutator *mutation.Mutator

	// ops serialises batches so per-op results describe consecutive snapshots.
	ops sync.Mutex

	mu        sync.Mutex
	settings  editor.Settings
	notice    autosave.Notice
	lastUsed  time.Time
	unsub     func()
	watchers  map[int]chan struct{}
	nextWatch int

	done      chan struct{}
	closeOnce sync.Once
}

// Snapshot returns the current document.
func (s *Session) Snapshot() *types.Document {
	return s.store.Snapshot()
}

// Settings returns the current shell settings.
func (s *Session) Settings() editor.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// State assembles the client view of the session.
func (s *Session) State() SessionState {
	status, saveErr := s.saver.Status()
	st := SessionState{
		ID:         s.ID,
		Kind:       s.Kind,
		Document:   s.store.Snapshot(),
		SaveStatus: status,
		Dirty:      s.saver.Dirty(),
		CanUndo:    s.store.CanUndo(),
		CanRedo:    s.store.CanRedo(),
	}
	if saveErr != nil {
		st.SaveError = saveErr.Error()
	}
	if at := s.saver.LastSavedAt(); !at.IsZero() {
		st.LastSavedAt = &at
	}
	s.mu.Lock()
	st.Settings = s.settings
	st.Notice = s.notice.Message
	s.mu.Unlock()
	return st
}

// Apply runs cmds in order against the store. A failing command is reported
// and skipped; later commands still run.
func (s *Session) Apply(cmds []mutation.Command) []OpResult {
	s.ops.Lock()
	defer s.ops.Unlock()

	results := make([]OpResult, 0, len(cmds))
	for _, c := range cmds {
		var created string
		_, err := s.store.Apply(func(doc *types.Document) (*types.Document, error) {
			res, err := c.Apply(s.mutator, doc)
			created = res.CreatedID
			return res.Doc, err
		})
		results = append(results, opResult(c.Op, created, err))
	}
	return results
}

func opResult(op, created string, err error) OpResult {
	r := OpResult{Op: op, Status: OpApplied, CreatedID: created}
	if err == nil {
		return r
	}
	r.CreatedID = ""
	r.Error = err.Error()
	switch {
	case errors.Is(err, mutation.ErrNotFound):
		r.Status = OpNotFound
	case errors.Is(err, mutation.ErrImmovable):
		r.Status = OpImmovable
	default:
		r.Status = OpInvalid
	}
	return r
}

// Undo steps back one snapshot. It reports false when there is nothing to undo.
func (s *Session) Undo() bool {
	s.ops.Lock()
	defer s.ops.Unlock()
	_, ok := s.store.Undo()
	return ok
}

// Redo steps forward one snapshot.
func (s *Session) Redo() bool {
	s.ops.Lock()
	defer s.ops.Unlock()
	_, ok := s.store.Redo()
	return ok
}

// Import replaces the document with the validated contents of data. The
// session keeps its stored identity, and the replacement can be undone.
func (s *Session) Import(data []byte) (*types.Document, error) {
	doc, err := importer.Import(data, s.Kind)
	if err != nil {
		return nil, err
	}
	s.ops.Lock()
	defer s.ops.Unlock()
	return s.store.Replace(doc), nil
}

// UpdateSettings validates and merges patch into the shell settings.
func (s *Session) UpdateSettings(patch editor.SettingsPatch) (editor.Settings, error) {
	doc := s.store.Snapshot()
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := patch.Apply(s.settings, doc)
	if err != nil {
		return s.settings, err
	}
	s.settings = next
	s.notifyLocked()
	return next, nil
}

// Save writes the current snapshot now.
func (s *Session) Save(ctx context.Context) error {
	return s.saver.Flush(ctx)
}

// flush saves only when there are unsaved edits.
func (s *Session) flush(ctx context.Context) error {
	if !s.saver.Dirty() {
		return nil
	}
	return s.saver.Flush(ctx)
}

func (s *Session) close() {
	s.closeOnce.Do(func() {
		s.saver.Close()
		s.unsub()
		close(s.done)
	})
}

// Done is closed once the session has been closed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Watch returns a channel that receives after the state changes. Signals
// coalesce: a slow reader sees one pending signal, not one per change.
func (s *Session) Watch() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	id := s.nextWatch
	s.nextWatch++
	s.watchers[id] = ch
	s.mu.Unlock()
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.watchers, id)
	}
}

// notifyLocked wakes every watcher. s.mu must be held.
func (s *Session) notifyLocked() {
	for _, ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Session) onChange(c editor.Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = s.settings.Reconcile(c.Doc)
	s.notifyLocked()
}

func (s *Session) onNotice(n autosave.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = n
	s.notifyLocked()
}

// RegistryConfig tunes the sessions a Registry opens.
type RegistryConfig struct {
	AutosaveDelay time.Duration
	HistoryDepth  int
	// IdleTimeout closes sessions untouched for this long. Zero keeps them open.
	IdleTimeout time.Duration
}

// Registry tracks the open sessions of every user.
type Registry struct {
	docs *persistence.Adapter
	cfg  RegistryConfig
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry returns an empty registry saving through docs.
func NewRegistry(docs *persistence.Adapter, cfg RegistryConfig) *Registry {
	if cfg.AutosaveDelay <= 0 {
		cfg.AutosaveDelay = autosave.DefaultDelay
	}
	return &Registry{
		docs:     docs,
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Open starts a session on the requested document. With no document id the
// user's latest document of kind is opened; when there is none a fresh one is
// created and saved so later edits autosave into it.
func (r *Registry) Open(ctx context.Context, userID uuid.UUID, kind types.Kind, documentID string) (*Session, error) {
	doc, err := r.docs.Load(ctx, userID, kind, documentID)
	switch {
	case err == nil:
		if doc.Kind != kind {
			return nil, persistence.ErrDocumentNotFound
		}
	case errors.Is(err, persistence.ErrDocumentNotFound) && documentID == "":
		doc, err = r.docs.Save(ctx, userID, types.NewDocument(kind, "", time.Now().UTC()))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", kind, err)
		}
		log.Printf("[session] Created %s %s for user %s", kind, doc.ID, userID)
	default:
		return nil, err
	}

	s := &Session{
		ID:       uuid.NewString(),
		UserID:   userID,
		Kind:     kind,
		store:    editor.NewStore(doc, editor.WithHistory(r.cfg.HistoryDepth)),
		mutator:  mutation.New(),
		settings: editor.DefaultSettings(doc),
		lastUsed: r.now(),
		watchers: make(map[int]chan struct{}),
		done:     make(chan struct{}),
	}
	s.unsub = s.store.Subscribe(s.onChange)
	s.saver = autosave.New(s.store, r.docs, userID,
		autosave.WithDelay(r.cfg.AutosaveDelay),
		autosave.WithNotifier(autosave.NotifierFunc(s.onNotice)),
	)

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	log.Printf("[session] Opened %s on %s %s", s.ID, kind, doc.ID)
	return s, nil
}

// Get returns the user's session. Sessions of other users are reported as
// missing.
func (r *Registry) Get(userID uuid.UUID, id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.UserID != userID {
		return nil, ErrSessionNotFound
	}
	s.mu.Lock()
	s.lastUsed = r.now()
	s.mu.Unlock()
	return s, nil
}

// Close flushes unsaved edits and removes the session. The session is removed
// even if the final save fails; the error is returned so the caller can
// report lost edits.
func (r *Registry) Close(ctx context.Context, userID uuid.UUID, id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok || s.UserID != userID {
		r.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	r.mu.Unlock()

	err := s.flush(ctx)
	s.close()
	log.Printf("[session] Closed %s", id)
	return err
}

// Len reports the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) list() []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}

// FlushAll saves every session with unsaved edits. Every session is tried;
// the first failure is returned.
func (r *Registry) FlushAll(ctx context.Context) error {
	var g errgroup.Group
	g.SetLimit(8)
	for _, s := range r.list() {
		g.Go(func() error {
			if err := s.flush(ctx); err != nil {
				log.Printf("[session] Flush of %s failed: %v", s.ID, err)
				return fmt.Errorf("session %s: %w", s.ID, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// CloseAll flushes and closes every session.
func (r *Registry) CloseAll(ctx context.Context) error {
	err := r.FlushAll(ctx)

	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
	return err
}

// Sweep closes sessions idle longer than the configured timeout and returns
// how many it closed.
func (r *Registry) Sweep(ctx context.Context) int {
	if r.cfg.IdleTimeout <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.cfg.IdleTimeout)

	var idle []*Session
	r.mu.Lock()
	for id, s := range r.sessions {
		s.mu.Lock()
		stale := s.lastUsed.Before(cutoff)
		s.mu.Unlock()
		if stale {
			idle = append(idle, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		if err := s.flush(ctx); err != nil {
			log.Printf("[session] Final save of idle session %s failed: %v", s.ID, err)
		}
		s.close()
	}
	if len(idle) > 0 {
		log.Printf("[session] Closed %d idle sessions", len(idle))
	}
	return len(idle)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}
