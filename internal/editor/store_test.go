package editor

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/folio-builder/internal/mutation"
	"github.com/jonathan/folio-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func addExperience(m *mutation.Mutator) Op {
	return func(d *types.Document) (*types.Document, error) {
		next, _ := m.AddExperience(d)
		return next, nil
	}
}

func TestStore_UndoRedoRoundTrip(t *testing.T) {
	m := mutation.New()
	start := types.NewDocument(types.KindPortfolio, "p-1", epoch)
	s := NewStore(start, WithHistory(10))

	added, err := s.Apply(addExperience(m))
	require.NoError(t, err)
	require.Len(t, added.Experience, 1)
	assert.True(t, s.CanUndo())

	undone, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, start, undone)
	assert.True(t, s.CanRedo())

	redone, ok := s.Redo()
	require.True(t, ok)
	assert.Equal(t, added, redone)
	assert.False(t, s.CanRedo())
}

func TestStore_WithoutHistory(t *testing.T) {
	s := NewStore(types.NewDocument(types.KindResume, "r-1", epoch))
	_, err := s.Apply(addExperience(mutation.New()))
	require.NoError(t, err)

	assert.False(t, s.HasHistory())
	assert.False(t, s.CanUndo())
	_, ok := s.Undo()
	assert.False(t, ok)
}

func TestStore_NoOpDoesNotRecordOrNotify(t *testing.T) {
	m := mutation.New()
	start := types.NewDocument(types.KindResume, "r-1", epoch)
	s := NewStore(start, WithHistory(10))

	calls := 0
	s.Subscribe(func(Change) { calls++ })

	got, err := s.Apply(func(d *types.Document) (*types.Document, error) {
		return m.RemoveExperience(d, "missing")
	})
	assert.ErrorIs(t, err, mutation.ErrNotFound)
	assert.Same(t, start, got)
	assert.Same(t, start, s.Snapshot())
	assert.Equal(t, 0, calls)
	assert.False(t, s.CanUndo())
}

func TestStore_SubscribeAndUnsubscribe(t *testing.T) {
	s := NewStore(types.NewDocument(types.KindResume, "r-1", epoch), WithHistory(5))
	var got []Reason
	unsubscribe := s.Subscribe(func(c Change) {
		got = append(got, c.Reason)
		assert.NotSame(t, c.Prev, c.Doc)
	})

	_, _ = s.Apply(addExperience(mutation.New()))
	_, _ = s.Undo()
	_, _ = s.Redo()
	s.Replace(types.NewDocument(types.KindResume, "", epoch))
	unsubscribe()
	_, _ = s.Apply(addExperience(mutation.New()))

	assert.Equal(t, []Reason{ReasonApply, ReasonUndo, ReasonRedo, ReasonReplace}, got)
}

func TestStore_ReplaceKeepsIdentityAndIsUndoable(t *testing.T) {
	start := types.NewDocument(types.KindPortfolio, "p-1", epoch)
	start.Version = 4
	s := NewStore(start, WithHistory(5))

	imported := types.SampleDocument(types.KindPortfolio, epoch.Add(time.Hour))
	imported.ID = "foreign"
	got := s.Replace(imported)

	assert.Equal(t, "p-1", got.ID)
	assert.Equal(t, int64(4), got.Version)
	assert.Equal(t, imported.PersonalInfo, got.PersonalInfo)
	assert.Equal(t, "foreign", imported.ID, "argument must not be modified")

	back, ok := s.Undo()
	require.True(t, ok)
	assert.Same(t, start, back)
}

func TestStore_AdoptIdentity(t *testing.T) {
	m := mutation.New()
	s := NewStore(types.NewDocument(types.KindPortfolio, "", epoch), WithHistory(5))
	calls := 0
	s.Subscribe(func(Change) { calls++ })

	_, _ = s.Apply(addExperience(m))
	saved := epoch.Add(time.Minute)
	s.AdoptIdentity("row-1", 1, epoch, saved)

	cur := s.Snapshot()
	assert.Equal(t, "row-1", cur.ID)
	assert.Equal(t, int64(1), cur.Version)
	assert.Equal(t, 1, calls)

	// undoing back to the pre-save snapshot stays attached to the row
	undone, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, "row-1", undone.ID)
	assert.Equal(t, int64(1), undone.Version)
	assert.Empty(t, undone.Experience)
}

func TestStore_ConcurrentApply(t *testing.T) {
	m := mutation.New()
	s := NewStore(types.NewDocument(types.KindResume, "r-1", epoch), WithHistory(500))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Apply(addExperience(m))
		}()
	}
	wg.Wait()

	assert.Len(t, s.Snapshot().Experience, 50)
}

func TestStore_ApplyPropagatesOpError(t *testing.T) {
	s := NewStore(types.NewDocument(types.KindResume, "r-1", epoch))
	boom := errors.New("boom")
	_, err := s.Apply(func(d *types.Document) (*types.Document, error) { return d, boom })
	assert.ErrorIs(t, err, boom)
}

func TestStore_ReplaceNeverMovesUpdatedAtBack(t *testing.T) {
	start := types.NewDocument(types.KindResume, "r-1", epoch)
	start.UpdatedAt = epoch.Add(time.Hour)
	clock := epoch
	s := NewStore(start, WithClock(func() time.Time { return clock }))

	imported := types.NewDocument(types.KindResume, "", epoch.Add(-24*time.Hour))
	got := s.Replace(imported)
	assert.Equal(t, epoch.Add(time.Hour), got.UpdatedAt, "older file keeps the current stamp")
	assert.Equal(t, epoch.Add(-24*time.Hour), imported.UpdatedAt, "argument must not be modified")

	clock = epoch.Add(2 * time.Hour)
	got = s.Replace(types.NewDocument(types.KindResume, "", epoch.Add(-24*time.Hour)))
	assert.Equal(t, clock, got.UpdatedAt)
}

func TestStore_PanickingOpReleasesLock(t *testing.T) {
	m := mutation.New()
	start := types.NewDocument(types.KindResume, "r-1", epoch)
	s := NewStore(start, WithHistory(5))

	require.Panics(t, func() {
		_, _ = s.Apply(func(*types.Document) (*types.Document, error) { panic("bad op") })
	})
	assert.Same(t, start, s.Snapshot())
	assert.False(t, s.CanUndo())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Apply(addExperience(m))
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("store still locked after a panicking op")
	}
	assert.Len(t, s.Snapshot().Experience, 1)
}
