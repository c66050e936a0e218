package history

import (
	"testing"
	"time"

	"github.com/jonathan/folio-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(name string) *types.Document {
	doc := types.NewDocument(types.KindPortfolio, "p-1", time.Unix(0, 0).UTC())
	doc.Name = name
	return doc
}

func TestUndoRedo_RoundTrip(t *testing.T) {
	h := New(10)
	a, b := snapshot("a"), snapshot("b")

	h.Record(a)
	got, ok := h.Undo(b)
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.True(t, h.CanRedo())
	assert.False(t, h.CanUndo())

	got, ok = h.Redo(a)
	require.True(t, ok)
	assert.Same(t, b, got)
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestRecord_ClearsRedo(t *testing.T) {
	h := New(10)
	a, b, c := snapshot("a"), snapshot("b"), snapshot("c")

	h.Record(a)
	_, _ = h.Undo(b)
	require.True(t, h.CanRedo())

	h.Record(a)
	assert.False(t, h.CanRedo())
	_, ok := h.Redo(c)
	assert.False(t, ok)
}

func TestEmptyStacks(t *testing.T) {
	h := New(0)
	assert.Equal(t, DefaultDepth, h.Depth())

	cur := snapshot("cur")
	got, ok := h.Undo(cur)
	assert.False(t, ok)
	assert.Same(t, cur, got)

	got, ok = h.Redo(cur)
	assert.False(t, ok)
	assert.Same(t, cur, got)
}

func TestRecord_DropsOldestAtCap(t *testing.T) {
	h := New(3)
	snaps := []*types.Document{snapshot("1"), snapshot("2"), snapshot("3"), snapshot("4")}
	for _, s := range snaps {
		h.Record(s)
	}

	undo, redo := h.Len()
	assert.Equal(t, 3, undo)
	assert.Equal(t, 0, redo)

	cur := snapshot("cur")
	for _, want := range []string{"4", "3", "2"} {
		got, ok := h.Undo(cur)
		require.True(t, ok)
		assert.Equal(t, want, got.Name)
		cur = got
	}
	assert.False(t, h.CanUndo())
}

func TestReset(t *testing.T) {
	h := New(5)
	h.Record(snapshot("a"))
	h.Reset()
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestDiscardedSnapshotsAreReleased(t *testing.T) {
	h := New(2)
	a, b, c := snapshot("a"), snapshot("b"), snapshot("c")

	h.Record(a)
	h.Record(b)
	_, _ = h.Undo(c)
	_, _ = h.Undo(b)
	require.True(t, h.CanRedo())
	for _, s := range h.undo[:cap(h.undo)] {
		assert.Nil(t, s, "undo backing array still holds a popped snapshot")
	}

	h.Record(a)
	for _, s := range h.redo[:cap(h.redo)] {
		assert.Nil(t, s, "redo backing array still holds a snapshot")
	}
}
