// Package history provides a bounded linear undo/redo stack of immutable
// document snapshots.
package history

import "github.com/jonathan/folio-builder/internal/types"

// DefaultDepth is the number of undo steps kept when no depth is configured.
const DefaultDepth = 100

// History is a linear undo/redo stack. It is not safe for concurrent use; the
// editor store serialises access.
type History struct {
	depth int
	undo  []*types.Document
	redo  []*types.Document
}

// New returns an empty history keeping at most depth undo steps. A depth
// below 1 falls back to DefaultDepth.
func New(depth int) *History {
	if depth < 1 {
		depth = DefaultDepth
	}
	return &History{depth: depth}
}

// Depth returns the configured cap.
func (h *History) Depth() int {
	return h.depth
}

// Record pushes the pre-mutation snapshot and clears the redo stack. When the
// cap is reached the oldest snapshot is dropped.
func (h *History) Record(prev *types.Document) {
	if prev == nil {
		return
	}
	if len(h.undo) == h.depth {
		copy(h.undo, h.undo[1:])
		h.undo = pop(h.undo)
	}
	h.undo = append(h.undo, prev)
	clear(h.redo)
	h.redo = h.redo[:0]
}

// Undo pops the most recent snapshot and pushes current onto the redo stack.
// It reports false when there is nothing to undo.
func (h *History) Undo(current *types.Document) (*types.Document, bool) {
	if len(h.undo) == 0 {
		return current, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = pop(h.undo)
	h.redo = append(h.redo, current)
	return prev, true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current *types.Document) (*types.Document, bool) {
	if len(h.redo) == 0 {
		return current, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = pop(h.redo)
	h.undo = append(h.undo, current)
	return next, true
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the number of undo and redo steps held.
func (h *History) Len() (undo, redo int) {
	return len(h.undo), len(h.redo)
}

// Reset drops every step.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}

// pop drops the last element and releases its slot in the backing array.
func pop(s []*types.Document) []*types.Document {
	s[len(s)-1] = nil
	return s[:len(s)-1]
}
