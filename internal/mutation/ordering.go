package mutation

import (
	"fmt"

	"github.com/jonathan/folio-builder/internal/types"
)

// Direction is a reorder direction. Up moves toward index 0.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection accepts "up" or "down".
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), nil
	}
	return "", fmt.Errorf("invalid direction %q: must be up or down", s)
}

// MoveSection swaps the section at index with its neighbour. Index 0 (the
// personal section) is pinned: it cannot move, and nothing can move into it.
func (m *Mutator) MoveSection(doc *types.Document, index int, dir Direction) (*types.Document, error) {
	target, ok := neighbour(index, dir, len(doc.Sections), 1)
	if !ok {
		return doc, ErrImmovable
	}
	next := m.stamp(doc)
	next.Sections = swap(doc.Sections, index, target)
	return next, nil
}

// MoveNavLink swaps the navigation link at index with its neighbour.
func (m *Mutator) MoveNavLink(doc *types.Document, index int, dir Direction) (*types.Document, error) {
	links := doc.Navigation.LinkList()
	target, ok := neighbour(index, dir, len(links), 0)
	if !ok {
		return doc, ErrImmovable
	}
	next := m.stamp(doc)
	nav := *doc.Navigation
	nav.Links = swap(links, index, target)
	next.Navigation = &nav
	return next, nil
}

// neighbour returns the swap partner of index, treating positions below
// pinned as fixed.
func neighbour(index int, dir Direction, length, pinned int) (int, bool) {
	if index < pinned || index >= length {
		return 0, false
	}
	target := index + 1
	if dir == Up {
		target = index - 1
	}
	if target < pinned || target >= length {
		return 0, false
	}
	return target, true
}
