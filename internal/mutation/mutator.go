// Package mutation implements the closed set of operations that change a
// document. Every operation is pure: it never modifies its input, returns a
// new *types.Document on success, and shares every branch it did not touch.
// An operation that changes nothing returns the input pointer itself, so
// callers can detect a no-op with a pointer comparison.
package mutation

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/folio-builder/internal/types"
)

// Mutator carries the clock and id generator used by the operations.
type Mutator struct {
	Now   func() time.Time
	NewID func() string
}

// New returns a Mutator using the wall clock (UTC) and random UUIDs.
func New() *Mutator {
	return &Mutator{
		Now:   func() time.Time { return time.Now().UTC() },
		NewID: uuid.NewString,
	}
}

func (m *Mutator) newID() string {
	if m.NewID == nil {
		return uuid.NewString()
	}
	return m.NewID()
}

// stamp clones doc and refreshes UpdatedAt. UpdatedAt never moves backwards,
// even if the clock does.
func (m *Mutator) stamp(doc *types.Document) *types.Document {
	next := doc.Clone()
	now := time.Now().UTC()
	if m.Now != nil {
		now = m.Now()
	}
	if now.Before(doc.UpdatedAt) {
		now = doc.UpdatedAt
	}
	next.UpdatedAt = now
	return next
}

// replaceByID returns a copy of items in which the entity with the given id is
// replaced by an edited copy. Other entries are shared by reference.
func replaceByID[T any](items []*T, id string, idOf func(*T) string, edit func(*T)) ([]*T, bool) {
	for i, it := range items {
		if idOf(it) != id {
			continue
		}
		cp := *it
		edit(&cp)
		out := make([]*T, len(items))
		copy(out, items)
		out[i] = &cp
		return out, true
	}
	return items, false
}

// removeByID returns a copy of items without the entity with the given id.
func removeByID[T any](items []*T, id string, idOf func(*T) string) ([]*T, bool) {
	for i, it := range items {
		if idOf(it) != id {
			continue
		}
		out := make([]*T, 0, len(items)-1)
		out = append(out, items[:i]...)
		out = append(out, items[i+1:]...)
		return out, true
	}
	return items, false
}

// appendItem never writes into the backing array of items.
func appendItem[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item)
}

func findByID[T any](items []*T, id string, idOf func(*T) string) *T {
	for _, it := range items {
		if idOf(it) == id {
			return it
		}
	}
	return nil
}

// swap returns a copy of items with positions i and j exchanged.
func swap[T any](items []T, i, j int) []T {
	out := make([]T, len(items))
	copy(out, items)
	out[i], out[j] = out[j], out[i]
	return out
}

func experienceID(e *types.Experience) string       { return e.ID }
func educationID(e *types.Education) string         { return e.ID }
func projectID(p *types.Project) string             { return p.ID }
func certificationID(c *types.Certification) string { return c.ID }
func languageID(l *types.Language) string           { return l.ID }
func categoryID(c *types.SkillCategory) string      { return c.ID }
func skillID(s *types.Skill) string                 { return s.ID }
func customSectionID(s *types.CustomSection) string { return s.ID }
func navLinkID(l *types.NavLink) string             { return l.ID }
func pageID(p *types.Page) string                   { return p.ID }
