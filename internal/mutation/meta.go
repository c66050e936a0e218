package mutation

import (
	"strings"

	"github.com/jonathan/folio-builder/internal/types"
)

// Rename sets the document title. Blank names are ignored.
func (m *Mutator) Rename(doc *types.Document, name string) *types.Document {
	name = strings.TrimSpace(name)
	if name == "" || name == doc.Name {
		return doc
	}
	next := m.stamp(doc)
	next.Name = name
	return next
}

// SetTemplate selects the template used by the projection. Callers validate
// the name against the renderer registry.
func (m *Mutator) SetTemplate(doc *types.Document, template string) *types.Document {
	if template == doc.Template {
		return doc
	}
	next := m.stamp(doc)
	next.Template = template
	return next
}

// UpdateStyle merges patch into the persisted style settings.
func (m *Mutator) UpdateStyle(doc *types.Document, patch StylePatch) *types.Document {
	if patch == (StylePatch{}) {
		return doc
	}
	style := doc.Style.Resolved()
	patch.apply(&style)
	next := m.stamp(doc)
	next.Style = &style
	return next
}
