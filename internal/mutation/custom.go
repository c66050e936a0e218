package mutation

import "github.com/jonathan/folio-builder/internal/types"

// AddCustomSection appends an empty text section and returns its id.
func (m *Mutator) AddCustomSection(doc *types.Document) (*types.Document, string) {
	item := types.NewCustomSection(m.newID())
	next := m.stamp(doc)
	next.CustomSections = appendItem(doc.CustomSectionList(), item)
	return next, item.ID
}

// UpdateCustomSection merges patch into the matching section.
func (m *Mutator) UpdateCustomSection(doc *types.Document, id string, patch CustomSectionPatch) (*types.Document, error) {
	items, ok := replaceByID(doc.CustomSectionList(), id, customSectionID, func(s *types.CustomSection) {
		patch.apply(s)
	})
	if !ok {
		return doc, notFound("custom section", id)
	}
	next := m.stamp(doc)
	next.CustomSections = items
	return next, nil
}

// SetCustomContent replaces the section content; the section type follows the
// content variant.
func (m *Mutator) SetCustomContent(doc *types.Document, id string, content types.CustomContent) (*types.Document, error) {
	if content == nil {
		content = types.TextContent("")
	}
	items, ok := replaceByID(doc.CustomSectionList(), id, customSectionID, func(s *types.CustomSection) {
		s.Type = content.ContentType()
		s.Content = content
	})
	if !ok {
		return doc, notFound("custom section", id)
	}
	next := m.stamp(doc)
	next.CustomSections = items
	return next, nil
}

// RemoveCustomSection drops the matching section.
func (m *Mutator) RemoveCustomSection(doc *types.Document, id string) (*types.Document, error) {
	items, ok := removeByID(doc.CustomSectionList(), id, customSectionID)
	if !ok {
		return doc, notFound("custom section", id)
	}
	next := m.stamp(doc)
	next.CustomSections = items
	return next, nil
}
