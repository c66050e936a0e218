package mutation

import "github.com/jonathan/folio-builder/internal/types"

// AddNavLink appends an empty navigation link and returns its id.
func (m *Mutator) AddNavLink(doc *types.Document) (*types.Document, string) {
	link := types.NewNavLink(m.newID())
	nav := navigationOf(doc)
	nav.Links = appendItem(doc.Navigation.LinkList(), link)
	next := m.stamp(doc)
	next.Navigation = nav
	return next, link.ID
}

// UpdateNavLink merges patch into the matching link.
func (m *Mutator) UpdateNavLink(doc *types.Document, id string, patch NavLinkPatch) (*types.Document, error) {
	links, ok := replaceByID(doc.Navigation.LinkList(), id, navLinkID, func(l *types.NavLink) {
		patch.apply(l)
	})
	if !ok {
		return doc, notFound("nav link", id)
	}
	nav := navigationOf(doc)
	nav.Links = links
	next := m.stamp(doc)
	next.Navigation = nav
	return next, nil
}

// RemoveNavLink drops the matching link.
func (m *Mutator) RemoveNavLink(doc *types.Document, id string) (*types.Document, error) {
	links, ok := removeByID(doc.Navigation.LinkList(), id, navLinkID)
	if !ok {
		return doc, notFound("nav link", id)
	}
	nav := navigationOf(doc)
	nav.Links = links
	next := m.stamp(doc)
	next.Navigation = nav
	return next, nil
}

// UpdateNavigation merges patch into the navigation settings. Links are untouched.
func (m *Mutator) UpdateNavigation(doc *types.Document, patch NavigationPatch) *types.Document {
	if patch == (NavigationPatch{}) {
		return doc
	}
	nav := navigationOf(doc)
	patch.apply(nav)
	next := m.stamp(doc)
	next.Navigation = nav
	return next
}

// UpdateTheme merges patch into the theme settings, creating defaults first
// when the document has none.
func (m *Mutator) UpdateTheme(doc *types.Document, patch ThemePatch) *types.Document {
	if patch == (ThemePatch{}) {
		return doc
	}
	var theme types.ThemeSettings
	if doc.ThemeSettings != nil {
		theme = *doc.ThemeSettings
	} else {
		theme = *types.DefaultThemeSettings()
	}
	patch.apply(&theme)
	next := m.stamp(doc)
	next.ThemeSettings = &theme
	return next
}

// AddPage appends an empty custom page and returns its id.
func (m *Mutator) AddPage(doc *types.Document) (*types.Document, string) {
	page := types.NewPage(m.newID())
	next := m.stamp(doc)
	next.Pages = appendItem(doc.PageList(), page)
	return next, page.ID
}

// UpdatePage merges patch into the matching page.
func (m *Mutator) UpdatePage(doc *types.Document, id string, patch PagePatch) (*types.Document, error) {
	pages, ok := replaceByID(doc.PageList(), id, pageID, func(p *types.Page) {
		patch.apply(p)
	})
	if !ok {
		return doc, notFound("page", id)
	}
	next := m.stamp(doc)
	next.Pages = pages
	return next, nil
}

// RemovePage drops the matching page.
func (m *Mutator) RemovePage(doc *types.Document, id string) (*types.Document, error) {
	pages, ok := removeByID(doc.PageList(), id, pageID)
	if !ok {
		return doc, notFound("page", id)
	}
	next := m.stamp(doc)
	next.Pages = pages
	return next, nil
}

// SetPageHidden shows or hides a page in the navigation and the rendered site.
func (m *Mutator) SetPageHidden(doc *types.Document, id string, hidden bool) (*types.Document, error) {
	return m.UpdatePage(doc, id, PagePatch{Hidden: &hidden})
}

// UpdateFooter merges patch into the footer.
func (m *Mutator) UpdateFooter(doc *types.Document, patch FooterPatch) *types.Document {
	if patch == (FooterPatch{}) {
		return doc
	}
	var footer types.Footer
	if doc.Footer != nil {
		footer = *doc.Footer
	}
	patch.apply(&footer)
	next := m.stamp(doc)
	next.Footer = &footer
	return next
}

// navigationOf returns a private copy of the document navigation.
func navigationOf(doc *types.Document) *types.Navigation {
	if doc.Navigation == nil {
		return types.DefaultNavigation()
	}
	nav := *doc.Navigation
	return &nav
}
