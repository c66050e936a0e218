package rendering

import (
	"io"
	"net/url"

	"github.com/jonathan/folio-builder/internal/types"
)

// PortfolioView is the projection of one portfolio page.
type PortfolioView struct {
	*View
	Theme      types.ThemeSettings
	Mode       types.ThemeMode
	SiteTitle  string
	NavLayout  string
	Nav        []NavItem
	Page       *types.Page
	Paragraphs []string
	Projects   []Entry
	Skills     []SkillGroup
	Footer     string
}

// NavItem is a rendered menu entry: a visible page or an external link.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// RenderPortfolioPage renders the page with pageID, or the first visible
// page when pageID is empty. Hidden pages still render when asked for by id
// so they can be previewed, but never appear in the navigation.
func (r *Renderer) RenderPortfolioPage(w io.Writer, doc *types.Document, pageID string, prefersDark bool) error {
	if doc == nil {
		return &RenderError{Message: "no document"}
	}
	page := pickPage(doc, pageID)
	if page == nil {
		if pageID == "" {
			return &RenderError{Kind: doc.Kind, Message: "no visible pages"}
		}
		return &RenderError{Kind: doc.Kind, PageID: pageID, Message: "page not found"}
	}
	return r.execute(w, "portfolio", BuildPortfolioView(doc, page, prefersDark))
}

// BuildPortfolioView projects doc and page for the portfolio template.
func BuildPortfolioView(doc *types.Document, page *types.Page, prefersDark bool) *PortfolioView {
	style := doc.Style.Resolved()
	if page.StyleSettings != nil {
		style = page.StyleSettings.Resolved()
	}

	v := &PortfolioView{
		View:       BuildView(doc, style),
		Theme:      resolveTheme(doc.ThemeSettings),
		Mode:       doc.ThemeSettings.EffectiveMode(prefersDark),
		Page:       page,
		Paragraphs: paragraphs(page.Content),
		Projects:   projectEntries(doc.ProjectList()),
		Skills:     skillGroups(doc.CategoryList()),
	}
	if v.Mode == types.ThemeDark {
		v.Theme.BackgroundColor, v.Theme.TextColor = v.Theme.TextColor, v.Theme.BackgroundColor
	}

	nav := doc.Navigation
	if nav == nil {
		nav = types.DefaultNavigation()
	}
	v.SiteTitle = nav.Title
	if v.SiteTitle == "" {
		v.SiteTitle = v.Title
	}
	v.NavLayout = nav.Layout
	for _, p := range doc.PageList() {
		if p.Hidden {
			continue
		}
		v.Nav = append(v.Nav, NavItem{
			Label:  p.Name,
			Href:   "?page=" + url.QueryEscape(p.ID),
			Active: p.ID == page.ID,
		})
	}
	for _, l := range nav.LinkList() {
		if l.Label == "" && l.URL == "" {
			continue
		}
		label := l.Label
		if label == "" {
			label = l.URL
		}
		v.Nav = append(v.Nav, NavItem{Label: label, Href: l.URL})
	}
	if doc.Footer != nil {
		v.Footer = doc.Footer.Copyright
	}
	return v
}

func pickPage(doc *types.Document, id string) *types.Page {
	if id != "" {
		return doc.FindPage(id)
	}
	for _, p := range doc.PageList() {
		if !p.Hidden {
			return p
		}
	}
	return nil
}

func resolveTheme(t *types.ThemeSettings) types.ThemeSettings {
	def := types.DefaultThemeSettings()
	if t == nil {
		return *def
	}
	out := *t
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&out.PrimaryColor, def.PrimaryColor)
	fill(&out.SecondaryColor, def.SecondaryColor)
	fill(&out.AccentColor, def.AccentColor)
	fill(&out.BackgroundColor, def.BackgroundColor)
	fill(&out.TextColor, def.TextColor)
	fill(&out.HeadingFont, def.HeadingFont)
	fill(&out.BodyFont, def.BodyFont)
	fill(&out.Spacing, def.Spacing)
	fill(&out.BorderRadius, def.BorderRadius)
	return out
}
