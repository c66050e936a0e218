package types

// DefaultPortfolioTemplate is the template assigned to fresh portfolios.
const DefaultPortfolioTemplate = "portfolio"

// Navigation is the portfolio site's menu.
type Navigation struct {
	Title       string     `json:"title"`
	Layout      string     `json:"layout"`      // horizontal | vertical | centered
	DisplayMode string     `json:"displayMode"` // text | icons | both
	Links       []*NavLink `json:"links"`
}

// NavLink is one menu entry.
type NavLink struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// NewNavLink returns an empty link.
func NewNavLink(id string) *NavLink {
	return &NavLink{ID: id}
}

// LinkList returns the links, treating a nil navigation as empty.
func (n *Navigation) LinkList() []*NavLink {
	if n == nil || n.Links == nil {
		return []*NavLink{}
	}
	return n.Links
}

// DefaultNavigation returns the navigation of a fresh portfolio.
func DefaultNavigation() *Navigation {
	return &Navigation{
		Layout:      "horizontal",
		DisplayMode: "text",
		Links:       []*NavLink{},
	}
}

// ThemeMode selects light, dark, or OS-driven colours.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
	ThemeAuto  ThemeMode = "auto"
)

// Valid reports whether m is a known mode.
func (m ThemeMode) Valid() bool {
	return m == ThemeLight || m == ThemeDark || m == ThemeAuto
}

// ThemeSettings is the flat record of portfolio style tokens.
type ThemeSettings struct {
	Mode            ThemeMode `json:"mode"`
	PrimaryColor    string    `json:"primaryColor"`
	SecondaryColor  string    `json:"secondaryColor"`
	AccentColor     string    `json:"accentColor"`
	BackgroundColor string    `json:"backgroundColor"`
	TextColor       string    `json:"textColor"`
	HeadingFont     string    `json:"headingFont"`
	BodyFont        string    `json:"bodyFont"`
	Spacing         string    `json:"spacing"`
	BorderRadius    string    `json:"borderRadius"`
}

// DefaultThemeSettings returns the theme of a fresh portfolio.
func DefaultThemeSettings() *ThemeSettings {
	return &ThemeSettings{
		Mode:            ThemeAuto,
		PrimaryColor:    "#2563eb",
		SecondaryColor:  "#64748b",
		AccentColor:     "#f59e0b",
		BackgroundColor: "#ffffff",
		TextColor:       "#0f172a",
		HeadingFont:     "Inter, sans-serif",
		BodyFont:        "Inter, sans-serif",
		Spacing:         "1rem",
		BorderRadius:    "0.5rem",
	}
}

// EffectiveMode resolves ThemeAuto against the client's prefers-color-scheme signal.
func (t *ThemeSettings) EffectiveMode(prefersDark bool) ThemeMode {
	if t == nil || t.Mode == "" || t.Mode == ThemeAuto {
		if prefersDark {
			return ThemeDark
		}
		return ThemeLight
	}
	return t.Mode
}

// PageType selects page-specific rendering.
type PageType string

const (
	PageHome    PageType = "home"
	PageContact PageType = "contact"
	PageCustom  PageType = "custom"
)

// Valid reports whether t is a known page type.
func (t PageType) Valid() bool {
	return t == PageHome || t == PageContact || t == PageCustom
}

// Page is one page of a portfolio site.
type Page struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Type          PageType       `json:"type"`
	Content       string         `json:"content"`
	StyleSettings *StyleSettings `json:"styleSettings,omitempty"`
	Hidden        bool           `json:"hidden,omitempty"`
}

// NewPage returns an empty custom page.
func NewPage(id string) *Page {
	return &Page{ID: id, Name: "New Page", Type: PageCustom}
}

// StyleSettings are the visual knobs passed to the template projection.
// They are persisted with the document.
type StyleSettings struct {
	FontFamily     string  `json:"fontFamily"`
	FontSize       int     `json:"fontSize"`
	HeadingSize    int     `json:"headingSize"`
	LineHeight     float64 `json:"lineHeight"`
	PrimaryColor   string  `json:"primaryColor"`
	TextColor      string  `json:"textColor"`
	SectionSpacing int     `json:"sectionSpacing"`
}

// DefaultStyleSettings returns the style of a fresh document.
func DefaultStyleSettings() *StyleSettings {
	return &StyleSettings{
		FontFamily:     "Georgia, serif",
		FontSize:       11,
		HeadingSize:    16,
		LineHeight:     1.4,
		PrimaryColor:   "#1f2937",
		TextColor:      "#111827",
		SectionSpacing: 16,
	}
}

// Resolved returns s with zero fields filled from the defaults.
func (s *StyleSettings) Resolved() StyleSettings {
	def := DefaultStyleSettings()
	if s == nil {
		return *def
	}
	out := *s
	if out.FontFamily == "" {
		out.FontFamily = def.FontFamily
	}
	if out.FontSize <= 0 {
		out.FontSize = def.FontSize
	}
	if out.HeadingSize <= 0 {
		out.HeadingSize = def.HeadingSize
	}
	if out.LineHeight <= 0 {
		out.LineHeight = def.LineHeight
	}
	if out.PrimaryColor == "" {
		out.PrimaryColor = def.PrimaryColor
	}
	if out.TextColor == "" {
		out.TextColor = def.TextColor
	}
	if out.SectionSpacing <= 0 {
		out.SectionSpacing = def.SectionSpacing
	}
	return out
}
