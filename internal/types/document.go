// Package types provides the document schema shared by the resume and portfolio builders.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"
)

// Kind discriminates the two builders that share the Document aggregate.
type Kind string

const (
	KindResume    Kind = "resume"
	KindPortfolio Kind = "portfolio"
)

// Valid reports whether k names a known builder.
func (k Kind) Valid() bool {
	return k == KindResume || k == KindPortfolio
}

// Section identifiers used in Document.Sections.
const (
	SectionPersonal       = "personal"
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
	SectionLanguages      = "languages"
	SectionCustom         = "custom"
)

// DefaultSections is the initial editor/render order. SectionPersonal is pinned at index 0.
var DefaultSections = []string{
	SectionPersonal,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
	SectionLanguages,
	SectionCustom,
}

// DefaultTemplate is the template assigned to fresh documents.
const DefaultTemplate = "modern"

// Document is the root aggregate for one resume or one portfolio site.
//
// Documents are treated as immutable snapshots once published to an editor
// store: the mutation package always returns a new *Document and shares every
// branch it did not touch.
type Document struct {
	ID             string           `json:"id"`
	Kind           Kind             `json:"kind"`
	Name           string           `json:"name"`
	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	Summary        *Summary         `json:"summary,omitempty"`
	Experience     []*Experience    `json:"experience"`
	Education      []*Education     `json:"education"`
	Skills         Skills           `json:"skills"`
	Projects       []*Project       `json:"projects,omitempty"`
	Certifications []*Certification `json:"certifications,omitempty"`
	Languages      []*Language      `json:"languages,omitempty"`
	CustomSections []*CustomSection `json:"customSections"`
	Template       string           `json:"template"`
	Sections       []string         `json:"sections"`
	Style          *StyleSettings   `json:"style,omitempty"`
	Navigation     *Navigation      `json:"navigation,omitempty"`
	ThemeSettings  *ThemeSettings   `json:"themeSettings,omitempty"`
	Pages          []*Page          `json:"pages,omitempty"`
	Footer         *Footer          `json:"footer,omitempty"`
	Version        int64            `json:"version"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// PersonalInfo is the singleton header block of a document.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	JobTitle string `json:"jobTitle"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	// Avatar is either a data URI or a hosted image URL.
	Avatar string `json:"avatar,omitempty"`
}

// Summary holds the free-text profile summary.
type Summary struct {
	Summary string `json:"summary"`
}

// Footer is rendered at the bottom of portfolio pages.
type Footer struct {
	Copyright string `json:"copyright,omitempty"`
}

// NewDocument returns a fresh document with every collection empty and the
// kind-specific defaults applied. id may be empty for a document that has not
// been persisted yet.
func NewDocument(kind Kind, id string, now time.Time) *Document {
	doc := &Document{
		ID:             id,
		Kind:           kind,
		Name:           "Untitled " + string(kind),
		Summary:        &Summary{},
		Experience:     []*Experience{},
		Education:      []*Education{},
		Skills:         Skills{Categories: []*SkillCategory{}},
		Projects:       []*Project{},
		Certifications: []*Certification{},
		Languages:      []*Language{},
		CustomSections: []*CustomSection{},
		Template:       DefaultTemplate,
		Sections:       append([]string(nil), DefaultSections...),
		Style:          DefaultStyleSettings(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if kind == KindPortfolio {
		doc.Template = DefaultPortfolioTemplate
		doc.Navigation = DefaultNavigation()
		doc.ThemeSettings = DefaultThemeSettings()
		doc.Footer = &Footer{}
		doc.Pages = []*Page{
			{ID: "home", Name: "Home", Type: PageHome},
			{ID: "contact", Name: "Contact", Type: PageContact},
		}
	}

	return doc
}

// ExperienceList returns the experience entries, treating nil as empty.
func (d *Document) ExperienceList() []*Experience {
	if d == nil || d.Experience == nil {
		return []*Experience{}
	}
	return d.Experience
}

// EducationList returns the education entries, treating nil as empty.
func (d *Document) EducationList() []*Education {
	if d == nil || d.Education == nil {
		return []*Education{}
	}
	return d.Education
}

// ProjectList returns the projects, treating nil as empty.
func (d *Document) ProjectList() []*Project {
	if d == nil || d.Projects == nil {
		return []*Project{}
	}
	return d.Projects
}

// CertificationList returns the certifications, treating nil as empty.
func (d *Document) CertificationList() []*Certification {
	if d == nil || d.Certifications == nil {
		return []*Certification{}
	}
	return d.Certifications
}

// LanguageList returns the languages, treating nil as empty.
func (d *Document) LanguageList() []*Language {
	if d == nil || d.Languages == nil {
		return []*Language{}
	}
	return d.Languages
}

// CustomSectionList returns the custom sections, treating nil as empty.
func (d *Document) CustomSectionList() []*CustomSection {
	if d == nil || d.CustomSections == nil {
		return []*CustomSection{}
	}
	return d.CustomSections
}

// CategoryList returns the skill categories, treating nil as empty.
func (d *Document) CategoryList() []*SkillCategory {
	if d == nil || d.Skills.Categories == nil {
		return []*SkillCategory{}
	}
	return d.Skills.Categories
}

// PageList returns the portfolio pages, treating nil as empty.
func (d *Document) PageList() []*Page {
	if d == nil || d.Pages == nil {
		return []*Page{}
	}
	return d.Pages
}

// SummaryText returns the summary string or "" when absent.
func (d *Document) SummaryText() string {
	if d == nil || d.Summary == nil {
		return ""
	}
	return d.Summary.Summary
}

// FindPage returns the page with the given id, or nil.
func (d *Document) FindPage(id string) *Page {
	for _, p := range d.PageList() {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// HasIdentity reports whether the document has been assigned an id by the row store.
func (d *Document) HasIdentity() bool {
	return d != nil && d.ID != ""
}

// Clone returns a shallow copy of the document. Slices and entity pointers are
// shared with the original, which is safe because entities are never modified
// in place.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
