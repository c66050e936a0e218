package types

import (
	"slices"

	"github.com/google/uuid"
)

// Normalize fills the defaults that a document read from outside (import,
// storage written by an older version) may be missing: nil collections become
// empty, null entries are dropped, entities without an id or with a repeated
// id get a fresh one, enums fall back to their defaults, and the section order
// always starts with SectionPersonal. It mutates doc and must only be called
// before the document is published to a store.
func Normalize(doc *Document) {
	if doc == nil {
		return
	}
	if doc.Kind == "" {
		doc.Kind = KindResume
		if doc.ThemeSettings != nil || len(doc.Pages) > 0 {
			doc.Kind = KindPortfolio
		}
	}
	if doc.Summary == nil {
		doc.Summary = &Summary{}
	}

	doc.Experience = compact(doc.Experience, func(e *Experience) *string { return &e.ID })
	for _, e := range doc.Experience {
		if e.Bullets == nil {
			e.Bullets = []string{}
		}
	}
	doc.Education = compact(doc.Education, func(e *Education) *string { return &e.ID })
	doc.Skills.Categories = compact(doc.Skills.Categories, func(c *SkillCategory) *string { return &c.ID })
	for _, c := range doc.Skills.Categories {
		c.Skills = compact(c.Skills, func(s *Skill) *string { return &s.ID })
		for _, s := range c.Skills {
			if !s.Level.Valid() {
				s.Level = DefaultSkillLevel
			}
		}
	}
	doc.Projects = compact(doc.Projects, func(p *Project) *string { return &p.ID })
	for _, p := range doc.Projects {
		if p.Bullets == nil {
			p.Bullets = []string{}
		}
	}
	doc.Certifications = compact(doc.Certifications, func(c *Certification) *string { return &c.ID })
	doc.Languages = compact(doc.Languages, func(l *Language) *string { return &l.ID })
	for _, l := range doc.Languages {
		if !l.Proficiency.Valid() {
			l.Proficiency = DefaultLanguageProficiency
		}
	}
	doc.CustomSections = compact(doc.CustomSections, func(s *CustomSection) *string { return &s.ID })
	for _, s := range doc.CustomSections {
		if s.Type == "" {
			s.Type = CustomText
		}
		if s.Content == nil || s.Content.ContentType() != s.Type {
			s.Content = EmptyContent(s.Type)
		}
	}

	doc.Sections = normalizeSections(doc.Sections)
	if doc.Template == "" {
		doc.Template = DefaultTemplate
		if doc.Kind == KindPortfolio {
			doc.Template = DefaultPortfolioTemplate
		}
	}

	if doc.Kind == KindPortfolio {
		if doc.Navigation == nil {
			doc.Navigation = DefaultNavigation()
		}
		doc.Navigation.Links = compact(doc.Navigation.Links, func(l *NavLink) *string { return &l.ID })
		if doc.ThemeSettings == nil {
			doc.ThemeSettings = DefaultThemeSettings()
		}
		if !doc.ThemeSettings.Mode.Valid() {
			doc.ThemeSettings.Mode = ThemeAuto
		}
		doc.Pages = compact(doc.Pages, func(p *Page) *string { return &p.ID })
		for _, p := range doc.Pages {
			if !p.Type.Valid() {
				p.Type = PageCustom
			}
		}
		if doc.Footer == nil {
			doc.Footer = &Footer{}
		}
	}
}

// compact drops nil entries and makes every id in items non-empty and unique
// within the sequence. The result is never nil.
func compact[T any](items []*T, id func(*T) *string) []*T {
	out := make([]*T, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		p := id(item)
		if *p == "" || seen[*p] {
			*p = uuid.NewString()
		}
		seen[*p] = true
		out = append(out, item)
	}
	return out
}

// normalizeSections drops unknown and duplicate ids, appends any missing
// default sections, and pins SectionPersonal first.
func normalizeSections(sections []string) []string {
	out := make([]string, 0, len(DefaultSections))
	out = append(out, SectionPersonal)
	for _, s := range sections {
		if s == SectionPersonal || !slices.Contains(DefaultSections, s) || slices.Contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	for _, s := range DefaultSections {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
