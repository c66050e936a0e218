package rendering

import (
	"strings"

	"github.com/jonathan/folio-builder/internal/types"
)

// View is the read-only projection every resume template consumes.
type View struct {
	Template string
	Title    string
	Personal types.PersonalInfo
	Contacts []Contact
	Style    types.StyleSettings
	Sections []Section
}

// Contact is one header contact line.
type Contact struct {
	Label string
	Value string
	Href  string
}

// Section kinds select the partial that renders a section.
const (
	KindSummary  = "summary"
	KindEntries  = "entries"
	KindSkills   = "skills"
	KindText     = "text"
	KindList     = "list"
	KindTimeline = "timeline"
	KindGrid     = "grid"
)

// Section is one rendered block, in document order.
type Section struct {
	ID       string
	Kind     string
	Title    string
	Text     string
	Entries  []Entry
	Skills   []SkillGroup
	Items    []string
	Timeline []types.TimelineEntry
	Grid     []types.GridEntry
}

// Entry is the shape shared by experience, education, project,
// certification and language rows.
type Entry struct {
	Heading     string
	Subheading  string
	Location    string
	Dates       string
	Link        string
	Description string
	Bullets     []string
}

// SkillGroup is one skill category with its non-blank skill names.
type SkillGroup struct {
	Name   string
	Skills []SkillItem
}

// SkillItem is a named skill and its optional level.
type SkillItem struct {
	Name  string
	Level string
}

var sectionTitles = map[string]string{
	types.SectionSummary:        "Summary",
	types.SectionExperience:     "Experience",
	types.SectionEducation:      "Education",
	types.SectionSkills:         "Skills",
	types.SectionProjects:       "Projects",
	types.SectionCertifications: "Certifications",
	types.SectionLanguages:      "Languages",
}

// BuildView projects doc into a View. Sections follow doc.Sections, the
// personal block is always the header, and empty collections are skipped.
// doc is only read.
func BuildView(doc *types.Document, style types.StyleSettings) *View {
	v := &View{
		Template: doc.Template,
		Title:    doc.PersonalInfo.FullName,
		Personal: doc.PersonalInfo,
		Contacts: contacts(doc.PersonalInfo),
		Style:    style,
	}
	if v.Title == "" {
		v.Title = doc.Name
	}

	for _, id := range doc.Sections {
		switch id {
		case types.SectionPersonal:
			continue
		case types.SectionCustom:
			for _, cs := range doc.CustomSectionList() {
				if s, ok := customSection(cs); ok {
					v.Sections = append(v.Sections, s)
				}
			}
			continue
		}

		s := Section{ID: id, Title: sectionTitles[id], Kind: KindEntries}
		switch id {
		case types.SectionSummary:
			s.Kind = KindSummary
			s.Text = strings.TrimSpace(doc.SummaryText())
		case types.SectionExperience:
			s.Entries = experienceEntries(doc.ExperienceList())
		case types.SectionEducation:
			s.Entries = educationEntries(doc.EducationList())
		case types.SectionSkills:
			s.Kind = KindSkills
			s.Skills = skillGroups(doc.CategoryList())
		case types.SectionProjects:
			s.Entries = projectEntries(doc.ProjectList())
		case types.SectionCertifications:
			s.Entries = certificationEntries(doc.CertificationList())
		case types.SectionLanguages:
			s.Entries = languageEntries(doc.LanguageList())
		default:
			continue
		}
		if !s.empty() {
			v.Sections = append(v.Sections, s)
		}
	}
	return v
}

func (s Section) empty() bool {
	switch s.Kind {
	case KindSummary, KindText:
		return s.Text == ""
	case KindSkills:
		return len(s.Skills) == 0
	case KindList:
		return len(s.Items) == 0
	case KindTimeline:
		return len(s.Timeline) == 0
	case KindGrid:
		return len(s.Grid) == 0
	}
	return len(s.Entries) == 0
}

func contacts(p types.PersonalInfo) []Contact {
	var out []Contact
	add := func(label, value, href string) {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, Contact{Label: label, Value: value, Href: href})
		}
	}
	add("Email", p.Email, mailto(p.Email))
	add("Phone", p.Phone, "")
	add("Location", p.Location, "")
	add("Website", p.Website, p.Website)
	add("LinkedIn", p.LinkedIn, p.LinkedIn)
	add("GitHub", p.GitHub, p.GitHub)
	return out
}

func mailto(email string) string {
	if email = strings.TrimSpace(email); email == "" {
		return ""
	}
	return "mailto:" + email
}

func experienceEntries(items []*types.Experience) []Entry {
	out := make([]Entry, 0, len(items))
	for _, e := range items {
		out = append(out, Entry{
			Heading:     e.Position,
			Subheading:  e.Company,
			Location:    e.Location,
			Dates:       formatDateRange(e.StartDate, e.EndDate, e.Current),
			Description: e.Description,
			Bullets:     nonBlank(e.Bullets),
		})
	}
	return out
}

func educationEntries(items []*types.Education) []Entry {
	out := make([]Entry, 0, len(items))
	for _, e := range items {
		degree := e.Degree
		if e.FieldOfStudy != "" {
			degree = joinNonBlank(", ", e.Degree, e.FieldOfStudy)
		}
		desc := e.Description
		if e.GPA != "" {
			desc = joinNonBlank(" ", "GPA: "+e.GPA+".", desc)
		}
		out = append(out, Entry{
			Heading:     e.School,
			Subheading:  degree,
			Location:    e.Location,
			Dates:       formatDateRange(e.StartDate, e.EndDate, false),
			Description: desc,
		})
	}
	return out
}

func projectEntries(items []*types.Project) []Entry {
	out := make([]Entry, 0, len(items))
	for _, p := range items {
		out = append(out, Entry{
			Heading:     p.Name,
			Subheading:  p.Technologies,
			Dates:       formatDateRange(p.StartDate, p.EndDate, false),
			Link:        p.URL,
			Description: p.Description,
			Bullets:     nonBlank(p.Bullets),
		})
	}
	return out
}

func certificationEntries(items []*types.Certification) []Entry {
	out := make([]Entry, 0, len(items))
	for _, c := range items {
		out = append(out, Entry{
			Heading:     c.Name,
			Subheading:  c.Issuer,
			Dates:       c.Date,
			Link:        c.URL,
			Description: c.Description,
		})
	}
	return out
}

func languageEntries(items []*types.Language) []Entry {
	out := make([]Entry, 0, len(items))
	for _, l := range items {
		out = append(out, Entry{Heading: l.Name, Subheading: string(l.Proficiency)})
	}
	return out
}

func skillGroups(cats []*types.SkillCategory) []SkillGroup {
	var out []SkillGroup
	for _, c := range cats {
		g := SkillGroup{Name: c.Name}
		for _, s := range c.Skills {
			if strings.TrimSpace(s.Name) == "" {
				continue
			}
			g.Skills = append(g.Skills, SkillItem{Name: s.Name, Level: string(s.Level)})
		}
		if len(g.Skills) > 0 {
			out = append(out, g)
		}
	}
	return out
}

func customSection(cs *types.CustomSection) (Section, bool) {
	s := Section{ID: cs.ID, Title: cs.Title, Kind: string(cs.Type)}
	switch cs.Type {
	case types.CustomList:
		s.Items = nonBlank(cs.Items())
	case types.CustomTimeline:
		s.Timeline = cs.Timeline()
	case types.CustomGrid:
		s.Grid = cs.Grid()
	default:
		s.Kind = KindText
		s.Text = strings.TrimSpace(cs.Text())
	}
	return s, !s.empty()
}

func nonBlank(in []string) []string {
	var out []string
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func joinNonBlank(sep string, parts ...string) string {
	return strings.Join(nonBlank(parts), sep)
}
