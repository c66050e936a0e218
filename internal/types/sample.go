package types

import (
	"time"

	"github.com/google/uuid"
)

// SampleDocument returns a populated document used as a seed for new
// documents and for previewing templates.
func SampleDocument(kind Kind, now time.Time) *Document {
	doc := NewDocument(kind, "", now)
	doc.Name = "Sample " + string(kind)
	doc.PersonalInfo = PersonalInfo{
		FullName: "Alex Morgan",
		JobTitle: "Senior Software Engineer",
		Email:    "alex.morgan@example.com",
		Phone:    "+1 555 0100",
		Location: "Portland, OR",
		Website:  "https://alexmorgan.dev",
		GitHub:   "https://github.com/alexmorgan",
	}
	doc.Summary = &Summary{Summary: "Backend engineer focused on reliable data systems and developer tooling."}
	doc.Experience = []*Experience{
		{
			ID:        uuid.NewString(),
			Company:   "Acme Corp",
			Position:  "Senior Software Engineer",
			Location:  "Remote",
			StartDate: "2021-03",
			Current:   true,
			Bullets: []string{
				"Led migration of billing pipeline to event sourcing, cutting reconciliation time by 70%",
				"Mentored four engineers through their first on-call rotations",
			},
		},
		{
			ID:        uuid.NewString(),
			Company:   "Globex",
			Position:  "Software Engineer",
			StartDate: "2017-06",
			EndDate:   "2021-02",
			Bullets:   []string{"Built the internal deploy tool used by 40 teams"},
		},
	}
	doc.Education = []*Education{
		{
			ID:           uuid.NewString(),
			School:       "State University",
			Degree:       "B.Sc.",
			FieldOfStudy: "Computer Science",
			StartDate:    "2013",
			EndDate:      "2017",
		},
	}
	doc.Skills = Skills{Categories: []*SkillCategory{
		{
			ID:   uuid.NewString(),
			Name: "Languages",
			Skills: []*Skill{
				{ID: uuid.NewString(), Name: "Go", Level: SkillExpert},
				{ID: uuid.NewString(), Name: "SQL", Level: SkillAdvanced},
			},
		},
		{
			ID:     uuid.NewString(),
			Name:   "Infrastructure",
			Skills: []*Skill{{ID: uuid.NewString(), Name: "PostgreSQL", Level: SkillAdvanced}},
		},
	}}
	doc.Projects = []*Project{
		{
			ID:           uuid.NewString(),
			Name:         "pgwatch",
			Description:  "Query latency dashboard for PostgreSQL",
			URL:          "https://github.com/alexmorgan/pgwatch",
			Technologies: "Go, PostgreSQL",
			Bullets:      []string{"300+ stars"},
		},
	}
	doc.Certifications = []*Certification{
		{ID: uuid.NewString(), Name: "Certified Kubernetes Administrator", Issuer: "CNCF", Date: "2022"},
	}
	doc.Languages = []*Language{
		{ID: uuid.NewString(), Name: "English", Proficiency: ProficiencyNative},
		{ID: uuid.NewString(), Name: "Spanish", Proficiency: ProficiencyLimitedWorking},
	}
	doc.CustomSections = []*CustomSection{
		{ID: uuid.NewString(), Title: "Talks", Type: CustomList, Content: ListContent{"GopherCon 2023: Boring Migrations"}},
	}

	if kind == KindPortfolio {
		doc.Navigation.Title = doc.PersonalInfo.FullName
		doc.Navigation.Links = []*NavLink{
			{ID: uuid.NewString(), Label: "GitHub", URL: doc.PersonalInfo.GitHub},
		}
		doc.Footer = &Footer{Copyright: "© Alex Morgan"}
		doc.Pages = append(doc.Pages, &Page{
			ID:      "about",
			Name:    "About",
			Type:    PageCustom,
			Content: "I build tools that make databases less scary.",
		})
	}
	return doc
}
