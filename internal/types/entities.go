package types

// SkillLevel is the optional proficiency attached to a skill.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
	SkillExpert       SkillLevel = "Expert"
)

// DefaultSkillLevel is the mid-tier level assigned to new skills.
const DefaultSkillLevel = SkillIntermediate

// SkillLevels lists the accepted levels in ascending order.
var SkillLevels = []SkillLevel{SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert}

// Valid reports whether l is a known level. The empty level is valid (unset).
func (l SkillLevel) Valid() bool {
	if l == "" {
		return true
	}
	for _, known := range SkillLevels {
		if l == known {
			return true
		}
	}
	return false
}

// Proficiency is a spoken-language proficiency tier.
type Proficiency string

const (
	ProficiencyElementary       Proficiency = "Elementary"
	ProficiencyLimitedWorking   Proficiency = "Limited Working"
	ProficiencyProfessional     Proficiency = "Professional Working"
	ProficiencyFullProfessional Proficiency = "Full Professional"
	ProficiencyNative           Proficiency = "Native"
)

// DefaultLanguageProficiency is the professional-tier default for new languages.
const DefaultLanguageProficiency = ProficiencyProfessional

// Proficiencies lists the accepted tiers in ascending order.
var Proficiencies = []Proficiency{
	ProficiencyElementary,
	ProficiencyLimitedWorking,
	ProficiencyProfessional,
	ProficiencyFullProfessional,
	ProficiencyNative,
}

// Valid reports whether p is a known tier.
func (p Proficiency) Valid() bool {
	for _, known := range Proficiencies {
		if p == known {
			return true
		}
	}
	return false
}

// Experience is one employment entry.
type Experience struct {
	ID          string   `json:"id"`
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Current     bool     `json:"current,omitempty"`
	Description string   `json:"description,omitempty"`
	Bullets     []string `json:"bullets"`
}

// Education is one school entry.
type Education struct {
	ID           string `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	Location     string `json:"location,omitempty"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	GPA          string `json:"gpa,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Skills is the two-level category -> skill structure.
type Skills struct {
	Categories []*SkillCategory `json:"categories"`
}

// SkillCategory groups skills under a heading.
type SkillCategory struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Skills []*Skill `json:"skills"`
}

// Skill is a single named skill.
type Skill struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Level SkillLevel `json:"level,omitempty"`
}

// Project is a portfolio/resume project entry.
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url,omitempty"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	Technologies string   `json:"technologies"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Bullets      []string `json:"bullets"`
}

// Certification is a credential entry.
type Certification struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

// Language is a spoken language entry.
type Language struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Proficiency Proficiency `json:"proficiency"`
}

// NewExperience returns an empty experience with one empty bullet slot.
func NewExperience(id string) *Experience {
	return &Experience{ID: id, Bullets: []string{""}}
}

// NewEducation returns an empty education entry.
func NewEducation(id string) *Education {
	return &Education{ID: id}
}

// NewSkillCategory returns an empty category.
func NewSkillCategory(id string) *SkillCategory {
	return &SkillCategory{ID: id, Skills: []*Skill{}}
}

// NewSkill returns an empty skill at the default level.
func NewSkill(id string) *Skill {
	return &Skill{ID: id, Level: DefaultSkillLevel}
}

// NewProject returns an empty project with one empty bullet slot.
func NewProject(id string) *Project {
	return &Project{ID: id, Bullets: []string{""}}
}

// NewCertification returns an empty certification.
func NewCertification(id string) *Certification {
	return &Certification{ID: id}
}

// NewLanguage returns an empty language at the default proficiency.
func NewLanguage(id string) *Language {
	return &Language{ID: id, Proficiency: DefaultLanguageProficiency}
}
