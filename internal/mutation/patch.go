package mutation

import "github.com/jonathan/folio-builder/internal/types"

// Patches merge only their non-nil fields into the target entity.

// PersonalInfoPatch is a partial PersonalInfo.
type PersonalInfoPatch struct {
	FullName *string `json:"fullName,omitempty"`
	JobTitle *string `json:"jobTitle,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
	Website  *string `json:"website,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	GitHub   *string `json:"github,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

func (p PersonalInfoPatch) apply(v *types.PersonalInfo) {
	set(&v.FullName, p.FullName)
	set(&v.JobTitle, p.JobTitle)
	set(&v.Email, p.Email)
	set(&v.Phone, p.Phone)
	set(&v.Location, p.Location)
	set(&v.Website, p.Website)
	set(&v.LinkedIn, p.LinkedIn)
	set(&v.GitHub, p.GitHub)
	set(&v.Avatar, p.Avatar)
}

// ExperiencePatch is a partial Experience. Bullets change through the bullet operations.
type ExperiencePatch struct {
	Company     *string `json:"company,omitempty"`
	Position    *string `json:"position,omitempty"`
	Location    *string `json:"location,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Current     *bool   `json:"current,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p ExperiencePatch) apply(v *types.Experience) {
	set(&v.Company, p.Company)
	set(&v.Position, p.Position)
	set(&v.Location, p.Location)
	set(&v.StartDate, p.StartDate)
	set(&v.EndDate, p.EndDate)
	set(&v.Current, p.Current)
	set(&v.Description, p.Description)
}

// EducationPatch is a partial Education.
type EducationPatch struct {
	School       *string `json:"school,omitempty"`
	Degree       *string `json:"degree,omitempty"`
	FieldOfStudy *string `json:"fieldOfStudy,omitempty"`
	Location     *string `json:"location,omitempty"`
	StartDate    *string `json:"startDate,omitempty"`
	EndDate      *string `json:"endDate,omitempty"`
	GPA          *string `json:"gpa,omitempty"`
	Description  *string `json:"description,omitempty"`
}

func (p EducationPatch) apply(v *types.Education) {
	set(&v.School, p.School)
	set(&v.Degree, p.Degree)
	set(&v.FieldOfStudy, p.FieldOfStudy)
	set(&v.Location, p.Location)
	set(&v.StartDate, p.StartDate)
	set(&v.EndDate, p.EndDate)
	set(&v.GPA, p.GPA)
	set(&v.Description, p.Description)
}

// ProjectPatch is a partial Project. Bullets change through the bullet operations.
type ProjectPatch struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	URL          *string `json:"url,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	Technologies *string `json:"technologies,omitempty"`
	StartDate    *string `json:"startDate,omitempty"`
	EndDate      *string `json:"endDate,omitempty"`
}

func (p ProjectPatch) apply(v *types.Project) {
	set(&v.Name, p.Name)
	set(&v.Description, p.Description)
	set(&v.URL, p.URL)
	set(&v.ImageURL, p.ImageURL)
	set(&v.Technologies, p.Technologies)
	set(&v.StartDate, p.StartDate)
	set(&v.EndDate, p.EndDate)
}

// CertificationPatch is a partial Certification.
type CertificationPatch struct {
	Name        *string `json:"name,omitempty"`
	Issuer      *string `json:"issuer,omitempty"`
	Date        *string `json:"date,omitempty"`
	URL         *string `json:"url,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p CertificationPatch) apply(v *types.Certification) {
	set(&v.Name, p.Name)
	set(&v.Issuer, p.Issuer)
	set(&v.Date, p.Date)
	set(&v.URL, p.URL)
	set(&v.Description, p.Description)
}

// LanguagePatch is a partial Language.
type LanguagePatch struct {
	Name        *string            `json:"name,omitempty"`
	Proficiency *types.Proficiency `json:"proficiency,omitempty" validate:"omitempty,oneof='Elementary' 'Limited Working' 'Professional Working' 'Full Professional' 'Native'"`
}

func (p LanguagePatch) apply(v *types.Language) {
	set(&v.Name, p.Name)
	set(&v.Proficiency, p.Proficiency)
}

// SkillCategoryPatch is a partial SkillCategory.
type SkillCategoryPatch struct {
	Name *string `json:"name,omitempty"`
}

func (p SkillCategoryPatch) apply(v *types.SkillCategory) {
	set(&v.Name, p.Name)
}

// SkillPatch is a partial Skill.
type SkillPatch struct {
	Name  *string           `json:"name,omitempty"`
	Level *types.SkillLevel `json:"level,omitempty" validate:"omitempty,oneof=Beginner Intermediate Advanced Expert"`
}

func (p SkillPatch) apply(v *types.Skill) {
	set(&v.Name, p.Name)
	set(&v.Level, p.Level)
}

// CustomSectionPatch is a partial CustomSection. Changing Type resets the
// content to the empty value of the new type.
type CustomSectionPatch struct {
	Title *string                  `json:"title,omitempty"`
	Type  *types.CustomSectionType `json:"type,omitempty" validate:"omitempty,oneof=text list timeline grid"`
}

func (p CustomSectionPatch) apply(v *types.CustomSection) {
	set(&v.Title, p.Title)
	if p.Type != nil && *p.Type != v.Type {
		v.Type = *p.Type
		v.Content = types.EmptyContent(v.Type)
	}
}

// NavLinkPatch is a partial NavLink.
type NavLinkPatch struct {
	Label *string `json:"label,omitempty"`
	URL   *string `json:"url,omitempty"`
}

func (p NavLinkPatch) apply(v *types.NavLink) {
	set(&v.Label, p.Label)
	set(&v.URL, p.URL)
}

// NavigationPatch is a partial Navigation excluding links.
type NavigationPatch struct {
	Title       *string `json:"title,omitempty"`
	Layout      *string `json:"layout,omitempty" validate:"omitempty,oneof=horizontal vertical centered"`
	DisplayMode *string `json:"displayMode,omitempty" validate:"omitempty,oneof=text icons both"`
}

func (p NavigationPatch) apply(v *types.Navigation) {
	set(&v.Title, p.Title)
	set(&v.Layout, p.Layout)
	set(&v.DisplayMode, p.DisplayMode)
}

// ThemePatch is a partial ThemeSettings.
type ThemePatch struct {
	Mode            *types.ThemeMode `json:"mode,omitempty" validate:"omitempty,oneof=light dark auto"`
	PrimaryColor    *string          `json:"primaryColor,omitempty" validate:"omitempty,hexcolor|rgb|rgba|hsl"`
	SecondaryColor  *string          `json:"secondaryColor,omitempty" validate:"omitempty,hexcolor|rgb|rgba|hsl"`
	AccentColor     *string          `json:"accentColor,omitempty" validate:"omitempty,hexcolor|rgb|rgba|hsl"`
	BackgroundColor *string          `json:"backgroundColor,omitempty" validate:"omitempty,hexcolor|rgb|rgba|hsl"`
	TextColor       *string          `json:"textColor,omitempty" validate:"omitempty,hexcolor|rgb|rgba|hsl"`
	HeadingFont     *string          `json:"headingFont,omitempty"`
	BodyFont        *string          `json:"bodyFont,omitempty"`
	Spacing         *string          `json:"spacing,omitempty"`
	BorderRadius    *string          `json:"borderRadius,omitempty"`
}

func (p ThemePatch) apply(v *types.ThemeSettings) {
	set(&v.Mode, p.Mode)
	set(&v.PrimaryColor, p.PrimaryColor)
	set(&v.SecondaryColor, p.SecondaryColor)
	set(&v.AccentColor, p.AccentColor)
	set(&v.BackgroundColor, p.BackgroundColor)
	set(&v.TextColor, p.TextColor)
	set(&v.HeadingFont, p.HeadingFont)
	set(&v.BodyFont, p.BodyFont)
	set(&v.Spacing, p.Spacing)
	set(&v.BorderRadius, p.BorderRadius)
}

// StylePatch is a partial StyleSettings.
type StylePatch struct {
	FontFamily     *string  `json:"fontFamily,omitempty"`
	FontSize       *int     `json:"fontSize,omitempty" validate:"omitempty,min=6,max=32"`
	HeadingSize    *int     `json:"headingSize,omitempty" validate:"omitempty,min=8,max=64"`
	LineHeight     *float64 `json:"lineHeight,omitempty" validate:"omitempty,min=0.8,max=3"`
	PrimaryColor   *string  `json:"primaryColor,omitempty" validate:"omitempty,hexcolor|rgb|rgba|hsl"`
	TextColor      *string  `json:"textColor,omitempty" validate:"omitempty,hexcolor|rgb|rgba|hsl"`
	SectionSpacing *int     `json:"sectionSpacing,omitempty" validate:"omitempty,min=0,max=96"`
}

func (p StylePatch) apply(v *types.StyleSettings) {
	set(&v.FontFamily, p.FontFamily)
	set(&v.FontSize, p.FontSize)
	set(&v.HeadingSize, p.HeadingSize)
	set(&v.LineHeight, p.LineHeight)
	set(&v.PrimaryColor, p.PrimaryColor)
	set(&v.TextColor, p.TextColor)
	set(&v.SectionSpacing, p.SectionSpacing)
}

// PagePatch is a partial Page.
type PagePatch struct {
	Name          *string              `json:"name,omitempty"`
	Type          *types.PageType      `json:"type,omitempty" validate:"omitempty,oneof=home contact custom"`
	Content       *string              `json:"content,omitempty"`
	StyleSettings *types.StyleSettings `json:"styleSettings,omitempty"`
	Hidden        *bool                `json:"hidden,omitempty"`
}

func (p PagePatch) apply(v *types.Page) {
	set(&v.Name, p.Name)
	set(&v.Type, p.Type)
	set(&v.Content, p.Content)
	if p.StyleSettings != nil {
		s := *p.StyleSettings
		v.StyleSettings = &s
	}
	set(&v.Hidden, p.Hidden)
}

// FooterPatch is a partial Footer.
type FooterPatch struct {
	Copyright *string `json:"copyright,omitempty"`
}

func (p FooterPatch) apply(v *types.Footer) {
	set(&v.Copyright, p.Copyright)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Ptr returns a pointer to v; convenient for building patches.
func Ptr[T any](v T) *T {
	return &v
}
