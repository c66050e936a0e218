package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument_Resume(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	doc := NewDocument(KindResume, "", now)

	assert.Equal(t, KindResume, doc.Kind)
	assert.False(t, doc.HasIdentity())
	assert.Equal(t, DefaultSections, doc.Sections)
	assert.Equal(t, SectionPersonal, doc.Sections[0])
	assert.Equal(t, DefaultTemplate, doc.Template)
	assert.Empty(t, doc.Experience)
	assert.NotNil(t, doc.Experience)
	assert.NotNil(t, doc.Skills.Categories)
	assert.Nil(t, doc.Navigation)
	assert.Nil(t, doc.ThemeSettings)
	assert.Equal(t, now, doc.CreatedAt)
	assert.Equal(t, now, doc.UpdatedAt)

	// The sections slice must not alias the package default.
	doc.Sections[1] = "changed"
	assert.Equal(t, SectionSummary, DefaultSections[1])
}

func TestNewDocument_Portfolio(t *testing.T) {
	doc := NewDocument(KindPortfolio, "abc", time.Now())

	require.NotNil(t, doc.Navigation)
	require.NotNil(t, doc.ThemeSettings)
	assert.Equal(t, ThemeAuto, doc.ThemeSettings.Mode)
	assert.Len(t, doc.Pages, 2)
	assert.NotNil(t, doc.FindPage("home"))
	assert.NotNil(t, doc.FindPage("contact"))
	assert.Nil(t, doc.FindPage("missing"))
	assert.True(t, doc.HasIdentity())
}

func TestDocumentAccessors_NilSafe(t *testing.T) {
	var doc Document

	assert.Empty(t, doc.ExperienceList())
	assert.Empty(t, doc.EducationList())
	assert.Empty(t, doc.ProjectList())
	assert.Empty(t, doc.CertificationList())
	assert.Empty(t, doc.LanguageList())
	assert.Empty(t, doc.CustomSectionList())
	assert.Empty(t, doc.CategoryList())
	assert.Empty(t, doc.PageList())
	assert.Equal(t, "", doc.SummaryText())

	var nilDoc *Document
	assert.Empty(t, nilDoc.ExperienceList())
	assert.Nil(t, nilDoc.Clone())
}

func TestEntityConstructors_Defaults(t *testing.T) {
	exp := NewExperience("e1")
	assert.Equal(t, "e1", exp.ID)
	assert.Equal(t, []string{""}, exp.Bullets)
	assert.Equal(t, "", exp.Company)

	assert.Equal(t, DefaultSkillLevel, NewSkill("s1").Level)
	assert.Equal(t, ProficiencyProfessional, NewLanguage("l1").Proficiency)
	assert.Equal(t, CustomText, NewCustomSection("c1").Type)
	assert.Equal(t, PageCustom, NewPage("p1").Type)
	assert.NotNil(t, NewSkillCategory("k1").Skills)
}

func TestDocument_JSONShape(t *testing.T) {
	doc := SampleDocument(KindPortfolio, time.Now().UTC())

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"personalInfo", "experience", "education", "skills", "customSections", "themeSettings", "navigation", "pages", "sections", "createdAt", "updatedAt"} {
		assert.Contains(t, raw, key)
	}

	var back Document
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, doc.PersonalInfo, back.PersonalInfo)
	assert.Equal(t, doc.CustomSections[0].Items(), back.CustomSections[0].Items())
}

func TestSkillLevelAndProficiencyValid(t *testing.T) {
	assert.True(t, SkillLevel("").Valid())
	assert.True(t, SkillAdvanced.Valid())
	assert.False(t, SkillLevel("Guru").Valid())
	assert.True(t, ProficiencyNative.Valid())
	assert.False(t, Proficiency("").Valid())
}
