package mutation

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/folio-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeCommand(t *testing.T, raw string) Command {
	t.Helper()
	var c Command
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	return c
}

func apply(t *testing.T, m *Mutator, doc *types.Document, raw string) Result {
	t.Helper()
	res, err := decodeCommand(t, raw).Apply(m, doc)
	require.NoError(t, err, raw)
	return res
}

func TestCommand_ResumeFlow(t *testing.T) {
	m := testMutator()
	doc := emptyResume()

	res := apply(t, m, doc, `{"op":"addExperience"}`)
	id := res.CreatedID
	require.NotEmpty(t, id)
	doc = res.Doc

	doc = apply(t, m, doc, `{"op":"updateExperience","id":"`+id+`","patch":{"company":"Acme","current":true}}`).Doc
	doc = apply(t, m, doc, `{"op":"updateExperienceBullet","id":"`+id+`","index":0,"text":"Shipped X"}`).Doc
	doc = apply(t, m, doc, `{"op":"updatePersonalInfo","patch":{"fullName":"Alex","email":"alex@example.com"}}`).Doc
	doc = apply(t, m, doc, `{"op":"updateSummary","text":"Builder of things"}`).Doc
	doc = apply(t, m, doc, `{"op":"moveSection","index":2,"direction":"up"}`).Doc

	assert.Equal(t, "Acme", doc.Experience[0].Company)
	assert.True(t, doc.Experience[0].Current)
	assert.Equal(t, []string{"Shipped X"}, doc.Experience[0].Bullets)
	assert.Equal(t, "Alex", doc.PersonalInfo.FullName)
	assert.Equal(t, "Builder of things", doc.SummaryText())
	assert.Equal(t, types.SectionExperience, doc.Sections[1])
}

func TestCommand_SkillsAndCustomContent(t *testing.T) {
	m := testMutator()
	doc := emptyResume()

	res := apply(t, m, doc, `{"op":"addSkillCategory"}`)
	catID := res.CreatedID
	res = apply(t, m, res.Doc, `{"op":"addSkill","categoryId":"`+catID+`"}`)
	skillID := res.CreatedID
	doc = apply(t, m, res.Doc, `{"op":"updateSkill","categoryId":"`+catID+`","id":"`+skillID+`","patch":{"name":"Go","level":"Advanced"}}`).Doc

	assert.Equal(t, "Go", doc.Skills.Categories[0].Skills[0].Name)
	assert.Equal(t, types.SkillAdvanced, doc.Skills.Categories[0].Skills[0].Level)

	res = apply(t, m, doc, `{"op":"addCustomSection"}`)
	secID := res.CreatedID
	doc = apply(t, m, res.Doc, `{"op":"setCustomContent","id":"`+secID+`","type":"grid","content":[{"title":"Demo","link":"https://example.com"}]}`).Doc

	sec := doc.CustomSections[0]
	assert.Equal(t, types.CustomGrid, sec.Type)
	require.Len(t, sec.Grid(), 1)
	assert.Equal(t, "Demo", sec.Grid()[0].Title)
}

func TestCommand_PortfolioFlow(t *testing.T) {
	m := testMutator()
	doc := types.NewDocument(types.KindPortfolio, "p-1", epoch)

	res := apply(t, m, doc, `{"op":"addNavLink"}`)
	doc = apply(t, m, res.Doc, `{"op":"updateNavLink","id":"`+res.CreatedID+`","patch":{"label":"Blog","url":"/blog"}}`).Doc
	doc = apply(t, m, doc, `{"op":"updateTheme","patch":{"mode":"dark","accentColor":"#00ff00"}}`).Doc
	doc = apply(t, m, doc, `{"op":"setPageHidden","id":"contact","hidden":true}`).Doc

	assert.Equal(t, "Blog", doc.Navigation.Links[0].Label)
	assert.Equal(t, types.ThemeDark, doc.ThemeSettings.Mode)
	assert.Equal(t, "#00ff00", doc.ThemeSettings.AccentColor)
	assert.True(t, doc.FindPage("contact").Hidden)
}

func TestCommand_Errors(t *testing.T) {
	m := testMutator()
	doc := emptyResume()

	tests := []struct {
		name    string
		raw     string
		command bool
	}{
		{"unknown op", `{"op":"explode"}`, true},
		{"missing id", `{"op":"removeExperience"}`, true},
		{"missing patch", `{"op":"updatePersonalInfo"}`, true},
		{"unknown patch field", `{"op":"updatePersonalInfo","patch":{"nickname":"x"}}`, true},
		{"invalid email", `{"op":"updatePersonalInfo","patch":{"email":"not-an-email"}}`, true},
		{"invalid level", `{"op":"updateSkill","categoryId":"c","id":"s","patch":{"level":"Guru"}}`, true},
		{"invalid colour", `{"op":"updateTheme","patch":{"primaryColor":"blurple"}}`, true},
		{"missing index", `{"op":"updateExperienceBullet","id":"x","text":"a"}`, true},
		{"bad direction", `{"op":"moveSection","index":1,"direction":"left"}`, true},
		{"bad custom type", `{"op":"setCustomContent","id":"x","type":"video"}`, true},
		{"not found", `{"op":"removeEducation","id":"missing"}`, false},
		{"immovable", `{"op":"moveSection","index":0,"direction":"up"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := decodeCommand(t, tt.raw).Apply(m, doc)
			require.Error(t, err)
			assert.Same(t, doc, res.Doc)

			var cerr *CommandError
			assert.Equal(t, tt.command, assertAs(err, &cerr))
		})
	}
}

func TestOps_Sorted(t *testing.T) {
	ops := Ops()
	assert.IsIncreasing(t, ops)
	assert.Contains(t, ops, "addExperience")
	assert.Contains(t, ops, "moveNavLink")
}

func assertAs(err error, target **CommandError) bool {
	ce, ok := err.(*CommandError)
	if ok {
		*target = ce
	}
	return ok
}

func TestCommand_EmptyPatchIsNoOp(t *testing.T) {
	m := testMutator()
	resume := emptyResume()
	portfolio := types.NewDocument(types.KindPortfolio, "doc-2", epoch)

	tests := []struct {
		op  string
		doc *types.Document
	}{
		{"updatePersonalInfo", resume},
		{"updateStyle", resume},
		{"updateNavigation", portfolio},
		{"updateTheme", portfolio},
		{"updateFooter", portfolio},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			res := apply(t, m, tt.doc, `{"op":"`+tt.op+`","patch":{}}`)
			assert.Same(t, tt.doc, res.Doc)
		})
	}

	changed := apply(t, m, resume, `{"op":"updatePersonalInfo","patch":{"fullName":"Alex"}}`)
	assert.NotSame(t, resume, changed.Doc)
}
