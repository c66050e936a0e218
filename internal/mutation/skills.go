package mutation

import "github.com/jonathan/folio-builder/internal/types"

// AddSkillCategory appends an empty category and returns its id.
func (m *Mutator) AddSkillCategory(doc *types.Document) (*types.Document, string) {
	item := types.NewSkillCategory(m.newID())
	next := m.stamp(doc)
	next.Skills = types.Skills{Categories: appendItem(doc.CategoryList(), item)}
	return next, item.ID
}

// UpdateSkillCategory merges patch into the matching category.
func (m *Mutator) UpdateSkillCategory(doc *types.Document, id string, patch SkillCategoryPatch) (*types.Document, error) {
	items, ok := replaceByID(doc.CategoryList(), id, categoryID, func(c *types.SkillCategory) {
		patch.apply(c)
	})
	if !ok {
		return doc, notFound("skill category", id)
	}
	next := m.stamp(doc)
	next.Skills = types.Skills{Categories: items}
	return next, nil
}

// RemoveSkillCategory drops the matching category with all its skills.
func (m *Mutator) RemoveSkillCategory(doc *types.Document, id string) (*types.Document, error) {
	items, ok := removeByID(doc.CategoryList(), id, categoryID)
	if !ok {
		return doc, notFound("skill category", id)
	}
	next := m.stamp(doc)
	next.Skills = types.Skills{Categories: items}
	return next, nil
}

// AddSkill appends an empty skill to the matching category and returns its id.
func (m *Mutator) AddSkill(doc *types.Document, catID string) (*types.Document, string, error) {
	item := types.NewSkill(m.newID())
	items, ok := replaceByID(doc.CategoryList(), catID, categoryID, func(c *types.SkillCategory) {
		c.Skills = appendItem(c.Skills, item)
	})
	if !ok {
		return doc, "", notFound("skill category", catID)
	}
	next := m.stamp(doc)
	next.Skills = types.Skills{Categories: items}
	return next, item.ID, nil
}

// UpdateSkill merges patch into the skill addressed by (catID, id).
func (m *Mutator) UpdateSkill(doc *types.Document, catID, id string, patch SkillPatch) (*types.Document, error) {
	return m.editSkills(doc, catID, id, func(skills []*types.Skill) ([]*types.Skill, bool) {
		return replaceByID(skills, id, skillID, func(s *types.Skill) {
			patch.apply(s)
		})
	})
}

// RemoveSkill drops the skill addressed by (catID, id).
func (m *Mutator) RemoveSkill(doc *types.Document, catID, id string) (*types.Document, error) {
	return m.editSkills(doc, catID, id, func(skills []*types.Skill) ([]*types.Skill, bool) {
		return removeByID(skills, id, skillID)
	})
}

func (m *Mutator) editSkills(doc *types.Document, catID, id string, edit func([]*types.Skill) ([]*types.Skill, bool)) (*types.Document, error) {
	cat := findByID(doc.CategoryList(), catID, categoryID)
	if cat == nil {
		return doc, notFound("skill category", catID)
	}
	skills, ok := edit(cat.Skills)
	if !ok {
		return doc, notFound("skill", id)
	}
	items, _ := replaceByID(doc.CategoryList(), catID, categoryID, func(c *types.SkillCategory) {
		c.Skills = skills
	})
	next := m.stamp(doc)
	next.Skills = types.Skills{Categories: items}
	return next, nil
}
