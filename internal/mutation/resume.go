package mutation

import "github.com/jonathan/folio-builder/internal/types"

// UpdatePersonalInfo merges patch into the personal info block.
func (m *Mutator) UpdatePersonalInfo(doc *types.Document, patch PersonalInfoPatch) *types.Document {
	if patch == (PersonalInfoPatch{}) {
		return doc
	}
	next := m.stamp(doc)
	patch.apply(&next.PersonalInfo)
	return next
}

// UpdateSummary replaces the summary text.
func (m *Mutator) UpdateSummary(doc *types.Document, text string) *types.Document {
	next := m.stamp(doc)
	next.Summary = &types.Summary{Summary: text}
	return next
}

// ---------------------------------------------------------------------
// Experience
// ---------------------------------------------------------------------

// AddExperience appends an empty experience entry and returns its id.
func (m *Mutator) AddExperience(doc *types.Document) (*types.Document, string) {
	item := types.NewExperience(m.newID())
	next := m.stamp(doc)
	next.Experience = appendItem(doc.ExperienceList(), item)
	return next, item.ID
}

// UpdateExperience merges patch into the matching entry.
func (m *Mutator) UpdateExperience(doc *types.Document, id string, patch ExperiencePatch) (*types.Document, error) {
	items, ok := replaceByID(doc.ExperienceList(), id, experienceID, func(e *types.Experience) {
		patch.apply(e)
	})
	if !ok {
		return doc, notFound("experience", id)
	}
	next := m.stamp(doc)
	next.Experience = items
	return next, nil
}

// RemoveExperience drops the matching entry.
func (m *Mutator) RemoveExperience(doc *types.Document, id string) (*types.Document, error) {
	items, ok := removeByID(doc.ExperienceList(), id, experienceID)
	if !ok {
		return doc, notFound("experience", id)
	}
	next := m.stamp(doc)
	next.Experience = items
	return next, nil
}

// AddExperienceBullet appends an empty bullet to the matching entry.
func (m *Mutator) AddExperienceBullet(doc *types.Document, id string) (*types.Document, error) {
	items, ok := replaceByID(doc.ExperienceList(), id, experienceID, func(e *types.Experience) {
		e.Bullets = appendItem(e.Bullets, "")
	})
	if !ok {
		return doc, notFound("experience", id)
	}
	next := m.stamp(doc)
	next.Experience = items
	return next, nil
}

// UpdateExperienceBullet replaces the bullet at index.
func (m *Mutator) UpdateExperienceBullet(doc *types.Document, id string, index int, text string) (*types.Document, error) {
	e := findByID(doc.ExperienceList(), id, experienceID)
	if e == nil {
		return doc, notFound("experience", id)
	}
	if index < 0 || index >= len(e.Bullets) {
		return doc, bulletNotFound("experience", id, index)
	}
	items, _ := replaceByID(doc.ExperienceList(), id, experienceID, func(e *types.Experience) {
		e.Bullets = setAt(e.Bullets, index, text)
	})
	next := m.stamp(doc)
	next.Experience = items
	return next, nil
}

// RemoveExperienceBullet drops the bullet at index. Removing the last bullet is allowed.
func (m *Mutator) RemoveExperienceBullet(doc *types.Document, id string, index int) (*types.Document, error) {
	e := findByID(doc.ExperienceList(), id, experienceID)
	if e == nil {
		return doc, notFound("experience", id)
	}
	if index < 0 || index >= len(e.Bullets) {
		return doc, bulletNotFound("experience", id, index)
	}
	items, _ := replaceByID(doc.ExperienceList(), id, experienceID, func(e *types.Experience) {
		e.Bullets = deleteAt(e.Bullets, index)
	})
	next := m.stamp(doc)
	next.Experience = items
	return next, nil
}

// ---------------------------------------------------------------------
// Education
// ---------------------------------------------------------------------

// AddEducation appends an empty education entry and returns its id.
func (m *Mutator) AddEducation(doc *types.Document) (*types.Document, string) {
	item := types.NewEducation(m.newID())
	next := m.stamp(doc)
	next.Education = appendItem(doc.EducationList(), item)
	return next, item.ID
}

// UpdateEducation merges patch into the matching entry.
func (m *Mutator) UpdateEducation(doc *types.Document, id string, patch EducationPatch) (*types.Document, error) {
	items, ok := replaceByID(doc.EducationList(), id, educationID, func(e *types.Education) {
		patch.apply(e)
	})
	if !ok {
		return doc, notFound("education", id)
	}
	next := m.stamp(doc)
	next.Education = items
	return next, nil
}

// RemoveEducation drops the matching entry.
func (m *Mutator) RemoveEducation(doc *types.Document, id string) (*types.Document, error) {
	items, ok := removeByID(doc.EducationList(), id, educationID)
	if !ok {
		return doc, notFound("education", id)
	}
	next := m.stamp(doc)
	next.Education = items
	return next, nil
}

// ---------------------------------------------------------------------
// Projects
// ---------------------------------------------------------------------

// AddProject appends an empty project and returns its id.
func (m *Mutator) AddProject(doc *types.Document) (*types.Document, string) {
	item := types.NewProject(m.newID())
	next := m.stamp(doc)
	next.Projects = appendItem(doc.ProjectList(), item)
	return next, item.ID
}

// UpdateProject merges patch into the matching project.
func (m *Mutator) UpdateProject(doc *types.Document, id string, patch ProjectPatch) (*types.Document, error) {
	items, ok := replaceByID(doc.ProjectList(), id, projectID, func(p *types.Project) {
		patch.apply(p)
	})
	if !ok {
		return doc, notFound("project", id)
	}
	next := m.stamp(doc)
	next.Projects = items
	return next, nil
}

// RemoveProject drops the matching project.
func (m *Mutator) RemoveProject(doc *types.Document, id string) (*types.Document, error) {
	items, ok := removeByID(doc.ProjectList(), id, projectID)
	if !ok {
		return doc, notFound("project", id)
	}
	next := m.stamp(doc)
	next.Projects = items
	return next, nil
}

// AddProjectBullet appends an empty bullet to the matching project.
func (m *Mutator) AddProjectBullet(doc *types.Document, id string) (*types.Document, error) {
	items, ok := replaceByID(doc.ProjectList(), id, projectID, func(p *types.Project) {
		p.Bullets = appendItem(p.Bullets, "")
	})
	if !ok {
		return doc, notFound("project", id)
	}
	next := m.stamp(doc)
	next.Projects = items
	return next, nil
}

// UpdateProjectBullet replaces the bullet at index.
func (m *Mutator) UpdateProjectBullet(doc *types.Document, id string, index int, text string) (*types.Document, error) {
	p := findByID(doc.ProjectList(), id, projectID)
	if p == nil {
		return doc, notFound("project", id)
	}
	if index < 0 || index >= len(p.Bullets) {
		return doc, bulletNotFound("project", id, index)
	}
	items, _ := replaceByID(doc.ProjectList(), id, projectID, func(p *types.Project) {
		p.Bullets = setAt(p.Bullets, index, text)
	})
	next := m.stamp(doc)
	next.Projects = items
	return next, nil
}

// RemoveProjectBullet drops the bullet at index.
func (m *Mutator) RemoveProjectBullet(doc *types.Document, id string, index int) (*types.Document, error) {
	p := findByID(doc.ProjectList(), id, projectID)
	if p == nil {
		return doc, notFound("project", id)
	}
	if index < 0 || index >= len(p.Bullets) {
		return doc, bulletNotFound("project", id, index)
	}
	items, _ := replaceByID(doc.ProjectList(), id, projectID, func(p *types.Project) {
		p.Bullets = deleteAt(p.Bullets, index)
	})
	next := m.stamp(doc)
	next.Projects = items
	return next, nil
}

// ---------------------------------------------------------------------
// Certifications
// ---------------------------------------------------------------------

// AddCertification appends an empty certification and returns its id.
func (m *Mutator) AddCertification(doc *types.Document) (*types.Document, string) {
	item := types.NewCertification(m.newID())
	next := m.stamp(doc)
	next.Certifications = appendItem(doc.CertificationList(), item)
	return next, item.ID
}

// UpdateCertification merges patch into the matching certification.
func (m *Mutator) UpdateCertification(doc *types.Document, id string, patch CertificationPatch) (*types.Document, error) {
	items, ok := replaceByID(doc.CertificationList(), id, certificationID, func(c *types.Certification) {
		patch.apply(c)
	})
	if !ok {
		return doc, notFound("certification", id)
	}
	next := m.stamp(doc)
	next.Certifications = items
	return next, nil
}

// RemoveCertification drops the matching certification.
func (m *Mutator) RemoveCertification(doc *types.Document, id string) (*types.Document, error) {
	items, ok := removeByID(doc.CertificationList(), id, certificationID)
	if !ok {
		return doc, notFound("certification", id)
	}
	next := m.stamp(doc)
	next.Certifications = items
	return next, nil
}

// ---------------------------------------------------------------------
// Languages
// ---------------------------------------------------------------------

// AddLanguage appends an empty language and returns its id.
func (m *Mutator) AddLanguage(doc *types.Document) (*types.Document, string) {
	item := types.NewLanguage(m.newID())
	next := m.stamp(doc)
	next.Languages = appendItem(doc.LanguageList(), item)
	return next, item.ID
}

// UpdateLanguage merges patch into the matching language.
func (m *Mutator) UpdateLanguage(doc *types.Document, id string, patch LanguagePatch) (*types.Document, error) {
	items, ok := replaceByID(doc.LanguageList(), id, languageID, func(l *types.Language) {
		patch.apply(l)
	})
	if !ok {
		return doc, notFound("language", id)
	}
	next := m.stamp(doc)
	next.Languages = items
	return next, nil
}

// RemoveLanguage drops the matching language.
func (m *Mutator) RemoveLanguage(doc *types.Document, id string) (*types.Document, error) {
	items, ok := removeByID(doc.LanguageList(), id, languageID)
	if !ok {
		return doc, notFound("language", id)
	}
	next := m.stamp(doc)
	next.Languages = items
	return next, nil
}

func setAt(items []string, index int, value string) []string {
	out := make([]string, len(items))
	copy(out, items)
	out[index] = value
	return out
}

func deleteAt(items []string, index int) []string {
	out := make([]string, 0, len(items)-1)
	out = append(out, items[:index]...)
	return append(out, items[index+1:]...)
}
