package mutation

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/folio-builder/internal/types"
)

var validate = validator.New()

// Command is the wire form of one operation, e.g.
//
//	{"op":"updateExperience","id":"...","patch":{"company":"Acme"}}
//	{"op":"updateSkill","categoryId":"...","id":"...","patch":{"level":"Advanced"}}
//	{"op":"moveSection","index":3,"direction":"up"}
type Command struct {
	Op         string                  `json:"op"`
	ID         string                  `json:"id,omitempty"`
	CategoryID string                  `json:"categoryId,omitempty"`
	Index      *int                    `json:"index,omitempty"`
	Direction  string                  `json:"direction,omitempty"`
	Text       *string                 `json:"text,omitempty"`
	Hidden     *bool                   `json:"hidden,omitempty"`
	Type       types.CustomSectionType `json:"type,omitempty"`
	Patch      json.RawMessage         `json:"patch,omitempty"`
	Content    json.RawMessage         `json:"content,omitempty"`
}

// Result is the outcome of an applied command. CreatedID is set by add operations.
type Result struct {
	Doc       *types.Document
	CreatedID string
}

type handler func(m *Mutator, c Command, doc *types.Document) (Result, error)

// Apply decodes the command arguments and runs the named operation. A
// *CommandError reports a malformed command; a *NotFoundError or ErrImmovable
// comes from the operation itself and carries the unchanged document.
func (c Command) Apply(m *Mutator, doc *types.Document) (Result, error) {
	h, ok := handlers[c.Op]
	if !ok {
		return Result{Doc: doc}, &CommandError{Op: c.Op, Message: "unknown operation"}
	}
	return h(m, c, doc)
}

// Ops lists the supported operation names in sorted order.
func Ops() []string {
	out := make([]string, 0, len(handlers))
	for op := range handlers {
		out = append(out, op)
	}
	sort.Strings(out)
	return out
}

var handlers = map[string]handler{
	"updatePersonalInfo": patchDoc(func(m *Mutator, d *types.Document, p PersonalInfoPatch) *types.Document {
		return m.UpdatePersonalInfo(d, p)
	}),
	"updateSummary": func(m *Mutator, c Command, d *types.Document) (Result, error) {
		text, err := c.requireText()
		if err != nil {
			return Result{Doc: d}, err
		}
		return Result{Doc: m.UpdateSummary(d, text)}, nil
	},
	"rename": func(m *Mutator, c Command, d *types.Document) (Result, error) {
		text, err := c.requireText()
		if err != nil {
			return Result{Doc: d}, err
		}
		return Result{Doc: m.Rename(d, text)}, nil
	},
	"setTemplate": func(m *Mutator, c Command, d *types.Document) (Result, error) {
		text, err := c.requireText()
		if err != nil {
			return Result{Doc: d}, err
		}
		return Result{Doc: m.SetTemplate(d, text)}, nil
	},
	"updateStyle": patchDoc(func(m *Mutator, d *types.Document, p StylePatch) *types.Document {
		return m.UpdateStyle(d, p)
	}),
	"updateFooter": patchDoc(func(m *Mutator, d *types.Document, p FooterPatch) *types.Document {
		return m.UpdateFooter(d, p)
	}),

	"addExperience":          add((*Mutator).AddExperience),
	"updateExperience":       patchByID((*Mutator).UpdateExperience),
	"removeExperience":       byID((*Mutator).RemoveExperience),
	"addExperienceBullet":    byID((*Mutator).AddExperienceBullet),
	"updateExperienceBullet": bulletText((*Mutator).UpdateExperienceBullet),
	"removeExperienceBullet": bulletIndex((*Mutator).RemoveExperienceBullet),

	"addEducation":    add((*Mutator).AddEducation),
	"updateEducation": patchByID((*Mutator).UpdateEducation),
	"removeEducation": byID((*Mutator).RemoveEducation),

	"addProject":          add((*Mutator).AddProject),
	"updateProject":       patchByID((*Mutator).UpdateProject),
	"removeProject":       byID((*Mutator).RemoveProject),
	"addProjectBullet":    byID((*Mutator).AddProjectBullet),
	"updateProjectBullet": bulletText((*Mutator).UpdateProjectBullet),
	"removeProjectBullet": bulletIndex((*Mutator).RemoveProjectBullet),

	"addCertification":    add((*Mutator).AddCertification),
	"updateCertification": patchByID((*Mutator).UpdateCertification),
	"removeCertification": byID((*Mutator).RemoveCertification),

	"addLanguage":    add((*Mutator).AddLanguage),
	"updateLanguage": patchByID((*Mutator).UpdateLanguage),
	"removeLanguage": byID((*Mutator).RemoveLanguage),

	"addCustomSection":    add((*Mutator).AddCustomSection),
	"updateCustomSection": patchByID((*Mutator).UpdateCustomSection),
	"removeCustomSection": byID((*Mutator).RemoveCustomSection),
	"setCustomContent": func(m *Mutator, c Command, d *types.Document) (Result, error) {
		if err := c.requireID(); err != nil {
			return Result{Doc: d}, err
		}
		if !c.Type.Valid() {
			return Result{Doc: d}, &CommandError{Op: c.Op, Message: "type must be text, list, timeline or grid"}
		}
		content, err := types.DecodeCustomContent(c.Type, c.Content)
		if err != nil {
			return Result{Doc: d}, &CommandError{Op: c.Op, Message: "invalid content", Cause: err}
		}
		next, err := m.SetCustomContent(d, c.ID, content)
		return Result{Doc: next}, err
	},

	"addSkillCategory":    add((*Mutator).AddSkillCategory),
	"updateSkillCategory": patchByID((*Mutator).UpdateSkillCategory),
	"removeSkillCategory": byID((*Mutator).RemoveSkillCategory),
	"addSkill": func(m *Mutator, c Command, d *types.Document) (Result, error) {
		if c.CategoryID == "" {
			return Result{Doc: d}, &CommandError{Op: c.Op, Message: "categoryId is required"}
		}
		next, id, err := m.AddSkill(d, c.CategoryID)
		return Result{Doc: next, CreatedID: id}, err
	},
	"updateSkill": func(m *Mutator, c Command, d *types.Document) (Result, error) {
		if err := c.requireSkill(); err != nil {
			return Result{Doc: d}, err
		}
		var p SkillPatch
		if err := c.decodePatch(&p); err != nil {
			return Result{Doc: d}, err
		}
		next, err := m.UpdateSkill(d, c.CategoryID, c.ID, p)
		return Result{Doc: next}, err
	},
	"removeSkill": func(m *Mutator, c Command, d *types.Document) (Result, error) {
		if err := c.requireSkill(); err != nil {
			return Result{Doc: d}, err
		}
		next, err := m.RemoveSkill(d, c.CategoryID, c.ID)
		return Result{Doc: next}, err
	},

	"moveSection": move((*Mutator).MoveSection),
	"moveNavLink": move((*Mutator).MoveNavLink),

	"addNavLink":    add((*Mutator).AddNavLink),
	"updateNavLink": patchByID((*Mutator).UpdateNavLink),
	"removeNavLink": byID((*Mutator).RemoveNavLink),
	"updateNavigation": patchDoc(func(m *Mutator, d *types.Document, p NavigationPatch) *types.Document {
		return m.UpdateNavigation(d, p)
	}),
	"updateTheme": patchDoc(func(m *Mutator, d *types.Document, p ThemePatch) *types.Document {
		return m.UpdateTheme(d, p)
	}),
	"addPage":    add((*Mutator).AddPage),
	"updatePage": patchByID((*Mutator).UpdatePage),
	"removePage": byID((*Mutator).RemovePage),
	"setPageHidden": func(m *Mutator, c Command, d *types.Document) (Result, error) {
		if err := c.requireID(); err != nil {
			return Result{Doc: d}, err
		}
		if c.Hidden == nil {
			return Result{Doc: d}, &CommandError{Op: c.Op, Message: "hidden is required"}
		}
		next, err := m.SetPageHidden(d, c.ID, *c.Hidden)
		return Result{Doc: next}, err
	},
}

func add(op func(*Mutator, *types.Document) (*types.Document, string)) handler {
	return func(m *Mutator, _ Command, d *types.Document) (Result, error) {
		next, id := op(m, d)
		return Result{Doc: next, CreatedID: id}, nil
	}
}

func byID(op func(*Mutator, *types.Document, string) (*types.Document, error)) handler {
	return func(m *Mutator, c Command, d *types.Document) (Result, error) {
		if err := c.requireID(); err != nil {
			return Result{Doc: d}, err
		}
		next, err := op(m, d, c.ID)
		return Result{Doc: next}, err
	}
}

func patchByID[P any](op func(*Mutator, *types.Document, string, P) (*types.Document, error)) handler {
	return func(m *Mutator, c Command, d *types.Document) (Result, error) {
		if err := c.requireID(); err != nil {
			return Result{Doc: d}, err
		}
		var p P
		if err := c.decodePatch(&p); err != nil {
			return Result{Doc: d}, err
		}
		next, err := op(m, d, c.ID, p)
		return Result{Doc: next}, err
	}
}

func patchDoc[P any](op func(*Mutator, *types.Document, P) *types.Document) handler {
	return func(m *Mutator, c Command, d *types.Document) (Result, error) {
		var p P
		if err := c.decodePatch(&p); err != nil {
			return Result{Doc: d}, err
		}
		return Result{Doc: op(m, d, p)}, nil
	}
}

func bulletText(op func(*Mutator, *types.Document, string, int, string) (*types.Document, error)) handler {
	return func(m *Mutator, c Command, d *types.Document) (Result, error) {
		index, err := c.requireIndex()
		if err != nil {
			return Result{Doc: d}, err
		}
		text, err := c.requireText()
		if err != nil {
			return Result{Doc: d}, err
		}
		next, err := op(m, d, c.ID, index, text)
		return Result{Doc: next}, err
	}
}

func bulletIndex(op func(*Mutator, *types.Document, string, int) (*types.Document, error)) handler {
	return func(m *Mutator, c Command, d *types.Document) (Result, error) {
		index, err := c.requireIndex()
		if err != nil {
			return Result{Doc: d}, err
		}
		next, err := op(m, d, c.ID, index)
		return Result{Doc: next}, err
	}
}

func move(op func(*Mutator, *types.Document, int, Direction) (*types.Document, error)) handler {
	return func(m *Mutator, c Command, d *types.Document) (Result, error) {
		if c.Index == nil {
			return Result{Doc: d}, &CommandError{Op: c.Op, Message: "index is required"}
		}
		dir, err := ParseDirection(c.Direction)
		if err != nil {
			return Result{Doc: d}, &CommandError{Op: c.Op, Message: "invalid direction", Cause: err}
		}
		next, err := op(m, d, *c.Index, dir)
		return Result{Doc: next}, err
	}
}

func (c Command) requireID() error {
	if c.ID == "" {
		return &CommandError{Op: c.Op, Message: "id is required"}
	}
	return nil
}

func (c Command) requireSkill() error {
	if c.CategoryID == "" || c.ID == "" {
		return &CommandError{Op: c.Op, Message: "categoryId and id are required"}
	}
	return nil
}

func (c Command) requireIndex() (int, error) {
	if err := c.requireID(); err != nil {
		return 0, err
	}
	if c.Index == nil {
		return 0, &CommandError{Op: c.Op, Message: "index is required"}
	}
	return *c.Index, nil
}

func (c Command) requireText() (string, error) {
	if c.Text == nil {
		return "", &CommandError{Op: c.Op, Message: "text is required"}
	}
	return *c.Text, nil
}

// decodePatch rejects unknown fields and runs the patch validation tags.
func (c Command) decodePatch(dst any) error {
	if len(bytes.TrimSpace(c.Patch)) == 0 {
		return &CommandError{Op: c.Op, Message: "patch is required"}
	}
	dec := json.NewDecoder(bytes.NewReader(c.Patch))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &CommandError{Op: c.Op, Message: "malformed patch", Cause: err}
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return &CommandError{Op: c.Op, Message: "invalid patch", Cause: verrs}
		}
		return &CommandError{Op: c.Op, Message: "invalid patch", Cause: err}
	}
	return nil
}
