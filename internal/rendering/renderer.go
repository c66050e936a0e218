package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"slices"
	"strings"

	"github.com/jonathan/folio-builder/internal/types"
)

//go:embed templates/*.html
var templatesFS embed.FS

// ResumeTemplates lists the interchangeable resume layouts.
var ResumeTemplates = []string{"minimalist", "modern", "elegant", "executive"}

// Renderer executes the embedded templates. It is safe for concurrent use.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"paragraphs": paragraphs,
		"imageURL":   imageURL,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse", Cause: err}
	}
	return &Renderer{templates: tmpl}, nil
}

// MustNewRenderer is NewRenderer for callers that cannot recover from a
// broken binary.
func MustNewRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// HasTemplate reports whether name is a registered resume template.
func HasTemplate(name string) bool {
	return slices.Contains(ResumeTemplates, name)
}

// Render projects doc with its own template and style. Portfolios render
// their first visible page. An unrecognised resume template falls back to
// the default layout.
func (r *Renderer) Render(w io.Writer, doc *types.Document, prefersDark bool) error {
	if doc == nil {
		return &RenderError{Message: "no document"}
	}
	if doc.Kind == types.KindPortfolio {
		return r.RenderPortfolioPage(w, doc, "", prefersDark)
	}
	name := doc.Template
	if !HasTemplate(name) {
		name = types.DefaultTemplate
	}
	return r.RenderResume(w, doc, name, doc.Style.Resolved())
}

// RenderResume executes the named resume template against doc and style.
func (r *Renderer) RenderResume(w io.Writer, doc *types.Document, name string, style types.StyleSettings) error {
	if doc == nil {
		return &RenderError{Message: "no document"}
	}
	if !HasTemplate(name) {
		return &TemplateError{Template: name, Message: "not registered"}
	}
	view := BuildView(doc, style)
	view.Template = name
	return r.execute(w, name, view)
}

// RenderString is Render into a string.
func (r *Renderer) RenderString(doc *types.Document, prefersDark bool) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, doc, prefersDark); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return &TemplateError{Template: name, Message: "failed to execute", Cause: err}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return &RenderError{Message: "failed to write HTML", Cause: err}
	}
	return nil
}

// imageURL admits hosted images and inline image data URIs. html/template
// rejects data URIs in src attributes unless they are marked safe.
func imageURL(s string) template.URL {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "data:image/"), strings.HasPrefix(s, "https://"), strings.HasPrefix(s, "http://"):
		return template.URL(s)
	}
	return ""
}
