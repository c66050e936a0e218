// Package rendering projects documents into HTML through embedded templates.
package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/folio-builder/internal/types"
)

// TemplateError reports a resume template that is not registered or fails to
// execute. Template is empty when the embedded set itself fails to parse.
type TemplateError struct {
	Template string
	Message  string
	Cause    error
}

func (e *TemplateError) Error() string {
	msg := "templates: " + e.Message
	if e.Template != "" {
		msg = fmt.Sprintf("template %q: %s", e.Template, e.Message)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError reports a document that has nothing to project, such as a
// portfolio without a visible page, or HTML that could not be written out.
type RenderError struct {
	Kind    types.Kind
	PageID  string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	var b strings.Builder
	b.WriteString("render")
	if e.Kind != "" {
		b.WriteString(" " + string(e.Kind))
	}
	if e.PageID != "" {
		fmt.Fprintf(&b, " page %q", e.PageID)
	}
	b.WriteString(": " + e.Message)
	if e.Cause != nil {
		b.WriteString(": " + e.Cause.Error())
	}
	return b.String()
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
