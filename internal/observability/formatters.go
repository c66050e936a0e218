// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jonathan/folio-builder/internal/persistence"
	"github.com/jonathan/folio-builder/internal/schemas"
	"github.com/jonathan/folio-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(boxWidth - 2)
)

// Printer handles formatted CLI output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a bordered box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if len(line) > boxWidth-6 {
			lines[i] = line[:boxWidth-9] + "..."
		}
	}
	body := titleStyle.Render(title) + "\n\n" + strings.Join(lines, "\n")
	fmt.Fprintln(p.out, boxStyle.Render(body))
}

func label(name string) string {
	return labelStyle.Render(fmt.Sprintf("%-15s", name+":"))
}

// PrintDocument outputs a summary of a document's identity and contents.
func (p *Printer) PrintDocument(doc *types.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	id := doc.ID
	if id == "" {
		id = "(unsaved)"
	}
	sb.WriteString(fmt.Sprintf("%s %s\n", label("ID"), id))
	sb.WriteString(fmt.Sprintf("%s %s\n", label("Kind"), doc.Kind))
	sb.WriteString(fmt.Sprintf("%s %s\n", label("Name"), doc.Name))
	sb.WriteString(fmt.Sprintf("%s %s\n", label("Template"), doc.Template))
	sb.WriteString(fmt.Sprintf("%s %d\n", label("Version"), doc.Version))
	if !doc.UpdatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("%s %s\n", label("Updated"), doc.UpdatedAt.Format("2006-01-02 15:04:05")))
	}
	sb.WriteString("\n")

	sb.WriteString("Sections:\n")
	for _, s := range doc.Sections {
		sb.WriteString(fmt.Sprintf("  • %-15s %s\n", s, sectionCount(doc, s)))
	}

	if doc.Kind == types.KindPortfolio {
		sb.WriteString("\nPages:\n")
		for _, pg := range doc.PageList() {
			hidden := ""
			if pg.Hidden {
				hidden = " (hidden)"
			}
			sb.WriteString(fmt.Sprintf("  • %s [%s]%s\n", pg.Name, pg.Type, hidden))
		}
	}

	p.printBox("DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

func sectionCount(doc *types.Document, section string) string {
	n := 0
	switch section {
	case types.SectionPersonal:
		return doc.PersonalInfo.FullName
	case types.SectionSummary:
		if strings.TrimSpace(doc.SummaryText()) == "" {
			return "empty"
		}
		return "set"
	case types.SectionExperience:
		n = len(doc.ExperienceList())
	case types.SectionEducation:
		n = len(doc.EducationList())
	case types.SectionSkills:
		for _, c := range doc.CategoryList() {
			n += len(c.Skills)
		}
	case types.SectionProjects:
		n = len(doc.ProjectList())
	case types.SectionCertifications:
		n = len(doc.CertificationList())
	case types.SectionLanguages:
		n = len(doc.LanguageList())
	case types.SectionCustom:
		n = len(doc.CustomSectionList())
	}
	return fmt.Sprintf("%d", n)
}

// PrintDocumentList outputs the user's saved documents, newest first.
func (p *Printer) PrintDocumentList(docs []persistence.Summary) {
	if len(docs) == 0 {
		p.printBox("DOCUMENTS", "No documents found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total documents: %d\n\n", len(docs)))

	count := min(len(docs), maxItemsToShow)
	for i := 0; i < count; i++ {
		d := docs[i]
		sb.WriteString(fmt.Sprintf("%s  [%s]\n", d.Title, d.Kind))
		sb.WriteString(fmt.Sprintf("    %s  v%d  %s\n", d.ID, d.Version, d.UpdatedAt.Format("2006-01-02")))
	}
	if len(docs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more documents", len(docs)-maxItemsToShow))
	}

	p.printBox("DOCUMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs the result of validating a document file.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(path string, err error) {
	if err == nil {
		p.printBox("VALIDATION", "✅ "+path+" is valid")
		return
	}

	var ve *schemas.ValidationError
	if !errors.As(err, &ve) {
		p.printBox("VALIDATION", errorStyle.Render("✗ ")+err.Error())
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problems in %s:\n\n", len(ve.Errors), path))
	for i, fe := range ve.Errors {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", fe.Field))
		sb.WriteString(fmt.Sprintf("  %s\n", fe.Message))
		if i < len(ve.Errors)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("VALIDATION", strings.TrimSuffix(sb.String(), "\n"))
}
