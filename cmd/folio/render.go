package main

import (
	"bytes"
	"fmt"

	"github.com/jonathan/folio-builder/internal/rendering"
	"github.com/jonathan/folio-builder/internal/types"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a document file to HTML",
	Long:  "Renders a resume with its own or another template, or one portfolio page, to a standalone HTML file.",
	RunE:  runRender,
}

var (
	renderInput    documentInput
	renderTemplate string
	renderPage     string
	renderDark     bool
	renderOutput   string
)

func init() {
	renderCmd.Flags().StringVarP(&renderInput.path, "in", "i", "", "Path to document JSON file")
	renderCmd.Flags().StringVarP(&renderInput.kind, "kind", "k", string(types.KindResume), "Document kind: resume or portfolio")
	renderCmd.Flags().BoolVar(&renderInput.sample, "sample", false, "Render the built-in sample document instead of a file")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Resume template to use instead of the document's own")
	renderCmd.Flags().StringVarP(&renderPage, "page", "p", "", "Portfolio page id (defaults to the home page)")
	renderCmd.Flags().BoolVar(&renderDark, "dark", false, "Render for a dark colour-scheme preference")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path to output HTML file (defaults to stdout)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	doc, err := renderInput.load()
	if err != nil {
		return err
	}
	if renderTemplate != "" && !rendering.HasTemplate(renderTemplate) {
		return fmt.Errorf("unknown template %q", renderTemplate)
	}

	renderer, err := rendering.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	var buf bytes.Buffer
	switch {
	case doc.Kind == types.KindPortfolio:
		err = renderer.RenderPortfolioPage(&buf, doc, renderPage, renderDark)
	case renderTemplate != "":
		err = renderer.RenderResume(&buf, doc, renderTemplate, doc.Style.Resolved())
	default:
		err = renderer.Render(&buf, doc, renderDark)
	}
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}

	if err := writeOutput(cmd.OutOrStdout(), renderOutput, buf.Bytes()); err != nil {
		return err
	}
	if renderOutput != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Rendered %s to %s\n", doc.Kind, renderOutput)
	}
	return nil
}
