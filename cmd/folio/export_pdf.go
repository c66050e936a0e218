package main

import (
	"fmt"
	"time"

	"github.com/jonathan/folio-builder/internal/config"
	"github.com/jonathan/folio-builder/internal/export"
	"github.com/jonathan/folio-builder/internal/rendering"
	"github.com/jonathan/folio-builder/internal/types"
	"github.com/spf13/cobra"
)

var exportPDFCmd = &cobra.Command{
	Use:   "export-pdf",
	Short: "Print a document file to PDF",
	Long:  "Renders a document with its own template and prints it to an A4 PDF through headless Chrome.",
	RunE:  runExportPDF,
}

var (
	exportInput   documentInput
	exportOutput  string
	exportDark    bool
	exportChrome  string
	exportTimeout time.Duration
)

func init() {
	exportPDFCmd.Flags().StringVarP(&exportInput.path, "in", "i", "", "Path to document JSON file")
	exportPDFCmd.Flags().StringVarP(&exportInput.kind, "kind", "k", string(types.KindResume), "Document kind: resume or portfolio")
	exportPDFCmd.Flags().BoolVar(&exportInput.sample, "sample", false, "Export the built-in sample document instead of a file")
	exportPDFCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Path to output PDF file (required)")
	exportPDFCmd.Flags().BoolVar(&exportDark, "dark", false, "Render for a dark colour-scheme preference")
	exportPDFCmd.Flags().StringVar(&exportChrome, "chrome", "", "Chrome binary (overrides CHROME_PATH)")
	exportPDFCmd.Flags().DurationVar(&exportTimeout, "timeout", export.DefaultTimeout, "Upper bound for the print job")

	if err := exportPDFCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(exportPDFCmd)
}

func runExportPDF(cmd *cobra.Command, _ []string) error {
	doc, err := exportInput.load()
	if err != nil {
		return err
	}

	// Only the browser settings matter here, so the store config is not
	// validated.
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	chromePath := exportChrome
	if chromePath == "" {
		chromePath = cfg.ChromePath
	}

	renderer, err := rendering.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	printer := export.NewPDFRenderer(chromePath)
	printer.Timeout = exportTimeout
	printer.Verbose = cfg.Verbose

	pdf, err := export.Document(cmd.Context(), printer, renderer, doc, exportDark)
	if err != nil {
		return fmt.Errorf("failed to export PDF: %w", err)
	}
	if err := writeOutput(cmd.OutOrStdout(), exportOutput, pdf); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", len(pdf), exportOutput)
	return nil
}
