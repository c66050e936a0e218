package main

import (
	"github.com/jonathan/folio-builder/internal/observability"
	"github.com/jonathan/folio-builder/internal/types"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarise a document file",
	Long:  "Prints the owner, template, section order and per-section entry counts of a document file.",
	RunE:  runInspect,
}

var inspectInput documentInput

func init() {
	inspectCmd.Flags().StringVarP(&inspectInput.path, "in", "i", "", "Path to document JSON file")
	inspectCmd.Flags().StringVarP(&inspectInput.kind, "kind", "k", string(types.KindResume), "Document kind: resume or portfolio")
	inspectCmd.Flags().BoolVar(&inspectInput.sample, "sample", false, "Inspect the built-in sample document instead of a file")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, _ []string) error {
	doc, err := inspectInput.load()
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintDocument(doc)
	return nil
}
