package main

import (
	"fmt"

	"github.com/jonathan/folio-builder/internal/observability"
	"github.com/jonathan/folio-builder/internal/schemas"
	"github.com/jonathan/folio-builder/internal/types"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a document file against the document schema",
	Long:  "Validates a document JSON file the same way the import endpoint does and reports every schema problem found.",
	RunE:  runValidate,
}

var (
	validateInput  documentInput
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput.path, "in", "i", "", "Path to document JSON file (required)")
	validateCmd.Flags().StringVarP(&validateInput.kind, "kind", "k", string(types.KindResume), "Document kind: resume or portfolio")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Extra JSON Schema file the document must also satisfy")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	_, err := validateInput.load()
	if err == nil && validateSchema != "" {
		err = schemas.ValidateJSON(validateSchema, validateInput.path)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintValidation(validateInput.path, err)
	if err != nil {
		// Exit code 1 signals an invalid file
		return fmt.Errorf("validation failed: %s", validateInput.path)
	}
	return nil
}
