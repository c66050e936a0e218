package main

import (
	"fmt"

	"github.com/jonathan/folio-builder/internal/observability"
	"github.com/jonathan/folio-builder/internal/persistence"
	"github.com/jonathan/folio-builder/internal/server"
	"github.com/jonathan/folio-builder/internal/types"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's stored documents",
	Long:  "Lists the documents a user has saved in the configured store, newest first.",
	RunE:  runList,
}

var (
	listEmail string
	listKind  string
)

func init() {
	listCmd.Flags().StringVarP(&listEmail, "email", "e", "", "Account email (required)")
	listCmd.Flags().StringVarP(&listKind, "kind", "k", "", "Only list this kind: resume or portfolio")

	if err := listCmd.MarkFlagRequired("email"); err != nil {
		panic(fmt.Sprintf("failed to mark email flag as required: %v", err))
	}

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	kind := types.Kind(listKind)
	if kind != "" && !kind.Valid() {
		return fmt.Errorf("unknown kind %q: want resume or portfolio", listKind)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(cmd.Context(), cfg, false)
	if err != nil {
		return err
	}
	defer closeStore()

	return listDocuments(cmd, store, listEmail, kind)
}

func listDocuments(cmd *cobra.Command, store server.DBClient, email string, kind types.Kind) error {
	ctx := cmd.Context()
	user, err := store.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", email, err)
	}
	if user == nil {
		return fmt.Errorf("no account for %s", email)
	}

	docs, err := persistence.NewAdapter(store).List(ctx, user.ID, kind)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintDocumentList(docs)
	return nil
}
