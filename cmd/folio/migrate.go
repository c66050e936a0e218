package main

import (
	"fmt"

	"github.com/jonathan/folio-builder/internal/config"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  "Applies the schema migrations for the configured store and exits. The memory driver has nothing to migrate.",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.StoreDriver == config.DriverMemory {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Memory store: nothing to migrate")
		return nil
	}

	_, closeStore, err := openStore(cmd.Context(), cfg, true)
	if err != nil {
		return err
	}
	closeStore()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Migrated %s store\n", cfg.StoreDriver)
	return nil
}
