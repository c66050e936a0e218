package main

import (
	"fmt"
	"log"

	"github.com/jonathan/folio-builder/internal/export"
	"github.com/jonathan/folio-builder/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort        string
	serveIdleTimeout string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes accounts, stored documents and live editing sessions.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
	serveCmd.Flags().StringVar(&serveIdleTimeout, "idle-timeout", "30m", "Close editing sessions idle for this long (0 disables)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}
	idle, err := parseDuration("idle-timeout", serveIdleTimeout)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(cmd.Context(), cfg, true)
	if err != nil {
		return err
	}
	defer closeStore()

	printer := export.NewPDFRenderer(cfg.ChromePath)
	printer.Verbose = cfg.Verbose

	srv, err := server.New(server.Config{
		Addr:          ":" + cfg.Port,
		Store:         store,
		Printer:       printer,
		AutosaveDelay: cfg.AutosaveDelay,
		HistoryDepth:  cfg.HistoryDepth,
		IdleTimeout:   idle,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Printf("Using %s store", cfg.StoreDriver)
	return srv.Start()
}
