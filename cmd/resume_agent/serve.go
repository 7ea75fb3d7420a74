package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resume-profiler/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: "Start an HTTP server that exposes REST endpoints for parsing, storing and exporting résumés. " +
		"Uses PostgreSQL when database_url is set, otherwise the local SQLite database.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wf, err := newWorkflow()
	if err != nil {
		return err
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}

	srv, err := server.New(settings, store, wf, logger)
	if err != nil {
		store.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("starting server", zap.String("addr", srv.Addr()), zap.Bool("postgres", settings.DatabaseURL != ""))
	return srv.Start(ctx)
}
