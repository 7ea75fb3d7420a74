package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database tables",
	Long:  "Applies the embedded schema to PostgreSQL when database_url is set, otherwise to the local SQLite database. Safe to run repeatedly.",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

// migrator is the part of both stores migrate needs.
type migrator interface {
	Migrate(ctx context.Context) error
	Close()
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	m, ok := store.(migrator)
	if !ok {
		return fmt.Errorf("store %T does not support migrations", store)
	}
	if err := m.Migrate(cmd.Context()); err != nil {
		return err
	}

	target := "sqlite"
	if settings.DatabaseURL != "" {
		target = "postgres"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Schema applied (%s)\n", target)
	return nil
}
