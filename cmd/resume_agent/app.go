package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jonathan/resume-profiler/internal/db"
	"github.com/jonathan/resume-profiler/internal/pipeline"
	"github.com/jonathan/resume-profiler/internal/server"
	"github.com/jonathan/resume-profiler/internal/taxonomy"
	"github.com/jonathan/resume-profiler/internal/types"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// localUser owns every résumé saved by the CLI. The SQLite schema has no
// foreign key from resumes to users.
var localUser = uuid.Nil

// flagKeys maps command-line flags onto config keys. Only flags present on
// the running command are bound.
var flagKeys = map[string]string{
	"json":            "log.json",
	"debug":           "log.debug",
	"section-headers": "section_headers",
	"skills":          "skills",
	"sqlite":          "sqlite_path",
	"template":        "template",
	"use-browser":     "use_browser",
	"concurrency":     "concurrency",
	"port":            "server.port",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// newWorkflow builds the processing pipeline from the loaded settings.
func newWorkflow(extra ...pipeline.Option) (*pipeline.Workflow, error) {
	tables, err := taxonomy.LoadFiles(settings.SectionHeaders, settings.Skills)
	if err != nil {
		return nil, err
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithMaxUploadBytes(settings.MaxUploadBytes),
		pipeline.WithBrowser(settings.UseBrowser),
		pipeline.WithTemplate(settings.Template),
	}
	return pipeline.New(tables, append(opts, extra...)...), nil
}

// defaultSQLitePath is the history database used when sqlite_path is unset.
func defaultSQLitePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".resume-profiler", "history.db"), nil
}

// openHistory opens and migrates the local SQLite store.
func openHistory(ctx context.Context) (*db.LiteDB, error) {
	path := settings.SQLitePath
	if path == "" {
		var err error
		if path, err = defaultSQLitePath(); err != nil {
			return nil, err
		}
	}

	store, err := db.OpenLite(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	logger.Debug("opened history database", zap.String("path", path))
	return store, nil
}

// openStore connects to Postgres when database_url is set and falls back to
// the local SQLite store otherwise. Postgres schemas are applied by migrate.
func openStore(ctx context.Context) (server.Store, error) {
	if settings.DatabaseURL == "" {
		lite, err := openHistory(ctx)
		if err != nil {
			return nil, err
		}
		return lite, nil
	}

	pg, err := db.Connect(ctx, settings.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return pg, nil
}

// readProfile loads a profile JSON document written by parse.
func readProfile(path string) (*types.Profile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var p types.Profile
	if err := json.Unmarshal(content, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile JSON: %w", err)
	}
	return &p, nil
}

// writeOutput writes content to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, content []byte) error {
	if path == "" {
		_, err := w.Write(content)
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func marshalIndent(v any) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(out, '\n'), nil
}
