package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jonathan/resume-profiler/internal/ingestion"
	"github.com/jonathan/resume-profiler/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var parseBatchCmd = &cobra.Command{
	Use:   "parse-batch",
	Short: "Parse every résumé in a directory",
	Long: "Parses every supported document in a directory concurrently. One failing document does not stop " +
		"the others; each profile is written as <name>.json into the output directory.",
	RunE: runParseBatch,
}

var (
	batchInputDir   string
	batchOutputDir  string
	batchConcurrent int
)

func init() {
	parseBatchCmd.Flags().StringVar(&batchInputDir, "in-dir", "", "Directory containing résumé documents (required)")
	parseBatchCmd.Flags().StringVar(&batchOutputDir, "out-dir", "", "Directory for profile JSON files (summary only when empty)")
	parseBatchCmd.Flags().IntVar(&batchConcurrent, "concurrency", 0, "Documents parsed in parallel (default from config)")

	_ = parseBatchCmd.MarkFlagRequired("in-dir")

	rootCmd.AddCommand(parseBatchCmd)
}

func runParseBatch(cmd *cobra.Command, _ []string) error {
	paths, err := collectDocuments(batchInputDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no supported documents found in %s", batchInputDir)
	}

	wf, err := newWorkflow()
	if err != nil {
		return err
	}

	logger.Info("parsing batch", zap.Int("documents", len(paths)), zap.Int("concurrency", settings.Concurrency))
	items, err := wf.ParseBatch(cmd.Context(), paths, settings.Concurrency)
	if err != nil {
		return err
	}

	lines := make([]observability.BatchLine, 0, len(items))
	failed := 0
	for _, item := range items {
		line := observability.BatchLine{Source: filepath.Base(item.Path), Err: item.Err}
		if item.Err == nil {
			line.Score = item.Result.Profile.ResumeHealth.Score
			if batchOutputDir != "" {
				line.Err = writeBatchProfile(item.Path, item.Result.Profile)
			}
		}
		if line.Err != nil {
			failed++
		}
		lines = append(lines, line)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintBatchSummary(lines)

	if failed == len(items) {
		return fmt.Errorf("all %d documents failed", failed)
	}
	return nil
}

func writeBatchProfile(path string, profile any) error {
	out, err := marshalIndent(profile)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".json"
	return writeOutput(nil, filepath.Join(batchOutputDir, name), out)
}

// collectDocuments lists the files in dir with an upload extension in name order.
func collectDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slices.Contains(ingestion.UploadExtensions, ingestion.Extension(e.Name())) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}
