package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-profiler/internal/types"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render exports from a profile",
	Long: "Renders a profile JSON file as CV Markdown (cv), a GitHub README (readme), a professional-network " +
		"payload (linkedin) or a LaTeX CV (latex). The format all writes every artifact into --out-dir.",
	RunE: runExport,
}

var (
	exportInput       string
	exportFormat      string
	exportOutput      string
	exportOutputDir   string
	exportInteractive bool
)

// pickFormat asks for an export format on the terminal.
var pickFormat = func() (types.ExportFormat, error) {
	items := make([]string, len(types.ExportFormats))
	for i, f := range types.ExportFormats {
		items[i] = string(f)
	}

	prompt := promptui.Select{
		Label: "Export format",
		Items: items,
	}
	_, selected, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return types.ExportFormat(selected), nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "in", "i", "", "Path to profile JSON (required)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(types.FormatCV), "Export format: "+formatList())
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Output file (default stdout)")
	exportCmd.Flags().StringVar(&exportOutputDir, "out-dir", "", "Output directory for --format all")
	exportCmd.Flags().StringP("template", "t", "", "Path to a LaTeX template (default built-in)")
	exportCmd.Flags().BoolVar(&exportInteractive, "interactive", false, "Choose the format from a menu")

	_ = exportCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(exportCmd)
}

func formatList() string {
	names := make([]string, len(types.ExportFormats))
	for i, f := range types.ExportFormats {
		names[i] = string(f)
	}
	return strings.Join(names, "|")
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, ok := types.ParseExportFormat(exportFormat)
	if exportInteractive {
		picked, err := pickFormat()
		if err != nil {
			return fmt.Errorf("format selection aborted: %w", err)
		}
		format, ok = picked, true
	}
	if !ok {
		return fmt.Errorf("invalid format %q: expected %s", exportFormat, formatList())
	}
	if format == types.FormatAll && exportOutputDir == "" {
		return fmt.Errorf("--out-dir is required with --format all")
	}

	profile, err := readProfile(exportInput)
	if err != nil {
		return err
	}

	wf, err := newWorkflow()
	if err != nil {
		return err
	}

	if format == types.FormatAll {
		paths, err := writeAllExports(wf, profile, exportOutputDir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", p)
		}
		return nil
	}

	content, err := renderFormat(wf, profile, format)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), exportOutput, content)
}
