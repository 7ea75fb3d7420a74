package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-profiler/internal/logging"
	"github.com/jonathan/resume-profiler/internal/observability"
	"github.com/jonathan/resume-profiler/internal/pipeline"
	"github.com/jonathan/resume-profiler/internal/schemas"
	"github.com/jonathan/resume-profiler/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a résumé into a structured profile",
	Long: "Extracts text from a PDF, DOCX, text, Markdown or HTML résumé (or a résumé published at a URL), " +
		"parses contact details, skills, education, experience and projects, and scores the résumé's health. " +
		"The profile is written as JSON.",
	RunE: runParse,
}

var (
	parseInput      string
	parseURL        string
	parseOutput     string
	parseExportsDir string
	parseValidate   bool
	parseVerbose    bool
	parseSave       bool
	parseUseBrowser bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseInput, "in", "i", "", "Path to the résumé document")
	parseCmd.Flags().StringVar(&parseURL, "url", "", "URL of a published résumé page")
	parseCmd.Flags().BoolVar(&parseUseBrowser, "use-browser", false, "Render the page in a headless browser when static extraction finds too little text")
	parseCmd.Flags().StringVarP(&parseOutput, "out", "o", "", "Path to output profile JSON (default stdout)")
	parseCmd.Flags().StringVar(&parseExportsDir, "exports", "", "Directory to write CV, README, network profile and LaTeX exports into")
	parseCmd.Flags().BoolVar(&parseValidate, "validate", false, "Validate the profile against the profile JSON schema")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")
	parseCmd.Flags().BoolVar(&parseSave, "save", false, "Save the result to the local history database")

	parseCmd.MarkFlagsMutuallyExclusive("in", "url")
	parseCmd.MarkFlagsOneRequired("in", "url")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	stderr := cmd.ErrOrStderr()

	var extra []pipeline.Option
	if parseVerbose {
		extra = append(extra, pipeline.WithProgress(func(e pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(stderr, "[%s] %s\n", e.Step, e.Message)
		}))
	}
	wf, err := newWorkflow(extra...)
	if err != nil {
		return err
	}

	var res *pipeline.Result
	if parseURL != "" {
		res, err = wf.ProcessURL(ctx, parseURL, parseUseBrowser)
	} else {
		res, err = wf.ProcessFile(ctx, parseInput)
	}
	if err != nil {
		return fmt.Errorf("failed to parse résumé: %w", err)
	}

	out, err := marshalIndent(res.Profile)
	if err != nil {
		return err
	}

	if parseValidate {
		if err := schemas.ValidateEmbedded(schemas.Profile, out); err != nil {
			return fmt.Errorf("profile failed schema validation: %w", err)
		}
	}

	if parseVerbose {
		printer := observability.NewPrinter(stderr)
		printer.PrintProfile(res.Profile)
		printer.PrintHealth(res.Profile.ResumeHealth)
	}

	if err := writeOutput(cmd.OutOrStdout(), parseOutput, out); err != nil {
		return err
	}

	if parseExportsDir != "" {
		paths, err := writeAllExports(wf, res.Profile, parseExportsDir)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stderr, "Exports: %s\n", strings.Join(paths, ", "))
	}

	if parseSave {
		if err := saveResult(cmd, res); err != nil {
			return err
		}
	}

	return nil
}

// saveResult stores res in the local history database.
func saveResult(cmd *cobra.Command, res *pipeline.Result) error {
	store, err := openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	resume := &types.Resume{
		UserID:       localUser,
		FileName:     res.Document.FileName,
		RawText:      res.Document.RawText,
		ParsedData:   res.Profile,
		ResumeHealth: res.Profile.ResumeHealth,
	}
	if err := store.CreateResume(cmd.Context(), resume); err != nil {
		return fmt.Errorf("failed to save résumé: %w", err)
	}

	logger.Info("saved résumé", zap.String(logging.FieldResumeID, resume.ID.String()), zap.String(logging.FieldSource, resume.FileName))
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Saved as %s\n", resume.ID)
	return nil
}
