package main

import (
	"github.com/jonathan/resume-profiler/internal/observability"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Re-score an edited profile",
	Long:  "Recomputes the résumé health report of a profile JSON file, for example after correcting parsed fields by hand.",
	RunE:  runScore,
}

var (
	scoreInput   string
	scoreOutput  string
	scoreVerbose bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreInput, "in", "i", "", "Path to profile JSON (required)")
	scoreCmd.Flags().StringVarP(&scoreOutput, "out", "o", "", "Write the re-scored profile here (default: health report to stdout)")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print the report as a human-readable summary")

	_ = scoreCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	profile, err := readProfile(scoreInput)
	if err != nil {
		return err
	}

	wf, err := newWorkflow()
	if err != nil {
		return err
	}
	report := wf.Rescore(profile)

	if scoreVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintHealth(&report)
		return nil
	}

	if scoreOutput != "" {
		out, err := marshalIndent(profile)
		if err != nil {
			return err
		}
		return writeOutput(nil, scoreOutput, out)
	}

	out, err := marshalIndent(report)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), "", out)
}
