package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse résumés saved with parse --save",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved résumés, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved profile as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a saved résumé",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyShowRaw bool

func init() {
	historyShowCmd.Flags().BoolVar(&historyShowRaw, "raw", false, "Print the extracted text instead of the profile")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	store, err := openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	resumes, err := store.ListResumes(cmd.Context(), localUser)
	if err != nil {
		return err
	}
	if len(resumes) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No saved résumés.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tFILE\tSCORE\tSAVED")
	for _, r := range resumes {
		s := r.Summary()
		score := "-"
		if s.Score != nil {
			score = fmt.Sprintf("%d", *s.Score)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.FileName, score, s.CreatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid résumé id: %w", err)
	}

	store, err := openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	resume, err := store.GetResume(cmd.Context(), localUser, id)
	if err != nil {
		return err
	}
	if resume == nil {
		return fmt.Errorf("résumé not found: %s", id)
	}

	if historyShowRaw {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), resume.RawText)
		return err
	}

	out, err := marshalIndent(resume.ParsedData)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), "", out)
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid résumé id: %w", err)
	}

	store, err := openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	deleted, err := store.DeleteResume(cmd.Context(), localUser, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("résumé not found: %s", id)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
	return nil
}
