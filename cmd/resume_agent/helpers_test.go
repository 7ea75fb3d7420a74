package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const janeDoeResume = `Jane Doe
jane@example.com
Skills
Python, Django
Education
ABC University
BSc Computer Science 2018-2022
`

// resetFlags restores every flag of cmd and its children to its default so
// commands can be executed repeatedly in one process.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(t, c)
	}
}

// execute runs the CLI with args and returns what it wrote to stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	resetFlags(t, rootCmd)
	configFile = ""

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// writeFile creates name under dir with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeJaneDoe parses the sample résumé into a profile JSON file and returns its path.
func writeJaneDoe(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	in := writeFile(t, dir, "jane.txt", janeDoeResume)
	out := filepath.Join(dir, "profile.json")

	_, _, err := execute(t, "parse", "--in", in, "--out", out)
	require.NoError(t, err)
	return out
}
