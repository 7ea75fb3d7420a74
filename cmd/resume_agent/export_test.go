package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-profiler/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCommand_Formats(t *testing.T) {
	profile := writeJaneDoe(t)

	tests := []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{format: "cv", check: func(t *testing.T, out string) {
			assert.True(t, strings.HasPrefix(out, "# Jane Doe\n"))
		}},
		{format: "readme", check: func(t *testing.T, out string) {
			assert.True(t, strings.HasPrefix(out, "# Jane Doe\n"))
		}},
		{format: "linkedin", check: func(t *testing.T, out string) {
			var np types.NetworkProfile
			require.NoError(t, json.Unmarshal([]byte(out), &np))
			assert.Equal(t, "Jane Doe", types.Deref(np.Name))
		}},
		{format: "latex", check: func(t *testing.T, out string) {
			assert.True(t, strings.HasPrefix(out, `\documentclass`))
			assert.Contains(t, out, "Jane Doe")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			stdout, _, err := execute(t, "export", "--in", profile, "--format", tt.format)
			require.NoError(t, err)
			tt.check(t, stdout)
		})
	}
}

func TestExportCommand_OutFile(t *testing.T) {
	profile := writeJaneDoe(t)
	out := filepath.Join(t.TempDir(), "cv.md")

	stdout, _, err := execute(t, "export", "--in", profile, "--format", "cv", "--out", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Jane Doe")
}

func TestExportCommand_All(t *testing.T) {
	profile := writeJaneDoe(t)
	dir := t.TempDir()

	stdout, _, err := execute(t, "export", "--in", profile, "--format", "all", "--out-dir", dir)
	require.NoError(t, err)

	for _, name := range []string{"cv.md", "README.md", "linkedin.json", "resume.tex"} {
		assert.FileExists(t, filepath.Join(dir, name))
		assert.Contains(t, stdout, name)
	}
}

func TestExportCommand_CustomTemplate(t *testing.T) {
	profile := writeJaneDoe(t)
	tmpl := writeFile(t, t.TempDir(), "mini.tex", `\section*{ {{- .Name -}} }`)

	stdout, _, err := execute(t, "export", "--in", profile, "--format", "latex", "--template", tmpl)
	require.NoError(t, err)
	assert.Equal(t, `\section*{Jane Doe}`, stdout)
}

func TestExportCommand_Errors(t *testing.T) {
	profile := writeJaneDoe(t)
	broken := writeFile(t, t.TempDir(), "broken.json", "{not json")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing input flag", args: []string{"export"}, wantErr: `required flag(s) "in" not set`},
		{name: "unknown format", args: []string{"export", "--in", profile, "--format", "pdf"}, wantErr: `invalid format "pdf"`},
		{name: "all without directory", args: []string{"export", "--in", profile, "--format", "all"}, wantErr: "--out-dir is required"},
		{name: "unreadable profile", args: []string{"export", "--in", broken}, wantErr: "failed to unmarshal profile JSON"},
		{name: "missing template", args: []string{"export", "--in", profile, "--format", "latex", "--template", "/no/such.tex"}, wantErr: "template file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExportCommand_Interactive(t *testing.T) {
	profile := writeJaneDoe(t)

	original := pickFormat
	t.Cleanup(func() { pickFormat = original })

	pickFormat = func() (types.ExportFormat, error) { return types.FormatReadme, nil }
	stdout, _, err := execute(t, "export", "--in", profile, "--interactive")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "# Jane Doe\n"))

	pickFormat = func() (types.ExportFormat, error) { return "", errors.New("^C") }
	_, _, err = execute(t, "export", "--in", profile, "--interactive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format selection aborted")
}
