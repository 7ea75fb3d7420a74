// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-profiler/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to the inner box width, counting runes.
func pad(s string) string {
	width := boxWidth - 4
	if n := utf8.RuneCountInString(s); n > width {
		return string([]rune(s)[:width-3]) + "..."
	} else if n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintProfile outputs a human-readable summary of a parsed profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	c := profile.Contact

	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(c.Name)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(c.Email)))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", orDash(c.Phone)))
	if l := types.Deref(c.Links.LinkedIn); l != "" {
		sb.WriteString(fmt.Sprintf("LinkedIn: %s\n", l))
	}
	if g := types.Deref(c.Links.GitHub); g != "" {
		sb.WriteString(fmt.Sprintf("GitHub:   %s\n", g))
	}
	sb.WriteString(fmt.Sprintf("Sections: %s\n", strings.Join(profile.SectionsFound, ", ")))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Skills (%d, confidence %.2f):\n", profile.Skills.Categories.Total(), profile.Skills.Confidence))
	for _, cat := range profile.Skills.Categories {
		if len(cat.Skills) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s: %s\n", cat.Name, strings.Join(cat.Skills, ", ")))
	}

	sb.WriteString(fmt.Sprintf("\nExperience (%d):\n", len(profile.Experience)))
	for i, e := range profile.Experience {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Experience)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("  • %s @ %s (%d highlights)\n", orDash(e.Title), orDash(e.Company), len(e.Highlights)))
	}

	sb.WriteString(fmt.Sprintf("\nProjects (%d):\n", len(profile.Projects)))
	for i, proj := range profile.Projects {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Projects)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("  • %s\n", orDash(proj.Name)))
	}

	sb.WriteString(fmt.Sprintf("\nEducation (%d):\n", len(profile.Education)))
	for _, e := range profile.Education {
		sb.WriteString(fmt.Sprintf("  • %s, %s\n", orDash(e.School), orDash(e.Degree)))
	}

	p.printBox("PARSED PROFILE", sb.String())
}

// PrintHealth outputs the health report with its strengths, warnings and suggestions.
func (p *Printer) PrintHealth(report *types.HealthReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d/100\n", report.Score))

	sections := []struct {
		label string
		items []string
		mark  string
	}{
		{"Strengths", report.Strengths, "✓"},
		{"Warnings", report.Warnings, "⚠"},
		{"Suggestions", report.Suggestions, "→"},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s:\n", s.label))
		for _, item := range s.items {
			sb.WriteString(fmt.Sprintf("  %s %s\n", s.mark, item))
		}
	}

	p.printBox("RESUME HEALTH", sb.String())
}

// BatchLine is one row of a batch summary.
type BatchLine struct {
	Source string
	Score  int
	Err    error
}

// PrintBatchSummary outputs one line per document of a batch run.
func (p *Printer) PrintBatchSummary(lines []BatchLine) {
	var sb strings.Builder
	failed := 0
	for _, l := range lines {
		if l.Err != nil {
			failed++
			sb.WriteString(fmt.Sprintf("✗ %s: %v\n", l.Source, l.Err))
			continue
		}
		sb.WriteString(fmt.Sprintf("✓ %s (score %d)\n", l.Source, l.Score))
	}
	sb.WriteString(fmt.Sprintf("\n%d parsed, %d failed\n", len(lines)-failed, failed))

	p.printBox("BATCH SUMMARY", sb.String())
}

func orDash(s *string) string {
	return types.Or(s, "-")
}
