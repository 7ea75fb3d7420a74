package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-profiler/internal/types"
)

var dateRangeRE = regexp.MustCompile(
	`(?i)(?:(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\w*\s+\d{4}|\d{4})\s*[-–—]\s*` +
		`(present|(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\w*\s+\d{4}|\d{4})`)

// Title/company separators, checked in this order.
var roleSeparators = []string{"|", " — ", " - "}

const (
	maxTitleWords   = 6
	maxCompanyWords = 8
	minOpeningLen   = 5
)

// ScanExperienceExtractor reads positions with a single pass over the experience section.
type ScanExperienceExtractor struct{}

// Extract opens an entry on every date-range line, or implicitly on the first
// substantial line, and fills title, company and highlights from what follows.
func (ScanExperienceExtractor) Extract(lines []string) []types.ExperienceEntry {
	entries := []types.ExperienceEntry{}
	var current *types.ExperienceEntry

	flush := func() {
		if current != nil {
			entries = append(entries, *current)
		}
		current = nil
	}

	for _, line := range lines {
		if dateRangeRE.MatchString(line) {
			flush()
			current = newExperienceEntry()
			current.DateRange = line
			continue
		}

		if current == nil && utf8.RuneCountInString(line) > minOpeningLen {
			current = newExperienceEntry()
		}
		if current == nil {
			continue
		}

		if strings.HasPrefix(line, "-") {
			current.Highlights = append(current.Highlights, strings.TrimSpace(strings.TrimLeft(line, "-")))
			continue
		}

		if current.Company == nil {
			if sep, ok := findSeparator(line); ok {
				left, right, _ := strings.Cut(line, sep)
				left, right = strings.TrimSpace(left), strings.TrimSpace(right)
				if current.Title == nil && wordCount(left) <= maxTitleWords {
					current.Title = types.StringPtr(left)
				}
				if wordCount(right) <= maxCompanyWords {
					current.Company = types.StringPtr(right)
				}
				continue
			}
		}

		words := wordCount(line)
		switch {
		case current.Title == nil && words <= maxTitleWords:
			current.Title = types.StringPtr(line)
		case current.Company == nil && words <= maxCompanyWords:
			current.Company = types.StringPtr(line)
		}
	}
	flush()

	kept := entries[:0]
	for _, e := range entries {
		if e.HasContent() {
			kept = append(kept, e)
		}
	}
	return kept
}

func newExperienceEntry() *types.ExperienceEntry {
	return &types.ExperienceEntry{Highlights: []string{}}
}

func findSeparator(line string) (string, bool) {
	for _, sep := range roleSeparators {
		if strings.Contains(line, sep) {
			return sep, true
		}
	}
	return "", false
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
