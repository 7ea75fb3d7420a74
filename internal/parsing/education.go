package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-profiler/internal/types"
)

var (
	degreeRE = regexp.MustCompile(`(?i)bachelor|b\.?sc|bsc|master|m\.?sc|msc|phd|diploma|associate`)
	yearRE   = regexp.MustCompile(`19\d{2}|20\d{2}`)
	schoolRE = regexp.MustCompile(`(?i)university|college|institute`)
)

const schoolScanLines = 3

// BlockEducationExtractor reads education entries from blank-line separated blocks.
type BlockEducationExtractor struct{}

// Extract returns one entry per block that yields at least one field.
func (BlockEducationExtractor) Extract(lines []string) []types.EducationEntry {
	entries := []types.EducationEntry{}
	var block []string

	flush := func() {
		if len(block) == 0 {
			return
		}
		if entry := parseEducationBlock(block); !entry.IsEmpty() {
			entries = append(entries, entry)
		}
		block = nil
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		block = append(block, line)
	}
	flush()

	return entries
}

func parseEducationBlock(block []string) types.EducationEntry {
	text := strings.Join(block, " ")
	var entry types.EducationEntry

	if m := degreeRE.FindString(text); m != "" {
		entry.Degree = types.StringPtr(m)
	}

	years := yearRE.FindAllString(text, -1)
	switch {
	case len(years) >= 2:
		entry.StartYear = types.StringPtr(years[0])
		entry.EndYear = types.StringPtr(years[1])
	case len(years) == 1:
		entry.StartYear = types.StringPtr(years[0])
		entry.EndYear = types.StringPtr(years[0])
	}

	for _, line := range block[:min(len(block), schoolScanLines)] {
		if schoolRE.MatchString(line) {
			entry.School = types.StringPtr(line)
			break
		}
	}

	return entry
}
