package parsing

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-profiler/internal/taxonomy"
	"github.com/jonathan/resume-profiler/internal/types"
)

var projectURLRE = regexp.MustCompile(`(?i)https?://\S+|www\.\S+`)

const bulletGlyphs = "-*•"

var techLabelPrefixes = []string{"tech", "stack", "tools", "skills"}

// BlockProjectExtractor reads projects from blank-line separated blocks.
type BlockProjectExtractor struct {
	terms []taxonomy.TechTerm
}

// NewBlockProjectExtractor returns an extractor that recognizes tech names from tables.
func NewBlockProjectExtractor(tables *taxonomy.Tables) *BlockProjectExtractor {
	return &BlockProjectExtractor{terms: tables.TechTerms()}
}

// Extract returns one project per block that has any populated field.
func (e *BlockProjectExtractor) Extract(lines []string) []types.ProjectEntry {
	projects := []types.ProjectEntry{}
	current := newProject()

	commit := func() {
		if current.HasContent() {
			slices.Sort(current.TechStack)
			current.TechStack = slices.Compact(current.TechStack)
			slices.Sort(current.Links)
			current.Links = slices.Compact(current.Links)
			projects = append(projects, current)
		}
		current = newProject()
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			commit()
			continue
		}

		if urls := projectURLRE.FindAllString(line, -1); len(urls) > 0 {
			current.Links = append(current.Links, urls...)
			continue
		}

		if startsWithBullet(line) {
			detail := strings.TrimSpace(strings.TrimLeft(line, bulletGlyphs+" "))
			if detail != "" {
				current.Highlights = append(current.Highlights, detail)
				current.TechStack = append(current.TechStack, e.findTech(detail)...)
			}
			continue
		}

		lower := strings.ToLower(line)
		if hasAnyPrefix(lower, techLabelPrefixes) && strings.Contains(line, ":") {
			current.TechStack = append(current.TechStack, e.findTech(line)...)
			continue
		}

		if current.Name == nil {
			current.Name = types.StringPtr(strings.TrimRight(line, ":"))
		} else if current.Summary == nil {
			current.Summary = types.StringPtr(line)
		} else {
			current.Summary = types.StringPtr(*current.Summary + " " + line)
		}
		current.TechStack = append(current.TechStack, e.findTech(line)...)
	}
	commit()

	return projects
}

// findTech returns the display name of every taxonomy entry that occurs in text.
func (e *BlockProjectExtractor) findTech(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, term := range e.terms {
		if strings.Contains(lower, term.Key) {
			found = append(found, term.Display)
		}
	}
	return found
}

func newProject() types.ProjectEntry {
	return types.ProjectEntry{Highlights: []string{}, TechStack: []string{}, Links: []string{}}
}

func startsWithBullet(line string) bool {
	r, _ := utf8.DecodeRuneInString(line)
	return strings.ContainsRune(bulletGlyphs, r)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
