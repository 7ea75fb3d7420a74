package parsing

import (
	"regexp"
	"slices"
	"strings"

	"github.com/jonathan/resume-profiler/internal/taxonomy"
	"github.com/jonathan/resume-profiler/internal/types"
)

const skillsConfidence = 0.75

var whitespaceRE = regexp.MustCompile(`\s+`)

type skillPattern struct {
	display string
	re      *regexp.Regexp
}

type categoryPatterns struct {
	name     string
	patterns []skillPattern
}

// TaxonomySkillsExtractor matches taxonomy entries as whole tokens in normalized text.
type TaxonomySkillsExtractor struct {
	categories []categoryPatterns
}

// NewTaxonomySkillsExtractor compiles one boundary pattern per taxonomy entry.
func NewTaxonomySkillsExtractor(tables *taxonomy.Tables) *TaxonomySkillsExtractor {
	e := &TaxonomySkillsExtractor{}
	for _, cat := range tables.Categories {
		cp := categoryPatterns{name: cat.Name}
		for _, skill := range cat.Skills {
			term := normalizeSkillText(skill)
			if term == "" {
				continue
			}
			cp.patterns = append(cp.patterns, skillPattern{
				display: skill,
				re:      regexp.MustCompile(`(^|[^a-z0-9])` + regexp.QuoteMeta(term) + `([^a-z0-9]|$)`),
			})
		}
		e.categories = append(e.categories, cp)
	}
	return e
}

// Extract searches the skills section when one exists, even if it is empty,
// and the whole document otherwise.
func (e *TaxonomySkillsExtractor) Extract(all, section []string, hasSection bool) types.SkillsResult {
	source := all
	if hasSection {
		source = section
	}
	text := normalizeSkillText(strings.Join(source, " "))

	result := types.SkillsResult{Categories: make(types.SkillCategories, 0, len(e.categories))}
	for _, cat := range e.categories {
		found := []string{}
		if text != "" {
			for _, p := range cat.patterns {
				if p.re.MatchString(text) {
					found = append(found, p.display)
				}
			}
		}
		slices.Sort(found)
		found = slices.Compact(found)
		result.Categories = append(result.Categories, types.SkillCategory{Name: cat.name, Skills: found})
	}

	if result.Categories.Total() > 0 {
		result.Confidence = skillsConfidence
	}
	return result
}

func normalizeSkillText(s string) string {
	return strings.ToLower(strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " ")))
}
