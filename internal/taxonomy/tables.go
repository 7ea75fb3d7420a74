// Package taxonomy loads the static lookup tables used by the parsers: the
// section-header synonym table and the skill taxonomy. Both are embedded at
// compile time and may be overridden by files on disk. Tables are immutable
// once loaded and safe to share between goroutines.
package taxonomy

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/jonathan/resume-profiler/internal/schemas"
	"github.com/jonathan/resume-profiler/internal/types"
)

//go:embed section_headers.json skills.json
var tableFiles embed.FS

const (
	headersFile = "section_headers.json"
	skillsFile  = "skills.json"
)

// UnknownSection is the bucket for lines that appear before the first recognized header.
const UnknownSection = "unknown"

// Section is a canonical section name and the header lines that introduce it.
type Section struct {
	Name     string
	Synonyms []string
}

// Category is a skill category and the display names of its skills.
type Category struct {
	Name   string
	Skills []string
}

// TechTerm is a lower-cased lookup key and the display name it maps to.
type TechTerm struct {
	Key     string
	Display string
}

// Tables holds both lookup tables and the indexes derived from them.
type Tables struct {
	Sections   []Section
	Categories []Category

	synonyms map[string]string
	terms    []TechTerm
}

var (
	embeddedOnce   sync.Once
	embeddedTables *Tables
	embeddedErr    error
)

// Embedded returns the tables shipped with the binary. The result is computed once.
func Embedded() (*Tables, error) {
	embeddedOnce.Do(func() {
		headers, err := tableFiles.ReadFile(headersFile)
		if err != nil {
			embeddedErr = &LoadError{Table: "section headers", Message: "embedded file missing", Cause: err}
			return
		}
		skills, err := tableFiles.ReadFile(skillsFile)
		if err != nil {
			embeddedErr = &LoadError{Table: "skills", Message: "embedded file missing", Cause: err}
			return
		}
		embeddedTables, embeddedErr = Load(headers, skills)
	})
	return embeddedTables, embeddedErr
}

// MustEmbedded returns the embedded tables, panicking if they cannot be loaded.
func MustEmbedded() *Tables {
	t, err := Embedded()
	if err != nil {
		panic(fmt.Sprintf("failed to load lookup tables: %v", err))
	}
	return t
}

// LoadFiles loads tables from disk. An empty path selects the embedded table for that slot.
func LoadFiles(headersPath, skillsPath string) (*Tables, error) {
	if headersPath == "" && skillsPath == "" {
		return Embedded()
	}

	headers, err := readTable("section headers", headersPath, headersFile)
	if err != nil {
		return nil, err
	}
	skills, err := readTable("skills", skillsPath, skillsFile)
	if err != nil {
		return nil, err
	}
	return Load(headers, skills)
}

func readTable(table, path, embeddedName string) ([]byte, error) {
	if path == "" {
		data, err := tableFiles.ReadFile(embeddedName)
		if err != nil {
			return nil, &LoadError{Table: table, Message: "embedded file missing", Cause: err}
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Table: table, Message: fmt.Sprintf("reading %s", path), Cause: err}
	}
	return data, nil
}

// Load validates and parses raw table content.
func Load(headersJSON, skillsJSON []byte) (*Tables, error) {
	if err := schemas.ValidateEmbedded(schemas.SectionHeaders, headersJSON); err != nil {
		return nil, &LoadError{Table: "section headers", Message: "invalid content", Cause: err}
	}
	if err := schemas.ValidateEmbedded(schemas.Skills, skillsJSON); err != nil {
		return nil, &LoadError{Table: "skills", Message: "invalid content", Cause: err}
	}

	headerLists, err := types.ParseOrderedLists(headersJSON)
	if err != nil {
		return nil, &LoadError{Table: "section headers", Message: "malformed JSON", Cause: err}
	}
	skillLists, err := types.ParseOrderedLists(skillsJSON)
	if err != nil {
		return nil, &LoadError{Table: "skills", Message: "malformed JSON", Cause: err}
	}

	t := &Tables{synonyms: make(map[string]string)}
	for _, l := range headerLists {
		t.Sections = append(t.Sections, Section{Name: l.Name, Synonyms: l.Items})
		for _, syn := range l.Items {
			key := NormalizeHeader(syn)
			if _, taken := t.synonyms[key]; !taken {
				t.synonyms[key] = l.Name
			}
		}
	}

	termIndex := make(map[string]int)
	for _, l := range skillLists {
		t.Categories = append(t.Categories, Category{Name: l.Name, Skills: l.Items})
		for _, skill := range l.Items {
			key := strings.ToLower(skill)
			if i, ok := termIndex[key]; ok {
				t.terms[i].Display = skill
				continue
			}
			termIndex[key] = len(t.terms)
			t.terms = append(t.terms, TechTerm{Key: key, Display: skill})
		}
	}

	return t, nil
}

// NormalizeHeader lower-cases a trimmed line and strips one trailing colon.
func NormalizeHeader(line string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(line)), ":")
}

// SectionFor returns the canonical section a line introduces, if it is a header.
func (t *Tables) SectionFor(line string) (string, bool) {
	name, ok := t.synonyms[NormalizeHeader(line)]
	return name, ok
}

// TechTerms returns every distinct skill keyed by its lower-cased form.
func (t *Tables) TechTerms() []TechTerm {
	return t.terms
}

// CategoryNames returns category names in table order.
func (t *Tables) CategoryNames() []string {
	names := make([]string, len(t.Categories))
	for i, c := range t.Categories {
		names[i] = c.Name
	}
	return names
}
