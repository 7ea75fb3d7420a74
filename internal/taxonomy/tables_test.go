package taxonomy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedded_Loads(t *testing.T) {
	tables, err := Embedded()
	require.NoError(t, err)

	assert.NotEmpty(t, tables.Sections)
	assert.Equal(t, "programming_languages", tables.Categories[0].Name)
	assert.Contains(t, tables.CategoryNames(), "databases")

	again, err := Embedded()
	require.NoError(t, err)
	assert.Same(t, tables, again)
}

func TestMustEmbedded_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.NotNil(t, MustEmbedded())
	})
}

func TestSectionFor(t *testing.T) {
	tables := MustEmbedded()

	tests := []struct {
		line    string
		want    string
		matched bool
	}{
		{line: "Skills", want: "skills", matched: true},
		{line: "  EDUCATION:  ", want: "education", matched: true},
		{line: "Technical Skills:", want: "skills", matched: true},
		{line: "Work: Experience", matched: false},
		{line: "Ski:lls", matched: false},
		{line: "Skills I have", matched: false},
		{line: "Python, Django", matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := tables.SectionFor(tt.line)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_FirstSectionWinsSharedSynonym(t *testing.T) {
	tables, err := Load(
		[]byte(`{"projects": ["portfolio"], "links": ["portfolio", "links"]}`),
		[]byte(`{"tools": ["Git"]}`),
	)
	require.NoError(t, err)

	got, ok := tables.SectionFor("Portfolio")
	require.True(t, ok)
	assert.Equal(t, "projects", got)
}

func TestLoad_PreservesCategoryOrder(t *testing.T) {
	tables, err := Load(
		[]byte(`{"skills": ["skills"]}`),
		[]byte(`{"zeta": ["Z"], "alpha": ["A"], "mid": []}`),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, tables.CategoryNames())
}

func TestLoad_TechTermsDeduplicateByLowerCase(t *testing.T) {
	tables, err := Load(
		[]byte(`{"skills": ["skills"]}`),
		[]byte(`{"a": ["Docker", "Git"], "b": ["docker"]}`),
	)
	require.NoError(t, err)

	terms := tables.TechTerms()
	require.Len(t, terms, 2)
	assert.Equal(t, TechTerm{Key: "docker", Display: "docker"}, terms[0])
	assert.Equal(t, TechTerm{Key: "git", Display: "Git"}, terms[1])
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		headers string
		skills  string
		table   string
	}{
		{name: "malformed headers", headers: `{`, skills: `{"a": ["B"]}`, table: "section headers"},
		{name: "empty headers", headers: `{}`, skills: `{"a": ["B"]}`, table: "section headers"},
		{name: "skills not lists", headers: `{"skills": ["skills"]}`, skills: `{"a": "B"}`, table: "skills"},
		{name: "skills empty", headers: `{"skills": ["skills"]}`, skills: `{}`, table: "skills"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.headers), []byte(tt.skills))
			require.Error(t, err)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, tt.table, loadErr.Table)
		})
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	skillsPath := filepath.Join(dir, "skills.json")
	require.NoError(t, os.WriteFile(skillsPath, []byte(`{"only": ["Elixir"]}`), 0644))

	tables, err := LoadFiles("", skillsPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, tables.CategoryNames())

	_, ok := tables.SectionFor("education")
	assert.True(t, ok, "embedded headers should be used when no override is given")

	_, err = LoadFiles(filepath.Join(dir, "missing.json"), "")
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Error(), "missing.json")
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "skills", NormalizeHeader("  Skills:  "))
	assert.Equal(t, "work: experience", NormalizeHeader("Work: Experience:"))
	assert.Equal(t, "skills ", NormalizeHeader("Skills :"))
	assert.Equal(t, "ski:lls", NormalizeHeader("Ski:lls"))
	assert.Equal(t, "skills:", NormalizeHeader("Skills::"))
}
