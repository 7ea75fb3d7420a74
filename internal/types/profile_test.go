//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile_SerializesEmptyCollections(t *testing.T) {
	data, err := json.Marshal(NewProfile())
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, []any{}, out["sections_found"])
	assert.Equal(t, []any{}, out["education"])
	assert.Equal(t, []any{}, out["experience"])
	assert.Equal(t, []any{}, out["projects"])
	assert.NotContains(t, out, "resume_health")

	contact := out["contact"].(map[string]any)
	assert.Nil(t, contact["name"])
	assert.Nil(t, contact["email"])
	links := contact["links"].(map[string]any)
	assert.Equal(t, []any{}, links["other"])
	assert.Nil(t, links["linkedin"])
}

func TestExperienceEntry_DateRangeNotSerialized(t *testing.T) {
	entry := ExperienceEntry{Title: StringPtr("Engineer"), DateRange: "2020 - 2021", Highlights: []string{}}

	data, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "2020")
	assert.Contains(t, string(data), `"start_date":null`)
}

func TestEntryPredicates(t *testing.T) {
	assert.True(t, EducationEntry{}.IsEmpty())
	assert.False(t, EducationEntry{StartYear: StringPtr("2018")}.IsEmpty())

	assert.False(t, ExperienceEntry{DateRange: "2019 - 2020"}.HasContent())
	assert.True(t, ExperienceEntry{Highlights: []string{"Shipped"}}.HasContent())

	assert.False(t, ProjectEntry{Highlights: []string{}, TechStack: []string{}, Links: []string{}}.HasContent())
	assert.True(t, ProjectEntry{Links: []string{"https://x.dev"}}.HasContent())
}

func TestStringHelpers(t *testing.T) {
	assert.Equal(t, "", Deref(nil))
	assert.Equal(t, "a", Deref(StringPtr("a")))
	assert.Equal(t, "fallback", Or(nil, "fallback"))
	assert.Equal(t, "fallback", Or(StringPtr(""), "fallback"))
	assert.Equal(t, "value", Or(StringPtr("value"), "fallback"))
}

func TestResumeSummary(t *testing.T) {
	r := &Resume{ID: uuid.New(), FileName: "cv.pdf"}
	assert.Nil(t, r.Summary().Score)

	r.ResumeHealth = &HealthReport{Score: 70}
	s := r.Summary()
	require.NotNil(t, s.Score)
	assert.Equal(t, 70, *s.Score)
	assert.Equal(t, "cv.pdf", s.FileName)
}

func TestResumeUpdate_IsEmpty(t *testing.T) {
	assert.True(t, (&ResumeUpdate{}).IsEmpty())
	confirmed := true
	assert.False(t, (&ResumeUpdate{IsConfirmed: &confirmed}).IsEmpty())
}

func TestParseExportFormat(t *testing.T) {
	f, ok := ParseExportFormat("readme")
	assert.True(t, ok)
	assert.Equal(t, FormatReadme, f)

	_, ok = ParseExportFormat("pdf")
	assert.False(t, ok)
}
