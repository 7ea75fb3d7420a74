package parsing

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/resume-profiler/internal/taxonomy"
	"github.com/jonathan/resume-profiler/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var janeDoeLines = []string{
	"Jane Doe",
	"jane@example.com",
	"Skills",
	"Python, Django",
	"Education",
	"ABC University",
	"BSc Computer Science 2018-2022",
}

func TestParser_JaneDoe(t *testing.T) {
	p := NewParser(taxonomy.MustEmbedded())

	profile := p.Parse(janeDoeLines)

	assert.Equal(t, "jane@example.com", types.Deref(profile.Contact.Email))
	assert.Equal(t, "Jane Doe", types.Deref(profile.Contact.Name))
	assert.Equal(t, []string{"unknown", "skills", "education"}, profile.SectionsFound)

	langs, _ := profile.Skills.Categories.Get("programming_languages")
	assert.Equal(t, []string{"Python"}, langs)
	frameworks, _ := profile.Skills.Categories.Get("frameworks")
	assert.Equal(t, []string{"Django"}, frameworks)
	assert.Equal(t, 0.75, profile.Skills.Confidence)

	require.Len(t, profile.Education, 1)
	edu := profile.Education[0]
	assert.Equal(t, "ABC University", types.Deref(edu.School))
	assert.Equal(t, "BSc", types.Deref(edu.Degree))
	assert.Equal(t, "2018", types.Deref(edu.StartYear))
	assert.Equal(t, "2022", types.Deref(edu.EndYear))
	assert.Nil(t, edu.Field)

	assert.Empty(t, profile.Experience)
	assert.Empty(t, profile.Projects)

	assert.Equal(t, 0.99, profile.Confidence["email"])
	assert.Equal(t, 0.6, profile.Confidence["name"])
	assert.NotContains(t, profile.Confidence, "skills")
	assert.Len(t, profile.Confidence, 4)

	require.NotNil(t, profile.ResumeHealth)
	assert.Equal(t, 40, profile.ResumeHealth.Score)
	assert.Equal(t, []string{"Email detected", "Education detected"}, profile.ResumeHealth.Strengths)
	assert.Equal(t,
		[]string{"Skills list is short", "Experience not detected", "No GitHub/LinkedIn detected"},
		profile.ResumeHealth.Warnings)
}

func TestParser_Idempotent(t *testing.T) {
	p := NewParser(taxonomy.MustEmbedded())

	first, err := json.Marshal(p.Parse(janeDoeLines))
	require.NoError(t, err)
	second, err := json.Marshal(p.Parse(janeDoeLines))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestParser_EmptyInput(t *testing.T) {
	profile := NewParser(taxonomy.MustEmbedded()).Parse(nil)

	assert.Equal(t, []string{}, profile.SectionsFound)
	assert.Equal(t, []types.EducationEntry{}, profile.Education)
	assert.Equal(t, 0.0, profile.Skills.Confidence)
	require.NotNil(t, profile.ResumeHealth)
	assert.Equal(t, 0, profile.ResumeHealth.Score)
	assert.Contains(t, profile.ResumeHealth.Warnings, "Skills not detected")
}

func TestParser_InjectedExtractors(t *testing.T) {
	var seenEducation []string
	p := NewParser(taxonomy.MustEmbedded(),
		WithContactExtractor(ContactFunc(func(lines []string) types.ContactResult {
			return types.ContactResult{
				Contact:    types.Contact{Email: types.StringPtr("stub@example.com")},
				Confidence: map[string]float64{"email": 1},
			}
		})),
		WithEducationExtractor(SectionFunc[types.EducationEntry](func(lines []string) []types.EducationEntry {
			seenEducation = lines
			return nil
		})),
		WithExperienceExtractor(SectionFunc[types.ExperienceEntry](func(lines []string) []types.ExperienceEntry {
			return []types.ExperienceEntry{{Title: types.StringPtr("Stub"), Highlights: []string{"Grew revenue 20%"}}}
		})),
	)

	profile := p.Parse(janeDoeLines)

	assert.Equal(t, "stub@example.com", types.Deref(profile.Contact.Email))
	assert.Equal(t, []string{}, profile.Contact.Links.Other)
	assert.Equal(t, []string{"ABC University", "BSc Computer Science 2018-2022"}, seenEducation)
	assert.Equal(t, []types.EducationEntry{}, profile.Education)
	require.Len(t, profile.Experience, 1)
	assert.Contains(t, profile.ResumeHealth.Strengths, "Includes quantified achievements")
}

func TestParser_Rescore(t *testing.T) {
	p := NewParser(taxonomy.MustEmbedded())
	profile := p.Parse(janeDoeLines)

	profile.Contact.Links.GitHub = types.StringPtr("https://github.com/jane")
	report := p.Rescore(profile)

	assert.Equal(t, 50, report.Score)
	assert.Equal(t, report, *profile.ResumeHealth)
}
