package parsing

import (
	"testing"

	"github.com/jonathan/resume-profiler/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexContactExtractor_AllFields(t *testing.T) {
	lines := []string{
		"John Smith",
		"john.smith@mail.com | +1 (555) 123-4567",
		"https://www.linkedin.com/in/johnsmith",
		"https://github.com/jsmith",
		"https://johnsmith.dev",
	}

	res := RegexContactExtractor{}.Extract(lines)
	c := res.Contact

	require.NotNil(t, c.Name)
	assert.Equal(t, "John Smith", *c.Name)
	require.NotNil(t, c.Email)
	assert.Equal(t, "john.smith@mail.com", *c.Email)
	require.NotNil(t, c.Phone)
	assert.Equal(t, "+1 (555) 123-4567", *c.Phone)
	assert.Equal(t, "https://www.linkedin.com/in/johnsmith", types.Deref(c.Links.LinkedIn))
	assert.Equal(t, "https://github.com/jsmith", types.Deref(c.Links.GitHub))
	assert.Equal(t, []string{"https://johnsmith.dev"}, c.Links.Other)

	assert.Equal(t, map[string]float64{"name": 0.6, "email": 0.99, "phone": 0.85, "links": 0.90}, res.Confidence)
}

func TestRegexContactExtractor_NothingFound(t *testing.T) {
	res := RegexContactExtractor{}.Extract([]string{"objective statement here"})

	assert.Nil(t, res.Contact.Name)
	assert.Nil(t, res.Contact.Email)
	assert.Nil(t, res.Contact.Phone)
	assert.Nil(t, res.Contact.Links.LinkedIn)
	assert.Equal(t, []string{}, res.Contact.Links.Other)
	assert.Equal(t, map[string]float64{"name": 0, "email": 0, "phone": 0, "links": 0}, res.Confidence)
}

func TestRegexContactExtractor_LaterProfileLinkWins(t *testing.T) {
	res := RegexContactExtractor{}.Extract([]string{
		"https://linkedin.com/in/old",
		"https://LinkedIn.com/in/new",
	})
	assert.Equal(t, "https://LinkedIn.com/in/new", types.Deref(res.Contact.Links.LinkedIn))
	assert.Empty(t, res.Contact.Links.Other)
}

func TestRegexContactExtractor_Name(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "skips email and url lines",
			lines: []string{"jane@x.io", "www.jane.dev", "Mary Ann Lee"},
			want:  "Mary Ann Lee",
		},
		{
			name:  "title prefix with dot is accepted",
			lines: []string{"Dr. Jane Doe"},
			want:  "Dr. Jane Doe",
		},
		{
			name:  "lower-case tokens rejected",
			lines: []string{"jane doe"},
		},
		{
			name:  "apostrophe rejected",
			lines: []string{"Jane D'Arcy"},
		},
		{
			name:  "single token rejected",
			lines: []string{"Jane"},
		},
		{
			name:  "five tokens rejected",
			lines: []string{"Anna Maria Luisa Garcia Lopez"},
		},
		{
			name:  "only first five lines considered",
			lines: []string{"skills", "a", "b", "c", "d", "Late Name"},
		},
		{
			name:  "line containing the phone is skipped",
			lines: []string{"Call 555 123 4567", "Ada Lovelace"},
			want:  "Ada Lovelace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := RegexContactExtractor{}.Extract(tt.lines)
			if tt.want == "" {
				assert.Nil(t, res.Contact.Name)
				assert.Equal(t, 0.0, res.Confidence["name"])
				return
			}
			require.NotNil(t, res.Contact.Name)
			assert.Equal(t, tt.want, *res.Contact.Name)
			assert.Equal(t, 0.6, res.Confidence["name"])
		})
	}
}
