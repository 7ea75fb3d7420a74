package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: []string{}},
		{name: "whitespace only", raw: " \n\t\n", want: []string{}},
		{
			name: "short alphabetic lines join",
			raw:  "Jane\nDoe\nSoftware Engineer",
			want: []string{"Jane Doe", "Software Engineer"},
		},
		{
			name: "joining is pairwise",
			raw:  "Alpha\nBeta\nGamma",
			want: []string{"Alpha Beta", "Gamma"},
		},
		{
			name: "long word is not joined",
			raw:  "Supercalifragilistic\nexpialidocious\nAcme",
			want: []string{"Supercalifragilistic expialidocious", "Acme"},
		},
		{
			name: "over twenty runes blocks join",
			raw:  "Pneumonoultramicroscopic\nDoe",
			want: []string{"Pneumonoultramicroscopic", "Doe"},
		},
		{
			name: "non-ASCII letters join",
			raw:  "José\nNúñez",
			want: []string{"José Núñez"},
		},
		{
			name: "bullet glyphs normalize",
			raw:  "• Built API\n* Led team\n◦ Wrote docs\n▪ Shipped\n‣ Tested\n· Reviewed",
			want: []string{"- Built API", "- Led team", "- Wrote docs", "- Shipped", "- Tested", "- Reviewed"},
		},
		{
			name: "underscore becomes dash",
			raw:  "jane_doe@example.com",
			want: []string{"jane-doe@example.com"},
		},
		{
			name: "carriage returns and blank runs",
			raw:  "Experience\r\n\r\n\r\n\r\nAcme Corp 2020",
			want: []string{"Experience", "Acme Corp 2020"},
		},
		{
			name: "horizontal space collapses",
			raw:  "  Senior \t  Engineer   at  Acme  ",
			want: []string{"Senior Engineer at Acme"},
		},
		{
			name: "digits prevent join",
			raw:  "Python3\nGo",
			want: []string{"Python3", "Go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Preprocess(tt.raw))
		})
	}
}

func TestIsShortWord(t *testing.T) {
	assert.True(t, isShortWord("Doe"))
	assert.True(t, isShortWord("abcdefghijklmnopqrst"))
	assert.False(t, isShortWord("abcdefghijklmnopqrstu"))
	assert.False(t, isShortWord(""))
	assert.False(t, isShortWord("two words"))
	assert.False(t, isShortWord("e-mail"))
}
