package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetadata(t *testing.T) {
	m := NewMetadata("cv.txt", "Jane Doe\nEngineer", []string{"Jane Doe", "Engineer"})

	assert.Equal(t, "cv.txt", m.Source)
	assert.Len(t, m.Hash, 64)
	assert.Equal(t, 17, m.CharCount)
	assert.Equal(t, 2, m.LineCount)

	_, err := time.Parse(time.RFC3339, m.Timestamp)
	require.NoError(t, err)
}

func TestNewMetadata_HashIsContentAddressed(t *testing.T) {
	a := NewMetadata("a.txt", "same text", nil)
	b := NewMetadata("b.txt", "same text", nil)
	c := NewMetadata("a.txt", "other text", nil)

	assert.Equal(t, a.Hash, b.Hash)
	assert.NotEqual(t, a.Hash, c.Hash)
}

func TestMetadata_ToJSON(t *testing.T) {
	m := NewMetadata("cv.pdf", "text", []string{"text"})
	m.URL = "https://janedoe.dev/cv.pdf"

	raw, err := m.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "cv.pdf", decoded["source"])
	assert.Equal(t, "https://janedoe.dev/cv.pdf", decoded["url"])
	assert.NotContains(t, decoded, "platform")
	assert.EqualValues(t, 1, decoded["line_count"])
}
