package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes where a document came from and what was extracted.
type Metadata struct {
	Source      string `json:"source"`
	URL         string `json:"url,omitempty"`
	Platform    string `json:"platform,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Timestamp   string `json:"timestamp"` // RFC3339
	Hash        string `json:"hash"`      // SHA256 hex digest of the raw text
	CharCount   int    `json:"char_count"`
	LineCount   int    `json:"line_count"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(source, rawText string, lines []string) *Metadata {
	return &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(rawText),
		CharCount: len([]rune(rawText)),
		LineCount: len(lines),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return b, nil
}
