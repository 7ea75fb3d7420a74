// Package ingestion turns uploaded files and remote pages into the line
// sequence consumed by the résumé parser.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
)

// Document is an ingested résumé ready for parsing.
type Document struct {
	FileName string
	RawText  string
	Lines    []string
	Metadata *Metadata
}

// Ingest extracts and preprocesses an in-memory document.
func Ingest(filename string, data []byte) (*Document, error) {
	raw, err := ExtractText(filename, data)
	if err != nil {
		return nil, err
	}
	return newDocument(filename, raw), nil
}

// IngestFromFile reads and ingests the document at path.
func IngestFromFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Ingest(filepath.Base(path), data)
}

func newDocument(name, raw string) *Document {
	lines := Preprocess(raw)
	return &Document{
		FileName: name,
		RawText:  raw,
		Lines:    lines,
		Metadata: NewMetadata(name, raw, lines),
	}
}
