package ingestion

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docxHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(docxHeader + body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func paragraph(runs ...string) string {
	var sb strings.Builder
	sb.WriteString("<w:p>")
	for _, r := range runs {
		sb.WriteString(`<w:r><w:t xml:space="preserve">` + r + `</w:t></w:r>`)
	}
	sb.WriteString("</w:p>")
	return sb.String()
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"cv.pdf":         "pdf",
		"CV.DOCX":        "docx",
		"archive.tar.gz": "gz",
		"resume":         "",
		"dir.v2/resume":  "",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, Extension(in))
		})
	}
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		max      int64
		wantErr  string
	}{
		{name: "pdf ok", filename: "cv.pdf", size: 1024},
		{name: "doc accepted at upload", filename: "cv.doc", size: 1024},
		{name: "html ok", filename: "cv.HTM", size: 1},
		{name: "unsupported", filename: "cv.rtf", size: 10, wantErr: "Unsupported file type: rtf"},
		{name: "too large default", filename: "cv.pdf", size: DefaultMaxUploadBytes + 1, wantErr: "File size exceeds the 5 MB limit."},
		{name: "custom limit", filename: "cv.txt", size: 2000, max: 1000, wantErr: "File size exceeds the 1000 byte limit."},
		{name: "exactly at limit", filename: "cv.txt", size: 1000, max: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.filename, tt.size, tt.max)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestExtractText_PlainFormats(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     string
		want     string
	}{
		{
			name:     "txt is returned trimmed",
			filename: "cv.txt",
			data:     "\n  Jane Doe\nEngineer  \n",
			want:     "Jane Doe\nEngineer",
		},
		{
			name:     "markdown syntax stripped",
			filename: "cv.md",
			data:     "# Jane Doe\n\n## Experience\n**Engineer** | Acme\n[GitHub](https://github.com/janedoe)\n[https://janedoe.dev](https://janedoe.dev)",
			want:     "Jane Doe\n\nExperience\nEngineer | Acme\nGitHub https://github.com/janedoe\nhttps://janedoe.dev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractText(tt.filename, []byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractText_HTML(t *testing.T) {
	html := `<html><body>
<h1>Jane Doe</h1>
<h2>Skills</h2>
<ul><li>Go</li><li>Python</li></ul>
<p><a href="https://github.com/janedoe">GitHub</a></p>
</body></html>`

	got, err := ExtractText("cv.html", []byte(html))
	require.NoError(t, err)

	lines := Preprocess(got)
	assert.Equal(t, "Jane Doe", lines[0])
	assert.Contains(t, lines, "Skills")
	assert.Contains(t, got, "Python")
	assert.Contains(t, got, "GitHub https://github.com/janedoe")
	assert.NotContains(t, got, "#")
}

func TestExtractText_DOCX(t *testing.T) {
	body := paragraph("Jane", " Doe") +
		paragraph("jane@example.com") +
		"<w:p/>" +
		paragraph("Skills") +
		`<w:tbl><w:tr><w:tc>` + paragraph("Go, Python") + `</w:tc><w:tc>` + paragraph("PostgreSQL") + `</w:tc></w:tr></w:tbl>`

	got, err := ExtractText("cv.docx", buildDOCX(t, body))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\njane@example.com\nSkills\nGo, Python\nPostgreSQL", got)
}

func TestExtractText_Errors(t *testing.T) {
	var (
		unsupported *UnsupportedTypeError
		empty       *EmptyDocumentError
		extraction  *ExtractionError
	)

	tests := []struct {
		name     string
		filename string
		data     []byte
		target   any
		wantMsg  string
	}{
		{name: "empty bytes", filename: "cv.pdf", data: nil, target: &empty, wantMsg: "Uploaded document is empty"},
		{name: "unsupported extension", filename: "cv.rtf", data: []byte("x"), target: &unsupported, wantMsg: "Unsupported file type: rtf"},
		{name: "legacy word", filename: "cv.doc", data: []byte("x"), target: &unsupported, wantMsg: "Unsupported file type: doc"},
		{name: "no extension", filename: "resume", data: []byte("x"), target: &unsupported, wantMsg: "Unsupported file type: "},
		{name: "docx not a zip", filename: "cv.docx", data: []byte("not a zip"), target: &extraction, wantMsg: "unable to read docx document"},
		{name: "pdf garbage", filename: "cv.pdf", data: []byte("definitely not a pdf"), target: &extraction, wantMsg: "unable to read pdf document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractText(tt.filename, tt.data)
			require.Error(t, err)
			assert.ErrorAs(t, err, tt.target)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestExtractText_DOCXMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = ExtractText("cv.docx", buf.Bytes())
	var extraction *ExtractionError
	require.ErrorAs(t, err, &extraction)
	assert.Equal(t, "docx", extraction.Format)
}

func TestExtractText_DOCXExpansionLimit(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(docxHeader + `<w:p><w:r><w:t>`))
	require.NoError(t, err)
	chunk := bytes.Repeat([]byte("a"), 1<<20)
	for written := int64(0); written <= MaxDOCXXMLBytes; written += int64(len(chunk)) {
		_, err = w.Write(chunk)
		require.NoError(t, err)
	}
	_, err = w.Write([]byte(`</w:t></w:r></w:p></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	data := buf.Bytes()
	require.NoError(t, ValidateUpload("bomb.docx", int64(len(data)), DefaultMaxUploadBytes))

	_, err = ExtractText("bomb.docx", data)
	var extraction *ExtractionError
	require.ErrorAs(t, err, &extraction)
	assert.Equal(t, "docx", extraction.Format)
	assert.Contains(t, extraction.Message, "limit")
}

func TestCappedReader(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int64
		wantErr bool
	}{
		{name: "under limit", input: "abc", limit: 5},
		{name: "exactly at limit", input: "abcde", limit: 5},
		{name: "over limit", input: "abcdef", limit: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(&cappedReader{r: strings.NewReader(tt.input), remaining: tt.limit})
			if tt.wantErr {
				assert.ErrorIs(t, err, errXMLTooLarge)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, string(got))
		})
	}
}

func TestIngestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane\nDoe\n• Built things"), 0o644))

	doc, err := IngestFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "cv.txt", doc.FileName)
	assert.Equal(t, []string{"Jane Doe", "- Built things"}, doc.Lines)
	assert.Equal(t, "cv.txt", doc.Metadata.Source)
	assert.Equal(t, 2, doc.Metadata.LineCount)
}

func TestIngestFromFile_Missing(t *testing.T) {
	_, err := IngestFromFile(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
