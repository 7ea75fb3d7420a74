package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/jonathan/resume-profiler/internal/fetch"
	"github.com/ledongthuc/pdf"
)

// DefaultMaxUploadBytes is the upload size limit.
const DefaultMaxUploadBytes int64 = 5 << 20

// MaxDOCXXMLBytes caps the decompressed size of word/document.xml.
const MaxDOCXXMLBytes int64 = 10 * DefaultMaxUploadBytes

var errXMLTooLarge = errors.New("document.xml exceeds size limit")

// UploadExtensions lists the extensions accepted at upload time. "doc" is
// accepted here but has no extractor, so it fails later with an
// UnsupportedTypeError.
var UploadExtensions = []string{"pdf", "doc", "docx", "txt", "md", "html", "htm"}

var (
	mdHeadingRE  = regexp.MustCompile(`(?m)^[ \t]{0,3}#{1,6}[ \t]+`)
	mdEmphasisRE = regexp.MustCompile(`\*\*|__`)
	mdLinkRE     = regexp.MustCompile(`!?\[([^\]]*)\]\(([^)\s]+)\)`)
)

// Extension returns the lowercased text after the last dot of filename, or "".
func Extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// ValidateUpload checks an upload's extension and size before any bytes are
// decoded. maxBytes <= 0 means DefaultMaxUploadBytes.
func ValidateUpload(filename string, size, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	ext := Extension(filename)
	allowed := false
	for _, e := range UploadExtensions {
		if e == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		return &UnsupportedTypeError{Ext: ext}
	}
	if size > maxBytes {
		return &TooLargeError{Size: size, Limit: maxBytes}
	}
	return nil
}

// ExtractText decodes a document into plain text, choosing the decoder from
// the filename extension.
func ExtractText(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", &EmptyDocumentError{Source: filename}
	}

	var (
		text string
		err  error
	)
	switch ext := Extension(filename); ext {
	case "pdf":
		text, err = extractPDF(data)
	case "docx":
		text, err = extractDOCX(data)
	case "txt":
		text = string(data)
	case "md":
		text = stripMarkdown(string(data))
	case "html", "htm":
		text, err = extractHTML(string(data))
	default:
		return "", &UnsupportedTypeError{Ext: ext}
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func extractPDF(data []byte) (text string, err error) {
	// The PDF reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = &ExtractionError{Format: "pdf", Message: fmt.Sprintf("malformed document: %v", r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: "pdf", Message: "failed to open", Cause: err}
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", &ExtractionError{Format: "pdf", Message: "failed to extract text", Cause: err}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", &ExtractionError{Format: "pdf", Message: "failed to extract text", Cause: err}
	}
	return buf.String(), nil
}

// extractDOCX reads word/document.xml and emits one line per paragraph.
// Table cells are paragraphs too, so their text is kept.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: "docx", Message: "not a zip archive", Cause: err}
	}

	var body io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			if f.UncompressedSize64 > uint64(MaxDOCXXMLBytes) {
				return "", &ExtractionError{Format: "docx", Message: fmt.Sprintf("document.xml expands to %d bytes, limit is %d", f.UncompressedSize64, MaxDOCXXMLBytes)}
			}
			body, err = f.Open()
			if err != nil {
				return "", &ExtractionError{Format: "docx", Message: "failed to open document.xml", Cause: err}
			}
			break
		}
	}
	if body == nil {
		return "", &ExtractionError{Format: "docx", Message: "no word/document.xml in archive"}
	}
	defer func() { _ = body.Close() }()

	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
	)
	dec := xml.NewDecoder(&cappedReader{r: body, remaining: MaxDOCXXMLBytes})
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if errors.Is(err, errXMLTooLarge) {
			return "", &ExtractionError{Format: "docx", Message: fmt.Sprintf("document.xml exceeds %d bytes", MaxDOCXXMLBytes)}
		}
		if err != nil {
			return "", &ExtractionError{Format: "docx", Message: "invalid document.xml", Cause: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				current.WriteByte('\t')
			case "br", "cr":
				current.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if s := strings.TrimSpace(current.String()); s != "" {
					paragraphs = append(paragraphs, s)
				}
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}

// cappedReader fails with errXMLTooLarge once more than remaining bytes
// would be read from r.
type cappedReader struct {
	r         io.Reader
	remaining int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.remaining <= 0 {
		var probe [1]byte
		n, err := c.r.Read(probe[:])
		if n > 0 {
			return 0, errXMLTooLarge
		}
		return 0, err
	}
	if int64(len(p)) > c.remaining {
		p = p[:c.remaining]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	return n, err
}

// extractHTML converts HTML to Markdown and strips the Markdown syntax. If
// conversion fails the visible body text is used instead.
func extractHTML(html string) (string, error) {
	md, err := htmltomarkdown.ConvertString(html)
	if err == nil {
		return stripMarkdown(md), nil
	}

	text, ferr := fetch.ExtractMainText(html, fetch.DefaultTextSelectors())
	if ferr != nil {
		return "", &ExtractionError{Format: "html", Message: "failed to parse", Cause: ferr}
	}
	return text, nil
}

// stripMarkdown removes heading markers, bold markers and link syntax so
// section headers and URLs survive preprocessing intact.
func stripMarkdown(md string) string {
	md = mdHeadingRE.ReplaceAllString(md, "")
	md = mdLinkRE.ReplaceAllStringFunc(md, func(m string) string {
		parts := mdLinkRE.FindStringSubmatch(m)
		label, target := strings.TrimSpace(parts[1]), parts[2]
		if label == "" || label == target || strings.HasPrefix(m, "!") {
			return target
		}
		return label + " " + target
	})
	return mdEmphasisRE.ReplaceAllString(md, "")
}
