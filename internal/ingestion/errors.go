package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL is returned when a URL cannot be fetched as given.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrHTTPRequestFailed is returned when fetching a URL fails.
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when fetched HTML cannot be reduced to text.
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// UnsupportedTypeError is returned for file extensions with no extractor.
type UnsupportedTypeError struct {
	Ext string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("Unsupported file type: %s", e.Ext)
}

// EmptyDocumentError is returned when a document has no bytes or no text.
type EmptyDocumentError struct {
	Source string
}

func (e *EmptyDocumentError) Error() string {
	if e.Source == "" {
		return "Uploaded document is empty."
	}
	return fmt.Sprintf("Uploaded document is empty: %s", e.Source)
}

// ExtractionError wraps a decoder failure for a supported format.
type ExtractionError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unable to read %s document: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("unable to read %s document: %s", e.Format, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// TooLargeError is returned when an upload exceeds the size limit.
type TooLargeError struct {
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	if e.Limit%(1<<20) == 0 {
		return fmt.Sprintf("File size exceeds the %d MB limit.", e.Limit>>20)
	}
	return fmt.Sprintf("File size exceeds the %d byte limit.", e.Limit)
}

// IsValidationError reports whether err is a problem with the submitted
// document rather than with the service.
func IsValidationError(err error) bool {
	var (
		unsupported *UnsupportedTypeError
		empty       *EmptyDocumentError
		extraction  *ExtractionError
		tooLarge    *TooLargeError
	)
	return errors.As(err, &unsupported) ||
		errors.As(err, &empty) ||
		errors.As(err, &extraction) ||
		errors.As(err, &tooLarge)
}
