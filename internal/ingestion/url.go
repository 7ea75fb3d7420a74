package ingestion

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/jonathan/resume-profiler/internal/fetch"
	"go.uber.org/zap"
)

// URLOptions configures IngestFromURL.
type URLOptions struct {
	// UseBrowser enables the headless-browser fallback for pages whose
	// HTTP response carries too little text.
	UseBrowser bool
	// PublicOnly refuses pages served from loopback, private or
	// link-local addresses.
	PublicOnly bool
	Fetch      *fetch.Options
	// Renderer defaults to a local headless Chrome.
	Renderer fetch.Renderer
	Logger   *zap.Logger
}

// IngestFromURL fetches a résumé from a URL. PDF and Word documents are
// decoded like uploads; HTML pages are reduced to their main text using
// platform-specific selectors.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (*Document, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if err := fetch.ValidateURL(urlStr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	platform := fetch.DetectPlatform(urlStr)
	log.Debug("fetching résumé", zap.String("url", urlStr), zap.String("platform", string(platform)))

	result, err := fetch.URL(ctx, urlStr, fetchOptions(opts))
	if err != nil {
		if errors.Is(err, fetch.ErrBlockedAddress) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	log.Debug("fetched", zap.Int("bytes", len(result.Body)), zap.String("content_type", result.ContentType))

	if name, ok := binaryDocumentName(urlStr, result.MediaType()); ok {
		raw, err := ExtractText(name, result.Body)
		if err != nil {
			return nil, err
		}
		doc := newDocument(name, raw)
		annotate(doc, urlStr, platform, result.ContentType)
		return doc, nil
	}

	html := result.HTML()
	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	log.Debug("extracted text", zap.Int("chars", len(text)))

	if opts.UseBrowser && (fetch.ShouldUseBrowser(text) || fetch.RequiresBrowser(platform)) {
		log.Info("falling back to browser rendering",
			zap.Int("chars", len(text)), zap.Int("min_chars", fetch.MinContentLength))

		renderer := opts.Renderer
		if renderer == nil {
			renderer = fetch.NewBrowser(log)
		}
		rendered, rerr := renderer.Render(ctx, urlStr)
		switch {
		case rerr != nil:
			log.Warn("browser rendering failed, using HTTP content", zap.Error(rerr))
		default:
			if browserText, berr := fetch.ExtractMainText(rendered, contentSelectors, noiseSelectors...); berr != nil {
				log.Warn("browser content extraction failed", zap.Error(berr))
			} else {
				text = browserText
			}
		}
	}

	if strings.TrimSpace(text) == "" {
		return nil, &EmptyDocumentError{Source: urlStr}
	}

	doc := newDocument(pageName(urlStr, html), text)
	annotate(doc, urlStr, platform, result.ContentType)
	return doc, nil
}

// IsFetchError reports whether err came from reaching the remote page.
func IsFetchError(err error) bool {
	return errors.Is(err, ErrInvalidURL) || errors.Is(err, ErrHTTPRequestFailed)
}

func fetchOptions(opts URLOptions) *fetch.Options {
	if !opts.PublicOnly {
		return opts.Fetch
	}
	o := fetch.DefaultOptions()
	if opts.Fetch != nil {
		c := *opts.Fetch
		o = &c
	}
	o.PublicOnly = true
	return o
}

func annotate(doc *Document, urlStr string, platform fetch.Platform, contentType string) {
	doc.Metadata.URL = urlStr
	doc.Metadata.Platform = string(platform)
	doc.Metadata.ContentType = contentType
}

// binaryDocumentName returns a file name whose extension selects the right
// decoder when the response is a PDF or DOCX.
func binaryDocumentName(urlStr, mediaType string) (string, bool) {
	base := "document"
	if u, err := url.Parse(urlStr); err == nil {
		if b := path.Base(u.Path); b != "" && b != "/" && b != "." {
			base = b
		}
	}

	switch {
	case mediaType == "application/pdf":
		return ensureExt(base, "pdf"), true
	case mediaType == "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return ensureExt(base, "docx"), true
	}

	switch Extension(base) {
	case "pdf", "docx":
		if mediaType == "" || mediaType == "application/octet-stream" {
			return base, true
		}
	}
	return "", false
}

func ensureExt(name, ext string) string {
	if Extension(name) == ext {
		return name
	}
	return name + "." + ext
}

func pageName(urlStr, html string) string {
	if title := fetch.Title(html); title != "" {
		return title
	}
	return urlStr
}
