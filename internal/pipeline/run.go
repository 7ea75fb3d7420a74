// Package pipeline provides the high-level orchestration of résumé
// processing: ingestion, parsing, health scoring and export.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-profiler/internal/fetch"
	"github.com/jonathan/resume-profiler/internal/ingestion"
	"github.com/jonathan/resume-profiler/internal/logging"
	"github.com/jonathan/resume-profiler/internal/parsing"
	"github.com/jonathan/resume-profiler/internal/rendering"
	"github.com/jonathan/resume-profiler/internal/taxonomy"
	"github.com/jonathan/resume-profiler/internal/types"
)

// Step names reported through ProgressEvent.
const (
	StepIngest = "ingest"
	StepParse  = "parse"
	StepExport = "export"
)

// Step categories reported through ProgressEvent.
const (
	CategoryIngestion = "ingestion"
	CategoryAnalysis  = "analysis"
	CategoryOutput    = "output"
)

// DefaultConcurrency bounds ParseBatch when the caller passes zero.
const DefaultConcurrency = 4

// ProgressEvent represents a progress update while a document is processed.
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Source   string `json:"source,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs. It may be
// called from several goroutines during ParseBatch.
type ProgressCallback func(event ProgressEvent)

// Result is a processed document.
type Result struct {
	Document *ingestion.Document
	Profile  *types.Profile
	Exports  types.ExportBundle
}

// BatchItem is the outcome for one path of ParseBatch.
type BatchItem struct {
	Path   string
	Result *Result
	Err    error
}

// Workflow wires ingestion, the parser and the renderers together. It is
// safe for concurrent use once built.
type Workflow struct {
	tables        *taxonomy.Tables
	parserOptions []parsing.Option
	parser        *parsing.Parser

	maxUploadBytes int64
	useBrowser     bool
	publicOnly     bool
	renderer       fetch.Renderer
	fetchOptions   *fetch.Options
	templatePath   string

	logger     *zap.Logger
	onProgress ProgressCallback
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option { return func(w *Workflow) { w.logger = l } }

// WithMaxUploadBytes caps document size; zero keeps ingestion.DefaultMaxUploadBytes.
func WithMaxUploadBytes(n int64) Option { return func(w *Workflow) { w.maxUploadBytes = n } }

// WithBrowser enables the headless-browser fallback for every URL import.
func WithBrowser(enabled bool) Option { return func(w *Workflow) { w.useBrowser = enabled } }

// WithPublicHostsOnly refuses URL imports that resolve to loopback,
// private or link-local addresses.
func WithPublicHostsOnly(enabled bool) Option { return func(w *Workflow) { w.publicOnly = enabled } }

// WithRenderer replaces the headless browser used for URL imports.
func WithRenderer(r fetch.Renderer) Option { return func(w *Workflow) { w.renderer = r } }

// WithFetchOptions overrides HTTP fetch settings for URL imports.
func WithFetchOptions(o *fetch.Options) Option { return func(w *Workflow) { w.fetchOptions = o } }

// WithTemplate sets the LaTeX template path; empty uses the built-in one.
func WithTemplate(path string) Option { return func(w *Workflow) { w.templatePath = path } }

// WithProgress registers a progress callback.
func WithProgress(cb ProgressCallback) Option { return func(w *Workflow) { w.onProgress = cb } }

// WithParserOptions passes extractor overrides to parsing.NewParser.
func WithParserOptions(opts ...parsing.Option) Option {
	return func(w *Workflow) { w.parserOptions = append(w.parserOptions, opts...) }
}

// New builds a Workflow over the given lookup tables.
func New(tables *taxonomy.Tables, opts ...Option) *Workflow {
	w := &Workflow{tables: tables}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}
	w.parser = parsing.NewParser(tables, w.parserOptions...)
	return w
}

// With returns a copy of w with opts applied on top of its settings. The
// receiver is left unchanged.
func (w *Workflow) With(opts ...Option) *Workflow {
	c := *w
	c.parserOptions = slices.Clip(w.parserOptions)
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.parser = parsing.NewParser(c.tables, c.parserOptions...)
	return &c
}

// MaxUploadBytes returns the effective upload limit.
func (w *Workflow) MaxUploadBytes() int64 {
	if w.maxUploadBytes <= 0 {
		return ingestion.DefaultMaxUploadBytes
	}
	return w.maxUploadBytes
}

func (w *Workflow) emit(step, category, source, message string, content any) {
	if w.onProgress != nil {
		w.onProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			Source:   source,
			Content:  content,
		})
	}
}

// ProcessDocument validates, extracts and parses an uploaded document.
func (w *Workflow) ProcessDocument(ctx context.Context, filename string, data []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ingestion.ValidateUpload(filename, int64(len(data)), w.MaxUploadBytes()); err != nil {
		return nil, err
	}

	w.emit(StepIngest, CategoryIngestion, filename, "extracting text", nil)
	doc, err := ingestion.Ingest(filename, data)
	if err != nil {
		return nil, err
	}

	return w.process(doc), nil
}

// ProcessFile reads the document at path and processes it like an upload.
func (w *Workflow) ProcessFile(ctx context.Context, path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if err := ingestion.ValidateUpload(path, info.Size(), w.MaxUploadBytes()); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return w.ProcessDocument(ctx, filepath.Base(path), data)
}

// ProcessURL fetches and parses a résumé published at urlStr. useBrowser
// enables the headless fallback for this call in addition to WithBrowser.
func (w *Workflow) ProcessURL(ctx context.Context, urlStr string, useBrowser bool) (*Result, error) {
	w.emit(StepIngest, CategoryIngestion, urlStr, "fetching page", nil)

	doc, err := ingestion.IngestFromURL(ctx, urlStr, ingestion.URLOptions{
		UseBrowser: useBrowser || w.useBrowser,
		PublicOnly: w.publicOnly,
		Fetch:      w.fetchOptions,
		Renderer:   w.renderer,
		Logger:     w.logger,
	})
	if err != nil {
		return nil, err
	}

	return w.process(doc), nil
}

// ProcessLines parses already-preprocessed lines.
func (w *Workflow) ProcessLines(lines []string) *types.Profile {
	return w.parser.Parse(lines)
}

func (w *Workflow) process(doc *ingestion.Document) *Result {
	start := time.Now()
	log := logging.WithFields(w.logger, logging.Source(doc.FileName)...)

	w.emit(StepParse, CategoryAnalysis, doc.FileName, fmt.Sprintf("parsing %d lines", len(doc.Lines)), nil)
	profile := w.parser.Parse(doc.Lines)

	w.emit(StepExport, CategoryOutput, doc.FileName, "rendering exports", profile.ResumeHealth)
	exports := w.BuildExports(profile)

	log.Debug("processed résumé",
		zap.Int("lines", len(doc.Lines)),
		zap.Strings("sections", profile.SectionsFound),
		zap.Int("score", profile.ResumeHealth.Score),
		zap.Duration("duration", time.Since(start)),
	)

	return &Result{Document: doc, Profile: profile, Exports: exports}
}

// BuildExports renders the CV, README and professional-network payload.
func (w *Workflow) BuildExports(p *types.Profile) types.ExportBundle {
	return rendering.Export(p)
}

// RenderLaTeX renders p with the configured template.
func (w *Workflow) RenderLaTeX(p *types.Profile) (string, error) {
	return rendering.RenderLaTeX(p, w.templatePath)
}

// Rescore recomputes the health report of an edited profile in place.
func (w *Workflow) Rescore(p *types.Profile) types.HealthReport {
	return w.parser.Rescore(p)
}

// ParseBatch processes every path with at most concurrency documents in
// flight. A failing document is reported in its BatchItem and does not stop
// the others; the returned error is non-nil only when ctx ends early.
// Items keep the order of paths.
func (w *Workflow) ParseBatch(ctx context.Context, paths []string, concurrency int) ([]BatchItem, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	items := make([]BatchItem, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				items[i] = BatchItem{Path: path, Err: err}
				return err
			}
			res, err := w.ProcessFile(gCtx, path)
			if err != nil {
				w.logger.Warn("batch item failed", zap.String(logging.FieldSource, path), zap.Error(err))
			}
			items[i] = BatchItem{Path: path, Result: res, Err: err}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return items, fmt.Errorf("batch interrupted: %w", err)
	}
	return items, nil
}
