package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/tabvec/core"
	"github.com/poiesic/tabvec/storage"
	"github.com/poiesic/tabvec/tabular"
)

const (
	// DefaultExtension is the file extension the pipeline discovers in the
	// input directory.
	DefaultExtension = ".csv"
)

// Pipeline orchestrates the ingestion of tabular files into vector
// collections. Files are processed strictly sequentially, one at a time,
// and each file is isolated: its failure is recorded in the run report
// without affecting the remaining files.
type Pipeline struct {
	store     storage.DocumentStore
	router    Router
	submitter *Submitter
	inputDir  string
	extension string
	progress  io.Writer
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithBatchSize sets the number of documents submitted per batch.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		p.submitter = NewSubmitter(size)
		return nil
	}
}

// WithExtension sets the file extension of discovered input files.
// Default is DefaultExtension.
func WithExtension(ext string) Option {
	return func(p *Pipeline) error {
		if ext == "" {
			ext = DefaultExtension
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		p.extension = ext
		return nil
	}
}

// WithProgressWriter sets where progress and summary lines are written.
// Default is os.Stdout.
func WithProgressWriter(w io.Writer) Option {
	return func(p *Pipeline) error {
		if w == nil {
			w = io.Discard
		}
		p.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline reading from inputDir and
// writing to collections of the given store, as resolved by the router.
func NewPipeline(store storage.DocumentStore, inputDir string, router Router, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if inputDir == "" {
		return nil, ErrInputDirRequired
	}
	if router == nil {
		return nil, ErrRouterRequired
	}

	p := &Pipeline{
		store:     store,
		router:    router,
		submitter: NewSubmitter(DefaultBatchSize),
		inputDir:  inputDir,
		extension: DefaultExtension,
		progress:  os.Stdout,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Run ingests every matching file in the input directory and returns the
// per-file report. An empty input directory is not an error: the run reports
// it and finishes cleanly. The returned error is reserved for run-level
// failures such as an unreadable input directory or context cancellation;
// per-file errors are recorded in the report and never abort the run.
func (p *Pipeline) Run(ctx context.Context) (*core.Report, error) {
	logger := p.logger.With("run_id", uuid.NewString())

	report := &core.Report{StartedAt: time.Now().UTC()}

	files, err := p.discover()
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		fmt.Fprintf(p.progress, "No %s files found in %s\n", p.extension, p.inputDir)
		logger.Info("no input files found", "dir", p.inputDir, "extension", p.extension)
		report.FinishedAt = time.Now().UTC()
		return report, nil
	}

	fmt.Fprintf(p.progress, "Starting ingestion of %d files (mode: %s, batch size: %d)\n",
		len(files), p.router.Mode(), p.submitter.BatchSize())
	logger.Info("starting ingestion",
		"dir", p.inputDir, "files", len(files),
		"mode", string(p.router.Mode()), "batch_size", p.submitter.BatchSize())

	tracker := NewProgressTracker(p.progress, len(files), 1)
	tracker.Start()

	for _, path := range files {
		// Check context between files
		select {
		case <-ctx.Done():
			report.FinishedAt = time.Now().UTC()
			return report, ctx.Err()
		default:
		}

		result := p.processFile(ctx, path)
		report.Add(result)

		if result.Failed() {
			logger.Error("file ingestion failed", "file", result.File, "err", result.Err)
		} else {
			logger.Info("file ingested", "file", result.File,
				"collection", result.Collection, "documents", result.Documents)
		}

		tracker.Increment(1)
	}

	tracker.Finish()
	report.FinishedAt = time.Now().UTC()

	p.summarize(report, tracker.Elapsed())

	return report, nil
}

// processFile loads one file, resolves its collection, and submits its
// documents. Every error is captured in the result rather than returned.
func (p *Pipeline) processFile(ctx context.Context, path string) core.FileResult {
	result := core.FileResult{File: filepath.Base(path), Path: path}

	docs, err := tabular.LoadDocuments(path)
	if err != nil {
		result.Err = fmt.Errorf("load: %w", err)
		fmt.Fprintf(p.progress, "Error processing %s: %v\n", result.File, err)
		return result
	}

	if len(docs) == 0 {
		fmt.Fprintf(p.progress, "Skipping %s: no data rows\n", result.File)
		return result
	}

	name, err := p.router.CollectionFor(path)
	if err != nil {
		result.Err = fmt.Errorf("route: %w", err)
		fmt.Fprintf(p.progress, "Error processing %s: %v\n", result.File, err)
		return result
	}
	result.Collection = name

	collection, err := p.store.OpenCollection(ctx, name)
	if err != nil {
		result.Err = fmt.Errorf("open collection %q: %w", name, err)
		fmt.Fprintf(p.progress, "Error processing %s: %v\n", result.File, result.Err)
		return result
	}

	submitted, err := p.submitter.Submit(ctx, collection, docs)
	result.Documents = submitted
	if err != nil {
		result.Err = err
		fmt.Fprintf(p.progress, "Error processing %s: %v\n", result.File, err)
		return result
	}

	fmt.Fprintf(p.progress, "Ingested %d documents from %s into %q\n",
		submitted, result.File, name)

	return result
}

// summarize prints the final run summary: succeeded vs failed counts and the
// per-file outcomes, including the file to collection mapping in separate
// mode.
func (p *Pipeline) summarize(report *core.Report, elapsed time.Duration) {
	fmt.Fprintf(p.progress, "Ingestion complete: %d/%d files succeeded, %d documents in %v\n",
		report.Succeeded(), len(report.Results), report.TotalDocuments(),
		elapsed.Round(time.Millisecond))

	for _, res := range report.Results {
		switch {
		case res.Failed():
			fmt.Fprintf(p.progress, "  %s: failed: %v\n", res.File, res.Err)
		case res.Collection == "":
			fmt.Fprintf(p.progress, "  %s: skipped (no data rows)\n", res.File)
		case p.router.Mode() == ModeSeparate:
			fmt.Fprintf(p.progress, "  %s -> %s (%d documents)\n", res.File, res.Collection, res.Documents)
		default:
			fmt.Fprintf(p.progress, "  %s (%d documents)\n", res.File, res.Documents)
		}
	}
}

// discover returns all input files with the configured extension, in lexical
// order.
func (p *Pipeline) discover() ([]string, error) {
	if _, err := os.Stat(p.inputDir); err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(p.inputDir, "*"+p.extension))
	if err != nil {
		return nil, fmt.Errorf("discover input files: %w", err)
	}

	sort.Strings(files)
	return files, nil
}
