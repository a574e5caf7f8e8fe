// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tabvec

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/poiesic/tabvec/ai"
	"github.com/poiesic/tabvec/ai/openai"
	"github.com/poiesic/tabvec/core"
	"github.com/poiesic/tabvec/ingest"
	"github.com/poiesic/tabvec/storage"
	"github.com/poiesic/tabvec/storage/badger"
	"github.com/poiesic/tabvec/storage/chroma"
)

const (
	// DefaultInputDir is the directory scanned for input files when none is
	// configured.
	DefaultInputDir = "data"

	// DefaultCollection is the shared collection name used in single mode
	// when none is configured.
	DefaultCollection = "tabvec_data"

	// DefaultOutputDirSingle is where the local store persists in single mode.
	DefaultOutputDirSingle = "vector_store/tabvec_db_single"

	// DefaultOutputDirSeparate is where the local store persists in separate
	// mode.
	DefaultOutputDirSeparate = "vector_store/tabvec_db_separate"
)

// Config enumerates every recognized ingestion option. The zero value is not
// usable; create one with NewConfig or set Mode explicitly.
type Config struct {
	// APIKey is the embedding provider credential. Required unless a store
	// is injected with WithStore.
	APIKey string

	// BaseURL overrides the embedding provider endpoint. Optional.
	BaseURL string

	// EmbeddingModel is the embedding model identifier.
	// Default is ai.DefaultEmbeddingModel.
	EmbeddingModel string

	// InputDir is the directory scanned for input files.
	// Default is DefaultInputDir.
	InputDir string

	// OutputDir is where the local vector store persists. Ignored when
	// ChromaURL is set. Default depends on Mode.
	OutputDir string

	// BatchSize is the number of documents submitted per batch.
	// Default is ingest.DefaultBatchSize.
	BatchSize int

	// Mode selects how documents are routed to collections. Required.
	Mode ingest.Mode

	// Collection is the shared collection name in single mode, ignored in
	// separate mode. Default is DefaultCollection.
	Collection string

	// ChromaURL, when set, persists documents to a remote Chroma server
	// instead of the local store.
	ChromaURL string
}

// NewConfig returns a Config with the defaults for the given routing mode.
func NewConfig(mode ingest.Mode) *Config {
	cfg := &Config{Mode: mode}
	cfg.Normalize()
	return cfg
}

// Normalize fills unset fields with their defaults.
func (c *Config) Normalize() {
	if c.EmbeddingModel == "" {
		c.EmbeddingModel = ai.DefaultEmbeddingModel
	}
	if c.InputDir == "" {
		c.InputDir = DefaultInputDir
	}
	if c.BatchSize <= 0 {
		c.BatchSize = ingest.DefaultBatchSize
	}
	if c.Mode == ingest.ModeSingle && c.Collection == "" {
		c.Collection = DefaultCollection
	}
	if c.OutputDir == "" {
		switch c.Mode {
		case ingest.ModeSingle:
			c.OutputDir = DefaultOutputDirSingle
		case ingest.ModeSeparate:
			c.OutputDir = DefaultOutputDirSeparate
		}
	}
}

// Validate checks that the configuration is complete enough to start a run.
// It normalizes the configuration first. The API key is not checked here;
// it is required only when the ingestor builds its own embedding provider.
func (c *Config) Validate() error {
	c.Normalize()

	if !c.Mode.Valid() {
		return fmt.Errorf("config: %w: %q", ingest.ErrInvalidMode, c.Mode)
	}
	if c.Mode == ingest.ModeSingle {
		if err := core.ValidateCollectionName(c.Collection); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

// Ingestor wires the embedding provider, the vector store, and the ingestion
// pipeline for runs over a directory of tabular files.
type Ingestor struct {
	config   *Config
	store    storage.DocumentStore
	ownStore bool
	pipeline *ingest.Pipeline
	logger   *slog.Logger
}

// IngestorOption configures an Ingestor.
type IngestorOption func(*ingestorOptions)

type ingestorOptions struct {
	store    storage.DocumentStore
	progress io.Writer
	logger   *slog.Logger
}

// WithStore injects a pre-built document store. The ingestor then skips
// building the embedding provider and local store, and Close leaves the
// injected store open for its owner.
func WithStore(store storage.DocumentStore) IngestorOption {
	return func(o *ingestorOptions) {
		o.store = store
	}
}

// WithProgressWriter sets where progress and summary lines are written.
// Default is os.Stdout.
func WithProgressWriter(w io.Writer) IngestorOption {
	return func(o *ingestorOptions) {
		o.progress = w
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) IngestorOption {
	return func(o *ingestorOptions) {
		o.logger = logger
	}
}

// NewIngestor creates an ingestor for the given configuration. A missing API
// key fails here, before any file is read, unless a store is injected.
func NewIngestor(config *Config, opts ...IngestorOption) (*Ingestor, error) {
	if config == nil {
		config = NewConfig(ingest.ModeSingle)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Apply options
	options := &ingestorOptions{
		progress: os.Stdout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store := options.store
	ownStore := false
	if store == nil {
		var err error
		store, err = buildStore(config)
		if err != nil {
			return nil, err
		}
		ownStore = true
	}

	router, err := ingest.NewRouter(config.Mode, config.Collection)
	if err != nil {
		if ownStore {
			store.Close()
		}
		return nil, err
	}

	pipeline, err := ingest.NewPipeline(store, config.InputDir, router,
		ingest.WithBatchSize(config.BatchSize),
		ingest.WithProgressWriter(options.progress),
		ingest.WithLogger(options.logger),
	)
	if err != nil {
		if ownStore {
			store.Close()
		}
		return nil, err
	}

	return &Ingestor{
		config:   config,
		store:    store,
		ownStore: ownStore,
		pipeline: pipeline,
		logger:   options.logger,
	}, nil
}

// buildStore constructs the document store from configuration: a remote
// Chroma server when ChromaURL is set, otherwise a local store rooted at
// OutputDir.
func buildStore(config *Config) (storage.DocumentStore, error) {
	aiConfig := ai.NewConfig(
		ai.WithAPIKey(config.APIKey),
		ai.WithBaseURL(config.BaseURL),
		ai.WithEmbeddingModel(config.EmbeddingModel),
	)

	if config.ChromaURL != "" {
		return chroma.NewStore(config.ChromaURL, aiConfig)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return nil, err
	}

	return badger.NewStore(config.OutputDir, embedder)
}

// Run ingests every matching file in the configured input directory and
// returns the per-file report. Per-file failures are recorded in the report;
// the returned error is reserved for run-level failures.
func (ing *Ingestor) Run(ctx context.Context) (*core.Report, error) {
	return ing.pipeline.Run(ctx)
}

// Store returns the document store the ingestor writes to.
func (ing *Ingestor) Store() storage.DocumentStore {
	return ing.store
}

// Close releases the document store. An injected store is left open; it
// belongs to the caller.
func (ing *Ingestor) Close() error {
	if !ing.ownStore {
		return nil
	}

	if err := ing.store.Close(); err != nil {
		ing.logger.Error("error closing document store", "err", err)
		return err
	}
	return nil
}
