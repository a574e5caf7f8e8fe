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


package chroma

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/tabvec/ai"
	"github.com/poiesic/tabvec/core"
	"github.com/poiesic/tabvec/storage"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	chromavs "github.com/tmc/langchaingo/vectorstores/chroma"
)

// ErrMissingURL indicates no Chroma server URL was provided.
var ErrMissingURL = errors.New("chroma server URL is required")

// Store implements storage.DocumentStore against a remote Chroma server.
// Collections map to Chroma namespaces; the server owns persistence and
// indexing, this adapter only shapes and forwards documents.
type Store struct {
	url      string
	embedder embeddings.Embedder
	logger   *slog.Logger
}

var _ storage.DocumentStore = (*Store)(nil)

// NewStore creates a document store backed by the Chroma server at url.
// The store builds its own provider client from cfg so remote collections
// embed through the same configuration as local ones.
//
// Returns storage.DocumentStore interface to enforce abstraction.
func NewStore(url string, cfg *ai.Config) (storage.DocumentStore, error) {
	if url == "" {
		return nil, ErrMissingURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Store{
		url:      url,
		embedder: embedder,
		logger:   slog.Default().With("component", "chroma-store"),
	}, nil
}

// OpenCollection returns the named collection on the server, creating it if
// absent. Chroma's get-or-create semantics keep the open idempotent.
func (s *Store) OpenCollection(ctx context.Context, name string) (storage.Collection, error) {
	if err := core.ValidateCollectionName(name); err != nil {
		return nil, err
	}

	vs, err := chromavs.New(
		chromavs.WithChromaURL(s.url),
		chromavs.WithEmbedder(s.embedder),
		chromavs.WithNameSpace(name),
	)
	if err != nil {
		return nil, fmt.Errorf("open chroma collection %q: %w", name, err)
	}

	s.logger.Debug("opened collection", "collection", name, "url", s.url)
	return &Collection{name: name, store: vs}, nil
}

// Close releases nothing; the server owns all resources.
func (s *Store) Close() error {
	return nil
}

// Collection implements storage.Collection on a Chroma namespace.
type Collection struct {
	name  string
	store chromavs.Store
}

var _ storage.Collection = (*Collection)(nil)

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// AddDocuments forwards the batch to the server, which embeds via the
// configured provider and persists.
func (c *Collection) AddDocuments(ctx context.Context, docs []core.Document) error {
	if len(docs) == 0 {
		return nil
	}

	converted := make([]schema.Document, len(docs))
	for i := range docs {
		if err := core.ValidateDocument(&docs[i]); err != nil {
			return err
		}
		converted[i] = schema.Document{
			PageContent: docs[i].Body,
			Metadata:    docs[i].Metadata,
		}
	}

	if _, err := c.store.AddDocuments(ctx, converted); err != nil {
		return fmt.Errorf("add documents to %q: %w", c.name, err)
	}
	return nil
}
