package storage

import (
	"context"

	"github.com/poiesic/tabvec/core"
)

// DocumentStore provides named, persistent collections of embedded documents.
// Implementations must be thread-safe and support concurrent access, though
// the ingestion pipeline itself issues strictly serialized calls.
type DocumentStore interface {
	// OpenCollection returns the collection with the given name, creating
	// it if absent. Opening is idempotent: reopening an existing collection
	// never erases prior contents (append semantics).
	OpenCollection(ctx context.Context, name string) (Collection, error)

	// Close closes the store and releases resources.
	Close() error
}

// Collection is a named persistent destination for documents.
type Collection interface {
	// Name returns the collection name.
	Name() string

	// AddDocuments embeds every document body via the store's embedding
	// provider and persists (vector, body, metadata) triples, preserving
	// input order. On error the batch must be treated as not ingested;
	// previously added batches are unaffected.
	AddDocuments(ctx context.Context, docs []core.Document) error
}
