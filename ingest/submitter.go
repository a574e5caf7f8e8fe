package ingest

import (
	"context"
	"fmt"

	"github.com/poiesic/tabvec/core"
	"github.com/poiesic/tabvec/storage"
)

const (
	// DefaultBatchSize is the default number of documents submitted in each batch
	DefaultBatchSize = 100
)

// Submitter writes document sequences to a collection in fixed-size batches.
type Submitter struct {
	batchSize int
}

// NewSubmitter creates a new submitter.
// batchSize: number of documents per batch (must be > 0)
func NewSubmitter(batchSize int) *Submitter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &Submitter{batchSize: batchSize}
}

// BatchSize returns the configured batch size.
func (s *Submitter) BatchSize() int {
	return s.batchSize
}

// Submit partitions docs into contiguous batches of at most batchSize
// documents and adds each batch to the collection in order. It returns the
// number of documents persisted. The first batch failure abandons the
// remaining batches; documents persisted by earlier batches are not rolled
// back. Context cancellation is checked between batches.
func (s *Submitter) Submit(ctx context.Context, collection storage.Collection, docs []core.Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	// Check context before starting
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	total := (len(docs) + s.batchSize - 1) / s.batchSize
	submitted := 0

	for i := 0; i < len(docs); i += s.batchSize {
		end := i + s.batchSize
		if end > len(docs) {
			end = len(docs)
		}

		if err := collection.AddDocuments(ctx, docs[i:end]); err != nil {
			return submitted, fmt.Errorf("submit batch %d/%d to %q: %w",
				i/s.batchSize+1, total, collection.Name(), err)
		}

		submitted = end

		// Check context after each batch
		select {
		case <-ctx.Done():
			return submitted, ctx.Err()
		default:
		}
	}

	return submitted, nil
}
