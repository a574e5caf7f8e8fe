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


package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/tabvec/core"
	"github.com/poiesic/tabvec/storage"
)

// Collection implements storage.Collection for BadgerDB.
type Collection struct {
	name  string
	store *Store
}

var _ storage.Collection = (*Collection)(nil)

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// AddDocuments embeds every document body and persists the resulting
// (vector, body, metadata) triples in one transaction. On error nothing
// from the batch is visible; documents from earlier batches are unaffected.
func (c *Collection) AddDocuments(ctx context.Context, docs []core.Document) error {
	if len(docs) == 0 {
		return nil
	}
	if c.store.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	texts := make([]string, len(docs))
	for i := range docs {
		if err := core.ValidateDocument(&docs[i]); err != nil {
			return err
		}
		texts[i] = docs[i].Body
	}

	vectors, err := c.store.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed documents: %w", err)
	}
	if len(vectors) != len(docs) {
		return fmt.Errorf("%w: %d documents, %d vectors",
			storage.ErrEmbeddingCountMismatch, len(docs), len(vectors))
	}

	seq, err := c.store.sequence(c.name)
	if err != nil {
		return err
	}

	return c.store.backend.WithTx(func(tx *badger.Txn) error {
		meta, err := getCollectionMeta(tx, c.name)
		if err != nil {
			return err
		}

		for _, vector := range vectors {
			if meta.Dimension == 0 {
				meta.Dimension = len(vector)
				continue
			}
			if len(vector) != meta.Dimension {
				return fmt.Errorf("%w: collection %q expects %d, got %d",
					storage.ErrDimensionMismatch, c.name, meta.Dimension, len(vector))
			}
		}

		now := time.Now().UTC()
		for i := range docs {
			nextID, err := seq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = seq.Next()
				if err != nil {
					return err
				}
			}

			record := &storage.StoredDocument{
				ID:         nextID,
				Body:       docs[i].Body,
				Metadata:   docs[i].Metadata,
				Vector:     vectors[i],
				InsertedAt: now,
			}
			value, err := storage.MarshalStoredDocument(record)
			if err != nil {
				return err
			}
			if err := tx.Set(makeDocumentKey(c.name, nextID), value); err != nil {
				return err
			}
		}

		meta.DocumentCount += uint64(len(docs))
		if err := putCollectionMeta(tx, meta); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// Count returns the number of documents persisted in the collection.
func (c *Collection) Count(ctx context.Context) (uint64, error) {
	if c.store.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	var count uint64
	err := c.store.backend.WithTx(func(tx *badger.Txn) error {
		meta, err := getCollectionMeta(tx, c.name)
		if err != nil {
			return err
		}
		count = meta.DocumentCount
		return nil
	}, false)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Documents returns all documents in the collection in insertion order.
// Intended for verification and tooling; the ingestion pipeline never
// reads documents back.
func (c *Collection) Documents(ctx context.Context) ([]*storage.StoredDocument, error) {
	if c.store.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var records []*storage.StoredDocument
	err := c.store.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeDocumentScanPrefix(c.name)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			var record *storage.StoredDocument
			err := item.Value(func(val []byte) error {
				var unmarshalErr error
				record, unmarshalErr = storage.UnmarshalStoredDocument(val)
				return unmarshalErr
			})
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return records, nil
}
