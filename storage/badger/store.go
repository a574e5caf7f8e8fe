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
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/tabvec/ai"
	"github.com/poiesic/tabvec/core"
	"github.com/poiesic/tabvec/storage"
)

// Store implements storage.DocumentStore for BadgerDB. Every collection
// lives in one database under the store's root directory, namespaced by
// key prefix.
type Store struct {
	backend  *Backend
	embedder ai.Embedder
	logger   *slog.Logger

	mu   sync.Mutex
	seqs map[string]*badger.Sequence
}

var _ storage.DocumentStore = (*Store)(nil)

// newStore is an internal constructor that returns the concrete type.
func newStore(filePath string, embedder ai.Embedder, inMemory bool) (*Store, error) {
	backend, err := OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}

	return &Store{
		backend:  backend,
		embedder: embedder,
		logger:   slog.Default().With("component", "badger-store"),
		seqs:     make(map[string]*badger.Sequence),
	}, nil
}

// NewStore opens a document store rooted at filePath, creating the
// directory if needed. Documents added through the returned store are
// embedded via embedder before persisting.
//
// Returns storage.DocumentStore interface to enforce abstraction.
func NewStore(filePath string, embedder ai.Embedder) (storage.DocumentStore, error) {
	return newStore(filePath, embedder, false)
}

// OpenCollection returns the named collection, creating its registry record
// if absent. Reopening an existing collection keeps prior contents.
func (s *Store) OpenCollection(ctx context.Context, name string) (storage.Collection, error) {
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if err := core.ValidateCollectionName(name); err != nil {
		return nil, err
	}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		_, err := getCollectionMeta(tx, name)
		if err == nil {
			return nil
		}
		if err != storage.ErrNotFound {
			return err
		}

		meta := &storage.CollectionMeta{
			Name:      name,
			CreatedAt: time.Now().UTC(),
		}
		if err := putCollectionMeta(tx, meta); err != nil {
			return err
		}
		s.logger.Debug("created collection", "collection", name)
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return &Collection{name: name, store: s}, nil
}

// Collections lists the names of all collections in the store, sorted.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var names []string
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = collectionMetaScanPrefix()
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := string(iter.Item().Key())
			names = append(names, strings.TrimPrefix(key, string(collectionMetaScanPrefix())))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return names, nil
}

// Close releases all document ID sequences and closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	for name, seq := range s.seqs {
		if err := seq.Release(); err != nil {
			s.logger.Warn("failed to release sequence", "collection", name, "err", err)
		}
	}
	s.seqs = make(map[string]*badger.Sequence)
	s.mu.Unlock()

	return s.backend.Close()
}

// sequence returns the cached document ID sequence for a collection,
// creating it on first use.
func (s *Store) sequence(name string) (*badger.Sequence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq, ok := s.seqs[name]; ok {
		return seq, nil
	}

	seq, err := s.backend.GetSequence(documentSeqName(name))
	if err != nil {
		return nil, err
	}
	s.seqs[name] = seq
	return seq, nil
}

// getCollectionMeta reads a collection's registry record within a transaction.
// Returns storage.ErrNotFound if the collection does not exist.
func getCollectionMeta(tx *badger.Txn, name string) (*storage.CollectionMeta, error) {
	item, err := tx.Get(makeCollectionMetaKey(name))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var meta *storage.CollectionMeta
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		meta, unmarshalErr = storage.UnmarshalCollectionMeta(val)
		return unmarshalErr
	})
	if err != nil {
		return nil, err
	}
	return meta, nil
}

// putCollectionMeta writes a collection's registry record within a transaction.
func putCollectionMeta(tx *badger.Txn, meta *storage.CollectionMeta) error {
	value, err := storage.MarshalCollectionMeta(meta)
	if err != nil {
		return err
	}
	return tx.Set(makeCollectionMetaKey(meta.Name), value)
}
