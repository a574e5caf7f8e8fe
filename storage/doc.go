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


// Package storage provides the vector-store abstraction layer for tabvec.
//
// This package defines the DocumentStore and Collection interfaces that
// decouple the ingestion pipeline from the persistence engine, allowing
// different backends to be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors in the backend packages return interface types to
// enforce abstraction:
//
//	store, err := badger.NewStore(path, embedder)  // returns storage.DocumentStore
//
// This design decision prioritizes:
//   - Abstraction: prevents accidental coupling to backend specifics
//   - Swappability: easy to switch between the local and the remote backend
//   - Testing: the pipeline runs against in-memory stores in tests
//
// # Backends
//
//   - storage/badger: local persistent store on BadgerDB (the default);
//     supports a pure in-memory mode for tests
//   - storage/chroma: adapter for a remote Chroma server
//
// # Usage
//
//	store, err := badger.NewStore("vector_store/tabvec_db_single", embedder)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	col, err := store.OpenCollection(ctx, "products")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = col.AddDocuments(ctx, docs)
//
// # Context Support
//
// All operations accept context.Context. Pass context.Background() for
// operations without specific timeout requirements.
package storage
