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


package storage

import (
	"encoding/json"
	"fmt"
	"time"
)

// StoredDocument is the persisted form of one ingested document.
// Metadata is an open map whose keys come from the source file's columns,
// so records are JSON-encoded rather than using a fixed-schema codec.
type StoredDocument struct {
	ID         uint64         `json:"id"`
	Body       string         `json:"body"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Vector     []float32      `json:"vector"`
	InsertedAt time.Time      `json:"inserted_at"`
}

// CollectionMeta is the registry record describing one collection.
// Dimension is zero until the first batch fixes the vector width.
type CollectionMeta struct {
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"created_at"`
	Dimension     int       `json:"dimension"`
	DocumentCount uint64    `json:"document_count"`
}

// MarshalStoredDocument serializes a StoredDocument to bytes.
func MarshalStoredDocument(doc *StoredDocument) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalStoredDocument deserializes a StoredDocument from bytes.
func UnmarshalStoredDocument(data []byte) (*StoredDocument, error) {
	var doc StoredDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &doc, nil
}

// MarshalCollectionMeta serializes a CollectionMeta to bytes.
func MarshalCollectionMeta(meta *CollectionMeta) ([]byte, error) {
	data, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalCollectionMeta deserializes a CollectionMeta from bytes.
func UnmarshalCollectionMeta(data []byte) (*CollectionMeta, error) {
	var meta CollectionMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &meta, nil
}
