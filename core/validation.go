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


package core

import (
	"fmt"
	"strings"
	"unicode"
)

// MaxCollectionNameLength bounds collection names so they stay usable as
// store namespace components.
const MaxCollectionNameLength = 256

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Body must not be empty
//
// NOT validated (populated by loaders, optional for direct callers):
//   - Metadata (may be nil; stores persist whatever is present)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Body == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyBody)
	}

	return nil
}

// ValidateCollectionName validates a collection name according to domain rules.
//
// Validation rules:
//   - must not be empty
//   - must not exceed MaxCollectionNameLength bytes
//   - must not contain whitespace, path separators, or ':' (names become
//     store namespace components and key prefixes)
func ValidateCollectionName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCollectionName, ErrEmptyCollectionName)
	}

	if len(name) > MaxCollectionNameLength {
		return fmt.Errorf("%w: name exceeds %d bytes", ErrInvalidCollectionName, MaxCollectionNameLength)
	}

	if strings.ContainsAny(name, ":/\\") {
		return fmt.Errorf("%w: name %q contains a reserved character", ErrInvalidCollectionName, name)
	}

	for _, r := range name {
		if unicode.IsSpace(r) {
			return fmt.Errorf("%w: name %q contains whitespace", ErrInvalidCollectionName, name)
		}
	}

	return nil
}
