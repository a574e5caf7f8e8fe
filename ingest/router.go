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

package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Mode selects how documents are distributed across collections.
type Mode string

const (
	// ModeSingle routes every file's documents into one shared collection.
	ModeSingle Mode = "single"

	// ModeSeparate routes each file's documents into its own collection,
	// named after the file.
	ModeSeparate Mode = "separate"
)

// Valid reports whether m is a supported routing mode.
func (m Mode) Valid() bool {
	return m == ModeSingle || m == ModeSeparate
}

// Router resolves the target collection for each input file. A router is
// constructed once per run and consulted once per file.
type Router interface {
	// Mode returns the routing mode the router implements.
	Mode() Mode

	// CollectionFor returns the collection name for the given file path.
	CollectionFor(path string) (string, error)
}

// NewRouter creates a router for the given mode. Single mode requires a
// fixed collection name; separate mode derives one per file.
func NewRouter(mode Mode, collection string) (Router, error) {
	switch mode {
	case ModeSingle:
		if collection == "" {
			return nil, ErrCollectionRequired
		}
		return &singleRouter{collection: collection}, nil
	case ModeSeparate:
		return &fileRouter{claimed: make(map[string]string)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
}

type singleRouter struct {
	collection string
}

var _ Router = (*singleRouter)(nil)

func (r *singleRouter) Mode() Mode {
	return ModeSingle
}

func (r *singleRouter) CollectionFor(string) (string, error) {
	return r.collection, nil
}

// fileRouter derives collection names from file names. It remembers which
// file claimed each name, so two differently named files normalizing to the
// same collection are reported instead of silently merged.
type fileRouter struct {
	claimed map[string]string
}

var _ Router = (*fileRouter)(nil)

func (r *fileRouter) Mode() Mode {
	return ModeSeparate
}

func (r *fileRouter) CollectionFor(path string) (string, error) {
	name := CollectionNameForFile(path)
	if prior, ok := r.claimed[name]; ok && prior != path {
		return "", fmt.Errorf("%w: %s and %s both normalize to %q",
			ErrCollectionCollision, filepath.Base(prior), filepath.Base(path), name)
	}
	r.claimed[name] = path
	return name, nil
}

// CollectionNameForFile derives a collection name from a file path: the base
// name without its extension, lower-cased, with each space and hyphen
// replaced by an underscore. "My File-1.csv" becomes "my_file_1".
func CollectionNameForFile(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.ToLower(stem)
	return strings.Map(func(c rune) rune {
		if c == ' ' || c == '-' {
			return '_'
		}
		return c
	}, stem)
}
