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

import "errors"

var (
	// ErrStoreRequired is returned when a document store is not provided.
	ErrStoreRequired = errors.New("document store required")

	// ErrInputDirRequired is returned when an input directory is not provided.
	ErrInputDirRequired = errors.New("input directory required")

	// ErrRouterRequired is returned when a collection router is not provided.
	ErrRouterRequired = errors.New("collection router required")

	// ErrCollectionRequired is returned when single mode is selected without
	// a collection name.
	ErrCollectionRequired = errors.New("collection name required")

	// ErrInvalidMode is returned when the routing mode is not one of the
	// supported values.
	ErrInvalidMode = errors.New("invalid routing mode")

	// ErrCollectionCollision is returned when two differently named files
	// normalize to the same collection name in separate mode.
	ErrCollectionCollision = errors.New("collection name collision")
)
