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


// Package ai provides the embedding abstraction used by tabvec.
//
// The package defines the Embedder interface so the ingestion pipeline and
// the document stores depend on an abstraction rather than a concrete
// provider client.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test double for unit testing without network access
//
// # Constructor Return Type Pattern
//
// The public constructor (openai.NewEmbedder) returns the ai.Embedder
// INTERFACE to enforce abstraction and prevent accidental coupling to the
// concrete implementation.
//
//	embedder, err := openai.NewEmbedder(cfg) // returns ai.Embedder
//
// The test constructor (mock.NewMockEmbedder) returns the CONCRETE type to
// enable behavior injection via function fields and call-count assertions.
//
//	mockEmbed := mock.NewMockEmbedder() // returns *mock.MockEmbedder
//	mockEmbed.EmbedTextsFunc = ...      // needs concrete type
//	count := mockEmbed.CallCount()      // test assertion
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithAPIKey(key))
//	embedder, err := openai.NewEmbedder(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	vectors, err := embedder.EmbedTexts(ctx, []string{"first", "second"})
package ai
