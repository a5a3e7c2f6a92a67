// Copyright 2026 Skyward Data
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


// Package ai provides abstractions for the AI services used by the answering
// engine.
//
// This package defines interfaces for text embedding and grounded answer
// generation. It follows the dependency inversion principle, allowing the
// retrieval and answering logic to depend on abstractions rather than concrete
// implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - Generator: Produces answers from a system/user prompt pair
//   - AIProvider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/ollama: Production implementation against an Ollama server
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors (ollama.NewProvider, ollama.NewEmbedder, ollama.NewGenerator)
// return INTERFACE types to enforce abstraction and prevent accidental coupling
// to concrete implementations. Test utility constructors (mock.NewMockEmbedder,
// mock.NewMockGenerator) return CONCRETE types to enable test assertions and
// behavior injection via function fields.
//
// # Usage Example
//
//	cfg := ai.DefaultConfig()
//	provider, err := ollama.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "PM2.5 in Delhi")
//	answer, err := provider.Generator().Generate(ctx, system, user)
package ai
