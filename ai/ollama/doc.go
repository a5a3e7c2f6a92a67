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


// Package ollama implements the ai interfaces against an Ollama server.
//
// The embedder and generator share a single Config but hold separate clients,
// so embeddings and generation may be served by different hosts and models.
// The generator speaks the native Ollama chat API with streaming disabled and
// a bounded per-call timeout.
package ollama
