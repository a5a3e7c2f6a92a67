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


// Package mock provides test doubles for the ai interfaces.
//
// The mock embedder produces deterministic vectors derived from a hash of the
// input text, so retrieval tests are reproducible without an embedding
// service. The mock generator records the prompts it receives and returns a
// canned answer; both allow behavior injection through function fields.
package mock
