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


// Package storage defines the read-side store interfaces consumed by the
// answering engine and the serialization of persisted artifacts.
//
// Two implementation sub-packages exist:
//
//   - storage/badger: the row-metadata artifact written at index-build time
//     and read once at startup
//   - storage/sqlite: the persisted tabular dataset serving keyword lookups
//
// Rows and the build manifest are serialized in MUS format.
package storage
