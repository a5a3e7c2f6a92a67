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


package answer

import "errors"

var (
	// ErrVectorIndexRequired indicates that no vector index was provided.
	ErrVectorIndexRequired = errors.New("vector index is required")

	// ErrKeywordStoreRequired indicates that no keyword store was provided.
	ErrKeywordStoreRequired = errors.New("keyword store is required")

	// ErrAIProviderRequired indicates that no AI provider was provided.
	ErrAIProviderRequired = errors.New("AI provider is required")
)
