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


package ai

import "errors"

var (
	// ErrGenerationFailed indicates the text-generation service returned a
	// non-success response or a malformed body. It is surfaced to the caller
	// as a request-level failure, distinct from the designed no-evidence
	// fallback, and is never retried automatically.
	ErrGenerationFailed = errors.New("text generation failed")
)
