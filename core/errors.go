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


package core

import "errors"

var (
	// ErrIndexUnavailable indicates the embedding index is not loaded or its
	// artifacts are corrupt. Fatal at startup; there is no request-time recovery.
	ErrIndexUnavailable = errors.New("embedding index unavailable")

	// ErrUnknownRowID indicates a row id outside the indexed range. If the
	// load-time alignment invariant holds this never occurs, so callers treat
	// it as a consistency violation rather than a recoverable error.
	ErrUnknownRowID = errors.New("unknown row id")

	// ErrInvalidRow indicates a Row failed data-quality validation.
	ErrInvalidRow = errors.New("invalid row")

	// ErrEmptyCity indicates the City field is empty.
	ErrEmptyCity = errors.New("city cannot be empty")

	// ErrMissingDate indicates the Date field is unset.
	ErrMissingDate = errors.New("date is missing")

	// ErrFutureDate indicates a date in the future.
	ErrFutureDate = errors.New("date cannot be in the future")

	// ErrMeasurementRange indicates a measurement outside its allowed range.
	ErrMeasurementRange = errors.New("measurement out of range")
)
