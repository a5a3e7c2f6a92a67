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

import (
	"fmt"
	"time"
)

// Measurement bounds from the data-quality contract.
const (
	MaxPM25 = 1000.0
	MaxPM10 = 1000.0
	MaxNO2  = 500.0
)

// ValidateRow validates a Row according to the dataset quality rules.
//
// Validation rules:
//   - City must not be empty
//   - Date must be set and must not be in the future
//   - PM2.5 and PM10 must be within [0, 1000]
//   - NO2 must be within [0, 500]
//
// NOT validated:
//   - RowID (assigned by the index build, 0 is valid)
func ValidateRow(row *Row) error {
	if row == nil {
		return fmt.Errorf("%w: row is nil", ErrInvalidRow)
	}

	if row.City == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRow, ErrEmptyCity)
	}

	if row.Date.IsZero() {
		return fmt.Errorf("%w: %w", ErrInvalidRow, ErrMissingDate)
	}

	if row.Date.After(time.Now()) {
		return fmt.Errorf("%w: %w", ErrInvalidRow, ErrFutureDate)
	}

	if row.PM25 < 0 || row.PM25 > MaxPM25 {
		return fmt.Errorf("%w: %w: pm25 %v", ErrInvalidRow, ErrMeasurementRange, row.PM25)
	}

	if row.PM10 < 0 || row.PM10 > MaxPM10 {
		return fmt.Errorf("%w: %w: pm10 %v", ErrInvalidRow, ErrMeasurementRange, row.PM10)
	}

	if row.NO2 < 0 || row.NO2 > MaxNO2 {
		return fmt.Errorf("%w: %w: no2 %v", ErrInvalidRow, ErrMeasurementRange, row.NO2)
	}

	return nil
}

// Failure records a single row that failed validation.
type Failure struct {
	RowID  int
	Reason string
}

// Report summarises a validation run over the dataset.
type Report struct {
	Checked  int
	Failed   int
	Failures []Failure
}

// Passed reports whether every checked row satisfied the quality rules.
func (r *Report) Passed() bool {
	return r.Failed == 0
}

// ValidateRows validates every row and collects the failures.
func ValidateRows(rows []*Row) *Report {
	report := &Report{Checked: len(rows)}
	for _, row := range rows {
		if err := ValidateRow(row); err != nil {
			report.Failed++
			report.Failures = append(report.Failures, Failure{
				RowID:  row.RowID,
				Reason: err.Error(),
			})
		}
	}
	return report
}
