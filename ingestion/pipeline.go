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


package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/skyward-data/airq/core"
)

// requiredColumns are the dataset columns ingestion needs, matched
// case-insensitively against the CSV header.
var requiredColumns = []string{"city", "date", "pm25", "pm10", "no2"}

// Pipeline loads and cleans the raw air-quality CSV into rows ready for
// indexing. Records with missing or unparseable values are dropped, matching
// the cleaning the dataset went through upstream; surviving rows get dense
// rowIds in file order.
type Pipeline struct {
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline creates a Pipeline.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		logger: slog.Default().With("component", "ingestion"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadRows reads the CSV at path and returns the cleaned rows.
func (p *Pipeline) LoadRows(path string) ([]*core.Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer file.Close()

	rows, dropped, err := p.parse(file)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	p.logger.Info("dataset loaded", "path", path, "rows", len(rows), "dropped", dropped)
	return rows, nil
}

func (p *Pipeline) parse(r io.Reader) ([]*core.Row, int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("reading header: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, 0, err
	}

	var (
		rows    []*core.Row
		dropped int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("reading record: %w", err)
		}

		row, ok := parseRecord(record, columns, len(rows))
		if !ok {
			dropped++
			continue
		}
		rows = append(rows, row)
	}
	return rows, dropped, nil
}

// mapColumns resolves each required column to its position in the header.
func mapColumns(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.ToLower(strings.TrimSpace(name))] = i
	}

	columns := make(map[string]int, len(requiredColumns))
	for _, name := range requiredColumns {
		pos, ok := positions[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		columns[name] = pos
	}
	return columns, nil
}

// parseRecord converts one CSV record into a row, or reports it unusable.
func parseRecord(record []string, columns map[string]int, rowID int) (*core.Row, bool) {
	field := func(name string) (string, bool) {
		pos := columns[name]
		if pos >= len(record) {
			return "", false
		}
		value := strings.TrimSpace(record[pos])
		return value, value != ""
	}

	city, ok := field("city")
	if !ok {
		return nil, false
	}
	dateStr, ok := field("date")
	if !ok {
		return nil, false
	}
	date, err := time.Parse(core.DateLayout, dateStr)
	if err != nil {
		return nil, false
	}

	measurements := make(map[string]float64, 3)
	for _, name := range []string{"pm25", "pm10", "no2"} {
		raw, ok := field(name)
		if !ok {
			return nil, false
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, false
		}
		measurements[name] = value
	}

	return &core.Row{
		RowID: rowID,
		City:  city,
		Date:  date,
		PM25:  measurements["pm25"],
		PM10:  measurements["pm10"],
		NO2:   measurements["no2"],
	}, true
}
