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
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/skyward-data/airq/ai"
	"github.com/skyward-data/airq/core"
)

const (
	// defaultEmbedBatchSize is how many documents go into one embedding call.
	defaultEmbedBatchSize = 32

	// defaultEmbedWorkers is how many embedding calls run concurrently.
	defaultEmbedWorkers = 4
)

// EmbedOptions tunes EmbedRows.
type EmbedOptions struct {
	BatchSize int
	Workers   int
}

func (o *EmbedOptions) normalize() {
	if o.BatchSize <= 0 {
		o.BatchSize = defaultEmbedBatchSize
	}
	if o.Workers <= 0 {
		o.Workers = defaultEmbedWorkers
	}
}

// EmbedRows embeds the document rendering of every row, preserving row order:
// vectors[i] is the embedding of rows[i]. Batches are embedded concurrently
// on a bounded worker pool; the first failure cancels the remaining work.
func EmbedRows(ctx context.Context, embedder ai.Embedder, rows []*core.Row, opts EmbedOptions) ([][]float32, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	opts.normalize()

	documents := make([]string, len(rows))
	for i, row := range rows {
		documents[i] = row.Document()
	}

	pool, err := ants.NewPool(opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}
	defer pool.Release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	vectors := make([][]float32, len(rows))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	for start := 0; start < len(documents); start += opts.BatchSize {
		end := start + opts.BatchSize
		if end > len(documents) {
			end = len(documents)
		}

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				return
			}
			batch, err := embedder.EmbedTexts(ctx, documents[start:end])
			if err != nil {
				fail(fmt.Errorf("embedding rows [%d,%d): %w", start, end, err))
				return
			}
			if len(batch) != end-start {
				fail(fmt.Errorf("embedding rows [%d,%d): got %d vectors", start, end, len(batch)))
				return
			}
			copy(vectors[start:end], batch)
		})
		if submitErr != nil {
			wg.Done()
			fail(fmt.Errorf("submitting embedding batch: %w", submitErr))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// One malformed batch would poison the index; check dimensions before
	// handing the vectors to the build.
	dimension := len(vectors[0])
	for i, vec := range vectors {
		if len(vec) != dimension {
			return nil, fmt.Errorf("embedding dimension drift at row %d: got %d, want %d", i, len(vec), dimension)
		}
	}

	return vectors, nil
}
