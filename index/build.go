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


package index

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	vecindex "github.com/hupe1980/vecgo/index"
	"github.com/hupe1980/vecgo/index/flat"

	"github.com/skyward-data/airq/core"
	"github.com/skyward-data/airq/storage"
	badgerstore "github.com/skyward-data/airq/storage/badger"
)

// Build writes the vector-search artifacts for one build pass: the flat index
// at indexPath and the row-metadata database at metaPath. rows and vectors
// must be parallel slices with rows[i].RowID == i; the insertion order pins
// vector ids to rowIds so the two artifacts stay aligned by construction.
//
// The returned manifest carries the build fingerprint shared by all artifacts
// of the pass.
func Build(ctx context.Context, rows []*core.Row, vectors [][]float32, embeddingModel, indexPath, metaPath string) (*storage.Manifest, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows to index")
	}
	if len(rows) != len(vectors) {
		return nil, fmt.Errorf("rows/vectors mismatch: %d rows, %d vectors", len(rows), len(vectors))
	}

	dimension := len(vectors[0])
	if dimension == 0 {
		return nil, fmt.Errorf("empty embedding vector for row 0")
	}
	for i, vec := range vectors {
		if len(vec) != dimension {
			return nil, fmt.Errorf("embedding dimension mismatch at row %d: got %d, want %d", i, len(vec), dimension)
		}
	}
	for i, row := range rows {
		if row.RowID != i {
			return nil, fmt.Errorf("row at position %d has rowId %d, ids must be dense", i, row.RowID)
		}
	}

	flatIdx, err := flat.New(func(o *flat.Options) {
		o.Dimension = dimension
		o.DistanceType = vecindex.DistanceTypeSquaredL2
	})
	if err != nil {
		return nil, fmt.Errorf("creating vector index: %w", err)
	}

	for i, vec := range vectors {
		id, err := flatIdx.Insert(ctx, vec)
		if err != nil {
			return nil, fmt.Errorf("inserting vector for row %d: %w", i, err)
		}
		if int(id) != i {
			return nil, fmt.Errorf("vector id drift: row %d got id %d", i, id)
		}
	}

	if err := flatIdx.SaveToFile(indexPath); err != nil {
		return nil, fmt.Errorf("writing vector index: %w", err)
	}

	manifest := &storage.Manifest{
		Dimension:      dimension,
		RowCount:       len(rows),
		EmbeddingModel: embeddingModel,
		Fingerprint:    core.Fingerprint(rows),
		BuiltAt:        time.Now().UTC(),
	}

	backend, err := badgerstore.OpenBackend(metaPath, false)
	if err != nil {
		return nil, fmt.Errorf("opening row metadata: %w", err)
	}
	defer backend.Close()

	repo := badgerstore.NewRowRepository(backend)
	if err := repo.PutRows(ctx, rows); err != nil {
		return nil, fmt.Errorf("storing rows: %w", err)
	}
	if err := repo.PutManifest(ctx, manifest); err != nil {
		return nil, fmt.Errorf("storing manifest: %w", err)
	}

	slog.Default().With("component", "index").Info("index built",
		"rows", len(rows),
		"dimension", dimension,
		"fingerprint", manifest.Fingerprint)

	return manifest, nil
}
