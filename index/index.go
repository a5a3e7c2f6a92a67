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
	"slices"

	vecindex "github.com/hupe1980/vecgo/index"
	"github.com/hupe1980/vecgo/index/flat"

	"github.com/skyward-data/airq/core"
	"github.com/skyward-data/airq/storage"
	badgerstore "github.com/skyward-data/airq/storage/badger"
)

// Index is the loaded vector-search artifact: a flat ANN index over row
// embeddings plus the row metadata aligned with it. Both parts come from the
// same build pass; position i of the index always corresponds to rows[i], and
// rows[i].RowID == i.
//
// An Index is immutable after Load and safe for concurrent readers.
type Index struct {
	flat     *flat.Flat
	rows     []*core.Row
	manifest *storage.Manifest
	logger   *slog.Logger
}

var _ storage.VectorIndex = (*Index)(nil)

// Load opens the index artifacts written by Build: the flat index file at
// indexPath and the row-metadata database at metaPath. The metadata database
// is read fully into memory and closed before Load returns.
func Load(ctx context.Context, indexPath, metaPath string) (*Index, error) {
	backend, err := badgerstore.OpenBackend(metaPath, false)
	if err != nil {
		return nil, fmt.Errorf("opening row metadata: %w", err)
	}
	defer backend.Close()

	repo := badgerstore.NewRowRepository(backend)

	manifest, err := repo.GetManifest(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading build manifest: %w", err)
	}

	rows, err := repo.AllRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	if len(rows) != manifest.RowCount {
		return nil, fmt.Errorf("%w: manifest says %d rows, metadata has %d",
			storage.ErrArtifactMismatch, manifest.RowCount, len(rows))
	}
	for i, row := range rows {
		if row.RowID != i {
			return nil, fmt.Errorf("%w: row at position %d has rowId %d",
				storage.ErrArtifactMismatch, i, row.RowID)
		}
	}

	flatIdx, err := flat.LoadFromFile(indexPath, flat.Options{
		Dimension:    manifest.Dimension,
		DistanceType: vecindex.DistanceTypeSquaredL2,
	})
	if err != nil {
		return nil, fmt.Errorf("loading vector index: %w", err)
	}
	if flatIdx.VectorCount() != manifest.RowCount {
		return nil, fmt.Errorf("%w: manifest says %d vectors, index has %d",
			storage.ErrArtifactMismatch, manifest.RowCount, flatIdx.VectorCount())
	}

	logger := slog.Default().With("component", "index")
	logger.Info("index loaded",
		"rows", len(rows),
		"dimension", manifest.Dimension,
		"embedding_model", manifest.EmbeddingModel)

	return &Index{
		flat:     flatIdx,
		rows:     rows,
		manifest: manifest,
		logger:   logger,
	}, nil
}

// Search returns up to k hits ordered by ascending distance, ties broken by
// ascending rowId.
func (i *Index) Search(ctx context.Context, vector []float32, k int) ([]core.VectorHit, error) {
	if i == nil || i.flat == nil {
		return nil, core.ErrIndexUnavailable
	}

	results, err := i.flat.KNNSearch(ctx, vector, k, nil)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	hits := make([]core.VectorHit, 0, len(results))
	for _, result := range results {
		id := int(result.ID)
		if id >= len(i.rows) {
			return nil, fmt.Errorf("%w: %d", core.ErrUnknownRowID, id)
		}
		hits = append(hits, core.VectorHit{RowID: id, Distance: result.Distance})
	}

	// The underlying index orders by distance but leaves ties unspecified.
	slices.SortStableFunc(hits, func(a, b core.VectorHit) int {
		if a.Distance != b.Distance {
			if a.Distance < b.Distance {
				return -1
			}
			return 1
		}
		return a.RowID - b.RowID
	})

	return hits, nil
}

// Row returns the indexed row for a rowId.
func (i *Index) Row(id int) (*core.Row, error) {
	if id < 0 || id >= len(i.rows) {
		return nil, fmt.Errorf("%w: %d", core.ErrUnknownRowID, id)
	}
	return i.rows[id], nil
}

// Count returns the number of indexed rows.
func (i *Index) Count() int {
	return len(i.rows)
}

// Manifest returns the build manifest of the loaded artifacts.
func (i *Index) Manifest() *storage.Manifest {
	return i.manifest
}
