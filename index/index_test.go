package index

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyward-data/airq/core"
	"github.com/skyward-data/airq/storage"
	badgerstore "github.com/skyward-data/airq/storage/badger"
)

func buildTestIndex(t *testing.T, rows []*core.Row, vectors [][]float32) *Index {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "vectors.idx")
	metaPath := filepath.Join(dir, "rows_db")

	_, err := Build(ctx, rows, vectors, "all-minilm", indexPath, metaPath)
	require.NoError(t, err)

	idx, err := Load(ctx, indexPath, metaPath)
	require.NoError(t, err)
	return idx
}

func testRows(n int) []*core.Row {
	rows := make([]*core.Row, n)
	for i := range rows {
		rows[i] = &core.Row{
			RowID: i,
			City:  "Delhi",
			Date:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			PM25:  float64(i),
			PM10:  float64(i) * 2,
			NO2:   float64(i) / 2,
		}
	}
	return rows
}

func TestBuildAndLoad(t *testing.T) {
	t.Run("round trip preserves rows and alignment", func(t *testing.T) {
		rows := testRows(5)
		vectors := [][]float32{
			{1, 0}, {0, 1}, {1, 1}, {2, 0}, {0, 2},
		}
		idx := buildTestIndex(t, rows, vectors)

		assert.Equal(t, 5, idx.Count())
		for i := 0; i < 5; i++ {
			row, err := idx.Row(i)
			require.NoError(t, err)
			assert.Equal(t, i, row.RowID)
		}
		assert.Equal(t, "all-minilm", idx.Manifest().EmbeddingModel)
		assert.NotEmpty(t, idx.Manifest().Fingerprint)
	})

	t.Run("build rejects misaligned inputs", func(t *testing.T) {
		ctx := context.Background()
		dir := t.TempDir()

		rows := testRows(2)
		_, err := Build(ctx, rows, [][]float32{{1, 0}}, "all-minilm",
			filepath.Join(dir, "vectors.idx"), filepath.Join(dir, "rows_db"))
		assert.Error(t, err)
	})

	t.Run("build rejects sparse row ids", func(t *testing.T) {
		ctx := context.Background()
		dir := t.TempDir()

		rows := testRows(2)
		rows[1].RowID = 7
		_, err := Build(ctx, rows, [][]float32{{1, 0}, {0, 1}}, "all-minilm",
			filepath.Join(dir, "vectors.idx"), filepath.Join(dir, "rows_db"))
		assert.Error(t, err)
	})

	t.Run("build rejects inconsistent dimensions", func(t *testing.T) {
		ctx := context.Background()
		dir := t.TempDir()

		rows := testRows(2)
		_, err := Build(ctx, rows, [][]float32{{1, 0}, {0, 1, 2}}, "all-minilm",
			filepath.Join(dir, "vectors.idx"), filepath.Join(dir, "rows_db"))
		assert.Error(t, err)
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("hits ordered by distance", func(t *testing.T) {
		rows := testRows(3)
		idx := buildTestIndex(t, rows, [][]float32{
			{10, 0}, {1, 0}, {5, 0},
		})

		hits, err := idx.Search(ctx, []float32{0, 0}, 3)
		require.NoError(t, err)
		require.Len(t, hits, 3)
		assert.Equal(t, 1, hits[0].RowID)
		assert.Equal(t, 2, hits[1].RowID)
		assert.Equal(t, 0, hits[2].RowID)
	})

	t.Run("equal distances break ties by rowId", func(t *testing.T) {
		rows := testRows(3)
		// All three vectors are at squared distance 1 from the origin.
		idx := buildTestIndex(t, rows, [][]float32{
			{1, 0}, {0, 1}, {0, -1},
		})

		hits, err := idx.Search(ctx, []float32{0, 0}, 3)
		require.NoError(t, err)
		require.Len(t, hits, 3)
		assert.Equal(t, []int{0, 1, 2}, []int{hits[0].RowID, hits[1].RowID, hits[2].RowID})
	})

	t.Run("k larger than corpus returns all rows", func(t *testing.T) {
		rows := testRows(2)
		idx := buildTestIndex(t, rows, [][]float32{{1, 0}, {0, 1}})

		hits, err := idx.Search(ctx, []float32{0, 0}, 10)
		require.NoError(t, err)
		assert.Len(t, hits, 2)
	})

	t.Run("repeated identical searches are deterministic", func(t *testing.T) {
		rows := testRows(4)
		idx := buildTestIndex(t, rows, [][]float32{
			{1, 0}, {0, 1}, {-1, 0}, {0, -1},
		})

		first, err := idx.Search(ctx, []float32{0.5, 0.5}, 3)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := idx.Search(ctx, []float32{0.5, 0.5}, 3)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("unloaded index fails", func(t *testing.T) {
		var idx *Index
		_, err := idx.Search(ctx, []float32{1, 0}, 3)
		assert.ErrorIs(t, err, core.ErrIndexUnavailable)
	})
}

func TestRow(t *testing.T) {
	rows := testRows(2)
	idx := buildTestIndex(t, rows, [][]float32{{1, 0}, {0, 1}})

	t.Run("unknown ids fail", func(t *testing.T) {
		_, err := idx.Row(-1)
		assert.ErrorIs(t, err, core.ErrUnknownRowID)

		_, err = idx.Row(2)
		assert.ErrorIs(t, err, core.ErrUnknownRowID)
	})
}

func TestLoadArtifactChecks(t *testing.T) {
	t.Run("manifest row count mismatch fails", func(t *testing.T) {
		ctx := context.Background()
		dir := t.TempDir()
		indexPath := filepath.Join(dir, "vectors.idx")
		metaPath := filepath.Join(dir, "rows_db")

		rows := testRows(2)
		_, err := Build(ctx, rows, [][]float32{{1, 0}, {0, 1}}, "all-minilm", indexPath, metaPath)
		require.NoError(t, err)

		// Corrupt the manifest to claim a different row count.
		backend, err := badgerstore.OpenBackend(metaPath, false)
		require.NoError(t, err)
		repo := badgerstore.NewRowRepository(backend)
		require.NoError(t, repo.PutManifest(ctx, &storage.Manifest{
			Dimension:      2,
			RowCount:       5,
			EmbeddingModel: "all-minilm",
			Fingerprint:    "bogus",
			BuiltAt:        time.Now().UTC(),
		}))
		require.NoError(t, backend.Close())

		_, err = Load(ctx, indexPath, metaPath)
		assert.ErrorIs(t, err, storage.ErrArtifactMismatch)
	})
}
