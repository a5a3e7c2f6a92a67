package badger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyward-data/airq/core"
	"github.com/skyward-data/airq/storage"
)

func testRow(id int, city string) *core.Row {
	return &core.Row{
		RowID: id,
		City:  city,
		Date:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, id),
		PM25:  float64(id) + 0.5,
		PM10:  float64(id) * 2,
		NO2:   float64(id),
	}
}

func TestRowRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("put and get round trip", func(t *testing.T) {
		repo, backend, err := NewMemoryRowRepository()
		require.NoError(t, err)
		defer backend.Close()

		rows := []*core.Row{testRow(0, "Delhi"), testRow(1, "Beijing")}
		require.NoError(t, repo.PutRows(ctx, rows))

		got, err := repo.GetRow(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Beijing", got.City)
		assert.Equal(t, 1, got.RowID)
	})

	t.Run("get missing row fails with not found", func(t *testing.T) {
		repo, backend, err := NewMemoryRowRepository()
		require.NoError(t, err)
		defer backend.Close()

		_, err = repo.GetRow(ctx, 99)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("all rows come back in rowId order", func(t *testing.T) {
		repo, backend, err := NewMemoryRowRepository()
		require.NoError(t, err)
		defer backend.Close()

		// Insert out of order; iteration order is defined by the keys.
		rows := []*core.Row{testRow(2, "Lahore"), testRow(0, "Delhi"), testRow(1, "Beijing")}
		require.NoError(t, repo.PutRows(ctx, rows))

		got, err := repo.AllRows(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		for i, row := range got {
			assert.Equal(t, i, row.RowID)
		}
	})

	t.Run("put rows spanning multiple batches", func(t *testing.T) {
		repo, backend, err := NewMemoryRowRepository()
		require.NoError(t, err)
		defer backend.Close()

		count := putBatchSize + 50
		rows := make([]*core.Row, count)
		for i := range rows {
			rows[i] = testRow(i, fmt.Sprintf("City-%d", i))
		}
		require.NoError(t, repo.PutRows(ctx, rows))

		got, err := repo.AllRows(ctx)
		require.NoError(t, err)
		assert.Len(t, got, count)
	})

	t.Run("manifest round trip", func(t *testing.T) {
		repo, backend, err := NewMemoryRowRepository()
		require.NoError(t, err)
		defer backend.Close()

		manifest := &storage.Manifest{
			Dimension:      384,
			RowCount:       2,
			EmbeddingModel: "all-minilm",
			Fingerprint:    "cafebabe",
			BuiltAt:        time.Now().UTC().Truncate(time.Microsecond),
		}
		require.NoError(t, repo.PutManifest(ctx, manifest))

		got, err := repo.GetManifest(ctx)
		require.NoError(t, err)
		assert.Equal(t, manifest.Dimension, got.Dimension)
		assert.Equal(t, manifest.RowCount, got.RowCount)
		assert.Equal(t, manifest.EmbeddingModel, got.EmbeddingModel)
		assert.Equal(t, manifest.Fingerprint, got.Fingerprint)
		assert.True(t, manifest.BuiltAt.Equal(got.BuiltAt))
	})

	t.Run("missing manifest fails with not found", func(t *testing.T) {
		repo, backend, err := NewMemoryRowRepository()
		require.NoError(t, err)
		defer backend.Close()

		_, err = repo.GetManifest(ctx)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
