package ingestion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyward-data/airq/ai/mock"
	"github.com/skyward-data/airq/core"
)

func embedTestRows(n int) []*core.Row {
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

func TestEmbedRows(t *testing.T) {
	ctx := context.Background()

	t.Run("vectors align with rows across batches", func(t *testing.T) {
		rows := embedTestRows(10)
		embedder := mock.NewMockEmbedder()

		vectors, err := EmbedRows(ctx, embedder, rows, EmbedOptions{BatchSize: 3, Workers: 2})
		require.NoError(t, err)
		require.Len(t, vectors, 10)

		// The mock embedder is deterministic per input text, so position i
		// must hold the embedding of row i's document.
		for i, row := range rows {
			want, err := embedder.EmbedText(ctx, row.Document())
			require.NoError(t, err)
			assert.Equal(t, want, vectors[i], "row %d", i)
		}
	})

	t.Run("nil embedder fails", func(t *testing.T) {
		_, err := EmbedRows(ctx, nil, embedTestRows(1), EmbedOptions{})
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("no rows fails", func(t *testing.T) {
		_, err := EmbedRows(ctx, mock.NewMockEmbedder(), nil, EmbedOptions{})
		assert.ErrorIs(t, err, ErrNoRows)
	})

	t.Run("embedder failure surfaces", func(t *testing.T) {
		sentinel := errors.New("model gone")
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, sentinel
		}

		_, err := EmbedRows(ctx, embedder, embedTestRows(5), EmbedOptions{BatchSize: 2})
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("short batch fails", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return [][]float32{{1, 2}}, nil
		}

		_, err := EmbedRows(ctx, embedder, embedTestRows(4), EmbedOptions{BatchSize: 2})
		assert.Error(t, err)
	})
}
