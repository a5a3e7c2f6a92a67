package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyward-data/airq/core"
)

func TestRowSerialization(t *testing.T) {
	t.Run("round trip preserves all fields", func(t *testing.T) {
		row := &core.Row{
			RowID: 42,
			City:  "São Paulo",
			Date:  time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
			PM25:  12.5,
			PM10:  33.0,
			NO2:   18.7,
		}

		data := MarshalRow(row)
		require.NotEmpty(t, data)

		decoded, err := UnmarshalRow(data)
		require.NoError(t, err)
		assert.Equal(t, row.RowID, decoded.RowID)
		assert.Equal(t, row.City, decoded.City)
		assert.True(t, row.Date.Equal(decoded.Date))
		assert.Equal(t, row.PM25, decoded.PM25)
		assert.Equal(t, row.PM10, decoded.PM10)
		assert.Equal(t, row.NO2, decoded.NO2)
	})

	t.Run("row id zero survives", func(t *testing.T) {
		row := &core.Row{
			RowID: 0,
			City:  "Delhi",
			Date:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			PM25:  95.2,
			PM10:  150.8,
			NO2:   42.1,
		}

		decoded, err := UnmarshalRow(MarshalRow(row))
		require.NoError(t, err)
		assert.Equal(t, 0, decoded.RowID)
	})

	t.Run("truncated data fails", func(t *testing.T) {
		row := &core.Row{
			RowID: 7,
			City:  "Beijing",
			Date:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			PM25:  80,
			PM10:  120,
			NO2:   35,
		}

		data := MarshalRow(row)
		_, err := UnmarshalRow(data[:len(data)/2])
		assert.Error(t, err)
	})
}

func TestManifestSerialization(t *testing.T) {
	t.Run("round trip preserves all fields", func(t *testing.T) {
		manifest := &Manifest{
			Dimension:      384,
			RowCount:       1000,
			EmbeddingModel: "all-minilm",
			Fingerprint:    "deadbeefdeadbeefdeadbeefdeadbeef",
			BuiltAt:        time.Date(2026, 2, 3, 12, 30, 45, 123456000, time.UTC),
		}

		decoded, err := UnmarshalManifest(MarshalManifest(manifest))
		require.NoError(t, err)
		assert.Equal(t, manifest.Dimension, decoded.Dimension)
		assert.Equal(t, manifest.RowCount, decoded.RowCount)
		assert.Equal(t, manifest.EmbeddingModel, decoded.EmbeddingModel)
		assert.Equal(t, manifest.Fingerprint, decoded.Fingerprint)
		assert.True(t, manifest.BuiltAt.Equal(decoded.BuiltAt))
	})

	t.Run("empty data fails", func(t *testing.T) {
		_, err := UnmarshalManifest(nil)
		assert.Error(t, err)
	})
}
