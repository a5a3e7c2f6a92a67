package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "air_quality.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRows(t *testing.T) {
	pipeline := NewPipeline()

	t.Run("clean file loads all rows with dense ids", func(t *testing.T) {
		path := writeCSV(t, `city,date,pm25,pm10,no2
Delhi,2024-01-15,95.2,150.8,42.1
Beijing,2024-01-16,70.3,110.0,30.2
Lahore,2024-01-17,102.7,160.1,45.0
`)
		rows, err := pipeline.LoadRows(path)
		require.NoError(t, err)
		require.Len(t, rows, 3)

		for i, row := range rows {
			assert.Equal(t, i, row.RowID)
		}
		assert.Equal(t, "Delhi", rows[0].City)
		assert.Equal(t, 95.2, rows[0].PM25)
		assert.Equal(t, "2024-01-15", rows[0].Date.Format("2006-01-02"))
	})

	t.Run("records with missing values are dropped", func(t *testing.T) {
		path := writeCSV(t, `city,date,pm25,pm10,no2
Delhi,2024-01-15,95.2,150.8,42.1
,2024-01-16,70.3,110.0,30.2
Beijing,2024-01-17,,110.0,30.2
Lahore,2024-01-18,102.7,160.1,45.0
`)
		rows, err := pipeline.LoadRows(path)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		// Surviving rows are renumbered densely.
		assert.Equal(t, "Delhi", rows[0].City)
		assert.Equal(t, 0, rows[0].RowID)
		assert.Equal(t, "Lahore", rows[1].City)
		assert.Equal(t, 1, rows[1].RowID)
	})

	t.Run("unparseable values are dropped", func(t *testing.T) {
		path := writeCSV(t, `city,date,pm25,pm10,no2
Delhi,not-a-date,95.2,150.8,42.1
Beijing,2024-01-16,abc,110.0,30.2
Lahore,2024-01-17,102.7,160.1,45.0
`)
		rows, err := pipeline.LoadRows(path)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Lahore", rows[0].City)
	})

	t.Run("header matching is case-insensitive", func(t *testing.T) {
		path := writeCSV(t, `City,Date,PM25,PM10,NO2
Delhi,2024-01-15,95.2,150.8,42.1
`)
		rows, err := pipeline.LoadRows(path)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("extra columns are ignored", func(t *testing.T) {
		path := writeCSV(t, `country,city,date,pm25,pm10,no2
IN,Delhi,2024-01-15,95.2,150.8,42.1
`)
		rows, err := pipeline.LoadRows(path)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Delhi", rows[0].City)
	})

	t.Run("missing column fails", func(t *testing.T) {
		path := writeCSV(t, `city,date,pm25,pm10
Delhi,2024-01-15,95.2,150.8
`)
		_, err := pipeline.LoadRows(path)
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("file with no usable rows fails", func(t *testing.T) {
		path := writeCSV(t, `city,date,pm25,pm10,no2
,2024-01-15,95.2,150.8,42.1
`)
		_, err := pipeline.LoadRows(path)
		assert.ErrorIs(t, err, ErrNoRows)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := pipeline.LoadRows(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})
}
