package answer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyward-data/airq/core"
)

func row(id int, city string) *core.Row {
	return &core.Row{
		RowID: id,
		City:  city,
		Date:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, id),
		PM25:  float64(id),
		PM10:  float64(id) * 2,
		NO2:   float64(id) / 2,
	}
}

func vectorEvidence(rows ...*core.Row) []core.Evidence {
	evidence := make([]core.Evidence, 0, len(rows))
	for i, r := range rows {
		evidence = append(evidence, core.Evidence{
			Row:        r,
			Provenance: core.ProvenanceVector,
			Distance:   float32(i),
		})
	}
	return evidence
}

func TestMergeEvidence(t *testing.T) {
	t.Run("vector hits come first, duplicates preserved", func(t *testing.T) {
		vector := vectorEvidence(row(12, "Delhi"), row(47, "Beijing"), row(3, "Lahore"))
		keyword := []*core.Row{row(12, "Delhi"), row(8, "New Delhi"), row(91, "Delhi")}

		merged := mergeEvidence(vector, keyword)

		require.Len(t, merged, 6)
		wantIDs := []int{12, 47, 3, 12, 8, 91}
		for i, ev := range merged {
			assert.Equal(t, wantIDs[i], ev.Row.RowID)
		}
		for _, ev := range merged[:3] {
			assert.Equal(t, core.ProvenanceVector, ev.Provenance)
		}
		for _, ev := range merged[3:] {
			assert.Equal(t, core.ProvenanceKeyword, ev.Provenance)
		}
	})

	t.Run("empty vector side", func(t *testing.T) {
		merged := mergeEvidence(nil, []*core.Row{row(5, "Karachi")})
		require.Len(t, merged, 1)
		assert.Equal(t, core.ProvenanceKeyword, merged[0].Provenance)
	})

	t.Run("empty keyword side", func(t *testing.T) {
		merged := mergeEvidence(vectorEvidence(row(5, "Karachi")), nil)
		require.Len(t, merged, 1)
		assert.Equal(t, core.ProvenanceVector, merged[0].Provenance)
	})

	t.Run("both sides empty", func(t *testing.T) {
		merged := mergeEvidence(nil, nil)
		assert.Empty(t, merged)
	})
}
