package answer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyward-data/airq/core"
)

func TestBuildContext(t *testing.T) {
	t.Run("line i matches source i", func(t *testing.T) {
		evidence := mergeEvidence(
			vectorEvidence(row(12, "Delhi"), row(3, "Lahore")),
			[]*core.Row{row(12, "Delhi")},
		)

		block := buildContext(evidence)

		lines := strings.Split(block.Text, "\n")
		require.Len(t, lines, 3)
		require.Len(t, block.Sources, 3)
		assert.Equal(t, "row_id: 12", block.Sources[0])
		assert.Equal(t, "row_id: 3", block.Sources[1])
		assert.Equal(t, "row_id: 12", block.Sources[2])
		for i, ev := range evidence {
			assert.Equal(t, ev.Row.ContextLine(), lines[i])
		}
	})

	t.Run("exact line format", func(t *testing.T) {
		r := &core.Row{
			RowID: 12,
			City:  "Delhi",
			Date:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			PM25:  95.2,
			PM10:  150.8,
			NO2:   42.1,
		}
		block := buildContext(vectorEvidence(r))

		assert.Equal(t, "City: Delhi | PM2.5: 95.2 | PM10: 150.8 | NO2: 42.1 | Date: 2024-01-15", block.Text)
	})

	t.Run("empty evidence yields empty block", func(t *testing.T) {
		block := buildContext(nil)
		assert.True(t, block.Empty())
		assert.Empty(t, block.Sources)
	})

	t.Run("deterministic for identical evidence", func(t *testing.T) {
		evidence := mergeEvidence(vectorEvidence(row(1, "Delhi"), row(2, "Beijing")), []*core.Row{row(1, "Delhi")})

		first := buildContext(evidence)
		for i := 0; i < 3; i++ {
			again := buildContext(evidence)
			assert.Equal(t, first.Text, again.Text)
			assert.Equal(t, first.Sources, again.Sources)
		}
	})
}
