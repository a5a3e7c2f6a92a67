package answer

import "github.com/skyward-data/airq/core"

// mergeEvidence fuses the two retrieval channels into one evidence list:
// vector hits first in their ranked order, then keyword matches in store
// order. A row surfaced by both channels appears twice; duplicate evidence
// signals agreement between the channels and is preserved deliberately.
func mergeEvidence(vector []core.Evidence, keyword []*core.Row) []core.Evidence {
	merged := make([]core.Evidence, 0, len(vector)+len(keyword))
	merged = append(merged, vector...)
	for _, row := range keyword {
		merged = append(merged, core.Evidence{
			Row:        row,
			Provenance: core.ProvenanceKeyword,
		})
	}
	return merged
}
