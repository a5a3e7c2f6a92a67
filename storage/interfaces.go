package storage

import (
	"context"

	"github.com/skyward-data/airq/core"
)

// VectorIndex provides approximate-nearest-neighbor lookup over the indexed
// rows together with O(1) access to the row metadata behind each hit. The two
// views are keyed by the same rowId and built from a single ordered pass, so
// they never diverge in length or ordering.
// Implementations are read-only after load and safe for unlimited concurrent
// readers.
type VectorIndex interface {
	// Search returns up to k hits ordered by ascending distance; ties are
	// broken by ascending rowId so repeated identical searches are
	// deterministic. Fails with core.ErrIndexUnavailable when the index is
	// not loaded.
	Search(ctx context.Context, vector []float32, k int) ([]core.VectorHit, error)

	// Row returns the indexed row for a rowId. Fails with core.ErrUnknownRowID
	// for ids outside [0, Count()).
	Row(id int) (*core.Row, error)

	// Count returns the number of indexed rows.
	Count() int
}

// KeywordStore provides exact-match retrieval over the persisted tabular
// dataset. Implementations are read-only during request handling and safe for
// concurrent use.
type KeywordStore interface {
	// FindByCitySubstring returns rows whose city contains needle,
	// case-insensitively, capped at limit. Ordering is store-defined but
	// stable across repeated identical calls within one process lifetime.
	FindByCitySubstring(ctx context.Context, needle string, limit int) ([]*core.Row, error)

	// Close closes the store and releases resources.
	Close() error
}
