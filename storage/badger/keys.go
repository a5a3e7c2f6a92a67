package badger

import "encoding/binary"

// Key prefixes for different data types
const (
	rowRecordPrefix = "rowrec"
	manifestKeyName = "manifest"
)

// makeRowKey generates a key for a row record by rowId.
// The id is written in BigEndian order so lexicographic iteration over the
// prefix yields rows in ascending rowId order.
func makeRowKey(id int) []byte {
	prefix := rowRecordPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeManifestKey generates the key for the build manifest.
func makeManifestKey() []byte {
	return []byte(manifestKeyName)
}
