package core

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// DateLayout is the calendar-date rendering used in documents, context lines
// and the persisted dataset.
const DateLayout = "2006-01-02"

// Row is a single observation from the cleaned air-quality dataset.
// RowID is the stable, dense integer identifier assigned at index-build time
// and shared between the vector index and the row metadata table.
// Rows are immutable after load.
type Row struct {
	RowID int
	City  string
	Date  time.Time
	PM25  float64
	PM10  float64
	NO2   float64
}

// Document renders the row as the natural-language text the embedding index
// is built from. The wording is part of the index contract: query vectors are
// only comparable to row vectors produced from this exact template.
func (r *Row) Document() string {
	return fmt.Sprintf("On %s in %s, PM2.5 was %s, PM10 was %s, NO2 was %s.",
		r.Date.Format(DateLayout), r.City,
		formatMeasurement(r.PM25), formatMeasurement(r.PM10), formatMeasurement(r.NO2))
}

// ContextLine renders the row as one evidence line for the answer context.
func (r *Row) ContextLine() string {
	return fmt.Sprintf("City: %s | PM2.5: %s | PM10: %s | NO2: %s | Date: %s",
		r.City,
		formatMeasurement(r.PM25), formatMeasurement(r.PM10), formatMeasurement(r.NO2),
		r.Date.Format(DateLayout))
}

// SourceLabel returns the attribution label for the row.
func (r *Row) SourceLabel() string {
	return fmt.Sprintf("row_id: %d", r.RowID)
}

func formatMeasurement(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Provenance identifies which retrieval path produced a piece of evidence.
type Provenance int

const (
	// ProvenanceVector marks evidence found by approximate-nearest-neighbor search.
	ProvenanceVector Provenance = iota + 1
	// ProvenanceKeyword marks evidence found by keyword substring match.
	ProvenanceKeyword
)

// String returns the provenance tag used in logs and monitors.
func (p Provenance) String() string {
	switch p {
	case ProvenanceVector:
		return "vector"
	case ProvenanceKeyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// VectorHit is a single approximate-nearest-neighbor match.
type VectorHit struct {
	RowID    int
	Distance float32
}

// Evidence is a retrieved row tagged with the retrieval path that found it.
// A row discovered by both paths appears once per path; the merge does not
// collapse duplicates.
type Evidence struct {
	Row        *Row
	Provenance Provenance
	Distance   float32 // squared-L2 distance for vector hits, 0 for keyword hits
}

// ContextBlock is the rendered evidence set handed to the answer generator.
// Text and Sources are parallel: Sources[i] labels the row behind line i.
type ContextBlock struct {
	Text    string
	Sources []string
}

// Empty reports whether no evidence was rendered. An empty block triggers the
// fixed fallback answer instead of generation.
func (b *ContextBlock) Empty() bool {
	return strings.TrimSpace(b.Text) == ""
}

// AnswerResult is the terminal outcome of one question.
type AnswerResult struct {
	Answer     string
	Sources    []string
	Confidence float64
}

// Fingerprint computes a stable digest over rows in rowId order using BLAKE2b.
// Every artifact written by one build pass carries the same fingerprint; the
// load path refuses to combine artifacts whose fingerprints differ.
func Fingerprint(rows []*Row) string {
	h, _ := blake2b.New(16, nil)
	for _, r := range rows {
		fmt.Fprintf(h, "%d|%s|%s|%s|%s|%s\n",
			r.RowID, r.City, r.Date.Format(DateLayout),
			formatMeasurement(r.PM25), formatMeasurement(r.PM10), formatMeasurement(r.NO2))
	}
	return hex.EncodeToString(h.Sum(nil))
}
