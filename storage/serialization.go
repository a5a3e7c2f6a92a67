// Copyright 2026 Skyward Data
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/skyward-data/airq/core"
)

// Manifest describes one index build pass. It is persisted next to the row
// metadata and compared against the other artifacts at load time.
type Manifest struct {
	Dimension      int
	RowCount       int
	EmbeddingModel string
	Fingerprint    string
	BuiltAt        time.Time
}

// RowMUS serializes core.Row values in MUS format.
var RowMUS = rowMUS{}

type rowMUS struct{}

func (s rowMUS) Marshal(v core.Row, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(v.RowID, bs)
	n += ord.String.Marshal(v.City, bs[n:])
	n += varint.Int64.Marshal(v.Date.Unix(), bs[n:])
	n += raw.Float64.Marshal(v.PM25, bs[n:])
	n += raw.Float64.Marshal(v.PM10, bs[n:])
	n += raw.Float64.Marshal(v.NO2, bs[n:])
	return n
}

func (s rowMUS) Unmarshal(bs []byte) (v core.Row, n int, err error) {
	var n1 int
	v.RowID, n, err = varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return
	}
	v.City, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var sec int64
	sec, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Date = time.Unix(sec, 0).UTC()
	v.PM25, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.PM10, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.NO2, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	return
}

func (s rowMUS) Size(v core.Row) (size int) {
	size = varint.PositiveInt.Size(v.RowID)
	size += ord.String.Size(v.City)
	size += varint.Int64.Size(v.Date.Unix())
	size += raw.Float64.Size(v.PM25)
	size += raw.Float64.Size(v.PM10)
	size += raw.Float64.Size(v.NO2)
	return size
}

// ManifestMUS serializes Manifest values in MUS format.
var ManifestMUS = manifestMUS{}

type manifestMUS struct{}

func (s manifestMUS) Marshal(v Manifest, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(v.Dimension, bs)
	n += varint.PositiveInt.Marshal(v.RowCount, bs[n:])
	n += ord.String.Marshal(v.EmbeddingModel, bs[n:])
	n += ord.String.Marshal(v.Fingerprint, bs[n:])
	n += varint.Int64.Marshal(v.BuiltAt.UnixMicro(), bs[n:])
	return n
}

func (s manifestMUS) Unmarshal(bs []byte) (v Manifest, n int, err error) {
	var n1 int
	v.Dimension, n, err = varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return
	}
	v.RowCount, n1, err = varint.PositiveInt.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.EmbeddingModel, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Fingerprint, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micro int64
	micro, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.BuiltAt = time.UnixMicro(micro).UTC()
	return
}

func (s manifestMUS) Size(v Manifest) (size int) {
	size = varint.PositiveInt.Size(v.Dimension)
	size += varint.PositiveInt.Size(v.RowCount)
	size += ord.String.Size(v.EmbeddingModel)
	size += ord.String.Size(v.Fingerprint)
	size += varint.Int64.Size(v.BuiltAt.UnixMicro())
	return size
}

// MarshalRow serializes a Row to bytes.
func MarshalRow(row *core.Row) []byte {
	buf := make([]byte, RowMUS.Size(*row))
	RowMUS.Marshal(*row, buf)
	return buf
}

// UnmarshalRow deserializes a Row from bytes.
func UnmarshalRow(data []byte) (*core.Row, error) {
	row, _, err := RowMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// MarshalManifest serializes a Manifest to bytes.
func MarshalManifest(manifest *Manifest) []byte {
	buf := make([]byte, ManifestMUS.Size(*manifest))
	ManifestMUS.Marshal(*manifest, buf)
	return buf
}

// UnmarshalManifest deserializes a Manifest from bytes.
func UnmarshalManifest(data []byte) (*Manifest, error) {
	manifest, _, err := ManifestMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &manifest, nil
}
