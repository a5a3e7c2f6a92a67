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


package badger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/skyward-data/airq/core"
	"github.com/skyward-data/airq/storage"
)

// Rows are written once at index-build time and never mutated afterwards, so
// batches are sized to stay well under badger's transaction limits.
const putBatchSize = 500

// RowRepository stores the row metadata sidecar of an index build: the rows
// behind each vector, keyed by rowId, plus the build manifest.
type RowRepository struct {
	backend *Backend
}

// NewRowRepository creates a new RowRepository.
func NewRowRepository(backend *Backend) *RowRepository {
	return &RowRepository{backend: backend}
}

// PutRows persists the given rows, chunked into multiple transactions.
func (r *RowRepository) PutRows(ctx context.Context, rows []*core.Row) error {
	for start := 0; start < len(rows); start += putBatchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := start + putBatchSize
		if end > len(rows) {
			end = len(rows)
		}

		err := r.backend.WithTx(func(tx *badger.Txn) error {
			for _, row := range rows[start:end] {
				if err := tx.Set(makeRowKey(row.RowID), storage.MarshalRow(row)); err != nil {
					return err
				}
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return fmt.Errorf("storing rows [%d,%d): %w", start, end, err)
		}
	}
	return nil
}

// GetRow returns the row with the given rowId.
// Fails with storage.ErrNotFound when the id is not stored.
func (r *RowRepository) GetRow(ctx context.Context, id int) (*core.Row, error) {
	var row *core.Row

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRowKey(id))
		if err == badger.ErrKeyNotFound {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			row, err = storage.UnmarshalRow(val)
			if err != nil {
				return fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// AllRows returns every stored row in ascending rowId order.
func (r *RowRepository) AllRows(ctx context.Context) ([]*core.Row, error) {
	var rows []*core.Row

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(rowRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := iter.Item().Value(func(val []byte) error {
				row, err := storage.UnmarshalRow(val)
				if err != nil {
					return fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
				}
				rows = append(rows, row)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// PutManifest persists the build manifest.
func (r *RowRepository) PutManifest(ctx context.Context, manifest *storage.Manifest) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeManifestKey(), storage.MarshalManifest(manifest)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetManifest returns the build manifest.
// Fails with storage.ErrNotFound when no manifest has been stored.
func (r *RowRepository) GetManifest(ctx context.Context) (*storage.Manifest, error) {
	var manifest *storage.Manifest

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeManifestKey())
		if err == badger.ErrKeyNotFound {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			manifest, err = storage.UnmarshalManifest(val)
			if err != nil {
				return fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return manifest, nil
}
