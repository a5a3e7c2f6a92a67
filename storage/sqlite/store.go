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


package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/skyward-data/airq/core"
	"github.com/skyward-data/airq/storage"
)

// TableName is the table holding the cleaned dataset.
const TableName = "air_quality_cleaned"

// Keys of the build_meta table.
const (
	MetaFingerprint    = "fingerprint"
	MetaEmbeddingModel = "embedding_model"
	MetaBuiltAt        = "built_at"
)

// Store persists the cleaned tabular dataset and serves keyword lookups
// against it.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ storage.KeywordStore = (*Store)(nil)

// Open opens (creating if necessary) the dataset database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset database: %w", err)
	}

	s := &Store{
		db:     db,
		logger: slog.Default().With("component", "sqlite-store"),
	}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			row_id INTEGER PRIMARY KEY,
			city   TEXT NOT NULL,
			date   TEXT NOT NULL,
			pm25   REAL NOT NULL,
			pm10   REAL NOT NULL,
			no2    REAL NOT NULL
		);
		CREATE TABLE IF NOT EXISTS build_meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`, TableName))
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// ReplaceRows atomically replaces the dataset contents with the given rows.
func (s *Store) ReplaceRows(ctx context.Context, rows []*core.Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", TableName)); err != nil {
		return fmt.Errorf("clearing dataset table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (row_id, city, date, pm25, pm10, no2) VALUES (?, ?, ?, ?, ?, ?)", TableName))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.ExecContext(ctx, row.RowID, row.City,
			row.Date.Format(core.DateLayout), row.PM25, row.PM10, row.NO2)
		if err != nil {
			return fmt.Errorf("inserting row %d: %w", row.RowID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("dataset table replaced", "rows", len(rows))
	return nil
}

// SetMeta stores a key/value pair in the build_meta table.
func (s *Store) SetMeta(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO build_meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	return err
}

// Meta returns the value stored under key.
// Fails with storage.ErrNotFound when the key is absent.
func (s *Store) Meta(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM build_meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// FindByCitySubstring returns rows whose city contains needle,
// case-insensitively, ordered by rowId and capped at limit.
// SQLite's LIKE is case-insensitive for ASCII by default, which matches the
// dataset's city names.
func (s *Store) FindByCitySubstring(ctx context.Context, needle string, limit int) ([]*core.Row, error) {
	query := fmt.Sprintf(
		"SELECT row_id, city, date, pm25, pm10, no2 FROM %s WHERE city LIKE '%%' || ? || '%%' ORDER BY row_id LIMIT ?",
		TableName)

	dbRows, err := s.db.QueryContext(ctx, query, needle, limit)
	if err != nil {
		return nil, fmt.Errorf("keyword query: %w", err)
	}
	defer dbRows.Close()

	return scanRows(dbRows)
}

// Rows returns the full dataset in ascending rowId order.
func (s *Store) Rows(ctx context.Context) ([]*core.Row, error) {
	query := fmt.Sprintf(
		"SELECT row_id, city, date, pm25, pm10, no2 FROM %s ORDER BY row_id", TableName)

	dbRows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer dbRows.Close()

	return scanRows(dbRows)
}

func scanRows(dbRows *sql.Rows) ([]*core.Row, error) {
	var rows []*core.Row
	for dbRows.Next() {
		var (
			row     core.Row
			dateStr string
		)
		if err := dbRows.Scan(&row.RowID, &row.City, &dateStr, &row.PM25, &row.PM10, &row.NO2); err != nil {
			return nil, err
		}
		date, err := time.Parse(core.DateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing date of row %d: %w", row.RowID, err)
		}
		row.Date = date
		rows = append(rows, &row)
	}
	return rows, dbRows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
