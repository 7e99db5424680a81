package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/propilot/fbohub/pkg/constants"
	"github.com/propilot/fbohub/pkg/errors"
	"github.com/propilot/fbohub/pkg/fbo"
)

const datasetVersionKey = "dataset_version"

// SQLite implements Store on a single SQLite database file.
type SQLite struct {
	db   *sql.DB
	path string
}

var _ Store = (*SQLite)(nil)

// NewSQLite opens (creating if needed) the database at path and ensures the
// schema exists.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		path = constants.DefaultStoreFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return nil, errors.WrapStore("open", path, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapStore("open", path, err)
	}

	// WAL mode for concurrent readers during sync writes
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, errors.WrapStore("configure", path, err)
	}

	// Busy timeout to avoid "database is locked" under concurrent syncs
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = "+strconv.Itoa(constants.StoreBusyTimeout)); err != nil {
		db.Close()
		return nil, errors.WrapStore("configure", path, err)
	}

	s := &SQLite{db: db, path: path}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Path returns the database file path.
func (s *SQLite) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) ensureSchema(ctx context.Context) error {
	schema := `
	-- Merged facility collections, one row per location
	CREATE TABLE IF NOT EXISTS collections (
		location_code TEXT PRIMARY KEY,
		records TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Unmerged remote fetches, invalidated on dataset version bumps
	CREATE TABLE IF NOT EXISTS remote_cache (
		location_code TEXT PRIMARY KEY,
		records TEXT NOT NULL,
		fetched_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Engine metadata (dataset version and friends)
	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return errors.WrapStore("migrate", s.path, err)
	}
	return nil
}

// Records returns the stored collection for a location code.
func (s *SQLite) Records(ctx context.Context, code string) ([]fbo.Record, error) {
	return s.readCollection(ctx, "collections", code)
}

// PutRecords atomically replaces the stored collection for a location.
func (s *SQLite) PutRecords(ctx context.Context, code string, records []fbo.Record) error {
	return s.writeCollection(ctx, "collections", "updated_at", code, records)
}

// Locations returns all location codes with stored collections.
func (s *SQLite) Locations(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT location_code FROM collections ORDER BY location_code ASC`)
	if err != nil {
		return nil, errors.WrapStore("list", "collections", err)
	}
	defer rows.Close()

	codes := make([]string, 0, 16)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, errors.WrapStore("scan", "collections", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapStore("list", "collections", err)
	}
	return codes, nil
}

// DatasetVersion returns the last imported dataset version, zero before any
// import.
func (s *SQLite) DatasetVersion(ctx context.Context) (int, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, datasetVersionKey)

	var value string
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, errors.WrapStore("read", datasetVersionKey, err)
	}

	version, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.WrapStore("parse", datasetVersionKey, err)
	}
	return version, nil
}

// SetDatasetVersion records a completed import of the given version.
func (s *SQLite) SetDatasetVersion(ctx context.Context, version int) error {
	query := `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := s.db.ExecContext(ctx, query, datasetVersionKey, strconv.Itoa(version)); err != nil {
		return errors.WrapStore("write", datasetVersionKey, err)
	}
	return nil
}

// CachedRemote returns the last successful unmerged remote fetch for a
// location.
func (s *SQLite) CachedRemote(ctx context.Context, code string) ([]fbo.Record, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT records FROM remote_cache WHERE location_code = ?`, code)

	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.WrapStore("read", code, err)
	}

	records, err := decodeRecords(payload)
	if err != nil {
		return nil, false, errors.WrapStore("decode", code, err)
	}
	return records, true, nil
}

// PutCachedRemote replaces the cached remote fetch for a location.
func (s *SQLite) PutCachedRemote(ctx context.Context, code string, records []fbo.Record) error {
	return s.writeCollection(ctx, "remote_cache", "fetched_at", code, records)
}

// InvalidateRemoteCache drops every cached remote fetch.
func (s *SQLite) InvalidateRemoteCache(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM remote_cache`); err != nil {
		return errors.WrapStore("invalidate", "remote_cache", err)
	}
	return nil
}

func (s *SQLite) readCollection(ctx context.Context, table, code string) ([]fbo.Record, error) {
	// Table names are fixed at the two call sites, never caller input.
	row := s.db.QueryRowContext(ctx, `SELECT records FROM `+table+` WHERE location_code = ?`, code)

	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return []fbo.Record{}, nil
	}
	if err != nil {
		return nil, errors.WrapStore("read", code, err)
	}

	records, err := decodeRecords(payload)
	if err != nil {
		return nil, errors.WrapStore("decode", code, err)
	}
	return records, nil
}

func (s *SQLite) writeCollection(ctx context.Context, table, timeColumn, code string, records []fbo.Record) error {
	payload, err := encodeRecords(records)
	if err != nil {
		return errors.WrapStore("encode", code, err)
	}

	query := `
		INSERT INTO ` + table + ` (location_code, records, ` + timeColumn + `) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(location_code) DO UPDATE SET
			records = excluded.records,
			` + timeColumn + ` = CURRENT_TIMESTAMP
	`
	if _, err := s.db.ExecContext(ctx, query, code, payload); err != nil {
		return errors.WrapStore("write", code, err)
	}
	return nil
}

func encodeRecords(records []fbo.Record) (string, error) {
	if records == nil {
		records = []fbo.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeRecords(payload string) ([]fbo.Record, error) {
	var records []fbo.Record
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []fbo.Record{}
	}
	return records, nil
}
