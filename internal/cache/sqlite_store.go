package cache

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is the alternate Store backend, following the teacher's
// index/sqlite.go one-table-per-concern style: one result table per
// namespace (each row a JSON blob plus its config hash) and a
// path_index table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if absent) a SQLite-backed Store at
// dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("cache: open sqlite %s: %w", dbPath, err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: init schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS path_index (
			path TEXT PRIMARY KEY,
			content_hash TEXT NOT NULL
		)`,
	}
	for _, ns := range namespaces {
		queries = append(queries, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			config_hash TEXT NOT NULL
		)`, tableName(ns)))
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("cache: exec schema query: %w", err)
		}
	}
	return nil
}

// tableName maps a namespace to its SQL table name (table names can't
// contain Go-style namespace punctuation, but ours are already
// identifier-safe, so this is an identity function kept for clarity at
// call sites).
func tableName(ns Namespace) string { return string(ns) }

// Get implements Store.
func (s *SQLiteStore) Get(ns Namespace, key string) ([]byte, bool, error) {
	row := s.db.QueryRow(fmt.Sprintf("SELECT data FROM %s WHERE key = ?", tableName(ns)), key)
	var data []byte
	err := row.Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get %s/%s: %w", ns, key, err)
	}
	return data, true, nil
}

// Put implements Store.
func (s *SQLiteStore) Put(ns Namespace, key string, data []byte, configHash string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("cache: begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (key, data, config_hash) VALUES (?, ?, ?)", tableName(ns),
	), key, data, configHash)
	if err != nil {
		return fmt.Errorf("cache: put %s/%s: %w", ns, key, err)
	}
	return tx.Commit()
}

// GetConfig implements Store.
func (s *SQLiteStore) GetConfig(ns Namespace, key string) (string, bool, error) {
	row := s.db.QueryRow(fmt.Sprintf("SELECT config_hash FROM %s WHERE key = ?", tableName(ns)), key)
	var cfg string
	err := row.Scan(&cfg)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache: get config %s/%s: %w", ns, key, err)
	}
	return cfg, true, nil
}

// PathHash implements Store.
func (s *SQLiteStore) PathHash(path string) (string, bool, error) {
	row := s.db.QueryRow("SELECT content_hash FROM path_index WHERE path = ?", path)
	var hash string
	err := row.Scan(&hash)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache: path hash %s: %w", path, err)
	}
	return hash, true, nil
}

// SetPathHash implements Store.
func (s *SQLiteStore) SetPathHash(path, contentHash string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO path_index (path, content_hash) VALUES (?, ?)", path, contentHash,
	)
	if err != nil {
		return fmt.Errorf("cache: set path hash %s: %w", path, err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
