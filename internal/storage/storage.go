// Package storage provides the durable client-side key/value store backing
// favorites, UI flags and the saved credential. Values are JSON or plain text
// stored under string keys, surviving restarts of the application.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrKeyNotFound is returned by Get when no value is stored under the key
var ErrKeyNotFound = errors.New("storage: key not found")

// Store is a sqlite-backed key/value store
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at path. The parent directory is created
// if it does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage database: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create storage schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the value stored under key, or ErrKeyNotFound
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at",
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
