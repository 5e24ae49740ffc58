// Package store persists the approval log in a local SQLite file, as a
// single JSON blob in a key-value table. The layout mirrors the original
// browser deployment (one serialized mapping under one fixed key), which
// keeps exported history interchangeable between the two.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/innobi/opsboard/internal/approval"
)

// storageKey is the fixed key the whole approval mapping lives under.
// It is part of the persisted format; do not change it.
const storageKey = "innobi-approvals"

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
);
`

type Store struct {
	db *sqlx.DB

	// Appends are read-modify-write over the whole blob; the mutex
	// serializes writers within this process. Cross-process writers remain
	// last-write-wins.
	mu sync.Mutex
}

// Open opens (creating if needed) the SQLite file at path.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening approval store: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging approval store: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing approval store: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]approval.Entry, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return data[key], nil
}

func (s *Store) Append(ctx context.Context, key string, e approval.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(ctx)
	if err != nil {
		return err
	}

	data[key] = append(data[key], e)

	return s.save(ctx, data)
}

func (s *Store) Snapshot(ctx context.Context) (map[string][]approval.Entry, error) {
	return s.load(ctx)
}

func (s *Store) Restore(ctx context.Context, data map[string][]approval.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data == nil {
		data = map[string][]approval.Entry{}
	}

	return s.save(ctx, data)
}

func (s *Store) load(ctx context.Context) (map[string][]approval.Entry, error) {
	var blob []byte

	err := s.db.GetContext(ctx, &blob, `SELECT value FROM kv WHERE key = ?`, storageKey)
	if err != nil {
		if err == sql.ErrNoRows {
			return map[string][]approval.Entry{}, nil
		}

		return nil, fmt.Errorf("loading approvals: %w", err)
	}

	var data map[string][]approval.Entry
	if err := json.Unmarshal(blob, &data); err != nil {
		return nil, fmt.Errorf("decoding approvals: %w", err)
	}

	if data == nil {
		data = map[string][]approval.Entry{}
	}

	return data, nil
}

func (s *Store) save(ctx context.Context, data map[string][]approval.Entry) error {
	blob, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding approvals: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, storageKey, blob)
	if err != nil {
		return fmt.Errorf("saving approvals: %w", err)
	}

	return nil
}
