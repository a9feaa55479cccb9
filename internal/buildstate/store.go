// Package buildstate persists per-document content hashes between builds so
// incremental builds can skip unchanged renders.
package buildstate

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed hash store. Safe for concurrent use.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (and initializes) the store at dbPath. Use ":memory:" for an
// in-memory store.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		path TEXT PRIMARY KEY,
		sha256 TEXT NOT NULL,
		rendered_at INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Hash returns the stored hash for path, or ok=false when unseen.
func (s *Store) Hash(path string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hash string
	err := s.db.QueryRow("SELECT sha256 FROM documents WHERE path = ?", path).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query document hash: %w", err)
	}
	return hash, true, nil
}

// Put records the hash for path, replacing any previous entry.
func (s *Store) Put(path, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO documents (path, sha256, rendered_at) VALUES (?, ?, ?) "+
			"ON CONFLICT(path) DO UPDATE SET sha256 = excluded.sha256, rendered_at = excluded.rendered_at",
		path, hash, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert document hash: %w", err)
	}
	return nil
}

// Prune deletes entries for documents no longer present in the content set.
func (s *Store) Prune(keep []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keepSet := make(map[string]struct{}, len(keep))
	for _, p := range keep {
		keepSet[p] = struct{}{}
	}

	rows, err := s.db.Query("SELECT path FROM documents")
	if err != nil {
		return fmt.Errorf("query document paths: %w", err)
	}
	defer rows.Close()

	var stale []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return fmt.Errorf("scan document path: %w", err)
		}
		if _, ok := keepSet[p]; !ok {
			stale = append(stale, p)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate rows: %w", err)
	}

	for _, p := range stale {
		if _, err := s.db.Exec("DELETE FROM documents WHERE path = ?", p); err != nil {
			return fmt.Errorf("delete stale entry %s: %w", p, err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
