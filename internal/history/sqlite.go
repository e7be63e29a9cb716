// Package history persists truncated result previews between runs.
package history

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"sanavoz/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS query_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	preview TEXT NOT NULL,
	level TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);`

// SQLiteStore implements the history port on a local sqlite file
// (pure Go driver, no cgo).
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Append stores one preview. Entries are never evicted.
func (s *SQLiteStore) Append(entry domain.HistoryEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO query_history (preview, level) VALUES (?, ?)`,
		entry.Preview, entry.Level,
	)
	if err != nil {
		return fmt.Errorf("appending history entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, most recent first.
func (s *SQLiteStore) Recent(limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, preview, level, created_at FROM query_history ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		if err := rows.Scan(&entry.ID, &entry.Preview, &entry.Level, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
