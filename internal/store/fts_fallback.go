//go:build !sqlite_fts5

package store

import (
	"database/sql"
	"fmt"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not compiled in; search falls back to LIKE over the entries table.
	return nil
}

func ftsUpsert(_ *sql.Tx, _ int64, _, _ string) error {
	// Content and source already live in the entries table.
	return nil
}

func ftsDelete(_ *sql.Tx, _ int64) {}

// Search performs a LIKE-based substring match (fallback when FTS5 is not
// compiled in). Newest entries first in place of relevance ranking.
func (db *DB) Search(query string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT id, content, source, author, created_at
		FROM entries
		WHERE content LIKE ? OR source LIKE ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("store: search: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}
