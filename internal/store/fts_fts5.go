//go:build sqlite_fts5

package store

import (
	"database/sql"
	"fmt"
	"strings"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
			content,
			source,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

// The FTS rowid mirrors entries.id, so row and index rows share a key.
func ftsUpsert(tx *sql.Tx, id int64, content, source string) error {
	_, err := tx.Exec(`INSERT INTO entries_fts (rowid, content, source) VALUES (?, ?, ?)`,
		id, content, source)
	if err != nil {
		return fmt.Errorf("store: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, id int64) {
	_, _ = tx.Exec(`DELETE FROM entries_fts WHERE rowid = ?`, id)
}

// Search runs an FTS5 match over content and source, best rank first. The
// query is quoted as a single phrase so FTS operators and punctuation in
// user input are matched literally instead of parsed as syntax.
func (db *DB) Search(query string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	phrase := `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
	rows, err := db.conn.Query(`
		SELECT e.id, e.content, e.source, e.author, e.created_at
		FROM entries_fts f
		JOIN entries e ON e.id = f.rowid
		WHERE entries_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, phrase, limit)
	if err != nil {
		return nil, fmt.Errorf("store: search: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}
