package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tobyard/hl/internal/apperr"
)

// Entry is one stored highlight record. Author and CreatedAt are fixed at
// creation; Content and Source are mutable and always stored trimmed.
type Entry struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Source    string    `json:"source"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*Entry, error) {
	var e Entry
	if err := s.Scan(&e.ID, &e.Content, &e.Source, &e.Author, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new entry and its search index row in one transaction.
// Content and source are trimmed; empty content after trimming fails with
// apperr.ErrEmptyContent.
func (db *DB) Create(content, author, source string) (*Entry, error) {
	content = strings.TrimSpace(content)
	source = strings.TrimSpace(source)
	if content == "" {
		return nil, apperr.ErrEmptyContent
	}
	now := time.Now().UTC()

	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	res, err := tx.Exec(`INSERT INTO entries (content, source, author, created_at) VALUES (?, ?, ?, ?)`,
		content, source, author, now)
	if err != nil {
		return nil, fmt.Errorf("store: insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: last insert id: %w", err)
	}
	if err := ftsUpsert(tx, id, content, source); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}

	return &Entry{ID: id, Content: content, Source: source, Author: author, CreatedAt: now}, nil
}

// Get returns the entry with the given id, or nil when it does not exist.
func (db *DB) Get(id int64) (*Entry, error) {
	row := db.conn.QueryRow(`SELECT id, content, source, author, created_at FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get entry: %w", err)
	}
	return e, nil
}

// Recent lists entries newest first. Rows sharing a creation timestamp are
// ordered higher id first so insertion order wins at sub-second collisions.
// An empty author means no filter.
func (db *DB) Recent(limit int, author string) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := `SELECT id, content, source, author, created_at FROM entries`
	args := []any{}
	if author != "" {
		q += ` WHERE author = ?`
		args = append(args, author)
	}
	q += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: recent: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// Update rewrites an entry's content and/or source and reindexes it in the
// same transaction. A nil field keeps the current value; supplied fields are
// trimmed. Returns nil when the id does not exist. Author and creation time
// are never touched.
func (db *DB) Update(id int64, content, source *string) (*Entry, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	row := tx.QueryRow(`SELECT id, content, source, author, created_at FROM entries WHERE id = ?`, id)
	cur, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read entry: %w", err)
	}

	newContent := cur.Content
	if content != nil {
		newContent = strings.TrimSpace(*content)
		if newContent == "" {
			return nil, apperr.ErrEmptyContent
		}
	}
	newSource := cur.Source
	if source != nil {
		newSource = strings.TrimSpace(*source)
	}

	if _, err := tx.Exec(`UPDATE entries SET content = ?, source = ? WHERE id = ?`,
		newContent, newSource, id); err != nil {
		return nil, fmt.Errorf("store: update entry: %w", err)
	}
	ftsDelete(tx, id)
	if err := ftsUpsert(tx, id, newContent, newSource); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}

	cur.Content = newContent
	cur.Source = newSource
	return cur, nil
}

// Delete removes an entry and its index row together. Reports whether a row
// existed; deleting an unknown id is not an error.
func (db *DB) Delete(id int64) (bool, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return false, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, id)
	res, err := tx.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("store: delete entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("store: rows affected: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("store: commit: %w", err)
	}
	return n > 0, nil
}

func collectEntries(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}
