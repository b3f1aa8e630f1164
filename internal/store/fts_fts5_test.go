//go:build sqlite_fts5

package store

import "testing"

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM entries_fts`).Scan(&count); err != nil {
		t.Fatalf("entries_fts table missing: %v", err)
	}
}

func TestFTS5_OperatorsMatchedLiterally(t *testing.T) {
	db := testDB(t)
	db.Create("reading about rust AND go", "alice", "")

	// "AND" would be a boolean operator if the query were passed raw; the
	// phrase quoting must keep it literal and must not error.
	results, err := db.Search("rust AND go", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("results = %+v", results)
	}
}

func TestFTS5_PunctuationDoesNotError(t *testing.T) {
	db := testDB(t)
	db.Create(`she said "hello" loudly`, "alice", "")

	for _, q := range []string{`"hello"`, `c++ (notes)`, `what's-this:`} {
		if _, err := db.Search(q, 0); err != nil {
			t.Errorf("Search(%q): %v", q, err)
		}
	}
}

func TestFTS5_RankedResults(t *testing.T) {
	db := testDB(t)
	db.Create("alpha", "user", "")
	db.Create("beta alpha", "claude", "")

	results, err := db.Search("alpha", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 ranked results, got %d", len(results))
	}
}
