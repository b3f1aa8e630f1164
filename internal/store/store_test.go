package store

import (
	"errors"
	"os"
	"testing"

	"github.com/tobyard/hl/internal/apperr"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "hl-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func strptr(s string) *string { return &s }

func TestCreate_ReturnsPopulatedEntry(t *testing.T) {
	db := testDB(t)
	e, err := db.Create("hello world", "alice", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.ID == 0 {
		t.Error("expected non-zero id")
	}
	if e.Content != "hello world" || e.Author != "alice" || e.Source != "" {
		t.Errorf("entry = %+v", e)
	}
	if e.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestCreate_TrimsContentAndSource(t *testing.T) {
	db := testDB(t)
	e, err := db.Create("  padded  ", "alice", "  url  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.Content != "padded" {
		t.Errorf("content = %q, want %q", e.Content, "padded")
	}
	if e.Source != "url" {
		t.Errorf("source = %q, want %q", e.Source, "url")
	}

	got, err := db.Get(e.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Content != "padded" || got.Source != "url" {
		t.Errorf("stored entry = %+v", got)
	}
}

func TestCreate_EmptyContentFails(t *testing.T) {
	db := testDB(t)
	if _, err := db.Create("   ", "alice", ""); !errors.Is(err, apperr.ErrEmptyContent) {
		t.Errorf("err = %v, want ErrEmptyContent", err)
	}
}

func TestCreate_IdsStrictlyIncrease(t *testing.T) {
	db := testDB(t)
	var last int64
	for i := 0; i < 5; i++ {
		e, err := db.Create("item", "alice", "")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if e.ID <= last {
			t.Fatalf("id %d not greater than previous %d", e.ID, last)
		}
		last = e.ID
	}
}

func TestGet_UnknownIdReturnsNil(t *testing.T) {
	db := testDB(t)
	e, err := db.Get(9999)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if e != nil {
		t.Errorf("expected nil, got %+v", e)
	}
}

func TestUpdate_RoundTrip(t *testing.T) {
	db := testDB(t)
	e, _ := db.Create("original", "alice", "book")

	updated, err := db.Update(e.ID, strptr("  revised  "), nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Content != "revised" {
		t.Errorf("content = %q", updated.Content)
	}
	if updated.Source != "book" {
		t.Errorf("source changed: %q", updated.Source)
	}
	if updated.Author != "alice" || !updated.CreatedAt.Equal(e.CreatedAt) {
		t.Errorf("immutable fields changed: %+v", updated)
	}

	got, _ := db.Get(e.ID)
	if got.Content != "revised" {
		t.Errorf("stored content = %q", got.Content)
	}
}

func TestUpdate_SourceOnly(t *testing.T) {
	db := testDB(t)
	e, _ := db.Create("keep me", "alice", "old")

	updated, err := db.Update(e.ID, nil, strptr("new"))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Content != "keep me" || updated.Source != "new" {
		t.Errorf("entry = %+v", updated)
	}
}

func TestUpdate_UnknownIdReturnsNil(t *testing.T) {
	db := testDB(t)
	updated, err := db.Update(42, strptr("x"), nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated != nil {
		t.Errorf("expected nil, got %+v", updated)
	}
}

func TestUpdate_EmptyContentFails(t *testing.T) {
	db := testDB(t)
	e, _ := db.Create("something", "alice", "")
	if _, err := db.Update(e.ID, strptr("  "), nil); !errors.Is(err, apperr.ErrEmptyContent) {
		t.Errorf("err = %v, want ErrEmptyContent", err)
	}
	got, _ := db.Get(e.ID)
	if got.Content != "something" {
		t.Errorf("failed update altered row: %q", got.Content)
	}
}

func TestDelete_ReportsExistence(t *testing.T) {
	db := testDB(t)
	e, _ := db.Create("doomed", "alice", "")

	ok, err := db.Delete(e.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !ok {
		t.Error("first delete should report true")
	}
	ok, err = db.Delete(e.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok {
		t.Error("second delete should report false")
	}
	got, _ := db.Get(e.ID)
	if got != nil {
		t.Errorf("entry still present: %+v", got)
	}
}

func TestRecent_NewestFirstWithIdTiebreak(t *testing.T) {
	db := testDB(t)
	// All rows land within the same second, so ordering must come from the
	// id tiebreak.
	e1, _ := db.Create("first", "alice", "")
	e2, _ := db.Create("second", "alice", "")
	e3, _ := db.Create("third", "alice", "")

	entries, err := db.Recent(0, "")
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d", len(entries))
	}
	if entries[0].ID != e3.ID || entries[1].ID != e2.ID || entries[2].ID != e1.ID {
		t.Errorf("order = %d,%d,%d", entries[0].ID, entries[1].ID, entries[2].ID)
	}
}

func TestRecent_LimitAndAuthorFilter(t *testing.T) {
	db := testDB(t)
	for i := 0; i < 3; i++ {
		db.Create("user note", "user", "")
	}
	db.Create("agent note", "claude", "")

	entries, err := db.Recent(2, "")
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("limit not applied: len = %d", len(entries))
	}

	entries, err = db.Recent(0, "claude")
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Author != "claude" {
		t.Errorf("author filter: %+v", entries)
	}
}

func TestRecent_DefaultLimit(t *testing.T) {
	db := testDB(t)
	for i := 0; i < DefaultLimit+5; i++ {
		db.Create("bulk entry", "alice", "")
	}
	entries, err := db.Recent(0, "")
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != DefaultLimit {
		t.Errorf("len = %d, want %d", len(entries), DefaultLimit)
	}
}
