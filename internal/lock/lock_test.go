package lock

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(filepath.Join(t.TempDir(), "locks"))
}

func leaseBody(t *testing.T, m *Manager, id int64) string {
	t.Helper()
	data, err := os.ReadFile(m.path(id))
	if err != nil {
		t.Fatalf("read lease: %v", err)
	}
	return string(data)
}

func TestAcquire_WritesOwnPid(t *testing.T) {
	m := testManager(t)
	if err := m.Acquire(42); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if got, want := leaseBody(t, m, 42), strconv.Itoa(os.Getpid()); got != want {
		t.Errorf("lease body = %q, want %q", got, want)
	}
}

func TestAcquire_FailsWhenHeldByLiveProcess(t *testing.T) {
	m := testManager(t)
	if err := m.Acquire(1); err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	// Own pid is alive, so the second acquire must be refused.
	err := m.Acquire(1)
	var held *HeldError
	if !errors.As(err, &held) {
		t.Fatalf("err = %v, want *HeldError", err)
	}
	if held.EntryID != 1 || held.PID != os.Getpid() {
		t.Errorf("HeldError = %+v", held)
	}
}

func TestAcquire_ReportsForeignOwner(t *testing.T) {
	m := testManager(t)
	m.alive = func(int) bool { return true }
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(m.path(7), []byte("4321"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := m.Acquire(7)
	var held *HeldError
	if !errors.As(err, &held) {
		t.Fatalf("err = %v, want *HeldError", err)
	}
	if held.PID != 4321 {
		t.Errorf("pid = %d, want 4321", held.PID)
	}
}

func TestAcquire_TakesOverStaleLease(t *testing.T) {
	m := testManager(t)
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		t.Fatal(err)
	}
	// A pid far above any realistic pid space.
	if err := os.WriteFile(m.path(5), []byte("999999999"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := m.Acquire(5); err != nil {
		t.Fatalf("Acquire over stale lease: %v", err)
	}
	if got, want := leaseBody(t, m, 5), strconv.Itoa(os.Getpid()); got != want {
		t.Errorf("lease body = %q, want %q", got, want)
	}
}

func TestAcquire_TakesOverCorruptedLease(t *testing.T) {
	m := testManager(t)
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(m.path(6), []byte("not-a-pid"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := m.Acquire(6); err != nil {
		t.Fatalf("Acquire over corrupted lease: %v", err)
	}
	if got, want := leaseBody(t, m, 6), strconv.Itoa(os.Getpid()); got != want {
		t.Errorf("lease body = %q, want %q", got, want)
	}
}

func TestRelease_RemovesLease(t *testing.T) {
	m := testManager(t)
	if err := m.Acquire(7); err != nil {
		t.Fatal(err)
	}
	if err := m.Release(7); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := os.Stat(m.path(7)); !os.IsNotExist(err) {
		t.Error("lease file still present")
	}
	// Released lease can be re-acquired.
	if err := m.Acquire(7); err != nil {
		t.Errorf("re-Acquire after release: %v", err)
	}
}

func TestRelease_Idempotent(t *testing.T) {
	m := testManager(t)
	if err := m.Release(99); err != nil {
		t.Errorf("Release without lease: %v", err)
	}
}

func TestLocks_PerEntryIndependence(t *testing.T) {
	m := testManager(t)
	if err := m.Acquire(1); err != nil {
		t.Fatalf("Acquire(1): %v", err)
	}
	if err := m.Acquire(2); err != nil {
		t.Errorf("Acquire(2) blocked by Acquire(1): %v", err)
	}
}

func TestPidAlive_SelfIsAlive(t *testing.T) {
	if !pidAlive(os.Getpid()) {
		t.Error("own pid reported dead")
	}
}
