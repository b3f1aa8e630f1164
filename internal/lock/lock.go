// Package lock implements advisory cross-process editor locks.
//
// One lease file per entry id lives under the state directory; its body is
// the owning process id as text. A lease whose owner is no longer running
// (or whose body is unreadable) is stale and taken over on the next
// acquire, so editor crashes never leave permanent locks behind.
package lock

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// HeldError reports that another live process holds the lease for an entry.
type HeldError struct {
	EntryID int64
	PID     int
}

func (e *HeldError) Error() string {
	return fmt.Sprintf("entry #%d is already being edited (pid %d)", e.EntryID, e.PID)
}

// Manager hands out per-entry leases from a single directory. Locks for
// different entries are fully independent.
type Manager struct {
	dir   string
	alive func(pid int) bool
}

// NewManager creates a Manager storing leases under dir. The directory is
// created on first acquire.
func NewManager(dir string) *Manager {
	return &Manager{dir: dir, alive: pidAlive}
}

func (m *Manager) path(id int64) string {
	return filepath.Join(m.dir, fmt.Sprintf("%d.lock", id))
}

// Acquire takes the lease for id, failing with *HeldError when a live
// process already holds it. It is a single non-blocking check-and-set:
// contention is reported, never waited out.
func (m *Manager) Acquire(id int64) error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("lock: create lease dir: %w", err)
	}

	if data, err := os.ReadFile(m.path(id)); err == nil {
		pid, convErr := strconv.Atoi(strings.TrimSpace(string(data)))
		if convErr == nil && m.alive(pid) {
			return &HeldError{EntryID: id, PID: pid}
		}
		// Dead owner or garbage body: stale lease, overwrite below.
	}

	if err := os.WriteFile(m.path(id), []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return fmt.Errorf("lock: write lease: %w", err)
	}
	return nil
}

// Release removes the lease for id. Calling it when no lease exists, or
// for a lease the caller never held, is a no-op.
func (m *Manager) Release(id int64) error {
	if err := os.Remove(m.path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("lock: remove lease: %w", err)
	}
	return nil
}
