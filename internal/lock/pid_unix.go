//go:build unix

package lock

import (
	"errors"
	"syscall"
)

// pidAlive probes pid with signal 0 (existence check, nothing delivered).
// EPERM means the process exists under different privileges, which still
// counts as alive: liveness, not ownership, gates staleness.
func pidAlive(pid int) bool {
	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}
