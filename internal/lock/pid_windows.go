//go:build windows

package lock

import "os"

// pidAlive reports whether a process handle can be opened for pid. On
// Windows os.FindProcess performs the OpenProcess call and fails for ids
// that no longer exist.
func pidAlive(pid int) bool {
	_, err := os.FindProcess(pid)
	return err == nil
}
