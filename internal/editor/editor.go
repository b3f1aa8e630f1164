// Package editor drives external editor sessions. The draft lives in a
// temp file that is watched while the editor runs, so in-progress saves
// can be pushed back to the caller before the session ends.
package editor

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// guiWaitFlags maps GUI editor basenames to the flag that makes them block
// until the file is closed. Terminal editors block on their own.
var guiWaitFlags = map[string]string{
	"subl": "-w",
	"code": "--wait",
	"mate": "-w",
	"atom": "--wait",
	"zed":  "--wait",
}

// Command resolves the editor invocation: explicit override first, then
// $EDITOR, then $VISUAL, then vi. Known GUI editors get their wait flag
// appended when missing so the subprocess does not return immediately.
func Command(override string) []string {
	ed := override
	if ed == "" {
		ed = os.Getenv("EDITOR")
	}
	if ed == "" {
		ed = os.Getenv("VISUAL")
	}
	if ed == "" {
		ed = "vi"
	}
	parts := strings.Fields(ed)
	base := strings.TrimSuffix(filepath.Base(parts[0]), filepath.Ext(parts[0]))
	if flag, ok := guiWaitFlags[base]; ok && !slices.Contains(parts, flag) {
		parts = append(parts, flag)
	}
	return parts
}
