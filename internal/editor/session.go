package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Open launches the editor on a temp file seeded with initial and blocks
// until the subprocess exits. While the editor runs, every save that
// changes the trimmed file content triggers onSave (which may be nil).
// The final trimmed content is returned; empty means the user aborted.
func Open(ctx context.Context, cmdline []string, initial string, onSave func(string)) (string, error) {
	tmp, err := os.CreateTemp("", "hl-*.md")
	if err != nil {
		return "", fmt.Errorf("editor: create draft: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(initial); err != nil {
		tmp.Close()
		return "", fmt.Errorf("editor: seed draft: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("editor: close draft: %w", err)
	}

	var watchDone chan struct{}
	if onSave != nil {
		// Watch the parent directory: editors that save via
		// rename-replace (vim and friends) would otherwise detach a
		// watch on the file itself.
		watcher, werr := fsnotify.NewWatcher()
		if werr == nil && watcher.Add(filepath.Dir(path)) == nil {
			watchDone = make(chan struct{})
			defer func() {
				watcher.Close()
				<-watchDone
			}()
			go watchSaves(watcher, path, strings.TrimSpace(initial), onSave, watchDone)
		} else if werr == nil {
			watcher.Close()
		}
	}

	cmd := exec.CommandContext(ctx, cmdline[0], append(append([]string{}, cmdline[1:]...), path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("editor: read draft: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func watchSaves(watcher *fsnotify.Watcher, path, last string, onSave func(string), done chan struct{}) {
	defer close(done)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Name != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			content := strings.TrimSpace(string(data))
			if content != "" && content != last {
				last = content
				onSave(content)
			}
		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
