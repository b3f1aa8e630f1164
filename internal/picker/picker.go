// Package picker implements a minimal interactive list picker for
// terminals: arrow keys or j/k to move, enter to select, q or esc to
// cancel.
package picker

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Pick renders items and returns the index the user selected, or -1 when
// the list is empty or the user cancels. visible caps the number of rows
// drawn at once; the window scrolls to keep the cursor on screen.
func Pick(items []string, visible int) (int, error) {
	if len(items) == 0 {
		return -1, nil
	}
	vis := visible
	if vis <= 0 || vis > len(items) {
		vis = len(items)
	}

	fd := int(os.Stdin.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return -1, fmt.Errorf("picker: raw mode: %w", err)
	}
	defer term.Restore(fd, old) //nolint:errcheck

	cur, top := 0, 0
	render(os.Stdout, items, cur, top, vis, false)

	for {
		switch readKey(os.Stdin) {
		case "up", "k":
			if cur > 0 {
				cur--
			}
		case "down", "j":
			if cur < len(items)-1 {
				cur++
			}
		case "enter":
			return cur, nil
		case "esc", "q", "ctrl-c":
			return -1, nil
		default:
			continue
		}
		top = window(cur, top, vis)
		render(os.Stdout, items, cur, top, vis, true)
	}
}

// window returns the first visible index so that cur stays on screen.
func window(cur, top, visible int) int {
	if cur < top {
		return cur
	}
	if cur >= top+visible {
		return cur - visible + 1
	}
	return top
}

func render(w io.Writer, items []string, cur, top, vis int, redraw bool) {
	if redraw {
		fmt.Fprintf(w, "\x1b[%dA", vis)
	}
	for i := top; i < top+vis && i < len(items); i++ {
		marker := " "
		if i == cur {
			marker = ">"
		}
		fmt.Fprintf(w, "\r\x1b[K %s %s\r\n", marker, items[i])
	}
}

func readKey(r io.Reader) string {
	buf := make([]byte, 3)
	n, err := r.Read(buf)
	if err != nil || n == 0 {
		return "esc"
	}
	switch {
	case buf[0] == 0x1b:
		if n >= 3 && buf[1] == '[' {
			switch buf[2] {
			case 'A':
				return "up"
			case 'B':
				return "down"
			}
		}
		return "esc"
	case buf[0] == '\r' || buf[0] == '\n':
		return "enter"
	case buf[0] == 0x03:
		return "ctrl-c"
	default:
		return string(buf[:n])
	}
}
