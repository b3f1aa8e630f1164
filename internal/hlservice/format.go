package hlservice

import (
	"fmt"
	"strings"

	"github.com/tobyard/hl/internal/store"
)

const previewWidth = 60

// FormatShort returns the two-line list representation of an entry: an id
// and metadata line plus a truncated first line of content.
func FormatShort(e *store.Entry) string {
	src := ""
	if e.Source != "" {
		src = "  " + e.Source
	}
	mark := ""
	if e.Author == AuthorClaude {
		mark = " (claude)"
	}
	return fmt.Sprintf("[%d] %s%s%s\n     %s",
		e.ID, e.CreatedAt.Format("2006-01-02 15:04"), mark, src, preview(e.Content))
}

// FormatLine returns a single-line representation for list pickers.
func FormatLine(e *store.Entry) string {
	return fmt.Sprintf("[%d] %s  %s", e.ID, e.CreatedAt.Format("2006-01-02"), preview(e.Content))
}

// FormatFull returns the complete display of an entry.
func FormatFull(e *store.Entry) string {
	lines := []string{
		fmt.Sprintf("id: %d", e.ID),
		fmt.Sprintf("author: %s", e.Author),
		fmt.Sprintf("created: %s", e.CreatedAt.Format("2006-01-02 15:04:05")),
	}
	if e.Source != "" {
		lines = append(lines, fmt.Sprintf("source: %s", e.Source))
	}
	lines = append(lines, "", e.Content)
	return strings.Join(lines, "\n")
}

func preview(content string) string {
	first, _, _ := strings.Cut(content, "\n")
	runes := []rune(first)
	if len(runes) > previewWidth {
		return string(runes[:previewWidth])
	}
	return first
}
