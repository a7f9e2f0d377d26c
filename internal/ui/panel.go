package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/truncate"
)

// Truncate shortens s to width terminal cells, ending with "…".
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

// Panel draws a framed box using the current theme.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, BorderStyle().Render(strings.Join(lines, "\n")))
}
