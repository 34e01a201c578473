package device

import (
	"fmt"
	"io"
)

// StdioPrompter reads a 1-based selection from a terminal. It fails when
// input cannot be read, e.g. on a non-interactive terminal.
type StdioPrompter struct {
	In  io.Reader
	Out io.Writer
}

func (p StdioPrompter) Choose(title string, items []string, kind string) (int, error) {
	fmt.Fprintln(p.Out, title)
	for i, item := range items {
		fmt.Fprintf(p.Out, "  [%d] %s\n", i+1, item)
	}
	fmt.Fprintf(p.Out, "Enter %s number: ", kind)

	var n int
	if _, err := fmt.Fscanln(p.In, &n); err != nil {
		return 0, fmt.Errorf("failed to read selection: %w", err)
	}
	if n < 1 || n > len(items) {
		return 0, fmt.Errorf("selection %d out of range 1-%d", n, len(items))
	}
	return n - 1, nil
}
