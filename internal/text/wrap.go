// Package text formats terminal output.
package text

import (
	"strings"

	tsize "github.com/kopoli/go-terminal-size"
	"github.com/mitchellh/go-wordwrap"
)

const defaultWidth = 80

// TerminalWidth returns the current terminal width, or a default of 80 when
// it cannot be determined (pipes, CI).
func TerminalWidth() int {
	size, err := tsize.GetSize()
	if err != nil || size.Width <= 0 {
		return defaultWidth
	}
	return size.Width
}

// Wrap breaks s into lines of at most width characters, splitting at word
// boundaries. Existing newlines are preserved and words longer than width
// pass through unchanged.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}

	paragraphs := strings.Split(s, "\n")
	for i, paragraph := range paragraphs {
		paragraphs[i] = wordwrap.WrapString(paragraph, uint(width))
	}
	return strings.Join(paragraphs, "\n")
}
