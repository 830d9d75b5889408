package monitor

import (
	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// RenderWidth returns the width frames are rendered at for the terminal on
// fd: one column less than the terminal, so the last column never wraps.
func RenderWidth(fd int) int {
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 1 {
		width = DefaultWidth
	}
	return width - 1
}
