package textgrid

import (
	"strings"
)

// Alignment controls where padding goes when a line is narrower than its column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "unknown"
	}
}

// Align pads text with spaces to exactly width cells.
func Align(text string, width int, alignment Alignment) string {
	return AlignWith(text, width, alignment, ' ')
}

// AlignWith pads text with pad to exactly width cells. Text wider than width
// is truncated first. A pad rune that is not one cell wide is replaced by a
// space, otherwise the result could not hit the target width.
func AlignWith(text string, width int, alignment Alignment, pad rune) string {
	if width <= 0 {
		return ""
	}
	if Width(string(pad)) != 1 {
		pad = ' '
	}

	textWidth := Width(text)
	if textWidth > width {
		text = Truncate(text, width)
		textWidth = Width(text)
	}

	free := width - textWidth
	padding := string(pad)

	switch alignment {
	case AlignCenter:
		left := free / 2
		right := free - left
		return strings.Repeat(padding, left) + text + strings.Repeat(padding, right)
	case AlignRight:
		return strings.Repeat(padding, free) + text
	default:
		return text + strings.Repeat(padding, free)
	}
}
