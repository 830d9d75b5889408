package textgrid

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Width returns the number of terminal cells text occupies.
// Widths come from uniseg's East Asian Width and emoji presentation tables,
// summed per grapheme cluster.
func Width(text string) int {
	width := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var w int
		_, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		width += w
	}
	return width
}

// Truncate returns the longest prefix of whole graphemes of text whose
// width does not exceed maxWidth.
func Truncate(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	used := 0
	end := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > maxWidth {
			break
		}
		used += w
		end += len(cluster)
	}
	return text[:end]
}

// Graphemes splits text into its grapheme clusters.
func Graphemes(text string) []string {
	var clusters []string
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		clusters = append(clusters, cluster)
	}
	return clusters
}

// Sanitize makes text safe to lay out on one line: tabs become a single
// space and every other control character is removed. Control characters
// have no width of their own but move the cursor on a terminal.
func Sanitize(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, text)
}
