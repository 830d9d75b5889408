package textgrid

import (
	"strings"
	"testing"
)

func TestWidth(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{name: "empty", text: "", expected: 0},
		{name: "ascii", text: "pipeline", expected: 8},
		{name: "wide CJK", text: "\u4E16\u754C", expected: 4},
		{name: "combining accent", text: "e\u0301", expected: 1},
		{name: "emoji presentation", text: "\u2705", expected: 2},
		{name: "emoji with skin tone", text: "\U0001F44D\U0001F3FD", expected: 2},
		{name: "zwj sequence", text: "\U0001F468\u200D\U0001F469\u200D\U0001F467", expected: 2},
		{name: "flag", text: "\U0001F1E9\U0001F1EA", expected: 2},
		{name: "mixed", text: "\u2705  build", expected: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Width(tt.text)
			if result != tt.expected {
				t.Errorf("Width(%q) = %d, expected %d", tt.text, result, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		expected string
	}{
		{name: "fits", text: "deploy", maxWidth: 10, expected: "deploy"},
		{name: "exact", text: "deploy", maxWidth: 6, expected: "deploy"},
		{name: "cut ascii", text: "deploy", maxWidth: 3, expected: "dep"},
		{name: "zero width", text: "deploy", maxWidth: 0, expected: ""},
		{name: "negative width", text: "deploy", maxWidth: -4, expected: ""},
		{name: "wide rune does not fit", text: "\u4E16\u754C", maxWidth: 3, expected: "\u4E16"},
		{name: "wide rune at start", text: "\u4E16\u754C", maxWidth: 1, expected: ""},
		{name: "keeps combining mark", text: "e\u0301x", maxWidth: 1, expected: "e\u0301"},
		{name: "keeps zwj sequence whole", text: "\U0001F468\u200D\U0001F469\u200D\U0001F467ab", maxWidth: 3, expected: "\U0001F468\u200D\U0001F469\u200D\U0001F467a"},
		{name: "emoji dropped when too wide", text: "a\u2705", maxWidth: 2, expected: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Truncate(tt.text, tt.maxWidth)
			if result != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, expected %q", tt.text, tt.maxWidth, result, tt.expected)
			}
		})
	}
}

func TestTruncateNeverSplitsGraphemes(t *testing.T) {
	inputs := []string{
		"plain ascii text",
		"\u4E16\u754Cこんにちは",
		"e\u0301e\u0301e\u0301",
		"\u25B6\uFE0F running \U0001F44D\U0001F3FD ok",
		"\U0001F1E9\U0001F1EA\U0001F1EB\U0001F1F7\U0001F1EE\U0001F1F9",
		"\U0001F468\u200D\U0001F469\u200D\U0001F467 family",
		"mixed \u2705 \u4E16 e\u0301 ⏸ end",
	}

	for _, input := range inputs {
		clusters := Graphemes(input)
		for maxWidth := -1; maxWidth <= Width(input)+1; maxWidth++ {
			result := Truncate(input, maxWidth)

			if !strings.HasPrefix(input, result) {
				t.Fatalf("Truncate(%q, %d) = %q is not a prefix", input, maxWidth, result)
			}
			if w := Width(result); maxWidth >= 0 && w > maxWidth {
				t.Errorf("Truncate(%q, %d) has width %d", input, maxWidth, w)
			}

			// The result must end exactly on a cluster boundary.
			joined := ""
			onBoundary := result == ""
			for _, cluster := range clusters {
				joined += cluster
				if joined == result {
					onBoundary = true
					break
				}
				if len(joined) > len(result) {
					break
				}
			}
			if !onBoundary {
				t.Errorf("Truncate(%q, %d) = %q splits a grapheme", input, maxWidth, result)
			}
		}
	}
}

func TestGraphemes(t *testing.T) {
	clusters := Graphemes("ae\u0301\U0001F44D\U0001F3FD")
	expected := []string{"a", "e\u0301", "\U0001F44D\U0001F3FD"}
	if len(clusters) != len(expected) {
		t.Fatalf("Graphemes returned %d clusters, expected %d: %q", len(clusters), len(expected), clusters)
	}
	for i := range expected {
		if clusters[i] != expected[i] {
			t.Errorf("cluster %d = %q, expected %q", i, clusters[i], expected[i])
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{name: "plain", text: "deploy", expected: "deploy"},
		{name: "tabs", text: "build\tand\ttest", expected: "build and test"},
		{name: "carriage return", text: "ab\rcd", expected: "abcd"},
		{name: "escape and nul", text: "\x1b[31mred\x00", expected: "[31mred"},
		{name: "c1 control", text: "a\u0085b", expected: "ab"},
		{name: "wide and combining kept", text: "日本é", expected: "日本é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.text); got != tt.expected {
				t.Errorf("Sanitize(%q) = %q, expected %q", tt.text, got, tt.expected)
			}
		})
	}
}
