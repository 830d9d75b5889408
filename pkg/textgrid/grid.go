package textgrid

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrShapeMismatch = errors.New("columns, widths and alignments differ in length")
	ErrNegativeWidth = errors.New("column width must not be negative")
)

// Grid is a fixed rows x cols arrangement of lines. Cells are stored row-major
// and already truncated to their column width.
type Grid struct {
	rows   int
	cols   int
	cells  []string
	widths []int
	aligns []Alignment
}

// NewGrid splits every cell of every column on line breaks, truncates the
// resulting lines to the column width and pads all columns to the height of
// the tallest one.
func NewGrid(columns [][]string, widths []int, aligns []Alignment) (*Grid, error) {
	if len(columns) != len(widths) || len(columns) != len(aligns) {
		return nil, fmt.Errorf("%w: %d columns, %d widths, %d alignments",
			ErrShapeMismatch, len(columns), len(widths), len(aligns))
	}
	for i, w := range widths {
		if w < 0 {
			return nil, fmt.Errorf("%w: column %d has width %d", ErrNegativeWidth, i, w)
		}
	}

	lines := make([][]string, len(columns))
	height := 0
	for c, column := range columns {
		lines[c] = splitLines(column, widths[c])
		if len(lines[c]) > height {
			height = len(lines[c])
		}
	}

	g := &Grid{
		rows:   height,
		cols:   len(columns),
		cells:  make([]string, height*len(columns)),
		widths: append([]int(nil), widths...),
		aligns: append([]Alignment(nil), aligns...),
	}
	for c, column := range lines {
		for r, line := range column {
			g.cells[r*g.cols+c] = line
		}
	}
	return g, nil
}

// A lone carriage return starts a new line like a line feed does.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func splitLines(cells []string, width int) []string {
	var lines []string
	for _, cell := range cells {
		cell = lineBreaks.Replace(cell)
		for _, line := range strings.Split(cell, "\n") {
			lines = append(lines, Truncate(Sanitize(line), width))
		}
	}
	return lines
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.rows
}

// Width returns the width of every rendered row, the sum of all column widths.
func (g *Grid) Width() int {
	total := 0
	for _, w := range g.widths {
		total += w
	}
	return total
}

// Cell returns the unpadded line at row r of column c.
func (g *Grid) Cell(r, c int) string {
	return g.cells[r*g.cols+c]
}

// String renders every row with each cell aligned inside its column. Each row,
// including the last one, ends with a line break.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.rows * (g.Width() + 1))
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			b.WriteString(Align(g.Cell(r, c), g.widths[c], g.aligns[c]))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Render builds a grid from columns and renders it.
func Render(columns [][]string, widths []int, aligns []Alignment) (string, error) {
	g, err := NewGrid(columns, widths, aligns)
	if err != nil {
		return "", err
	}
	return g.String(), nil
}
