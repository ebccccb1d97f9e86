package table

import "github.com/dshills/csvscope/internal/grapheme"

// Markers used by the formatter. Each is a single grapheme cluster.
const (
	// Ellipsis replaces the last visible cluster of a line that was cut.
	Ellipsis = "…"
	// Page replaces the last slot of a cell whose lines were cut.
	Page = "⤶"
	// Padding is the default pad token.
	Padding = " "
)

// Dimensions is the size of a cell in grapheme slots.
type Dimensions struct {
	Width  int
	Height int
}

// IsEmpty reports whether either dimension is non-positive.
func (d Dimensions) IsEmpty() bool {
	return d.Width <= 0 || d.Height <= 0
}

// CutOrPad fits line into exactly width slots. Each slot is either one
// grapheme cluster of line, the Ellipsis marker, or pad.
//
// A line longer than width keeps width-1 clusters followed by Ellipsis.
// A shorter line is padded on the right. Clusters are never split.
// pad should be a single grapheme cluster.
func CutOrPad(line string, width int, pad string) []string {
	if width <= 0 {
		return nil
	}

	// One extra cluster tells us whether the line overflows.
	slots := grapheme.Take(line, width+1)
	n := len(slots)
	if n > width {
		slots = slots[:width-1]
		slots = append(slots, Ellipsis)
		return slots
	}

	for range width - n {
		slots = append(slots, pad)
	}
	return slots
}

// CutOrPadTo fits the cell into dim. The result has exactly dim.Height rows
// of exactly dim.Width slots each.
//
// When the cell has more lines than fit, the last slot of the last visible
// row becomes the Page marker. Missing rows are filled with pad.
// An empty dimension yields nil.
func (c Cell) CutOrPadTo(dim Dimensions, pad string) [][]string {
	if dim.IsEmpty() {
		return nil
	}

	lines := c.Lines()
	taken := min(len(lines), dim.Height+1)

	rows := make([][]string, 0, dim.Height)
	for _, line := range lines[:taken] {
		rows = append(rows, CutOrPad(line, dim.Width, pad))
	}

	if len(rows) > dim.Height {
		rows = rows[:dim.Height]
		last := rows[len(rows)-1]
		last[len(last)-1] = Page
		return rows
	}

	for len(rows) < dim.Height {
		rows = append(rows, blankRow(dim.Width, pad))
	}
	return rows
}

func blankRow(width int, pad string) []string {
	row := make([]string, width)
	for i := range row {
		row[i] = pad
	}
	return row
}
