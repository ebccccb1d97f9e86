package table

import (
	"slices"
	"strings"
)

// Cell is the content of one CSV field as a sequence of logical lines.
// The zero value is a cell holding a single empty line.
type Cell struct {
	lines []string
}

// NewCell splits text into logical lines. "\n", "\r" and "\r\n" each end a
// line; a CRLF pair counts as a single break.
func NewCell(text string) Cell {
	var lines []string
	start := 0
	// Line feed and carriage return are control characters, so they always
	// sit on a grapheme cluster boundary and can be scanned bytewise.
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	lines = append(lines, text[start:])
	return Cell{lines: lines}
}

// LineCount returns the number of logical lines. It is always at least 1.
func (c Cell) LineCount() int {
	if len(c.lines) == 0 {
		return 1
	}
	return len(c.lines)
}

// Line returns the logical line at index i, or "" when out of range.
func (c Cell) Line(i int) string {
	if i < 0 || i >= len(c.lines) {
		return ""
	}
	return c.lines[i]
}

// Lines returns a copy of the cell's logical lines.
func (c Cell) Lines() []string {
	if len(c.lines) == 0 {
		return []string{""}
	}
	return slices.Clone(c.lines)
}

// IsEmpty reports whether the cell has a single empty line.
func (c Cell) IsEmpty() bool {
	return len(c.lines) == 0 || (len(c.lines) == 1 && c.lines[0] == "")
}

// String joins the lines back together with "\n".
func (c Cell) String() string {
	return strings.Join(c.lines, "\n")
}
