// Package statusline renders the one-line position summary at the bottom
// of the grid.
package statusline

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/csvscope/internal/grapheme"
	"github.com/dshills/csvscope/internal/renderer/backend"
	"github.com/dshills/csvscope/internal/renderer/core"
)

// Ellipsis marks a status text cut to the screen width.
const Ellipsis = "…"

// StatusLine shows the visible row and column ranges and the file name.
type StatusLine struct {
	path string

	firstRow, lastRow, rowCount          int
	firstColumn, lastColumn, columnCount int

	style core.Style
	width int
}

// New creates a status line for the file at path.
func New(path string, style core.Style) *StatusLine {
	return &StatusLine{path: path, style: style}
}

// SetRows updates the displayed row range.
func (s *StatusLine) SetRows(first, last, total int) {
	s.firstRow, s.lastRow, s.rowCount = first, last, total
}

// SetColumns updates the displayed column range.
func (s *StatusLine) SetColumns(first, last, total int) {
	s.firstColumn, s.lastColumn, s.columnCount = first, last, total
}

// SetStyle changes the line style.
func (s *StatusLine) SetStyle(style core.Style) {
	s.style = style
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// Text returns the full, unfitted status text.
func (s *StatusLine) Text() string {
	text := fmt.Sprintf("row: %d-%d/%d, cols: %d-%d/%d",
		s.firstRow, s.lastRow, s.rowCount,
		s.firstColumn, s.lastColumn, s.columnCount)
	if s.path != "" {
		text += "  " + s.path
	}
	return text
}

// Fitted returns the text cut to the line width.
func (s *StatusLine) Fitted() string {
	return runewidth.Truncate(s.Text(), s.width, Ellipsis)
}

// Render draws the status line to the backend at the given row.
func (s *StatusLine) Render(b backend.Backend, row int) {
	if s.width <= 0 {
		return
	}

	b.Fill(core.RectFromSize(row, 0, 1, s.width), core.NewStyledCell(' ', s.style))

	x := 0
	for _, cluster := range grapheme.Split(s.Fitted()) {
		cell := core.ClusterCell(cluster, s.style)
		if x+cell.Width > s.width {
			break
		}
		b.SetCell(x, row, cell)
		x += max(1, cell.Width)
	}
}
