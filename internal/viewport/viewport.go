// Package viewport computes which rows and columns of a table are visible
// in a terminal of a given size, and moves that window in response to
// navigation.
//
// The viewport is pure state. It never touches a terminal, so it can be
// driven with synthetic dimensions in tests. It is not safe for concurrent
// use; the render loop owns it.
package viewport

import (
	"fmt"
	"math"

	"github.com/dshills/csvscope/internal/table"
)

// Options configures the cell geometry.
type Options struct {
	// ColumnWidth is the number of terminal columns per table column,
	// including one separator column.
	ColumnWidth int

	// RowHeight is the number of terminal lines per table row.
	RowHeight int

	// ReservedLines counts screen lines not available to data rows,
	// such as the header line and the status line.
	ReservedLines int
}

// DefaultOptions returns the default geometry: 10x2 cells with one header
// line and one status line.
func DefaultOptions() Options {
	return Options{
		ColumnWidth:   10,
		RowHeight:     2,
		ReservedLines: 2,
	}
}

// Viewport tracks the visible window over a table.
//
// firstRow and firstColumn are authoritative. Everything else is derived
// from them, the screen size and the table extents.
type Viewport struct {
	opts Options

	// Table extents
	rowCount    int
	columnCount int

	// Screen size in terminal cells
	screenWidth  int
	screenHeight int

	// Effective cell geometry after clamping to the screen
	columnWidth int
	rowHeight   int

	firstRow    int
	lastRow     int // exclusive, >= firstRow
	visibleRows int

	firstColumn    int
	lastColumn     int // exclusive, >= firstColumn
	visibleColumns int
}

// New creates a viewport over a table with the given extents.
// Non-positive cell sizes are raised to 1. The viewport shows nothing
// until the first Resize.
func New(rowCount, columnCount int, opts Options) *Viewport {
	if opts.ColumnWidth < 1 {
		opts.ColumnWidth = 1
	}
	if opts.RowHeight < 1 {
		opts.RowHeight = 1
	}
	if opts.ReservedLines < 0 {
		opts.ReservedLines = 0
	}

	v := &Viewport{
		opts:        opts,
		rowCount:    max(0, rowCount),
		columnCount: max(0, columnCount),
		columnWidth: opts.ColumnWidth,
		rowHeight:   opts.RowHeight,
	}
	return v
}

// Resize records a new screen size and recomputes the visible ranges.
// The top-left cell stays anchored: the first row and column are kept and
// only clamped if the data no longer fills the screen from there.
// Returns true if the size changed.
func (v *Viewport) Resize(width, height int) bool {
	width = max(0, width)
	height = max(0, height)
	changed := width != v.screenWidth || height != v.screenHeight

	v.screenWidth = width
	v.screenHeight = height
	v.measure()

	v.JumpToRow(v.firstRow)
	v.JumpToColumn(v.firstColumn)
	return changed
}

// measure derives cell geometry and visible counts from the screen size.
func (v *Viewport) measure() {
	v.columnWidth = v.opts.ColumnWidth
	if v.screenWidth > 0 {
		v.columnWidth = min(v.columnWidth, v.screenWidth)
	}

	v.rowHeight = v.opts.RowHeight
	if v.screenHeight > 0 {
		v.rowHeight = min(v.rowHeight, max(1, v.screenHeight-v.opts.ReservedLines))
	}

	v.visibleColumns = v.screenWidth / v.columnWidth
	v.visibleRows = max(0, v.screenHeight/v.rowHeight-v.opts.ReservedLines)
}

// JumpToRow scrolls so that target is the first visible row. Near the end
// of the data the window is pulled back so it stays full.
func (v *Viewport) JumpToRow(target int) {
	v.measure()
	v.firstRow, v.lastRow = clampWindow(target, v.visibleRows, v.rowCount)
}

// JumpToColumn scrolls so that target is the first visible column. Near the
// last column the window is pulled back so it stays full.
func (v *Viewport) JumpToColumn(target int) {
	v.measure()
	v.firstColumn, v.lastColumn = clampWindow(target, v.visibleColumns, v.columnCount)
}

// ShiftByRows moves the window down by offset rows, or up when offset is
// negative. Moving up stops at row 0.
func (v *Viewport) ShiftByRows(offset int) {
	v.JumpToRow(shift(v.firstRow, offset))
}

// ShiftByColumns moves the window right by offset columns, or left when
// offset is negative. Moving left stops at column 0.
func (v *Viewport) ShiftByColumns(offset int) {
	v.JumpToColumn(shift(v.firstColumn, offset))
}

// PageDown moves the window down by one screenful of rows.
func (v *Viewport) PageDown() {
	v.ShiftByRows(max(1, v.visibleRows))
}

// PageUp moves the window up by one screenful of rows.
func (v *Viewport) PageUp() {
	v.ShiftByRows(-max(1, v.visibleRows))
}

// Home jumps to the first row.
func (v *Viewport) Home() {
	v.JumpToRow(0)
}

// End jumps so the last row is visible.
func (v *Viewport) End() {
	v.JumpToRow(v.rowCount)
}

// clampWindow computes [first, last) for a window of size visible starting
// at target over total items.
func clampWindow(target, visible, total int) (first, last int) {
	target = max(0, target)
	if target > total-visible {
		last = total
	} else {
		last = target + visible
	}
	if last > visible {
		first = last - visible
	}
	return first, last
}

// shift adds offset to first, saturating at zero and math.MaxInt.
func shift(first, offset int) int {
	if offset > 0 && first > math.MaxInt-offset {
		return math.MaxInt
	}
	return max(0, first+offset)
}

// FirstRow returns the first visible row.
func (v *Viewport) FirstRow() int { return v.firstRow }

// LastRow returns one past the last visible row.
func (v *Viewport) LastRow() int { return v.lastRow }

// VisibleRows returns how many rows fit on screen.
func (v *Viewport) VisibleRows() int { return v.visibleRows }

// FirstColumn returns the first visible column.
func (v *Viewport) FirstColumn() int { return v.firstColumn }

// LastColumn returns one past the last visible column.
func (v *Viewport) LastColumn() int { return v.lastColumn }

// VisibleColumns returns how many columns fit on screen.
func (v *Viewport) VisibleColumns() int { return v.visibleColumns }

// Rows returns the visible row range [first, last).
func (v *Viewport) Rows() (first, last int) {
	return v.firstRow, v.lastRow
}

// Columns returns the visible column range [first, last).
func (v *Viewport) Columns() (first, last int) {
	return v.firstColumn, v.lastColumn
}

// ColumnWidth returns the effective column width in terminal cells.
func (v *Viewport) ColumnWidth() int { return v.columnWidth }

// RowHeight returns the effective row height in terminal lines.
func (v *Viewport) RowHeight() int { return v.rowHeight }

// RowCount returns the number of rows in the table.
func (v *Viewport) RowCount() int { return v.rowCount }

// ColumnCount returns the number of columns in the table.
func (v *Viewport) ColumnCount() int { return v.columnCount }

// ScreenSize returns the last size passed to Resize.
func (v *Viewport) ScreenSize() (width, height int) {
	return v.screenWidth, v.screenHeight
}

// CellDimensions returns the content area of one cell. One terminal column
// of every cell is left for the separator.
func (v *Viewport) CellDimensions() table.Dimensions {
	return table.Dimensions{
		Width:  v.columnWidth - 1,
		Height: v.rowHeight,
	}
}

// ColumnX returns the screen x of a visible column's left edge.
func (v *Viewport) ColumnX(column int) int {
	return (column - v.firstColumn) * v.columnWidth
}

// RowY returns the screen y of a visible row's top line, given the number of
// screen lines above the data area.
func (v *Viewport) RowY(row, top int) int {
	return top + (row-v.firstRow)*v.rowHeight
}

// String describes the visible window.
func (v *Viewport) String() string {
	return fmt.Sprintf("rows %d..%d/%d cols %d..%d/%d",
		v.firstRow, v.lastRow, v.rowCount,
		v.firstColumn, v.lastColumn, v.columnCount)
}
