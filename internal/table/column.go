package table

import "iter"

// Column is a header plus one Cell per row.
type Column struct {
	header string
	values []Cell
}

// NewColumn creates an empty column with the given header.
func NewColumn(header string) *Column {
	return &Column{header: header}
}

// Header returns the column header. Columns created without a header row
// have an empty header.
func (c *Column) Header() string {
	return c.header
}

// Value returns the cell at row.
func (c *Column) Value(row int) (Cell, bool) {
	if row < 0 || row >= len(c.values) {
		return Cell{}, false
	}
	return c.values[row], true
}

// RowCount returns the number of cells in the column.
func (c *Column) RowCount() int {
	return len(c.values)
}

// Values iterates the column's cells in row order.
func (c *Column) Values() iter.Seq2[int, Cell] {
	return func(yield func(int, Cell) bool) {
		for i, v := range c.values {
			if !yield(i, v) {
				return
			}
		}
	}
}

// set stores cell at row, backfilling empty cells for any gap.
func (c *Column) set(row int, cell Cell) {
	for len(c.values) < row {
		c.values = append(c.values, Cell{})
	}
	if row < len(c.values) {
		c.values[row] = cell
		return
	}
	c.values = append(c.values, cell)
}
