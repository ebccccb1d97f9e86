package table

// Table is an ordered set of columns with a cached row count.
// It is read-only once built.
type Table struct {
	columns  []*Column
	rowCount int
}

// Column returns the column at index.
func (t *Table) Column(index int) (*Column, bool) {
	if index < 0 || index >= len(t.columns) {
		return nil, false
	}
	return t.columns[index], true
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// RowCount returns the length of the longest column.
func (t *Table) RowCount() int {
	return t.rowCount
}

// Headers returns the column headers in order.
func (t *Table) Headers() []string {
	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.header
	}
	return headers
}

// Builder accumulates columns while a file is being loaded.
type Builder struct {
	columns []*Column
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// NewColumn appends an empty column with the given header.
func (b *Builder) NewColumn(header string) {
	b.columns = append(b.columns, NewColumn(header))
}

// SetValue stores cell at (column, row). Missing columns are created with an
// empty header and missing rows are backfilled with empty cells. Negative
// indices are ignored.
func (b *Builder) SetValue(column, row int, cell Cell) {
	if column < 0 || row < 0 {
		return
	}
	for column >= len(b.columns) {
		b.columns = append(b.columns, NewColumn(""))
	}
	b.columns[column].set(row, cell)
}

// ColumnCount returns the number of columns added so far.
func (b *Builder) ColumnCount() int {
	return len(b.columns)
}

// RowCount returns the length of the longest column so far.
func (b *Builder) RowCount() int {
	rows := 0
	for _, c := range b.columns {
		rows = max(rows, c.RowCount())
	}
	return rows
}

// Build returns the finished table. The builder must not be used afterwards.
func (b *Builder) Build() *Table {
	t := &Table{
		columns:  b.columns,
		rowCount: b.RowCount(),
	}
	b.columns = nil
	return t
}
