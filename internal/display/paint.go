package display

import (
	"github.com/dshills/csvscope/internal/renderer/core"
	"github.com/dshills/csvscope/internal/table"
)

// headerLines is the number of screen lines above the first data row.
const headerLines = 1

// Paint draws the visible window and the status line, then shows the frame.
func (d *Display) Paint() {
	w, h := d.backend.Size()
	d.backend.Fill(core.RectFromSize(0, 0, h, w), core.NewStyledCell(' ', d.colors.Style(RoleBackground)))

	dim := d.view.CellDimensions()
	firstRow, lastRow := d.view.Rows()
	firstCol, lastCol := d.view.Columns()

	for col := firstCol; col < lastCol; col++ {
		column, ok := d.table.Column(col)
		if !ok {
			continue
		}
		x := d.view.ColumnX(col)

		header := table.NewCell(column.Header()).CutOrPadTo(table.Dimensions{Width: dim.Width, Height: 1}, table.Padding)
		d.paintLine(x, 0, first(header), dim.Width, d.colors.Style(HeaderRole(col)).Bold())

		style := d.colors.Style(ValueRole(col))
		for row := firstRow; row < lastRow; row++ {
			cell, ok := column.Value(row)
			if !ok {
				continue
			}
			lines := cell.CutOrPadTo(dim, table.Padding)
			y := d.view.RowY(row, headerLines)
			for i := range dim.Height {
				var slots []string
				if i < len(lines) {
					slots = lines[i]
				}
				d.paintLine(x, y+i, slots, dim.Width, style)
			}
		}
	}

	if h > 0 {
		d.status.SetRows(firstRow, lastRow, d.view.RowCount())
		d.status.SetColumns(firstCol, lastCol, d.view.ColumnCount())
		d.status.Render(d.backend, h-1)
	}

	d.backend.Show()
}

// paintLine writes one formatted line into the span [x, x+width) followed
// by one separator slot. Each slot holds one cluster; x advances by the
// cluster's display width and nothing is drawn past the span. When wide
// clusters leave content that does not fit, the last column that can be
// freed shows an overflow marker.
func (d *Display) paintLine(x, y int, slots []string, width int, style core.Style) {
	end := x + width
	pos := x
	var starts []int
	for i, slot := range slots {
		cell := core.ClusterCell(slot, style)
		advance := max(1, cell.Width)
		if pos+advance > end {
			if hasContent(slots[i:]) {
				for len(starts) > 0 && pos > end-1 {
					pos = starts[len(starts)-1]
					starts = starts[:len(starts)-1]
				}
				if pos < end {
					d.backend.SetCell(pos, y, core.ClusterCell(overflowMarker(slots), style))
					pos++
				}
			}
			break
		}
		d.backend.SetCell(pos, y, cell)
		starts = append(starts, pos)
		pos += advance
	}

	blank := core.NewStyledCell(' ', style)
	for ; pos <= end; pos++ {
		d.backend.SetCell(pos, y, blank)
	}
}

// overflowMarker keeps the formatter's Page marker for cells with hidden
// lines and uses Ellipsis otherwise.
func overflowMarker(slots []string) string {
	if len(slots) > 0 && slots[len(slots)-1] == table.Page {
		return table.Page
	}
	return table.Ellipsis
}

func hasContent(slots []string) bool {
	for _, s := range slots {
		if s != table.Padding {
			return true
		}
	}
	return false
}

func first(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}
