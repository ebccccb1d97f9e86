// Package table holds the in-memory column store for a loaded CSV file.
//
// A Table is an ordered set of Columns. Each Column carries a header and one
// Cell per source row. A Cell is the text of a single field split into
// logical lines, and knows how to cut or pad itself to a fixed rectangle of
// grapheme clusters for display:
//
//	cell := table.NewCell("hello\nworld")
//	rows := cell.CutOrPadTo(table.Dimensions{Width: 3, Height: 1}, table.Padding)
//	// rows == [][]string{{"h", "e", "⤶"}}
//
// Tables are built once with a Builder and are read-only afterwards.
package table
