package table

import (
	"reflect"
	"testing"
)

func TestBuilder_NewColumnAndSetValue(t *testing.T) {
	b := NewBuilder()
	b.NewColumn("name")
	b.NewColumn("age")

	b.SetValue(0, 0, NewCell("alice"))
	b.SetValue(1, 0, NewCell("30"))
	b.SetValue(0, 1, NewCell("bob"))

	tbl := b.Build()
	if tbl.ColumnCount() != 2 || tbl.RowCount() != 2 {
		t.Errorf("got %d columns and %d rows, want 2 and 2", tbl.ColumnCount(), tbl.RowCount())
	}
	if got := tbl.Headers(); !reflect.DeepEqual(got, []string{"name", "age"}) {
		t.Errorf("Headers() = %q", got)
	}

	col, ok := tbl.Column(0)
	if !ok {
		t.Fatal("column 0 missing")
	}
	if col.Header() != "name" {
		t.Errorf("Header() = %q, want name", col.Header())
	}
	v, ok := col.Value(1)
	if !ok || v.String() != "bob" {
		t.Errorf("Value(1) = %q, %v, want bob", v.String(), ok)
	}

	col, ok = tbl.Column(1)
	if !ok {
		t.Fatal("column 1 missing")
	}
	if col.RowCount() != 1 {
		t.Errorf("short column RowCount() = %d, want 1", col.RowCount())
	}
	if _, ok := col.Value(1); ok {
		t.Error("short column has no value at row 1")
	}
}

func TestBuilder_AutoCreatesColumns(t *testing.T) {
	b := NewBuilder()
	b.SetValue(2, 0, NewCell("x"))

	tbl := b.Build()
	if tbl.ColumnCount() != 3 {
		t.Fatalf("ColumnCount() = %d, want 3", tbl.ColumnCount())
	}
	for i := range 2 {
		col, ok := tbl.Column(i)
		if !ok {
			t.Fatalf("column %d missing", i)
		}
		if col.Header() != "" || col.RowCount() != 0 {
			t.Errorf("column %d = %q with %d rows, want empty", i, col.Header(), col.RowCount())
		}
	}
	if col, _ := tbl.Column(2); col.RowCount() != 1 {
		t.Errorf("column 2 RowCount() = %d, want 1", col.RowCount())
	}
}

func TestBuilder_BackfillsGaps(t *testing.T) {
	b := NewBuilder()
	b.NewColumn("a")
	b.SetValue(0, 3, NewCell("late"))

	tbl := b.Build()
	col, _ := tbl.Column(0)
	if col.RowCount() != 4 {
		t.Fatalf("RowCount() = %d, want 4", col.RowCount())
	}
	for i := range 3 {
		v, ok := col.Value(i)
		if !ok || !v.IsEmpty() {
			t.Errorf("Value(%d) = %q, %v, want empty backfill", i, v.String(), ok)
		}
	}
	if v, _ := col.Value(3); v.String() != "late" {
		t.Errorf("Value(3) = %q, want late", v.String())
	}
}

func TestBuilder_ReplacesExistingRow(t *testing.T) {
	b := NewBuilder()
	b.SetValue(0, 0, NewCell("first"))
	b.SetValue(0, 0, NewCell("second"))

	col, _ := b.Build().Column(0)
	if col.RowCount() != 1 {
		t.Errorf("RowCount() = %d, want 1", col.RowCount())
	}
	if v, _ := col.Value(0); v.String() != "second" {
		t.Errorf("Value(0) = %q, want second", v.String())
	}
}

func TestBuilder_IgnoresNegativeIndices(t *testing.T) {
	b := NewBuilder()
	b.SetValue(-1, 0, NewCell("x"))
	b.SetValue(0, -1, NewCell("x"))
	if b.ColumnCount() != 0 || b.RowCount() != 0 {
		t.Errorf("got %d columns and %d rows, want none", b.ColumnCount(), b.RowCount())
	}
}

func TestTable_RowCountIsMaxOverColumns(t *testing.T) {
	b := NewBuilder()
	b.SetValue(0, 1, NewCell("a"))
	b.SetValue(1, 4, NewCell("b"))
	b.SetValue(2, 0, NewCell("c"))

	tbl := b.Build()
	maxRows := 0
	for i := range tbl.ColumnCount() {
		col, _ := tbl.Column(i)
		maxRows = max(maxRows, col.RowCount())
	}
	if tbl.RowCount() != 5 || tbl.RowCount() != maxRows {
		t.Errorf("RowCount() = %d, want 5 (longest column %d)", tbl.RowCount(), maxRows)
	}
}

func TestTable_OutOfRange(t *testing.T) {
	tbl := NewBuilder().Build()
	for _, i := range []int{0, -1} {
		if _, ok := tbl.Column(i); ok {
			t.Errorf("Column(%d) should be out of range", i)
		}
	}
	if tbl.RowCount() != 0 {
		t.Errorf("RowCount() = %d, want 0", tbl.RowCount())
	}

	if _, ok := NewColumn("h").Value(-1); ok {
		t.Error("Value(-1) should be out of range")
	}
}

func TestColumn_Values(t *testing.T) {
	b := NewBuilder()
	for i, s := range []string{"a", "b", "c"} {
		b.SetValue(0, i, NewCell(s))
	}
	col, _ := b.Build().Column(0)

	var got []string
	for i, v := range col.Values() {
		if i != len(got) {
			t.Errorf("index %d, want %d", i, len(got))
		}
		got = append(got, v.String())
		if i == 1 {
			break
		}
	}
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Values() yielded %q, want [a b]", got)
	}
}
