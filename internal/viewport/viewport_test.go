package viewport

import (
	"math"
	"math/rand"
	"testing"

	"github.com/dshills/csvscope/internal/table"
)

func newSized(rows, cols, width, height int) *Viewport {
	v := New(rows, cols, DefaultOptions())
	v.Resize(width, height)
	return v
}

func TestNewViewport(t *testing.T) {
	v := New(100, 3, DefaultOptions())

	if v.FirstRow() != 0 || v.FirstColumn() != 0 {
		t.Errorf("expected origin (0, 0), got (%d, %d)", v.FirstRow(), v.FirstColumn())
	}
	if v.VisibleRows() != 0 || v.VisibleColumns() != 0 {
		t.Errorf("expected nothing visible before first resize, got %d rows %d cols",
			v.VisibleRows(), v.VisibleColumns())
	}
}

func TestNewViewportClampsOptions(t *testing.T) {
	v := New(10, 10, Options{ColumnWidth: 0, RowHeight: -2, ReservedLines: -1})
	v.Resize(5, 5)

	if v.ColumnWidth() != 1 {
		t.Errorf("expected column width 1, got %d", v.ColumnWidth())
	}
	if v.RowHeight() != 1 {
		t.Errorf("expected row height 1, got %d", v.RowHeight())
	}
	if v.VisibleRows() != 5 {
		t.Errorf("expected 5 visible rows, got %d", v.VisibleRows())
	}
}

func TestViewportInitialFrame(t *testing.T) {
	// 3 columns, 100 rows on an 80x24 terminal with 10x2 cells.
	v := newSized(100, 3, 80, 24)

	if v.VisibleColumns() != 8 {
		t.Errorf("expected 8 visible columns, got %d", v.VisibleColumns())
	}
	if v.VisibleRows() != 10 {
		t.Errorf("expected 10 visible rows, got %d", v.VisibleRows())
	}
	if first, last := v.Rows(); first != 0 || last != 10 {
		t.Errorf("expected rows 0..10, got %d..%d", first, last)
	}
	// Columns follow the same window rule as rows, so a 3-column table
	// shows columns 0..3 even though 8 would fit.
	if first, last := v.Columns(); first != 0 || last != 3 {
		t.Errorf("expected columns 0..3, got %d..%d", first, last)
	}
}

func TestViewportInitialFrameWideTable(t *testing.T) {
	v := newSized(100, 50, 80, 24)

	if first, last := v.Columns(); first != 0 || last != 8 {
		t.Errorf("expected columns 0..8, got %d..%d", first, last)
	}
}

func TestJumpToRow(t *testing.T) {
	tests := []struct {
		name      string
		target    int
		wantFirst int
		wantLast  int
	}{
		{"start", 0, 0, 10},
		{"middle", 42, 42, 52},
		{"near end is clamped", 95, 90, 100},
		{"exact end", 90, 90, 100},
		{"past end", 500, 90, 100},
		{"negative", -7, 0, 10},
		{"max int", math.MaxInt, 90, 100},
		{"min int", math.MinInt, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newSized(100, 3, 80, 24)
			v.JumpToRow(tt.target)
			if v.FirstRow() != tt.wantFirst || v.LastRow() != tt.wantLast {
				t.Errorf("expected rows %d..%d, got %d..%d",
					tt.wantFirst, tt.wantLast, v.FirstRow(), v.LastRow())
			}
		})
	}
}

func TestJumpToRowFewerRowsThanScreen(t *testing.T) {
	v := newSized(4, 3, 80, 24)
	v.JumpToRow(3)

	if v.FirstRow() != 0 || v.LastRow() != 4 {
		t.Errorf("expected rows 0..4, got %d..%d", v.FirstRow(), v.LastRow())
	}
}

func TestJumpToColumn(t *testing.T) {
	v := newSized(10, 20, 80, 24)

	v.JumpToColumn(5)
	if v.FirstColumn() != 5 || v.LastColumn() != 13 {
		t.Errorf("expected columns 5..13, got %d..%d", v.FirstColumn(), v.LastColumn())
	}

	v.JumpToColumn(18)
	if v.FirstColumn() != 12 || v.LastColumn() != 20 {
		t.Errorf("expected columns 12..20, got %d..%d", v.FirstColumn(), v.LastColumn())
	}
}

func TestShiftByColumnsSaturates(t *testing.T) {
	v := newSized(10, 20, 80, 24)
	v.JumpToColumn(2)

	v.ShiftByColumns(-5)
	if v.FirstColumn() != 0 {
		t.Errorf("expected first column 0, got %d", v.FirstColumn())
	}
}

func TestShiftByRows(t *testing.T) {
	v := newSized(100, 3, 80, 24)

	v.ShiftByRows(1)
	if v.FirstRow() != 1 {
		t.Errorf("expected first row 1, got %d", v.FirstRow())
	}

	v.ShiftByRows(-3)
	if v.FirstRow() != 0 {
		t.Errorf("expected first row 0, got %d", v.FirstRow())
	}

	v.JumpToRow(90)
	v.ShiftByRows(1)
	if v.FirstRow() != 90 || v.LastRow() != 100 {
		t.Errorf("expected rows to stay at 90..100, got %d..%d", v.FirstRow(), v.LastRow())
	}
}

func TestPagingAndEnds(t *testing.T) {
	v := newSized(100, 3, 80, 24)

	v.PageDown()
	if v.FirstRow() != 10 {
		t.Errorf("expected first row 10 after page down, got %d", v.FirstRow())
	}
	v.PageUp()
	if v.FirstRow() != 0 {
		t.Errorf("expected first row 0 after page up, got %d", v.FirstRow())
	}
	v.End()
	if v.FirstRow() != 90 || v.LastRow() != 100 {
		t.Errorf("expected rows 90..100 after end, got %d..%d", v.FirstRow(), v.LastRow())
	}
	v.Home()
	if v.FirstRow() != 0 {
		t.Errorf("expected first row 0 after home, got %d", v.FirstRow())
	}
}

func TestResizeKeepsTopLeft(t *testing.T) {
	v := newSized(100, 30, 80, 24)
	v.JumpToRow(40)
	v.JumpToColumn(7)

	changed := v.Resize(120, 40)
	if !changed {
		t.Error("expected resize to report a change")
	}
	if v.FirstRow() != 40 || v.FirstColumn() != 7 {
		t.Errorf("expected anchor (40, 7), got (%d, %d)", v.FirstRow(), v.FirstColumn())
	}
	if v.VisibleRows() != 18 || v.LastRow() != 58 {
		t.Errorf("expected 18 visible rows ending at 58, got %d ending at %d", v.VisibleRows(), v.LastRow())
	}

	if v.Resize(120, 40) {
		t.Error("expected same-size resize to report no change")
	}
}

func TestResizeLargerPullsBackAtEnd(t *testing.T) {
	v := newSized(100, 3, 80, 24)
	v.End()

	v.Resize(80, 44) // 20 visible rows
	if v.FirstRow() != 80 || v.LastRow() != 100 {
		t.Errorf("expected rows 80..100, got %d..%d", v.FirstRow(), v.LastRow())
	}
}

func TestTinyScreens(t *testing.T) {
	sizes := [][2]int{{0, 0}, {1, 1}, {3, 2}, {5, 3}, {9, 4}}
	for _, s := range sizes {
		v := newSized(100, 10, s[0], s[1])
		v.ShiftByRows(3)
		v.ShiftByColumns(3)

		if v.RowHeight() < 1 || v.ColumnWidth() < 1 {
			t.Errorf("size %v: cell geometry must stay positive, got %dx%d", s, v.ColumnWidth(), v.RowHeight())
		}
		if s[0] > 0 && v.ColumnWidth() > s[0] {
			t.Errorf("size %v: column width %d exceeds screen", s, v.ColumnWidth())
		}
		if v.LastRow() < v.FirstRow() || v.LastColumn() < v.FirstColumn() {
			t.Errorf("size %v: inverted window %s", s, v)
		}
	}
}

func TestEmptyTable(t *testing.T) {
	v := newSized(0, 0, 80, 24)
	v.ShiftByRows(5)
	v.ShiftByColumns(5)
	v.End()

	if v.FirstRow() != 0 || v.LastRow() != 0 {
		t.Errorf("expected empty row window, got %d..%d", v.FirstRow(), v.LastRow())
	}
	if v.FirstColumn() != 0 || v.LastColumn() != 0 {
		t.Errorf("expected empty column window, got %d..%d", v.FirstColumn(), v.LastColumn())
	}
}

func TestRowInvariantsUnderRandomNavigation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, rows := range []int{0, 1, 9, 10, 11, 100, 1000} {
		v := newSized(rows, 5, 80, 24)
		for range 500 {
			switch rng.Intn(6) {
			case 0:
				v.JumpToRow(rng.Intn(rows+20) - 10)
			case 1:
				v.ShiftByRows(rng.Intn(41) - 20)
			case 2:
				v.Resize(rng.Intn(200), rng.Intn(80))
			case 3:
				v.PageDown()
			case 4:
				v.ShiftByRows(math.MaxInt)
			case 5:
				v.ShiftByRows(math.MinInt)
			}

			first, last := v.Rows()
			if first < 0 || first > last || last > rows {
				t.Fatalf("rows=%d: window %d..%d out of bounds", rows, first, last)
			}
			if last-first > v.VisibleRows() {
				t.Fatalf("rows=%d: window %d..%d larger than %d visible rows", rows, first, last, v.VisibleRows())
			}
		}
	}
}

func TestHugeOffsetsSaturate(t *testing.T) {
	v := newSized(100, 3, 80, 24)
	v.JumpToRow(50)
	v.ShiftByRows(math.MaxInt)
	if v.FirstRow() != 90 || v.LastRow() != 100 {
		t.Errorf("expected rows 90..100 after huge shift, got %d..%d", v.FirstRow(), v.LastRow())
	}

	v.ShiftByRows(math.MinInt)
	if v.FirstRow() != 0 || v.LastRow() != 10 {
		t.Errorf("expected rows 0..10 after huge negative shift, got %d..%d", v.FirstRow(), v.LastRow())
	}

	v.JumpToColumn(math.MaxInt)
	v.ShiftByColumns(math.MaxInt)
	if first, last := v.Columns(); first != 0 || last != 3 {
		t.Errorf("expected columns 0..3, got %d..%d", first, last)
	}
}

func TestCellDimensions(t *testing.T) {
	v := newSized(10, 10, 80, 24)

	want := table.Dimensions{Width: 9, Height: 2}
	if got := v.CellDimensions(); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestScreenCoordinates(t *testing.T) {
	v := newSized(100, 20, 80, 24)
	v.JumpToRow(10)
	v.JumpToColumn(3)

	if x := v.ColumnX(5); x != 20 {
		t.Errorf("expected x 20 for column 5, got %d", x)
	}
	if y := v.RowY(12, 1); y != 5 {
		t.Errorf("expected y 5 for row 12, got %d", y)
	}
}

func TestString(t *testing.T) {
	v := newSized(100, 3, 80, 24)
	if got, want := v.String(), "rows 0..10/100 cols 0..3/3"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
