package display

import "github.com/dshills/csvscope/internal/renderer/backend"

// wheelStep is how many rows one wheel notch scrolls.
const wheelStep = 3

// handleKey maps keys to viewport moves:
//
//	Up, k        previous row          Down, j      next row
//	Left, h      previous column       Right, l     next column
//	PgUp         previous page         PgDn, Space  next page
//	Home, g      first row             End, G       last row
//	Ctrl-L       redraw                q, Esc, Ctrl-C  quit
func (d *Display) handleKey(ev backend.Event) (quit bool) {
	v := d.view

	switch ev.Key {
	case backend.KeyUp:
		v.ShiftByRows(-1)
	case backend.KeyDown:
		v.ShiftByRows(1)
	case backend.KeyLeft:
		v.ShiftByColumns(-1)
	case backend.KeyRight:
		v.ShiftByColumns(1)
	case backend.KeyPageUp:
		v.PageUp()
	case backend.KeyPageDown:
		v.PageDown()
	case backend.KeyHome:
		v.Home()
	case backend.KeyEnd:
		v.End()
	case backend.KeyCtrlL:
		d.backend.Clear()
	case backend.KeyEscape, backend.KeyCtrlC:
		return true
	case backend.KeyRune:
		switch ev.Rune {
		case 'k':
			v.ShiftByRows(-1)
		case 'j':
			v.ShiftByRows(1)
		case 'h':
			v.ShiftByColumns(-1)
		case 'l':
			v.ShiftByColumns(1)
		case ' ':
			v.PageDown()
		case 'g':
			v.Home()
		case 'G':
			v.End()
		case 'q':
			return true
		}
	}
	return false
}

func (d *Display) handleMouse(ev backend.Event) {
	switch ev.MouseButton {
	case backend.MouseWheelUp:
		d.view.ShiftByRows(-wheelStep)
	case backend.MouseWheelDown:
		d.view.ShiftByRows(wheelStep)
	case backend.MouseWheelLeft:
		d.view.ShiftByColumns(-1)
	case backend.MouseWheelRight:
		d.view.ShiftByColumns(1)
	}
}
