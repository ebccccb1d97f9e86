package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/csvscope/internal/renderer/core"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, such as a simulation screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Init()
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) Colors() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Colors()
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, cell.Rune, cell.Combining, convertStyle(cell.Style))
}

func (t *Terminal) GetCell(x, y int) core.Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, combc, style, width := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return core.Cell{
		Rune:      mainc,
		Combining: combc,
		Width:     width,
		Style:     convertTcellStyle(style),
	}
}

func (t *Terminal) Fill(rect core.ScreenRect, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := convertStyle(cell.Style)
	width, height := t.screen.Size()

	for y := max(rect.Top, 0); y < rect.Bottom && y < height; y++ {
		for x := max(rect.Left, 0); x < rect.Right && x < width; x++ {
			t.screen.SetContent(x, y, cell.Rune, cell.Combining, style)
		}
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

func (t *Terminal) PollEvent() Event {
	return convertEvent(t.screen.PollEvent())
}

// PostEvent posts key and resize events. EventNone is posted as an
// interrupt, which wakes a blocked PollEvent; mouse events are dropped.
func (t *Terminal) PostEvent(event Event) {
	var ev tcell.Event
	switch event.Type {
	case EventKey:
		ev = tcell.NewEventKey(convertToTcellKey(event.Key), event.Rune, convertToTcellMod(event.Mod))
	case EventResize:
		ev = tcell.NewEventResize(event.Width, event.Height)
	case EventNone:
		ev = tcell.NewEventInterrupt(nil)
	default:
		return
	}
	_ = t.screen.PostEvent(ev) // best-effort; event queue may be full
}

func (t *Terminal) EnableMouse() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.EnableMouse()
}

// keyPairs lists the keys csvscope understands. KeyRune is handled
// separately since it carries the rune.
var keyPairs = []struct {
	tcell tcell.Key
	key   Key
}{
	{tcell.KeyEscape, KeyEscape},
	{tcell.KeyEnter, KeyEnter},
	{tcell.KeyHome, KeyHome},
	{tcell.KeyEnd, KeyEnd},
	{tcell.KeyPgUp, KeyPageUp},
	{tcell.KeyPgDn, KeyPageDown},
	{tcell.KeyUp, KeyUp},
	{tcell.KeyDown, KeyDown},
	{tcell.KeyLeft, KeyLeft},
	{tcell.KeyRight, KeyRight},
	{tcell.KeyCtrlC, KeyCtrlC},
	{tcell.KeyCtrlL, KeyCtrlL},
}

var attrPairs = []struct {
	tcell tcell.AttrMask
	attr  core.Attribute
}{
	{tcell.AttrBold, core.AttrBold},
	{tcell.AttrDim, core.AttrDim},
	{tcell.AttrUnderline, core.AttrUnderline},
	{tcell.AttrReverse, core.AttrReverse},
}

var modPairs = []struct {
	tcell tcell.ModMask
	mod   ModMask
}{
	{tcell.ModShift, ModShift},
	{tcell.ModCtrl, ModCtrl},
	{tcell.ModAlt, ModAlt},
	{tcell.ModMeta, ModMeta},
}

// buttonPairs is in priority order: a press wins over a wheel motion.
var buttonPairs = []struct {
	tcell  tcell.ButtonMask
	button MouseButton
}{
	{tcell.Button1, MouseLeft},
	{tcell.Button2, MouseMiddle},
	{tcell.Button3, MouseRight},
	{tcell.WheelUp, MouseWheelUp},
	{tcell.WheelDown, MouseWheelDown},
	{tcell.WheelLeft, MouseWheelLeft},
	{tcell.WheelRight, MouseWheelRight},
}

func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault
	if !s.Foreground.IsDefault() {
		style = style.Foreground(tcell.NewRGBColor(int32(s.Foreground.R), int32(s.Foreground.G), int32(s.Foreground.B)))
	}
	if !s.Background.IsDefault() {
		style = style.Background(tcell.NewRGBColor(int32(s.Background.R), int32(s.Background.G), int32(s.Background.B)))
	}

	var attrs tcell.AttrMask
	for _, p := range attrPairs {
		if s.Attributes.Has(p.attr) {
			attrs |= p.tcell
		}
	}
	return style.Attributes(attrs)
}

func convertTcellStyle(ts tcell.Style) core.Style {
	fg, bg, attrs := ts.Decompose()
	s := core.Style{
		Foreground: convertTcellColor(fg),
		Background: convertTcellColor(bg),
	}
	for _, p := range attrPairs {
		if attrs&p.tcell != 0 {
			s.Attributes |= p.attr
		}
	}
	return s
}

func convertTcellColor(tc tcell.Color) core.Color {
	if tc == tcell.ColorDefault {
		return core.ColorDefault
	}
	r, g, b := tc.RGB()
	return core.ColorFromRGB(uint8(r), uint8(g), uint8(b))
}

func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
			Mod:  convertMod(e.Modifiers()),
		}
	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:        EventMouse,
			MouseX:      x,
			MouseY:      y,
			MouseButton: convertMouseButton(e.Buttons()),
			Mod:         convertMod(e.Modifiers()),
		}
	case *tcell.EventResize:
		return ResizeEvent(e.Size())
	case *tcell.EventInterrupt:
		return Event{Type: EventNone}
	}
	return Event{Type: EventNone}
}

func convertKey(k tcell.Key) Key {
	if k == tcell.KeyRune {
		return KeyRune
	}
	for _, p := range keyPairs {
		if p.tcell == k {
			return p.key
		}
	}
	return KeyNone
}

func convertToTcellKey(k Key) tcell.Key {
	for _, p := range keyPairs {
		if p.key == k {
			return p.tcell
		}
	}
	return tcell.KeyRune
}

func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	for _, p := range modPairs {
		if m&p.tcell != 0 {
			result |= p.mod
		}
	}
	return result
}

func convertToTcellMod(m ModMask) tcell.ModMask {
	var result tcell.ModMask
	for _, p := range modPairs {
		if m&p.mod != 0 {
			result |= p.tcell
		}
	}
	return result
}

func convertMouseButton(b tcell.ButtonMask) MouseButton {
	for _, p := range buttonPairs {
		if b&p.tcell != 0 {
			return p.button
		}
	}
	return MouseNone
}
