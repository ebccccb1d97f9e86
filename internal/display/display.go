// Package display draws a table on a terminal backend and runs the
// navigation loop.
//
// A Display owns its backend from Open until Close. Run alternates between
// painting the visible window and blocking on the next terminal event; key
// and resize events move the viewport.
package display

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/term"

	"github.com/dshills/csvscope/internal/config"
	"github.com/dshills/csvscope/internal/logging"
	"github.com/dshills/csvscope/internal/renderer/backend"
	"github.com/dshills/csvscope/internal/renderer/statusline"
	"github.com/dshills/csvscope/internal/table"
	"github.com/dshills/csvscope/internal/viewport"
)

// ErrNotTerminal is reported when the output is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// SetupError reports a failure to acquire a display resource.
type SetupError struct {
	// Resource names what could not be set up, e.g. "terminal" or
	// "color header-odd".
	Resource string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *SetupError) Error() string {
	return fmt.Sprintf("display setup failed: %s: %v", e.Resource, e.Err)
}

// Unwrap returns the underlying error.
func (e *SetupError) Unwrap() error {
	return e.Err
}

// FileDescriptor is satisfied by *os.File.
type FileDescriptor interface {
	Fd() uintptr
}

// Options configures a Display.
type Options struct {
	// Path is shown in the status line.
	Path string

	Viewport viewport.Options
	Theme    config.Theme

	// PaletteSize is the color slot budget; 0 uses DefaultPaletteSize.
	PaletteSize int

	// Output, when set, must be a terminal.
	Output FileDescriptor

	// Mouse enables wheel scrolling.
	Mouse bool

	Logger *logging.Logger
}

// DefaultOptions returns the default geometry and theme with mouse support.
func DefaultOptions() Options {
	return Options{
		Viewport:    viewport.DefaultOptions(),
		Theme:       config.DefaultTheme(),
		PaletteSize: DefaultPaletteSize,
		Mouse:       true,
	}
}

// Display renders a table into a backend.
type Display struct {
	backend backend.Backend
	table   *table.Table
	view    *viewport.Viewport
	colors  *ColorRegistry
	status  *statusline.StatusLine
	logger  *logging.Logger
	closed  bool
}

// Open checks the output, registers the theme colors, initializes the
// backend and sizes the viewport. Setup failures are *SetupError values.
// The caller must Close the display.
func Open(b backend.Backend, t *table.Table, opts Options) (*Display, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.WithComponent("display")

	if opts.Output != nil && !term.IsTerminal(int(opts.Output.Fd())) {
		return nil, &SetupError{Resource: "output", Err: ErrNotTerminal}
	}

	colors := NewColorRegistry(opts.PaletteSize)
	if err := colors.RegisterTheme(opts.Theme); err != nil {
		logger.Error("%v", err)
		return nil, err
	}

	if err := b.Init(); err != nil {
		logger.Error("terminal init: %v", err)
		return nil, &SetupError{Resource: "terminal", Err: err}
	}
	b.HideCursor()
	if opts.Mouse {
		b.EnableMouse()
	}

	d := &Display{
		backend: b,
		table:   t,
		view:    viewport.New(t.RowCount(), t.ColumnCount(), opts.Viewport),
		colors:  colors,
		status:  statusline.New(opts.Path, colors.Style(RoleHeaderEven)),
		logger:  logger,
	}

	w, h := b.Size()
	d.resize(w, h)

	logger.WithFields(map[string]any{
		"colors":      b.Colors(),
		"color_slots": colors.Used(),
	}).Info("opened %dx%d terminal", w, h)
	return d, nil
}

// Close releases the backend. It is safe to call more than once.
func (d *Display) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.backend.Shutdown()
	d.logger.Debug("closed")
	return nil
}

// Viewport returns the display's viewport.
func (d *Display) Viewport() *viewport.Viewport {
	return d.view
}

// Colors returns the display's color registry.
func (d *Display) Colors() *ColorRegistry {
	return d.colors
}

// Run paints and handles events until the user quits, returning nil, or
// ctx is done, returning its error.
func (d *Display) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		d.backend.PostEvent(backend.Event{Type: backend.EventNone})
	})
	defer stop()

	for {
		d.Paint()

		ev := d.backend.PollEvent()
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.Handle(ev) {
			d.logger.Debug("quit")
			return nil
		}
	}
}

// Handle applies one event and reports whether it asks to quit.
func (d *Display) Handle(ev backend.Event) (quit bool) {
	before := d.view.String()

	switch ev.Type {
	case backend.EventResize:
		d.resize(ev.Width, ev.Height)
	case backend.EventKey:
		quit = d.handleKey(ev)
	case backend.EventMouse:
		d.handleMouse(ev)
	}

	if after := d.view.String(); after != before {
		d.logger.Debug("viewport %s", after)
	}
	return quit
}

func (d *Display) resize(width, height int) {
	if d.view.Resize(width, height) {
		d.logger.Debug("resized to %dx%d", width, height)
	}
	d.status.Resize(width)
}
