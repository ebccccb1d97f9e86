// Package app wires configuration, loading and display into a csvscope
// session and manages its lifecycle.
package app

import (
	"context"
	"errors"
	"io"
	"maps"
	"slices"

	"github.com/dshills/csvscope/internal/config"
	cfgloader "github.com/dshills/csvscope/internal/config/loader"
	"github.com/dshills/csvscope/internal/display"
	"github.com/dshills/csvscope/internal/loader"
	"github.com/dshills/csvscope/internal/logging"
	"github.com/dshills/csvscope/internal/renderer/backend"
	"github.com/dshills/csvscope/internal/table"
	"github.com/dshills/csvscope/internal/viewport"
)

// reservedLines are the header line and the status line.
const reservedLines = 2

// Options configures the application.
type Options struct {
	// Path is the delimited file to view.
	Path string

	// ConfigPath is the configuration file. Empty uses config.DefaultPath,
	// which may be absent.
	ConfigPath string

	// Overrides are command-line values keyed by setting path, applied
	// over the file and environment layers.
	Overrides map[string]any

	// Environ replaces os.Environ when set.
	Environ func() []string

	// FileSystem replaces the OS file system for config files when set.
	FileSystem cfgloader.FileSystem

	// Backend replaces the terminal when set.
	Backend backend.Backend

	// Output, when set, must be a terminal.
	Output display.FileDescriptor

	// Mouse enables wheel scrolling.
	Mouse bool
}

// Application is a loaded file ready to be displayed.
type Application struct {
	opts     Options
	settings config.Settings
	logger   *logging.Logger
	logFile  io.Closer
	table    *table.Table
}

// New loads configuration, opens the log and reads the file. Configuration
// errors are reported before any data is read.
func New(ctx context.Context, opts Options) (*Application, error) {
	if opts.Path == "" {
		return nil, ErrNoFile
	}

	settings, err := loadSettings(ctx, opts)
	if err != nil {
		return nil, err
	}

	app := &Application{opts: opts, settings: settings}
	if err := app.openLog(); err != nil {
		return nil, err
	}

	app.logger.Info("starting: %s", opts.Path)
	app.table, err = loader.New(settings.Dialect, app.logger).LoadFile(ctx, opts.Path)
	if err != nil {
		app.logger.Error("%v", err)
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

func loadSettings(ctx context.Context, opts Options) (config.Settings, error) {
	var cfgOpts []config.Option
	if opts.ConfigPath != "" {
		cfgOpts = append(cfgOpts, config.WithFile(opts.ConfigPath))
	}
	if opts.Environ != nil {
		cfgOpts = append(cfgOpts, config.WithEnviron(opts.Environ))
	}
	if opts.FileSystem != nil {
		cfgOpts = append(cfgOpts, config.WithFileSystem(opts.FileSystem))
	}

	cfg := config.New(cfgOpts...)
	if err := cfg.Load(ctx); err != nil {
		return config.Settings{}, err
	}
	for _, path := range slices.Sorted(maps.Keys(opts.Overrides)) {
		if err := cfg.Set(path, opts.Overrides[path]); err != nil {
			return config.Settings{}, err
		}
	}
	return cfg.Settings()
}

func (app *Application) openLog() error {
	if app.settings.Log.File == "" {
		app.logger = logging.Discard()
		return nil
	}

	logger, closer, err := logging.OpenFile(app.settings.Log.File, app.settings.Log.Level, "csvscope")
	if err != nil {
		return NewOperationError("open log", app.settings.Log.File, err)
	}
	app.logger = logger
	app.logFile = closer
	return nil
}

// Settings returns the resolved configuration.
func (app *Application) Settings() config.Settings {
	return app.settings
}

// Table returns the loaded table.
func (app *Application) Table() *table.Table {
	return app.table
}

// Run opens the display and blocks until the user quits or ctx is done.
// The terminal is restored before Run returns.
func (app *Application) Run(ctx context.Context) error {
	b := app.opts.Backend
	if b == nil {
		term, err := backend.NewTerminal()
		if err != nil {
			app.logger.Error("creating terminal: %v", err)
			return &display.SetupError{Resource: "terminal", Err: err}
		}
		b = term
	}

	d, err := display.Open(b, app.table, display.Options{
		Path: app.opts.Path,
		Viewport: viewport.Options{
			ColumnWidth:   app.settings.Layout.ColumnWidth,
			RowHeight:     app.settings.Layout.RowHeight,
			ReservedLines: reservedLines,
		},
		Theme:       app.settings.Theme,
		PaletteSize: display.DefaultPaletteSize,
		Output:      app.opts.Output,
		Mouse:       app.opts.Mouse,
		Logger:      app.logger,
	})
	if err != nil {
		return err
	}
	defer d.Close()

	err = d.Run(ctx)
	if errors.Is(err, context.Canceled) {
		app.logger.Info("interrupted")
		return nil
	}
	return err
}

// Shutdown closes the log. It is safe to call more than once.
func (app *Application) Shutdown() {
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
}

// Run is a convenience for New, Run and Shutdown.
func Run(ctx context.Context, opts Options) error {
	app, err := New(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Shutdown()
	return app.Run(ctx)
}
