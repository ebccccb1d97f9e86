// Package main is the entry point for csvscope, a terminal viewer for
// delimited files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dshills/csvscope/internal/app"
	"github.com/dshills/csvscope/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// settingFlags maps command-line flags to configuration setting paths.
// Only flags given on the command line override lower layers.
var settingFlags = map[string]string{
	"no-headers":       "csv.no_headers",
	"column-delimiter": "csv.delimiter",
	"row-terminator":   "csv.terminator",
	"trim":             "csv.trim",
	"escape":           "csv.escape",
	"comment":          "csv.comment",
	"column-width":     "layout.column_width",
	"row-height":       "layout.row_height",
	"header-fg-colors": "theme.header_fg",
	"header-bg-colors": "theme.header_bg",
	"value-fg-colors":  "theme.value_fg",
	"value-bg-colors":  "theme.value_bg",
	"bg-color":         "theme.background",
	"log-file":         "log.file",
	"log-level":        "log.level",
}

type runFunc func(ctx context.Context, opts app.Options) error

func main() {
	os.Exit(run())
}

func run() int {
	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(func(ctx context.Context, opts app.Options) error {
		opts.Output = os.Stdout
		opts.Mouse = true
		return app.Run(ctx, opts)
	})

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		reportError(cmd.ErrOrStderr(), err)
	}
	return app.ExitCode(err)
}

func reportError(w io.Writer, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	fmt.Fprintf(w, "csvscope: %v\n", err)

	var usageErr *app.UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(w, "Run 'csvscope --help' for usage.")
	}
}

func newRootCmd(runner runFunc) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "csvscope [flags] FILE",
		Short: "View a delimited file as a scrollable grid",
		Long: `csvscope shows a CSV (or other delimited) file as a grid of fixed-size
cells in the terminal.

Keys: arrows or hjkl scroll, PgUp/PgDn/Space page, Home/g and End/G jump,
Ctrl-L redraws, q/Esc/Ctrl-C quit.

Settings are read from the built-in defaults, the config file, CSVSCOPE_*
environment variables and the flags below, in increasing priority.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return &app.UsageError{Err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner(cmd.Context(), app.Options{
				Path:       args[0],
				ConfigPath: configPath,
				Overrides:  overrides(cmd.Flags()),
			})
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &app.UsageError{Err: err}
	})

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.Bool("no-headers", false, "treat the first record as data")
	flags.StringP("column-delimiter", "c", ",", `field delimiter: a single character, or \t for tab`)
	flags.StringP("row-terminator", "r", "CRLF", "record terminator: CRLF, CR, LF or a single character")
	flags.String("trim", "all", "whitespace trimming: none, headers, fields or all")
	flags.String("escape", `"`, `quote escape: "\"" for doubled quotes, empty for lenient quoting`)
	flags.String("comment", "#", "comment character, empty to disable")
	flags.Int("column-width", 10, "cell width including the separator")
	flags.Int("row-height", 2, "cell height in lines")
	flags.String("header-fg-colors", "#002B36", "colon-separated header foreground colors")
	flags.String("header-bg-colors", "#8EA1A1", "colon-separated header background colors")
	flags.String("value-fg-colors", "#8EA1A1", "colon-separated value foreground colors")
	flags.String("value-bg-colors", "#002B36:#72A0C1", "colon-separated value background colors")
	flags.String("bg-color", "#646464", "background color")
	flags.StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.String("log-file", "", "write logs to this file")
	flags.String("log-level", "info", "log level: debug, info, warn or error")

	return cmd
}

// overrides collects the setting flags given on the command line.
func overrides(flags *pflag.FlagSet) map[string]any {
	out := make(map[string]any)
	flags.Visit(func(f *pflag.Flag) {
		path, ok := settingFlags[f.Name]
		if !ok {
			return
		}
		switch f.Value.Type() {
		case "bool":
			v, _ := flags.GetBool(f.Name)
			out[path] = v
		case "int":
			v, _ := flags.GetInt(f.Name)
			out[path] = v
		default:
			out[path] = f.Value.String()
		}
	})
	return out
}
