package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/csvscope/internal/logging"
)

// Settings is a validated snapshot of the configuration.
type Settings struct {
	Dialect Dialect
	Layout  Layout
	Theme   Theme
	Log     LogSettings
}

// Layout holds the grid cell size.
type Layout struct {
	ColumnWidth int
	RowHeight   int
}

// LogSettings selects the log destination. An empty File discards logs.
type LogSettings struct {
	File  string
	Level logging.Level
}

// Settings converts the merged configuration into typed values. The first
// invalid setting is reported as an *OptionError.
func (c *Config) Settings() (Settings, error) {
	var s Settings
	var err error

	if s.Dialect, err = c.dialect(); err != nil {
		return Settings{}, err
	}
	if s.Layout, err = c.layout(); err != nil {
		return Settings{}, err
	}
	if s.Theme, err = c.theme(); err != nil {
		return Settings{}, err
	}
	if s.Log, err = c.logSettings(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (c *Config) dialect() (Dialect, error) {
	d := DefaultDialect()
	var err error

	if d.Delimiter, err = parseString(c, "csv.delimiter", ParseDelimiter); err != nil {
		return d, err
	}
	if d.Terminator, err = parseString(c, "csv.terminator", ParseTerminator); err != nil {
		return d, err
	}
	if d.Trim, err = parseString(c, "csv.trim", ParseTrim); err != nil {
		return d, err
	}
	if d.Escape, err = parseString(c, "csv.escape", ParseEscape); err != nil {
		return d, err
	}
	if d.Comment, err = parseString(c, "csv.comment", ParseComment); err != nil {
		return d, err
	}
	noHeaders, err := c.GetBool("csv.no_headers")
	if err != nil {
		return d, c.typeErr("csv.no_headers", err)
	}
	d.Headers = !noHeaders

	return d, d.Validate()
}

func (c *Config) layout() (Layout, error) {
	var l Layout
	for _, f := range []struct {
		path string
		dst  *int
	}{
		{"layout.column_width", &l.ColumnWidth},
		{"layout.row_height", &l.RowHeight},
	} {
		n, err := c.GetInt(f.path)
		if err != nil {
			return l, c.typeErr(f.path, err)
		}
		if n <= 0 {
			return l, optionErr(f.path, n, "must be greater than zero")
		}
		*f.dst = n
	}
	return l, nil
}

func (c *Config) theme() (Theme, error) {
	var t Theme
	for _, f := range []struct {
		path string
		dst  *[]colorful.Color
	}{
		{"theme.header_fg", &t.HeaderForeground},
		{"theme.header_bg", &t.HeaderBackground},
		{"theme.value_fg", &t.ValueForeground},
		{"theme.value_bg", &t.ValueBackground},
	} {
		raw, err := c.GetStringSlice(f.path)
		if err != nil {
			return t, c.typeErr(f.path, err)
		}
		colors, err := ParseColorList(raw)
		if err != nil {
			return t, &OptionError{Option: f.path, Value: strings.Join(raw, ":"), Reason: err.Error(), Err: err}
		}
		*f.dst = colors
	}

	bg, err := parseString(c, "theme.background", ParseColor)
	if err != nil {
		return t, err
	}
	t.Background = bg
	return t, nil
}

func (c *Config) logSettings() (LogSettings, error) {
	file, err := c.GetString("log.file")
	if err != nil {
		return LogSettings{}, c.typeErr("log.file", err)
	}
	level, err := parseString(c, "log.level", logging.ParseLevel)
	if err != nil {
		return LogSettings{}, err
	}
	return LogSettings{File: file, Level: level}, nil
}

// parseString reads a string setting and converts it with parse, wrapping
// failures in an *OptionError.
func parseString[T any](c *Config, path string, parse func(string) (T, error)) (T, error) {
	var zero T
	raw, err := c.GetString(path)
	if err != nil {
		return zero, c.typeErr(path, err)
	}
	v, err := parse(raw)
	if err != nil {
		var oe *OptionError
		if errors.As(err, &oe) {
			return zero, err
		}
		return zero, &OptionError{Option: path, Value: raw, Reason: err.Error(), Err: err}
	}
	return v, nil
}

func (c *Config) typeErr(path string, err error) error {
	v, _ := c.Get(path)
	return &OptionError{Option: path, Value: fmt.Sprint(v), Reason: err.Error(), Err: err}
}
