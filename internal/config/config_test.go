package config

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

func (m memFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m[path]; !ok {
		return nil, fs.ErrNotExist
	}
	return fileInfo(path), nil
}

type fileInfo string

func (f fileInfo) Name() string       { return string(f) }
func (f fileInfo) Size() int64        { return 0 }
func (f fileInfo) Mode() fs.FileMode  { return 0o644 }
func (f fileInfo) ModTime() time.Time { return time.Time{} }
func (f fileInfo) IsDir() bool        { return false }
func (f fileInfo) Sys() any           { return nil }

func environ(vars ...string) func() []string {
	return func() []string { return vars }
}

func load(t *testing.T, opts ...Option) *Config {
	t.Helper()
	opts = append([]Option{WithFileSystem(memFS{}), WithEnviron(environ())}, opts...)
	c := New(opts...)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return c
}

func TestDefaults(t *testing.T) {
	c := load(t)

	s, err := c.Settings()
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}

	if s.Dialect != DefaultDialect() {
		t.Errorf("dialect = %+v, want %+v", s.Dialect, DefaultDialect())
	}
	if s.Layout != (Layout{ColumnWidth: 10, RowHeight: 2}) {
		t.Errorf("layout = %+v, want 10x2", s.Layout)
	}
	if s.Log.File != "" {
		t.Errorf("log file = %q, want empty", s.Log.File)
	}
	if got := s.Theme.ValueBackground[1].Hex(); got != "#72a0c1" {
		t.Errorf("odd value bg = %s, want #72a0c1", got)
	}
	if got := c.Sources(); len(got) != 1 || got[0] != "defaults" {
		t.Errorf("sources = %v, want [defaults]", got)
	}
}

func TestLayerPrecedence(t *testing.T) {
	files := memFS{"/c.toml": `
[csv]
delimiter = ";"
trim = "none"

[layout]
column_width = 12
row_height = 3
`}
	c := load(t,
		WithFile("/c.toml"),
		WithFileSystem(files),
		WithEnviron(environ("CSVSCOPE_COLUMN_WIDTH=14", "CSVSCOPE_CSV_TRIM=headers")),
	)
	if err := c.Set("layout.column_width", 16); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	s, err := c.Settings()
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}

	if s.Dialect.Delimiter != ';' {
		t.Errorf("delimiter = %q, want ';' from file", s.Dialect.Delimiter)
	}
	if s.Dialect.Trim != TrimHeaders {
		t.Errorf("trim = %v, want headers from environment", s.Dialect.Trim)
	}
	if s.Layout.RowHeight != 3 {
		t.Errorf("row height = %d, want 3 from file", s.Layout.RowHeight)
	}
	if s.Layout.ColumnWidth != 16 {
		t.Errorf("column width = %d, want 16 from flags", s.Layout.ColumnWidth)
	}

	want := []string{"defaults", "/c.toml", "environment"}
	got := c.Sources()
	if len(got) != len(want) {
		t.Fatalf("sources = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sources[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestYAMLFile(t *testing.T) {
	files := memFS{"/c.yaml": "theme:\n  value_bg: [\"#000\", \"rgb(255, 0, 0)\"]\ncsv:\n  no_headers: true\n"}
	c := load(t, WithFile("/c.yaml"), WithFileSystem(files))

	s, err := c.Settings()
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if s.Dialect.Headers {
		t.Error("expected no_headers from YAML to disable headers")
	}
	if got := s.Theme.ValueBackground[1].Hex(); got != "#ff0000" {
		t.Errorf("odd value bg = %s, want #ff0000", got)
	}
}

func TestMissingFiles(t *testing.T) {
	c := New(WithFileSystem(memFS{}), WithEnviron(environ()), WithFile("/nope.toml"))
	if err := c.Load(context.Background()); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("explicit missing file: got %v, want ErrFileNotFound", err)
	}

	// The default path may be missing.
	c = New(WithFileSystem(memFS{}), WithEnviron(environ()))
	if err := c.Load(context.Background()); err != nil {
		t.Errorf("default missing file: got %v, want nil", err)
	}
}

func TestUnknownSettings(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"file key", []Option{WithFile("/c.toml"), WithFileSystem(memFS{"/c.toml": "[csv]\nseparator = \";\""})}},
		{"file section", []Option{WithFile("/c.toml"), WithFileSystem(memFS{"/c.toml": "[editor]\ntab = 4"})}},
		{"section as value", []Option{WithFile("/c.toml"), WithFileSystem(memFS{"/c.toml": "csv = 1"})}},
		{"environment", []Option{WithEnviron(environ("CSVSCOPE_CSV_SEPARATOR=;"))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithFileSystem(memFS{}), WithEnviron(environ())}, tt.opts...)
			err := New(opts...).Load(context.Background())
			var oe *OptionError
			if !errors.As(err, &oe) {
				t.Fatalf("expected *OptionError, got %v", err)
			}
		})
	}

	if err := New().Set("csv.separator", ";"); !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("Set unknown: got %v, want ErrUnknownSetting", err)
	}
}

func TestMalformedFile(t *testing.T) {
	c := New(WithFileSystem(memFS{"/c.toml": "[csv\n"}), WithEnviron(environ()), WithFile("/c.toml"))
	err := c.Load(context.Background())
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		path   string
		value  any
		option string
	}{
		{"csv.delimiter", ";;", "csv.delimiter"},
		{"csv.delimiter", "\"", "csv.delimiter"},
		{"csv.terminator", "XY", "csv.terminator"},
		{"csv.terminator", "é", "csv.terminator"},
		{"csv.terminator", "#", "csv.terminator"},
		{"csv.trim", "some", "csv.trim"},
		{"csv.escape", `\`, "csv.escape"},
		{"csv.comment", ",", "csv.comment"},
		{"csv.no_headers", "yes", "csv.no_headers"},
		{"layout.column_width", 0, "layout.column_width"},
		{"layout.row_height", -1, "layout.row_height"},
		{"layout.row_height", "two", "layout.row_height"},
		{"theme.header_fg", "#12", "theme.header_fg"},
		{"theme.value_bg", "", "theme.value_bg"},
		{"theme.background", "rgb(300,0,0)", "theme.background"},
		{"log.level", "loud", "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c := load(t)
			if err := c.Set(tt.path, tt.value); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			_, err := c.Settings()
			var oe *OptionError
			if !errors.As(err, &oe) {
				t.Fatalf("expected *OptionError, got %v", err)
			}
			if oe.Option != tt.option {
				t.Errorf("option = %q, want %q", oe.Option, tt.option)
			}
		})
	}
}

func TestEnvironmentTypes(t *testing.T) {
	c := load(t, WithEnviron(environ(
		"CSVSCOPE_NO_HEADERS=true",
		"CSVSCOPE_ROW_HEIGHT=4",
		"CSVSCOPE_THEME_HEADER_BG=#111:#222",
		"CSVSCOPE_LOG_LEVEL=debug",
	)))

	s, err := c.Settings()
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if s.Dialect.Headers {
		t.Error("expected headers disabled")
	}
	if s.Layout.RowHeight != 4 {
		t.Errorf("row height = %d, want 4", s.Layout.RowHeight)
	}
	if len(s.Theme.HeaderBackground) != 2 {
		t.Errorf("header bg = %v, want two colors", s.Theme.HeaderBackground)
	}

	err = New(WithFileSystem(memFS{}), WithEnviron(environ("CSVSCOPE_ROW_HEIGHT=tall"))).Load(context.Background())
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("bad integer: got %v, want ErrTypeMismatch", err)
	}
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := New(WithFileSystem(memFS{})).Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestGetStringSlice(t *testing.T) {
	c := load(t)
	_ = c.Set("theme.value_fg", []any{"#fff", "#000"})

	got, err := c.GetStringSlice("theme.value_fg")
	if err != nil || len(got) != 2 || got[1] != "#000" {
		t.Errorf("GetStringSlice = %v, %v", got, err)
	}

	_ = c.Set("theme.value_fg", []any{"#fff", 3})
	if _, err := c.GetStringSlice("theme.value_fg"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("mixed list: got %v, want ErrTypeMismatch", err)
	}
}
