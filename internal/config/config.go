package config

import (
	"context"
	"fmt"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/dshills/csvscope/internal/config/loader"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "CSVSCOPE_"

// envMapping holds the short environment names; everything else follows
// CSVSCOPE_<SECTION>_<SETTING>.
var envMapping = map[string]string{
	"CSVSCOPE_DELIMITER":    "csv.delimiter",
	"CSVSCOPE_TERMINATOR":   "csv.terminator",
	"CSVSCOPE_TRIM":         "csv.trim",
	"CSVSCOPE_ESCAPE":       "csv.escape",
	"CSVSCOPE_COMMENT":      "csv.comment",
	"CSVSCOPE_NO_HEADERS":   "csv.no_headers",
	"CSVSCOPE_COLUMN_WIDTH": "layout.column_width",
	"CSVSCOPE_ROW_HEIGHT":   "layout.row_height",
}

// Config holds the merged configuration of all layers.
// A Config is not safe for concurrent use.
type Config struct {
	fs       loader.FileSystem
	environ  func() []string
	path     string
	explicit bool

	merged  map[string]any
	sources []string
}

// Option configures a Config instance.
type Option func(*Config)

// WithFile sets the configuration file. Unlike the default path, an
// explicit file must exist.
func WithFile(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.path = path
			c.explicit = true
		}
	}
}

// WithFileSystem replaces the file system used to read config files.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnviron replaces the environment source.
func WithEnviron(environ func() []string) Option {
	return func(c *Config) {
		c.environ = environ
	}
}

// New creates a new Config holding the built-in defaults.
func New(opts ...Option) *Config {
	c := &Config{
		fs:      loader.DefaultFS(),
		environ: os.Environ,
		merged:  defaultConfig(),
		sources: []string{"defaults"},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.path == "" {
		c.path = DefaultPath()
	}

	return c
}

// Load applies the config file and environment layers on top of the
// defaults. Flags are applied afterwards with Set.
func (c *Config) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := c.loadFile(); err != nil {
		return err
	}
	return c.loadEnvironment()
}

// Sources lists the layers that contributed to the configuration, lowest first.
func (c *Config) Sources() []string {
	return slices.Clone(c.sources)
}

// Path returns the configuration file path in use.
func (c *Config) Path() string {
	return c.path
}

// Get returns the merged value at path.
func (c *Config) Get(path string) (any, bool) {
	return getPath(c.merged, path)
}

// Set overrides the value at path. Only defined settings can be set.
func (c *Config) Set(path string, value any) error {
	if _, ok := getPath(defaultConfig(), path); !ok {
		return &OptionError{Option: path, Value: fmt.Sprint(value), Reason: "unknown setting", Err: ErrUnknownSetting}
	}
	return setPath(c.merged, path, value)
}

// GetString returns a string setting.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrUnknownSetting
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer setting. Whole floats are accepted since some
// decoders produce them.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrUnknownSetting
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		if n <= math.MaxInt {
			return int(n), nil
		}
	case float64:
		if n == math.Trunc(n) {
			return int(n), nil
		}
	}
	return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
}

// GetBool returns a boolean setting.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrUnknownSetting
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetStringSlice returns a list setting. A single string is split on ':'.
func (c *Config) GetStringSlice(path string) ([]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrUnknownSetting
	}
	switch s := v.(type) {
	case []string:
		return slices.Clone(s), nil
	case string:
		return splitList(s), nil
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Expected: "[]string", Actual: "[]" + typeName(item)}
			}
			out = append(out, str)
		}
		return out, nil
	}
	return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
}

func (c *Config) loadFile() error {
	if !loader.Exists(c.fs, c.path) {
		if c.explicit {
			return fmt.Errorf("%w: %s", ErrFileNotFound, c.path)
		}
		return nil
	}

	data, err := loader.LoadFile(c.fs, c.path)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}

	if err := checkKnown(data, defaultConfig(), ""); err != nil {
		return err
	}

	c.merged = loader.DeepMerge(c.merged, data)
	c.sources = append(c.sources, c.path)
	return nil
}

func (c *Config) loadEnvironment() error {
	values := loader.NewEnvLoader(EnvPrefix, envMapping).WithEnviron(c.environ).Load()
	if len(values) == 0 {
		return nil
	}

	defaults := defaultConfig()
	for _, path := range slices.Sorted(maps.Keys(values)) {
		raw := values[path]
		def, ok := getPath(defaults, path)
		if !ok {
			return &OptionError{Option: path, Value: raw, Reason: "unknown setting in environment", Err: ErrUnknownSetting}
		}
		value, err := parseLike(def, raw)
		if err != nil {
			return &OptionError{Option: path, Value: raw, Reason: err.Error(), Err: ErrTypeMismatch}
		}
		if err := setPath(c.merged, path, value); err != nil {
			return err
		}
	}

	c.sources = append(c.sources, "environment")
	return nil
}

// parseLike converts an environment string to the type of the default.
func parseLike(def any, raw string) (any, error) {
	switch def.(type) {
	case bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("expected a boolean")
		}
		return b, nil
	case int:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("expected an integer")
		}
		return n, nil
	case []string:
		return splitList(raw), nil
	default:
		return raw, nil
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(".", ".config")
	}
	return filepath.Join(dir, "csvscope", "config.toml")
}

func defaultConfig() map[string]any {
	return map[string]any{
		"csv": map[string]any{
			"delimiter":  ",",
			"terminator": "CRLF",
			"trim":       "all",
			"escape":     `"`,
			"comment":    "#",
			"no_headers": false,
		},
		"layout": map[string]any{
			"column_width": 10,
			"row_height":   2,
		},
		"theme": map[string]any{
			"header_fg":  []string{"#002B36"},
			"header_bg":  []string{"#8EA1A1"},
			"value_fg":   []string{"#8EA1A1"},
			"value_bg":   []string{"#002B36", "#72A0C1"},
			"background": "#646464",
		},
		"log": map[string]any{
			"file":  "",
			"level": "info",
		},
	}
}

// checkKnown rejects keys in data that have no default.
func checkKnown(data, defaults map[string]any, prefix string) error {
	for _, key := range slices.Sorted(maps.Keys(data)) {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		def, ok := defaults[key]
		if !ok {
			return &OptionError{Option: path, Value: fmt.Sprint(data[key]), Reason: "unknown setting", Err: ErrUnknownSetting}
		}
		defMap, defIsMap := def.(map[string]any)
		sub, subIsMap := data[key].(map[string]any)
		switch {
		case defIsMap && subIsMap:
			if err := checkKnown(sub, defMap, path); err != nil {
				return err
			}
		case defIsMap != subIsMap:
			return &OptionError{Option: path, Value: fmt.Sprint(data[key]), Reason: "expected " + kindOf(def), Err: ErrTypeMismatch}
		}
	}
	return nil
}

func kindOf(v any) string {
	if _, ok := v.(map[string]any); ok {
		return "a table"
	}
	return "a value"
}

func getPath(m map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var current any = m
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = cm[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func setPath(m map[string]any, path string, value any) error {
	parts := strings.Split(path, ".")
	current := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			if _, exists := current[part]; exists {
				return fmt.Errorf("%w: %s is not a table", ErrTypeMismatch, part)
			}
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ":")
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64, uint64:
		return "int"
	case float64:
		return "float"
	case []any, []string:
		return "array"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
