// Package loader reads configuration sources into generic maps.
//
// File loaders understand TOML and YAML and follow "@include" directives in
// either format. The environment loader turns prefixed variables into
// dotted setting paths. Merging and typing of the resulting maps is left to
// the config package.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// Format identifies a configuration file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatTOML
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// MaxIncludeDepth bounds nested @include directives.
const MaxIncludeDepth = 8

// includeKey names the files merged underneath a config file. Paths are
// relative to the including file.
const includeKey = "@include"

// decodeFunc parses one document. source names the input in errors.
type decodeFunc func(source string, data []byte) (map[string]any, error)

// File loads configuration files of one format, following @include
// directives.
type File struct {
	fs       FileSystem
	format   Format
	decode   decodeFunc
	maxDepth int
}

// NewFile creates a loader for format reading from fsys.
func NewFile(fsys FileSystem, format Format) (*File, error) {
	f := &File{fs: fsys, format: format, maxDepth: MaxIncludeDepth}
	switch format {
	case FormatTOML:
		f.decode = decodeTOML
	case FormatYAML:
		f.decode = decodeYAML
	default:
		return nil, fmt.Errorf("unsupported config format %s", format)
	}
	return f, nil
}

// WithMaxDepth returns the loader with a different include depth limit.
func (f *File) WithMaxDepth(depth int) *File {
	f.maxDepth = depth
	return f
}

// Format returns the format the loader decodes.
func (f *File) Format() Format {
	return f.format
}

// Load reads path and its includes. Included files are merged underneath
// the including file. A missing file yields nil, nil.
func (f *File) Load(path string) (map[string]any, error) {
	return f.load(path, f.maxDepth)
}

// LoadFromReader decodes a single document from r. Includes are not
// followed since there is no base directory.
func (f *File) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return f.decode("<reader>", data)
}

func (f *File) load(path string, depth int) (map[string]any, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("include depth exceeded for %s", path)
	}

	data, err := f.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	config, err := f.decode(path, data)
	if err != nil {
		return nil, err
	}

	includes, err := includeList(config[includeKey])
	if err != nil {
		return nil, &ParseError{Path: path, Message: err.Error()}
	}
	delete(config, includeKey)

	merged := map[string]any{}
	for _, inc := range includes {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(filepath.Dir(path), inc)
		}
		sub, err := f.load(inc, depth-1)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", inc, err)
		}
		merged = DeepMerge(merged, sub)
	}
	return DeepMerge(merged, config), nil
}

func includeList(v any) ([]string, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s must be a string or a list of strings", includeKey)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s must be a string or a list of strings, got %T", includeKey, v)
}

// LoadFile loads the file at path with the decoder matching its extension.
// A missing file yields nil, nil.
func LoadFile(fsys FileSystem, path string) (map[string]any, error) {
	f, err := NewFile(fsys, DetectFormat(path))
	if err != nil {
		return nil, &ParseError{
			Path:    path,
			Message: fmt.Sprintf("unsupported config format %q (use .toml, .yaml or .yml)", filepath.Ext(path)),
			Err:     err,
		}
	}
	return f.Load(path)
}

// Exists reports whether path exists on fsys.
func Exists(fsys FileSystem, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// ParseError reports a configuration file that could not be decoded.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DeepMerge merges src into dst and returns dst. Tables merge key by key;
// any other src value replaces the dst value.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
			continue
		}
		dst[key] = srcVal
	}
	return dst
}
