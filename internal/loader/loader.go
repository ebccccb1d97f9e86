// Package loader reads delimited files into a table.Table.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/dshills/csvscope/internal/config"
	"github.com/dshills/csvscope/internal/logging"
	"github.com/dshills/csvscope/internal/table"
)

// cancelCheckInterval is how many records are read between context checks.
const cancelCheckInterval = 1024

// LoadError reports a file that could not be opened or parsed.
type LoadError struct {
	// Path is the file being loaded.
	Path string
	// Line is the 1-based source line of a parse failure, 0 otherwise.
	Line int
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("cannot load %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("cannot load %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Stats describes a completed load.
type Stats struct {
	Columns  int
	Rows     int
	Records  int
	Duration time.Duration
}

// Loader reads files with a fixed dialect.
type Loader struct {
	dialect config.Dialect
	logger  *logging.Logger
}

// New creates a loader. A nil logger discards output.
func New(dialect config.Dialect, logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Loader{
		dialect: dialect,
		logger:  logger.WithComponent("loader"),
	}
}

// LoadFile reads the whole file at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	t, stats, err := l.read(ctx, path, f)
	if err != nil {
		return nil, err
	}

	l.logger.WithFields(map[string]any{
		"columns":  stats.Columns,
		"rows":     stats.Rows,
		"records":  stats.Records,
		"duration": stats.Duration.Round(time.Millisecond),
	}).Info("loaded %s", path)
	return t, nil
}

// Load reads all records from r. The name is used in errors.
func (l *Loader) Load(ctx context.Context, name string, r io.Reader) (*table.Table, error) {
	t, _, err := l.read(ctx, name, r)
	return t, err
}

func (l *Loader) read(ctx context.Context, name string, r io.Reader) (*table.Table, Stats, error) {
	start := time.Now()
	d := l.dialect

	reader := csv.NewReader(transform.NewReader(r, decoder(d.Terminator)))
	reader.Comma = d.Delimiter
	reader.Comment = d.Comment
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = !d.Escape
	reader.ReuseRecord = true

	b := table.NewBuilder()
	records := 0
	row := 0

	for {
		if records%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, Stats{}, &LoadError{Path: name, Err: err}
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			lerr := &LoadError{Path: name, Err: err}
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				lerr.Line = perr.Line
				lerr.Err = perr.Err
			}
			return nil, Stats{}, lerr
		}
		records++

		if records == 1 && d.Headers {
			for _, h := range record {
				if d.Trim.Headers() {
					h = strings.TrimSpace(h)
				}
				b.NewColumn(h)
			}
			l.logger.Debug("headers: %s", strings.Join(record, ", "))
			continue
		}

		for col, field := range record {
			if d.Trim.Fields() {
				field = strings.TrimSpace(field)
			}
			b.SetValue(col, row, table.NewCell(field))
		}
		row++
	}

	t := b.Build()
	return t, Stats{
		Columns:  t.ColumnCount(),
		Rows:     t.RowCount(),
		Records:  records,
		Duration: time.Since(start),
	}, nil
}

// decoder strips a byte order mark, decodes UTF-16 when one says so, and
// rewrites a custom record terminator to '\n'.
func decoder(term config.Terminator) transform.Transformer {
	bom := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	b, ok := term.Byte()
	if !ok || b == '\n' {
		return bom
	}
	return transform.Chain(bom, terminator(b))
}

// terminator replaces one byte with '\n'. Quoted fields are not
// special-cased, so the byte cannot appear inside a value.
type terminator byte

func (t terminator) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	n := min(len(dst), len(src))
	for i := range n {
		c := src[i]
		if c == byte(t) {
			c = '\n'
		}
		dst[i] = c
	}
	if n < len(src) {
		err = transform.ErrShortDst
	}
	return n, n, err
}

func (terminator) Reset() {}
