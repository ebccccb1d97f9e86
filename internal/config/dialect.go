package config

import (
	"fmt"
	"strings"
)

// Terminator selects the record terminator. The zero value accepts "\n"
// and "\r\n" alike.
type Terminator struct {
	custom bool
	b      byte
}

// TerminatorCRLF is the default terminator.
var TerminatorCRLF = Terminator{}

// TerminatorByte returns a terminator that ends records at b.
func TerminatorByte(b byte) Terminator {
	return Terminator{custom: true, b: b}
}

// Byte returns the terminator byte and whether a single byte is in use.
func (t Terminator) Byte() (byte, bool) {
	return t.b, t.custom
}

// IsDefault reports whether the terminator is CRLF.
func (t Terminator) IsDefault() bool {
	return !t.custom
}

// String returns the terminator name.
func (t Terminator) String() string {
	if !t.custom {
		return "CRLF"
	}
	switch t.b {
	case '\r':
		return "CR"
	case '\n':
		return "LF"
	}
	return fmt.Sprintf("%q", t.b)
}

// ParseTerminator accepts CRLF, CR, LF (any case), "default", the literal
// control characters, or any other single ASCII character.
func ParseTerminator(s string) (Terminator, error) {
	switch strings.ToLower(s) {
	case "crlf", "default", "\r\n":
		return TerminatorCRLF, nil
	case "cr", "\r":
		return TerminatorByte('\r'), nil
	case "lf", "\n":
		return TerminatorByte('\n'), nil
	}
	if len(s) != 1 || s[0] >= 0x80 {
		return Terminator{}, fmt.Errorf("must be CRLF, CR, LF or a single ASCII character")
	}
	return TerminatorByte(s[0]), nil
}

// Trim selects which fields have surrounding whitespace removed.
type Trim uint8

const (
	TrimNone Trim = iota
	TrimHeaders
	TrimFields
	TrimAll
)

// ParseTrim accepts none, headers (only-headers), fields (except-headers)
// and all.
func ParseTrim(s string) (Trim, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return TrimNone, nil
	case "headers", "only-headers":
		return TrimHeaders, nil
	case "fields", "except-headers":
		return TrimFields, nil
	case "all":
		return TrimAll, nil
	}
	return TrimNone, fmt.Errorf("must be one of none, headers, fields, all")
}

// String returns the trim mode name.
func (t Trim) String() string {
	switch t {
	case TrimHeaders:
		return "headers"
	case TrimFields:
		return "fields"
	case TrimAll:
		return "all"
	default:
		return "none"
	}
}

// Headers reports whether header fields are trimmed.
func (t Trim) Headers() bool { return t == TrimHeaders || t == TrimAll }

// Fields reports whether value fields are trimmed.
func (t Trim) Fields() bool { return t == TrimFields || t == TrimAll }

// Dialect describes how a CSV file is split into records and fields.
type Dialect struct {
	Delimiter  rune
	Terminator Terminator
	Trim       Trim
	// Escape enables doubled-quote escaping inside quoted fields. When
	// false quotes are taken leniently.
	Escape bool
	// Comment starts a comment line; 0 disables comments.
	Comment rune
	// Headers reports whether the first record holds column names.
	Headers bool
}

// DefaultDialect returns comma-separated, CRLF-terminated records with
// headers, trimmed fields, doubled-quote escapes and '#' comments.
func DefaultDialect() Dialect {
	return Dialect{
		Delimiter:  ',',
		Terminator: TerminatorCRLF,
		Trim:       TrimAll,
		Escape:     true,
		Comment:    '#',
		Headers:    true,
	}
}

// ParseDelimiter accepts a single ASCII byte; `\t` and "tab" mean a tab.
func ParseDelimiter(s string) (rune, error) {
	if s == `\t` || strings.EqualFold(s, "tab") {
		return '\t', nil
	}
	return parseSingle(s)
}

// ParseComment accepts a single ASCII byte; the empty string disables comments.
func ParseComment(s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	return parseSingle(s)
}

// ParseEscape accepts `"` (doubled quotes) or the empty string (none).
func ParseEscape(s string) (bool, error) {
	switch s {
	case `"`:
		return true, nil
	case "":
		return false, nil
	}
	return false, fmt.Errorf(`only "\"" (doubled quotes) or empty are supported`)
}

func parseSingle(s string) (rune, error) {
	if len(s) != 1 || s[0] >= 0x80 {
		return 0, fmt.Errorf("must be a single ASCII character")
	}
	switch s[0] {
	case '\r', '\n':
		return 0, fmt.Errorf("must not be a line break")
	case '"':
		return 0, fmt.Errorf("must not be the quote character")
	}
	return rune(s[0]), nil
}

// Validate checks that the dialect characters do not collide.
func (d Dialect) Validate() error {
	if d.Comment != 0 && d.Comment == d.Delimiter {
		return optionErr("csv.comment", string(d.Comment), "must differ from the delimiter")
	}
	if b, ok := d.Terminator.Byte(); ok {
		switch rune(b) {
		case d.Delimiter:
			return optionErr("csv.terminator", d.Terminator, "must differ from the delimiter")
		case '"':
			return optionErr("csv.terminator", d.Terminator, "must not be the quote character")
		}
		if d.Comment != 0 && rune(b) == d.Comment {
			return optionErr("csv.terminator", d.Terminator, "must differ from the comment character")
		}
	}
	return nil
}
