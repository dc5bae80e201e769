package goosu

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSection   = errors.New("unknown section")
	ErrMalformedHeader  = errors.New("malformed section header")
	ErrMalformedEvent   = errors.New("malformed event")
	ErrShortVersionLine = errors.New("format version line too short")
	ErrMissingField     = errors.New("missing required field")
)

// FormatError reports a .osu file that is not a valid map. Line is 1-based;
// it is 0 when the fault was found while deriving a Beatmap from a Record,
// in which case Field names the offending record key.
type FormatError struct {
	Line  int
	Text  string
	Field string
	Err   error
}

func (e *FormatError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line > 0 {
		return fmt.Sprintf("osu format error: line %d %q: %v", e.Line, e.Text, e.Err)
	}
	if e.Text != "" {
		return fmt.Sprintf("osu format error: field %s %q: %v", e.Field, e.Text, e.Err)
	}
	return fmt.Sprintf("osu format error: field %s: %v", e.Field, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
