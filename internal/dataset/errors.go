package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyFile      = errors.New("empty file")
	ErrMissingColumn  = errors.New("missing required column")
	ErrMalformedValue = errors.New("malformed numeric value")
)

// LoadError reports which column (and, for value errors, which line) stopped a load.
type LoadError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Line > 0 && e.Value != "":
		return fmt.Sprintf("line %d: column %s: %v %q", e.Line, e.Column, e.Err, e.Value)
	case e.Line > 0:
		return fmt.Sprintf("line %d: column %s: %v", e.Line, e.Column, e.Err)
	default:
		return fmt.Sprintf("column %s: %v", e.Column, e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
