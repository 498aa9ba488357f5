package compiler

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is returned when a program introduces more
	// variables than there are allocatable registers.
	ErrCapacityExceeded = errors.New("too many variables")

	// ErrSyntax is returned for a statement that matches no rule or is
	// malformed.
	ErrSyntax = errors.New("syntax error")

	// ErrUnterminatedString is returned for a print literal with no closing
	// quote.
	ErrUnterminatedString = errors.New("unterminated string in print")

	// ErrIO is returned when the input or output file cannot be opened.
	ErrIO = errors.New("i/o error")
)

// LineError locates a translation failure in the source.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
