package gtable

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidTemplate   = errors.New("invalid template")
	ErrUnknownColumn     = errors.New("unknown column")
	ErrRowIndex          = errors.New("row index out of range")
	ErrFrameShape        = errors.New("inconsistent frame shape")
	ErrMergeColumns      = errors.New("merge requires at least two columns")
	ErrPatternIndex      = errors.New("pattern index out of range")
	ErrMergeType         = errors.New("unsupported merge type")
	ErrInvalidOption     = errors.New("invalid option")
	ErrUnsupportedValue  = errors.New("unsupported value")
	ErrLazyValue         = errors.New("lazy expression passed to an eager formatter")
)

// ErrSkipCell is returned by a [FormatFunc] to leave the cell unformatted.
var ErrSkipCell = errors.New("skip cell")

// PatternError reports a merge pattern placeholder with no matching column.
// Index is -1 when the placeholder does not fit in an int.
type PatternError struct {
	Pattern string
	Index   int
	Columns int
}

func (e *PatternError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("pattern %q has a placeholder index too large for %d columns", e.Pattern, e.Columns)
	}
	return fmt.Sprintf("pattern references column {%d} but only %d columns were provided (valid indices are 0 to %d)",
		e.Index, e.Columns, e.Columns-1)
}

func (e *PatternError) Unwrap() error {
	return ErrPatternIndex
}

// CellError wraps a formatter failure with the cell it happened in.
type CellError struct {
	Column string
	Row    int
	Err    error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("formatting column %q row %d: %v", e.Column, e.Row, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}
