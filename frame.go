package gtable

import (
	"fmt"
	"reflect"
	"slices"
)

// Frame is the tabular data a [Table] reads from and formats into.
//
// SetCell may mutate the receiver and return it, or leave the receiver
// untouched and return a modified copy. Callers always continue with the
// returned frame.
type Frame interface {
	ColumnNames() []string
	NumRows() int
	Cell(row int, column string) (any, error)
	SetCell(row int, column string, value any) (Frame, error)
	// Empty returns a frame of the same shape with every cell missing.
	Empty() Frame
}

// RowFrame is a row-major in-memory frame. SetCell updates it in place.
type RowFrame struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

// NewRowFrame builds a frame from column names and rows. Every row must have
// one value per column.
func NewRowFrame(columns []string, rows [][]any) (*RowFrame, error) {
	index, err := columnIndex(columns)
	if err != nil {
		return nil, err
	}
	data := make([][]any, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d values for %d columns", ErrFrameShape, i, len(row), len(columns))
		}
		data[i] = slices.Clone(row)
	}
	return &RowFrame{columns: slices.Clone(columns), index: index, rows: data}, nil
}

func (f *RowFrame) ColumnNames() []string { return slices.Clone(f.columns) }

func (f *RowFrame) NumRows() int { return len(f.rows) }

func (f *RowFrame) Cell(row int, column string) (any, error) {
	c, err := f.locate(row, column)
	if err != nil {
		return nil, err
	}
	return f.rows[row][c], nil
}

func (f *RowFrame) SetCell(row int, column string, value any) (Frame, error) {
	c, err := f.locate(row, column)
	if err != nil {
		return nil, err
	}
	f.rows[row][c] = value
	return f, nil
}

func (f *RowFrame) Empty() Frame {
	rows := make([][]any, len(f.rows))
	for i := range rows {
		rows[i] = make([]any, len(f.columns))
	}
	return &RowFrame{columns: f.columns, index: f.index, rows: rows}
}

// Row returns a copy of the values in row i.
func (f *RowFrame) Row(i int) []any {
	return slices.Clone(f.rows[i])
}

func (f *RowFrame) locate(row int, column string) (int, error) {
	c, ok := f.index[column]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if row < 0 || row >= len(f.rows) {
		return 0, fmt.Errorf("%w: %d (frame has %d rows)", ErrRowIndex, row, len(f.rows))
	}
	return c, nil
}

// Column is a named slice of values used to build a [ColumnFrame]. Values may
// be any slice or array type.
type Column struct {
	Name   string
	Values any
}

// ColumnFrame is a column-major in-memory frame. SetCell updates it in place.
type ColumnFrame struct {
	columns []string
	data    map[string][]any
	nrows   int
}

// NewColumnFrame builds a frame from columns of equal length.
func NewColumnFrame(cols ...Column) (*ColumnFrame, error) {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	if _, err := columnIndex(names); err != nil {
		return nil, err
	}
	f := &ColumnFrame{columns: names, data: make(map[string][]any, len(cols))}
	for i, c := range cols {
		values, err := toSlice(c.Values)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		if i == 0 {
			f.nrows = len(values)
		} else if len(values) != f.nrows {
			return nil, fmt.Errorf("%w: column %q has %d values, expected %d", ErrFrameShape, c.Name, len(values), f.nrows)
		}
		f.data[c.Name] = values
	}
	return f, nil
}

func (f *ColumnFrame) ColumnNames() []string { return slices.Clone(f.columns) }

func (f *ColumnFrame) NumRows() int { return f.nrows }

func (f *ColumnFrame) Cell(row int, column string) (any, error) {
	values, err := f.locate(row, column)
	if err != nil {
		return nil, err
	}
	return values[row], nil
}

func (f *ColumnFrame) SetCell(row int, column string, value any) (Frame, error) {
	values, err := f.locate(row, column)
	if err != nil {
		return nil, err
	}
	values[row] = value
	return f, nil
}

func (f *ColumnFrame) Empty() Frame {
	data := make(map[string][]any, len(f.columns))
	for _, name := range f.columns {
		data[name] = make([]any, f.nrows)
	}
	return &ColumnFrame{columns: f.columns, data: data, nrows: f.nrows}
}

// Values returns a copy of a column's values.
func (f *ColumnFrame) Values(column string) ([]any, error) {
	values, ok := f.data[column]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	return slices.Clone(values), nil
}

func (f *ColumnFrame) locate(row int, column string) ([]any, error) {
	values, ok := f.data[column]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if row < 0 || row >= f.nrows {
		return nil, fmt.Errorf("%w: %d (frame has %d rows)", ErrRowIndex, row, f.nrows)
	}
	return values, nil
}

func columnIndex(columns []string) (map[string]int, error) {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrFrameShape, name)
		}
		index[name] = i
	}
	return index, nil
}

// toSlice converts any slice or array to []any. A nil value is an empty
// column.
func toSlice(x any) ([]any, error) {
	switch v := x.(type) {
	case nil:
		return nil, nil
	case []any:
		return slices.Clone(v), nil
	}
	rv := reflect.ValueOf(x)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: %T is not a slice", ErrUnsupportedValue, x)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// columnValues reads every value of a column in row order.
func columnValues(f Frame, column string) ([]any, error) {
	out := make([]any, f.NumRows())
	for i := range out {
		v, err := f.Cell(i, column)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// rowEnv maps column names to the values of one row.
func rowEnv(f Frame, row int) (map[string]any, error) {
	names := f.ColumnNames()
	env := make(map[string]any, len(names))
	for _, name := range names {
		v, err := f.Cell(row, name)
		if err != nil {
			return nil, err
		}
		env[name] = v
	}
	return env, nil
}
