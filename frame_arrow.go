package gtable

import (
	"fmt"
	"math"
	"slices"

	"github.com/apache/arrow/go/v7/arrow"
	"github.com/apache/arrow/go/v7/arrow/array"
	"github.com/apache/arrow/go/v7/arrow/memory"
)

// ArrowFrame is a frame over an Arrow record.
//
// Records are immutable, so SetCell returns a new ArrowFrame in which the
// edited column has been rebuilt as a nullable string column. Arrow nulls
// and floating point NaN are missing; a rebuilt column stores both as null.
type ArrowFrame struct {
	record arrow.Record
	mem    memory.Allocator
}

// NewArrowFrame wraps record. The frame does not take ownership of it.
func NewArrowFrame(record arrow.Record) *ArrowFrame {
	return &ArrowFrame{record: record, mem: memory.NewGoAllocator()}
}

// Record returns the underlying record.
func (f *ArrowFrame) Record() arrow.Record { return f.record }

func (f *ArrowFrame) ColumnNames() []string {
	fields := f.record.Schema().Fields()
	names := make([]string, len(fields))
	for i, fld := range fields {
		names[i] = fld.Name
	}
	return names
}

func (f *ArrowFrame) NumRows() int { return int(f.record.NumRows()) }

// IsNA reports whether v is an Arrow null or a NaN float.
func (f *ArrowFrame) IsNA(v any) bool {
	switch x := v.(type) {
	case nil, naValue:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}

func (f *ArrowFrame) Cell(row int, column string) (any, error) {
	arr, _, err := f.locate(row, column)
	if err != nil {
		return nil, err
	}
	return arrowValue(arr, row)
}

func (f *ArrowFrame) SetCell(row int, column string, value any) (Frame, error) {
	arr, idx, err := f.locate(row, column)
	if err != nil {
		return nil, err
	}

	b := array.NewStringBuilder(f.mem)
	defer b.Release()
	b.Reserve(arr.Len())
	for i := 0; i < arr.Len(); i++ {
		v := value
		if i != row {
			if v, err = arrowValue(arr, i); err != nil {
				return nil, err
			}
		}
		if f.IsNA(v) {
			b.AppendNull()
			continue
		}
		b.Append(stringify(v))
	}
	col := b.NewArray()
	defer col.Release()

	schema := f.record.Schema()
	fields := slices.Clone(schema.Fields())
	fields[idx] = arrow.Field{Name: column, Type: arrow.BinaryTypes.String, Nullable: true}
	md := schema.Metadata()

	cols := slices.Clone(f.record.Columns())
	cols[idx] = col
	rec := array.NewRecord(arrow.NewSchema(fields, &md), cols, f.record.NumRows())
	return &ArrowFrame{record: rec, mem: f.mem}, nil
}

func (f *ArrowFrame) Empty() Frame {
	n := f.NumRows()
	schema := f.record.Schema()
	fields := make([]arrow.Field, len(schema.Fields()))
	cols := make([]arrow.Array, len(fields))
	for i, fld := range schema.Fields() {
		fields[i] = arrow.Field{Name: fld.Name, Type: arrow.BinaryTypes.String, Nullable: true}
		b := array.NewStringBuilder(f.mem)
		for range n {
			b.AppendNull()
		}
		cols[i] = b.NewArray()
		b.Release()
	}
	rec := array.NewRecord(arrow.NewSchema(fields, nil), cols, int64(n))
	for _, c := range cols {
		c.Release()
	}
	return &ArrowFrame{record: rec, mem: f.mem}
}

func (f *ArrowFrame) locate(row int, column string) (arrow.Array, int, error) {
	idx := -1
	for i, fld := range f.record.Schema().Fields() {
		if fld.Name == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if row < 0 || row >= f.NumRows() {
		return nil, 0, fmt.Errorf("%w: %d (frame has %d rows)", ErrRowIndex, row, f.NumRows())
	}
	return f.record.Column(idx), idx, nil
}

// arrowValue returns the native Go value at row i, or nil for nulls.
func arrowValue(arr arrow.Array, i int) (any, error) {
	if arr.IsNull(i) {
		return nil, nil
	}
	switch a := arr.(type) {
	case *array.Boolean:
		return a.Value(i), nil
	case *array.Float16:
		return a.Value(i).Float32(), nil
	case *array.Float32:
		return a.Value(i), nil
	case *array.Float64:
		return a.Value(i), nil
	case *array.Int8:
		return a.Value(i), nil
	case *array.Int16:
		return a.Value(i), nil
	case *array.Int32:
		return a.Value(i), nil
	case *array.Int64:
		return a.Value(i), nil
	case *array.Uint8:
		return a.Value(i), nil
	case *array.Uint16:
		return a.Value(i), nil
	case *array.Uint32:
		return a.Value(i), nil
	case *array.Uint64:
		return a.Value(i), nil
	case *array.String:
		return a.Value(i), nil
	default:
		return nil, fmt.Errorf("%w: arrow type %s", ErrUnsupportedValue, arr.DataType())
	}
}
