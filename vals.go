package gtable

import "fmt"

// valColumn names the single column of the table behind the ValFmt
// functions.
const valColumn = "x"

// valFormat formats x through a one-column table and returns the HTML
// display strings. x may be a scalar or any slice or array.
func valFormat(x any, method func(*Table, ...FormatOption) (*Table, error), opts []FormatOption) ([]string, error) {
	var values any
	switch v := x.(type) {
	case Expr, *Expr:
		return nil, fmt.Errorf("%w: use Expr.Format to format %v", ErrLazyValue, v)
	case nil, string, []byte:
		values = []any{v}
	default:
		if _, err := toSlice(v); err != nil {
			values = []any{v}
		} else {
			values = v
		}
	}
	frame, err := NewColumnFrame(Column{Name: valColumn, Values: values})
	if err != nil {
		return nil, err
	}
	t, err := New(frame)
	if err != nil {
		return nil, err
	}
	if t, err = method(t, opts...); err != nil {
		return nil, err
	}
	built, err := t.Build(ContextHTML)
	if err != nil {
		return nil, err
	}
	return built.Column(valColumn)
}

// ValFmtNumber formats values with [Table.FmtNumber].
// Lazy [Expr] values return [ErrLazyValue]; format them with [Expr.Format].
func ValFmtNumber(x any, opts ...FormatOption) ([]string, error) {
	return valFormat(x, (*Table).FmtNumber, opts)
}

// ValFmtInteger formats values with [Table.FmtInteger].
// Lazy [Expr] values return [ErrLazyValue]; format them with [Expr.Format].
func ValFmtInteger(x any, opts ...FormatOption) ([]string, error) {
	return valFormat(x, (*Table).FmtInteger, opts)
}

// ValFmtScientific formats values with [Table.FmtScientific].
// Lazy [Expr] values return [ErrLazyValue]; format them with [Expr.Format].
func ValFmtScientific(x any, opts ...FormatOption) ([]string, error) {
	return valFormat(x, (*Table).FmtScientific, opts)
}

// ValFmtEngineering formats values with [Table.FmtEngineering].
// Lazy [Expr] values return [ErrLazyValue]; format them with [Expr.Format].
func ValFmtEngineering(x any, opts ...FormatOption) ([]string, error) {
	return valFormat(x, (*Table).FmtEngineering, opts)
}

// ValFmtPercent formats values with [Table.FmtPercent].
// Lazy [Expr] values return [ErrLazyValue]; format them with [Expr.Format].
func ValFmtPercent(x any, opts ...FormatOption) ([]string, error) {
	return valFormat(x, (*Table).FmtPercent, opts)
}

// ValFmtCurrency formats values with [Table.FmtCurrency].
// Lazy [Expr] values return [ErrLazyValue]; format them with [Expr.Format].
func ValFmtCurrency(x any, opts ...FormatOption) ([]string, error) {
	return valFormat(x, (*Table).FmtCurrency, opts)
}

// ValFmtRoman formats values with [Table.FmtRoman].
// Lazy [Expr] values return [ErrLazyValue]; format them with [Expr.Format].
func ValFmtRoman(x any, opts ...FormatOption) ([]string, error) {
	return valFormat(x, (*Table).FmtRoman, opts)
}

// ValFmtBytes formats values with [Table.FmtBytes].
// Lazy [Expr] values return [ErrLazyValue]; format them with [Expr.Format].
func ValFmtBytes(x any, opts ...FormatOption) ([]string, error) {
	return valFormat(x, (*Table).FmtBytes, opts)
}

// ValFmtDate formats values with [Table.FmtDate].
// Lazy [Expr] values return [ErrLazyValue]; format them with [Expr.Format].
func ValFmtDate(x any, opts ...FormatOption) ([]string, error) {
	return valFormat(x, (*Table).FmtDate, opts)
}

// ValFmtTime formats values with [Table.FmtTime].
// Lazy [Expr] values return [ErrLazyValue]; format them with [Expr.Format].
func ValFmtTime(x any, opts ...FormatOption) ([]string, error) {
	return valFormat(x, (*Table).FmtTime, opts)
}

// ValFmtDatetime formats values with [Table.FmtDatetime].
// Lazy [Expr] values return [ErrLazyValue]; format them with [Expr.Format].
func ValFmtDatetime(x any, opts ...FormatOption) ([]string, error) {
	return valFormat(x, (*Table).FmtDatetime, opts)
}

// ValFmtMarkdown formats values with [Table.FmtMarkdown].
// Lazy [Expr] values return [ErrLazyValue]; format them with [Expr.Format].
func ValFmtMarkdown(x any, opts ...FormatOption) ([]string, error) {
	return valFormat(x, (*Table).FmtMarkdown, opts)
}

// ValFmtImage formats values with [Table.FmtImage].
// Lazy [Expr] values return [ErrLazyValue]; format them with [Expr.Format].
func ValFmtImage(x any, opts ...FormatOption) ([]string, error) {
	return valFormat(x, (*Table).FmtImage, opts)
}
