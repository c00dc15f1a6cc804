package gtable

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Context is the output a formatter renders for.
type Context int

const (
	ContextDefault Context = iota
	ContextHTML
	ContextLaTeX
	ContextRTF
)

var contexts = []Context{ContextDefault, ContextHTML, ContextLaTeX, ContextRTF}

func (c Context) String() string {
	switch c {
	case ContextHTML:
		return "html"
	case ContextLaTeX:
		return "latex"
	case ContextRTF:
		return "rtf"
	default:
		return "default"
	}
}

// FormatFunc renders one non-missing cell value. Returning [ErrSkipCell]
// leaves the cell unformatted.
type FormatFunc func(v any) (string, error)

// FormatFns holds a formatter per output context. Contexts without an entry
// use the ContextDefault entry.
type FormatFns map[Context]FormatFunc

// Lookup returns the formatter for ctx, or nil when neither ctx nor the
// default has one.
func (f FormatFns) Lookup(ctx Context) FormatFunc {
	if fn, ok := f[ctx]; ok && fn != nil {
		return fn
	}
	return f[ContextDefault]
}

// perContext builds a FormatFns by calling build once for each context.
func perContext(build func(ctx Context) FormatFunc) FormatFns {
	fns := make(FormatFns, len(contexts))
	for _, ctx := range contexts {
		fns[ctx] = build(ctx)
	}
	return fns
}

// stringify renders an unformatted value.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// errNonFinite marks NaN and infinite floats, which have no decimal form.
var errNonFinite = fmt.Errorf("%w: non-finite number", ErrUnsupportedValue)

// toDecimal converts a numeric cell value to a decimal.
func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case *decimal.Decimal:
		return *x, nil
	case decimal.NullDecimal:
		return x.Decimal, nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Decimal{}, errNonFinite
		}
		return decimal.NewFromFloat(x), nil
	case float32:
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return decimal.Decimal{}, errNonFinite
		}
		return decimal.NewFromFloat32(x), nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int8:
		return decimal.NewFromInt(int64(x)), nil
	case int16:
		return decimal.NewFromInt(int64(x)), nil
	case int32:
		return decimal.NewFromInt(int64(x)), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(x)), 0), nil
	case uint8:
		return decimal.NewFromInt(int64(x)), nil
	case uint16:
		return decimal.NewFromInt(int64(x)), nil
	case uint32:
		return decimal.NewFromInt(int64(x)), nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0), nil
	case json.Number:
		return decimal.NewFromString(x.String())
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %q is not a number", ErrUnsupportedValue, x)
		}
		return d, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %T is not a number", ErrUnsupportedValue, v)
	}
}

// nonFinite renders NaN and infinities, which bypass decimal formatting.
func nonFinite(v any, ctx Context) (string, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	default:
		return "", false
	}
	switch {
	case math.IsNaN(f):
		return "NaN", true
	case math.IsInf(f, 1):
		return "Inf", true
	case math.IsInf(f, -1):
		return minusMark(ctx) + "Inf", true
	}
	return "", false
}

func minusMark(ctx Context) string {
	if ctx == ContextHTML {
		return "−"
	}
	return "-"
}

func percentMark(ctx Context) string {
	if ctx == ContextLaTeX {
		return "\\%"
	}
	return "%"
}

func dollarMark(ctx Context) string {
	if ctx == ContextLaTeX {
		return "\\$"
	}
	return "$"
}

var latexEscaper = strings.NewReplacer(
	"\\", "\\textbackslash{}",
	"&", "\\&", "%", "\\%", "$", "\\$", "#", "\\#", "_", "\\_",
	"{", "\\{", "}", "\\}", "~", "\\textasciitilde{}", "^", "\\textasciicircum{}",
)

// applyPattern decorates a formatted value. In LaTeX the literal parts of the
// pattern are escaped.
func applyPattern(pattern, formatted string, ctx Context) string {
	if pattern == "" || pattern == "{x}" {
		return formatted
	}
	if ctx == ContextLaTeX {
		parts := strings.Split(pattern, "{x}")
		for i, p := range parts {
			parts[i] = latexEscaper.Replace(p)
		}
		return strings.Join(parts, formatted)
	}
	return strings.ReplaceAll(pattern, "{x}", formatted)
}
