package gtable

import (
	"database/sql/driver"
	"math"
	"reflect"
)

// NA is an explicit missing value. Frames may store it anywhere a cell is
// absent; every frame treats it as missing.
var NA = naValue{}

type naValue struct{}

func (naValue) String() string { return "NA" }

// NAChecker is implemented by frames with backend-specific missing values.
type NAChecker interface {
	IsNA(v any) bool
}

// IsNA reports whether v is a generic missing value: untyped nil, [NA],
// float NaN, a nil pointer or interface, or a [driver.Valuer] (such as
// sql.NullString or decimal.NullDecimal) whose value is nil.
func IsNA(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case naValue:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
	}
	if valuer, ok := v.(driver.Valuer); ok {
		val, err := valuer.Value()
		return err == nil && val == nil
	}
	return false
}

// Normalize returns nil when v is missing according to src, and v otherwise.
// Frames implementing [NAChecker] decide for themselves; every other frame,
// including a nil src, uses [IsNA].
func Normalize(v any, src Frame) any {
	if checker, ok := src.(NAChecker); ok {
		if checker.IsNA(v) {
			return nil
		}
		return v
	}
	if IsNA(v) {
		return nil
	}
	return v
}

// ReplaceNA maps [Normalize] over values. It is idempotent.
func ReplaceNA(src Frame, values ...any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = Normalize(v, src)
	}
	return out
}

func isMissing(v any, src Frame) bool {
	return Normalize(v, src) == nil
}
