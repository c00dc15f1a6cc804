package gtable

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// MergeType identifies how a [MergeSpec] combines its columns.
type MergeType string

// MergeTypeMerge joins column values through a pattern.
const MergeTypeMerge MergeType = "merge"

// MergeSpec describes one column merge: the values of columns are joined
// through pattern and written to the first column for each of rows.
//
// A MergeSpec is immutable once built. Accessors return copies.
type MergeSpec struct {
	typ     MergeType
	columns []string
	rows    []int
	pattern string
}

// NewMergeSpec validates and builds a merge of columns over rows. Columns[0]
// is the target that receives the merged text.
func NewMergeSpec(columns []string, rows []int, pattern string) (MergeSpec, error) {
	return newMergeSpec(MergeTypeMerge, columns, rows, pattern)
}

func newMergeSpec(typ MergeType, columns []string, rows []int, pattern string) (MergeSpec, error) {
	m := MergeSpec{
		typ:     typ,
		columns: slices.Clone(columns),
		rows:    slices.Clone(rows),
		pattern: pattern,
	}
	if err := m.Validate(); err != nil {
		return MergeSpec{}, err
	}
	return m, nil
}

// DefaultMergePattern joins n columns with single spaces: "{0} {1} ... {n-1}".
func DefaultMergePattern(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "{" + strconv.Itoa(i) + "}"
	}
	return strings.Join(parts, " ")
}

// Type returns the merge type.
func (m MergeSpec) Type() MergeType { return m.typ }

// Columns returns the merged columns, target first.
func (m MergeSpec) Columns() []string { return slices.Clone(m.columns) }

// Target returns the column that receives the merged text.
func (m MergeSpec) Target() string {
	if len(m.columns) == 0 {
		return ""
	}
	return m.columns[0]
}

// Rows returns the row indices the merge applies to.
func (m MergeSpec) Rows() []int { return slices.Clone(m.rows) }

// Pattern returns the merge pattern.
func (m MergeSpec) Pattern() string { return m.pattern }

// Placeholders returns the column indices the pattern references.
func (m MergeSpec) Placeholders() []int { return ExtractPlaceholders(m.pattern) }

// Validate checks the merge type, the column count and the pattern indices.
// It has no side effects and may be called repeatedly.
func (m MergeSpec) Validate() error {
	if m.typ != MergeTypeMerge {
		return fmt.Errorf("%w: %q", ErrMergeType, m.typ)
	}
	if len(m.columns) < 2 {
		return fmt.Errorf("%w: got %d", ErrMergeColumns, len(m.columns))
	}
	return ValidatePattern(m.pattern, len(m.columns))
}

// Merge renders the pattern for one row. A nil value, or any value [IsNA]
// reports as missing, is missing.
func (m MergeSpec) Merge(values ...any) string {
	strs := make([]string, len(values))
	missing := make([]bool, len(values))
	for i, v := range values {
		if IsNA(v) {
			missing[i] = true
			continue
		}
		strs[i] = stringify(v)
	}
	return renderPattern(m.pattern, strs, missing, nil)
}

// MergeValues renders the pattern for already stringified values.
func (m MergeSpec) MergeValues(values []string, missing []bool) string {
	return renderPattern(m.pattern, values, missing, nil)
}

// Apply writes the merged text for every row of the spec into the target
// column of body. Each value comes from body, falling back to data when the
// body cell has not been formatted; a value is missing only when both are.
// Fallback values are rendered as for [ContextDefault].
func (m MergeSpec) Apply(body, data Frame) (Frame, error) {
	return m.apply(body, data, ContextDefault, nil)
}

func (m MergeSpec) apply(body, data Frame, c Context, logger *slog.Logger) (Frame, error) {
	values := make([]string, len(m.columns))
	missing := make([]bool, len(m.columns))
	for _, row := range m.rows {
		for i, col := range m.columns {
			formatted, err := body.Cell(row, col)
			if err != nil {
				return nil, err
			}
			original, err := data.Cell(row, col)
			if err != nil {
				return nil, err
			}
			fmtMissing := isMissing(formatted, body)
			switch {
			case fmtMissing && isMissing(original, data):
				values[i], missing[i] = "", true
			case fmtMissing:
				values[i], missing[i] = displayOriginal(original, c), false
			default:
				values[i], missing[i] = stringify(formatted), false
			}
		}
		var err error
		body, err = body.SetCell(row, m.columns[0], renderPattern(m.pattern, values, missing, logger))
		if err != nil {
			return nil, err
		}
	}
	if logger != nil {
		logger.Debug("applied column merge", "target", m.Target(), "columns", len(m.columns), "rows", len(m.rows))
	}
	return body, nil
}

// MergePattern renders pattern with values after normalizing missing values.
func MergePattern(pattern string, values ...any) string {
	normalized := ReplaceNA(nil, values...)
	strs := make([]string, len(normalized))
	missing := make([]bool, len(normalized))
	for i, v := range normalized {
		if v == nil {
			missing[i] = true
			continue
		}
		strs[i] = stringify(v)
	}
	return renderPattern(pattern, strs, missing, nil)
}
