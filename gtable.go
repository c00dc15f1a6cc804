package gtable

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// ParseAlignment parses "left", "center" or "right".
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "left", "":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	}
	return AlignLeft, fmt.Errorf("%w: alignment %q", ErrInvalidOption, s)
}

// Table is an immutable display table over a [Frame]. Every builder method
// returns a new Table and leaves the receiver unchanged, so a Table can be
// shared freely between goroutines.
type Table struct {
	data     Frame
	columns  []columnInfo
	formats  []cellFormat
	subs     []cellFormat
	merges   []MergeSpec
	locale   string
	title    string
	subtitle string
	notes    []string
	logger   *slog.Logger
}

type columnInfo struct {
	name   string
	label  string
	hidden bool
	align  Alignment
}

// cellFormat is a registered formatter or substitution. Substitutions also
// see missing cells.
type cellFormat struct {
	kind           string
	fns            FormatFns
	columns        []string
	rows           []int
	includeMissing bool
}

// New creates a table over data. Numeric columns are right aligned.
func New(data Frame, opts ...Option) (*Table, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil frame", ErrFrameShape)
	}
	t := &Table{
		data:   data,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.locale != "" {
		if _, err := resolveLocale(t.locale); err != nil {
			return nil, err
		}
	}
	for _, name := range data.ColumnNames() {
		align, err := defaultAlignment(data, name)
		if err != nil {
			return nil, err
		}
		t.columns = append(t.columns, columnInfo{name: name, label: name, align: align})
	}
	return t, nil
}

func defaultAlignment(data Frame, column string) (Alignment, error) {
	values, err := columnValues(data, column)
	if err != nil {
		return AlignLeft, err
	}
	numeric := false
	for _, v := range values {
		if isMissing(v, data) {
			continue
		}
		if _, err := toDecimal(v); err != nil {
			return AlignLeft, nil
		}
		if _, ok := v.(string); ok {
			return AlignLeft, nil
		}
		numeric = true
	}
	if numeric {
		return AlignRight, nil
	}
	return AlignLeft, nil
}

func (t *Table) clone() *Table {
	out := *t
	out.columns = slices.Clone(t.columns)
	out.formats = slices.Clone(t.formats)
	out.subs = slices.Clone(t.subs)
	out.merges = slices.Clone(t.merges)
	out.notes = slices.Clone(t.notes)
	return &out
}

// Data returns the source frame.
func (t *Table) Data() Frame { return t.data }

// Merges returns the registered merges in application order.
func (t *Table) Merges() []MergeSpec { return slices.Clone(t.merges) }

// Locale returns the table-wide locale, or "" when unset.
func (t *Table) Locale() string { return t.locale }

// Heading sets the title and an optional subtitle.
func (t *Table) Heading(title string, subtitle ...string) *Table {
	out := t.clone()
	out.title = title
	out.subtitle = ""
	if len(subtitle) > 0 {
		out.subtitle = subtitle[0]
	}
	return out
}

// SourceNote appends a note rendered below the table.
func (t *Table) SourceNote(note string) *Table {
	out := t.clone()
	out.notes = append(out.notes, note)
	return out
}

// ColsLabel relabels columns for display.
func (t *Table) ColsLabel(labels map[string]string) (*Table, error) {
	out := t.clone()
	for _, name := range slices.Sorted(maps.Keys(labels)) {
		i, err := out.columnPos(name)
		if err != nil {
			return nil, err
		}
		out.columns[i].label = labels[name]
	}
	return out, nil
}

// ColsAlign sets the alignment of columns, or of every column when none are
// named.
func (t *Table) ColsAlign(align Alignment, columns ...string) (*Table, error) {
	out := t.clone()
	if len(columns) == 0 {
		for i := range out.columns {
			out.columns[i].align = align
		}
		return out, nil
	}
	for _, name := range columns {
		i, err := out.columnPos(name)
		if err != nil {
			return nil, err
		}
		out.columns[i].align = align
	}
	return out, nil
}

// ColsHide hides columns from the rendered output. Hidden columns can still
// be merged into visible ones.
func (t *Table) ColsHide(columns ...string) (*Table, error) {
	return t.setHidden(true, columns)
}

// ColsUnhide makes hidden columns visible again.
func (t *Table) ColsUnhide(columns ...string) (*Table, error) {
	return t.setHidden(false, columns)
}

func (t *Table) setHidden(hidden bool, columns []string) (*Table, error) {
	out := t.clone()
	for _, name := range columns {
		i, err := out.columnPos(name)
		if err != nil {
			return nil, err
		}
		out.columns[i].hidden = hidden
	}
	return out, nil
}

func (t *Table) columnPos(name string) (int, error) {
	for i, c := range t.columns {
		if c.name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

// target resolves the columns and rows a formatter applies to.
func (t *Table) target(columns []string, rows []int, rowsSet bool, rowsWhere string) ([]string, []int, error) {
	if len(columns) == 0 {
		columns = t.data.ColumnNames()
	}
	for _, name := range columns {
		if _, err := t.columnPos(name); err != nil {
			return nil, nil, err
		}
	}
	n := t.data.NumRows()
	switch {
	case rowsSet:
		for _, r := range rows {
			if r < 0 || r >= n {
				return nil, nil, fmt.Errorf("%w: %d (table has %d rows)", ErrRowIndex, r, n)
			}
		}
		return slices.Clone(columns), slices.Clone(rows), nil
	case rowsWhere != "":
		selected, err := selectRows(t.data, rowsWhere)
		if err != nil {
			return nil, nil, err
		}
		return slices.Clone(columns), selected, nil
	default:
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return slices.Clone(columns), all, nil
	}
}

func (t *Table) register(kind string, cfg formatConfig, fns FormatFns, includeMissing bool) (*Table, error) {
	columns, rows, err := t.target(cfg.columns, cfg.rows, cfg.rowsSet, cfg.rowsWhere)
	if err != nil {
		return nil, err
	}
	out := t.clone()
	cf := cellFormat{kind: kind, fns: fns, columns: columns, rows: rows, includeMissing: includeMissing}
	if includeMissing {
		out.subs = append(out.subs, cf)
	} else {
		out.formats = append(out.formats, cf)
	}
	t.logger.Debug("registered formatter", "kind", kind, "columns", columns, "rows", len(rows))
	return out, nil
}

// MergeOption configures [Table.ColsMerge].
type MergeOption func(*mergeConfig)

type mergeConfig struct {
	typ       MergeType
	pattern   string
	rows      []int
	rowsSet   bool
	rowsWhere string
	keep      bool
}

// UsePattern sets the merge pattern. The default joins the columns with
// spaces.
func UsePattern(pattern string) MergeOption {
	return func(c *mergeConfig) { c.pattern = pattern }
}

// MergeRows limits the merge to the given rows.
func MergeRows(rows ...int) MergeOption {
	return func(c *mergeConfig) {
		c.rows = slices.Clone(rows)
		c.rowsSet = true
	}
}

// MergeRowsWhere limits the merge to rows matching a boolean expression.
func MergeRowsWhere(expr string) MergeOption {
	return func(c *mergeConfig) { c.rowsWhere = expr }
}

// KeepColumns leaves the non-target columns visible.
func KeepColumns() MergeOption {
	return func(c *mergeConfig) { c.keep = true }
}

// MergeAs sets the merge type. Only [MergeTypeMerge] is supported.
func MergeAs(typ MergeType) MergeOption {
	return func(c *mergeConfig) { c.typ = typ }
}

// ColsMerge merges columns into the first of them through a pattern such as
// "{0} ({1})" or "{0}<< to {1}>>". Text inside <<...>> is dropped when it
// refers to a missing value. Non-target columns are hidden unless
// [KeepColumns] is given. Merges apply at build time in the order they were
// registered, so a later merge can read an earlier merge's result.
func (t *Table) ColsMerge(columns []string, opts ...MergeOption) (*Table, error) {
	cfg := mergeConfig{typ: MergeTypeMerge}
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(columns) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrMergeColumns, len(columns))
	}
	_, rows, err := t.target(columns, cfg.rows, cfg.rowsSet, cfg.rowsWhere)
	if err != nil {
		return nil, err
	}
	if cfg.pattern == "" {
		cfg.pattern = DefaultMergePattern(len(columns))
	}
	spec, err := newMergeSpec(cfg.typ, columns, rows, cfg.pattern)
	if err != nil {
		return nil, err
	}

	out := t.clone()
	out.merges = append(out.merges, spec)
	if !cfg.keep {
		for _, name := range columns[1:] {
			i, _ := out.columnPos(name)
			out.columns[i].hidden = true
		}
	}
	t.logger.Debug("registered column merge", "target", spec.Target(), "pattern", spec.Pattern(), "rows", len(rows))
	return out, nil
}
