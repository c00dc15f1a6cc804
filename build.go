package gtable

import (
	"errors"
	"fmt"
	"html"
	"slices"
)

// Built is a rendered table: the visible columns and the display string of
// every cell, ready for an output writer.
type Built struct {
	Context  Context
	Title    string
	Subtitle string
	Columns  []string
	Labels   []string
	Aligns   []Alignment
	Rows     [][]string
	Notes    []string
}

// Build renders the table for an output context. Formatters run first in
// registration order, then substitutions, then merges. Cells no formatter
// touched show their original value, and missing cells show "NA".
func (t *Table) Build(c Context) (*Built, error) {
	body := t.data.Empty()
	var err error
	for _, f := range t.formats {
		if body, err = t.applyFormat(body, f, c); err != nil {
			return nil, err
		}
	}
	for _, f := range t.subs {
		if body, err = t.applyFormat(body, f, c); err != nil {
			return nil, err
		}
	}
	for _, m := range t.merges {
		if body, err = m.apply(body, t.data, c, t.logger); err != nil {
			return nil, err
		}
	}

	b := &Built{
		Context:  c,
		Title:    t.title,
		Subtitle: t.subtitle,
		Notes:    slices.Clone(t.notes),
	}
	var visible []string
	for _, col := range t.columns {
		if col.hidden {
			continue
		}
		visible = append(visible, col.name)
		b.Columns = append(b.Columns, col.name)
		b.Labels = append(b.Labels, col.label)
		b.Aligns = append(b.Aligns, col.align)
	}
	b.Rows = make([][]string, t.data.NumRows())
	for r := range b.Rows {
		row := make([]string, len(visible))
		for i, name := range visible {
			if row[i], err = t.display(body, r, name, c); err != nil {
				return nil, err
			}
		}
		b.Rows[r] = row
	}
	t.logger.Debug("built table", "context", c.String(), "columns", len(visible), "rows", len(b.Rows))
	return b, nil
}

func (t *Table) applyFormat(body Frame, f cellFormat, c Context) (Frame, error) {
	fn := f.fns.Lookup(c)
	if fn == nil {
		return body, nil
	}
	for _, col := range f.columns {
		for _, row := range f.rows {
			original, err := t.data.Cell(row, col)
			if err != nil {
				return nil, err
			}
			original = Normalize(original, t.data)
			if original == nil && !f.includeMissing {
				continue
			}
			s, err := fn(original)
			if errors.Is(err, ErrSkipCell) {
				continue
			}
			if err != nil {
				return nil, &CellError{Column: col, Row: row, Err: err}
			}
			if body, err = body.SetCell(row, col, s); err != nil {
				return nil, err
			}
		}
	}
	return body, nil
}

func (t *Table) display(body Frame, row int, column string, c Context) (string, error) {
	formatted, err := body.Cell(row, column)
	if err != nil {
		return "", err
	}
	if !isMissing(formatted, body) {
		return stringify(formatted), nil
	}
	original, err := t.data.Cell(row, column)
	if err != nil {
		return "", err
	}
	if isMissing(original, t.data) {
		return "NA", nil
	}
	return displayOriginal(original, c), nil
}

// displayOriginal stringifies an unformatted value, escaping it for HTML.
func displayOriginal(v any, c Context) string {
	s := stringify(v)
	if c == ContextHTML {
		s = html.EscapeString(s)
	}
	return s
}

// Cell returns the display string of a visible column in row.
func (b *Built) Cell(row int, column string) (string, error) {
	i := slices.Index(b.Columns, column)
	if i < 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if row < 0 || row >= len(b.Rows) {
		return "", fmt.Errorf("%w: %d (table has %d rows)", ErrRowIndex, row, len(b.Rows))
	}
	return b.Rows[row][i], nil
}

// Column returns the display strings of a visible column.
func (b *Built) Column(column string) ([]string, error) {
	i := slices.Index(b.Columns, column)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	out := make([]string, len(b.Rows))
	for r, row := range b.Rows {
		out[r] = row[i]
	}
	return out, nil
}
