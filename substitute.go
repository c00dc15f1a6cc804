package gtable

import "html"

// SubMissing replaces missing cells with text, set by [MissingText]. The
// default is an em dash. In HTML the text is escaped.
func (t *Table) SubMissing(opts ...FormatOption) (*Table, error) {
	cfg := newFormatConfig(numberDefaults(), opts)
	fns := perContext(func(ctx Context) FormatFunc {
		text := "—"
		switch {
		case cfg.textSet && ctx == ContextHTML:
			text = html.EscapeString(cfg.text)
		case cfg.textSet:
			text = cfg.text
		case ctx == ContextHTML:
			text = "&mdash;"
		}
		return func(v any) (string, error) {
			if !IsNA(v) {
				return "", ErrSkipCell
			}
			return text, nil
		}
	})
	return t.register("sub_missing", cfg, fns, true)
}

// SubZero replaces values equal to zero with text, set by [ZeroText]. The
// default is "nil".
func (t *Table) SubZero(opts ...FormatOption) (*Table, error) {
	cfg := newFormatConfig(numberDefaults(), opts)
	fns := perContext(func(ctx Context) FormatFunc {
		text := "nil"
		if cfg.textSet {
			text = cfg.text
		}
		if ctx == ContextHTML {
			text = html.EscapeString(text)
		}
		return func(v any) (string, error) {
			if IsNA(v) {
				return "", ErrSkipCell
			}
			if _, ok := v.(string); ok {
				return "", ErrSkipCell
			}
			d, err := toDecimal(v)
			if err != nil || !d.IsZero() {
				return "", ErrSkipCell
			}
			return text, nil
		}
	})
	return t.register("sub_zero", cfg, fns, true)
}
