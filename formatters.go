package gtable

import (
	"fmt"
	"time"
)

// Fmt registers custom per-context formatters. Only the targeting options
// [Columns], [Rows] and [RowsWhere] apply.
func (t *Table) Fmt(fns FormatFns, opts ...FormatOption) (*Table, error) {
	if len(fns) == 0 {
		return nil, fmt.Errorf("%w: no format functions", ErrInvalidOption)
	}
	cfg := newFormatConfig(numberDefaults(), opts)
	return t.register("custom", cfg, fns, false)
}

// FmtNumber formats numeric values with fixed decimals or significant
// figures, digit grouping, optional compact suffixes and a decoration
// pattern.
func (t *Table) FmtNumber(opts ...FormatOption) (*Table, error) {
	cfg := newFormatConfig(numberDefaults(), opts)
	if err := cfg.validateNumeric(); err != nil {
		return nil, err
	}
	sep, dec, err := cfg.marks(t.locale)
	if err != nil {
		return nil, err
	}
	return t.register("number", cfg, numberFns(cfg, sep, dec), false)
}

// FmtInteger formats numeric values as integers.
func (t *Table) FmtInteger(opts ...FormatOption) (*Table, error) {
	cfg := newFormatConfig(numberDefaults(), opts)
	cfg.decimals = 0
	cfg.nSigFigSet = false
	cfg.dropTrailingZeros = false
	cfg.dropTrailingDecMark = true
	sep, dec, err := cfg.marks(t.locale)
	if err != nil {
		return nil, err
	}
	return t.register("integer", cfg, numberFns(cfg, sep, dec), false)
}

// FmtScientific formats numeric values in scientific notation.
func (t *Table) FmtScientific(opts ...FormatOption) (*Table, error) {
	return t.fmtExponent("scientific", 1, opts)
}

// FmtEngineering formats numeric values in engineering notation, where the
// exponent is a multiple of three.
func (t *Table) FmtEngineering(opts ...FormatOption) (*Table, error) {
	return t.fmtExponent("engineering", 3, opts)
}

func (t *Table) fmtExponent(kind string, step int, opts []FormatOption) (*Table, error) {
	cfg := newFormatConfig(numberDefaults(), opts)
	if err := cfg.validateNumeric(); err != nil {
		return nil, err
	}
	if !validExpStyle(cfg.expStyle) {
		return nil, fmt.Errorf("%w: exponent style %q", ErrInvalidOption, cfg.expStyle)
	}
	_, dec, err := cfg.marks(t.locale)
	if err != nil {
		return nil, err
	}
	return t.register(kind, cfg, sciFns(cfg, dec, step), false)
}

// FmtPercent formats numeric values as percentages. Values are multiplied
// by 100 unless ScaleValues(false) is given.
func (t *Table) FmtPercent(opts ...FormatOption) (*Table, error) {
	base := numberDefaults()
	base.placement = "right"
	cfg := newFormatConfig(base, opts)
	if err := cfg.validatePlacement(); err != nil {
		return nil, err
	}
	if err := cfg.validateNumeric(); err != nil {
		return nil, err
	}
	sep, dec, err := cfg.marks(t.locale)
	if err != nil {
		return nil, err
	}
	return t.register("percent", cfg, percentFns(cfg, sep, dec), false)
}

// FmtCurrency formats numeric values as currency. Without [Currency] the
// locale's currency is used, and USD without a locale. Without [Decimals]
// the currency's minor unit digits are shown.
func (t *Table) FmtCurrency(opts ...FormatOption) (*Table, error) {
	cfg := newFormatConfig(numberDefaults(), opts)
	if err := cfg.validatePlacement(); err != nil {
		return nil, err
	}
	code := cfg.currency
	if code == "" {
		code = "USD"
		if name := cfg.localeName(t.locale); name != "" {
			loc, err := resolveLocale(name)
			if err != nil {
				return nil, err
			}
			code = loc.Currency
		}
	}
	symbol, digits, err := currencyInfo(code)
	if err != nil {
		return nil, err
	}
	if !cfg.decimalsSet {
		cfg.decimals = 0
		if cfg.useSubunits {
			cfg.decimals = digits
		}
	}
	if err := cfg.validateNumeric(); err != nil {
		return nil, err
	}
	sep, dec, err := cfg.marks(t.locale)
	if err != nil {
		return nil, err
	}
	return t.register("currency", cfg, currencyFns(cfg, symbol, sep, dec), false)
}

// FmtRoman formats numeric values as roman numerals. Zero renders as "N"
// and values above 3899 as "ex terminis".
func (t *Table) FmtRoman(opts ...FormatOption) (*Table, error) {
	cfg := newFormatConfig(numberDefaults(), opts)
	if cfg.letterCase != "upper" && cfg.letterCase != "lower" {
		return nil, fmt.Errorf("%w: case must be upper or lower, got %q", ErrInvalidOption, cfg.letterCase)
	}
	return t.register("roman", cfg, romanFns(cfg), false)
}

// FmtBytes formats byte counts with decimal (kB) or binary (KiB) units.
func (t *Table) FmtBytes(opts ...FormatOption) (*Table, error) {
	base := numberDefaults()
	base.decimals = 1
	base.dropTrailingZeros = true
	base.inclSpace = true
	cfg := newFormatConfig(base, opts)
	if _, ok := byteUnits[cfg.standard]; !ok {
		return nil, fmt.Errorf("%w: byte standard must be decimal or binary, got %q", ErrInvalidOption, cfg.standard)
	}
	if err := cfg.validateNumeric(); err != nil {
		return nil, err
	}
	sep, dec, err := cfg.marks(t.locale)
	if err != nil {
		return nil, err
	}
	return t.register("bytes", cfg, bytesFns(cfg, sep, dec), false)
}

// FmtDate formats dates given as time.Time or ISO 8601 strings.
func (t *Table) FmtDate(opts ...FormatOption) (*Table, error) {
	cfg := newFormatConfig(numberDefaults(), opts)
	pattern, err := lookupStyle(dateStyles, "date", cfg.dateStyle)
	if err != nil {
		return nil, err
	}
	cal, err := t.calendar(cfg)
	if err != nil {
		return nil, err
	}
	render := func(tm time.Time) string { return formatCLDR(tm, pattern, cal) }
	return t.register("date", cfg, dateTimeFns(cfg, dateLayouts, render), false)
}

// FmtTime formats times of day given as time.Time or "HH:MM[:SS]" strings.
func (t *Table) FmtTime(opts ...FormatOption) (*Table, error) {
	cfg := newFormatConfig(numberDefaults(), opts)
	pattern, err := lookupStyle(timeStyles, "time", cfg.timeStyle)
	if err != nil {
		return nil, err
	}
	cal, err := t.calendar(cfg)
	if err != nil {
		return nil, err
	}
	render := func(tm time.Time) string { return formatCLDR(tm, pattern, cal) }
	return t.register("time", cfg, dateTimeFns(cfg, timeLayouts, render), false)
}

// FmtDatetime formats timestamps as a date and a time joined by
// [DateTimeSep].
func (t *Table) FmtDatetime(opts ...FormatOption) (*Table, error) {
	cfg := newFormatConfig(numberDefaults(), opts)
	datePattern, err := lookupStyle(dateStyles, "date", cfg.dateStyle)
	if err != nil {
		return nil, err
	}
	timePattern, err := lookupStyle(timeStyles, "time", cfg.timeStyle)
	if err != nil {
		return nil, err
	}
	cal, err := t.calendar(cfg)
	if err != nil {
		return nil, err
	}
	render := func(tm time.Time) string {
		return formatCLDR(tm, datePattern, cal) + cfg.dateSep + formatCLDR(tm, timePattern, cal)
	}
	return t.register("datetime", cfg, dateTimeFns(cfg, dateLayouts, render), false)
}

func (t *Table) calendar(cfg formatConfig) (calendar, error) {
	loc, err := resolveLocale(cfg.localeName(t.locale))
	if err != nil {
		return calendar{}, err
	}
	return loc.calendar(), nil
}

// FmtMarkdown renders CommonMark text as HTML. It fails for LaTeX output.
func (t *Table) FmtMarkdown(opts ...FormatOption) (*Table, error) {
	cfg := newFormatConfig(numberDefaults(), opts)
	return t.register("markdown", cfg, markdownFns(), false)
}

// FmtImage renders file names or URLs as inline images. A cell may list
// several images separated by commas.
func (t *Table) FmtImage(opts ...FormatOption) (*Table, error) {
	cfg := newFormatConfig(numberDefaults(), opts)
	return t.register("image", cfg, newImageFormatter(cfg).fns(), false)
}

func (c formatConfig) validatePlacement() error {
	if c.placement != "left" && c.placement != "right" {
		return fmt.Errorf("%w: placement must be left or right, got %q", ErrInvalidOption, c.placement)
	}
	return nil
}
