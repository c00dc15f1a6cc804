package gtable

import (
	"fmt"
	"log/slog"
	"slices"
)

// Option configures a [Table] at construction.
type Option func(*Table)

// WithLogger sets the logger used while building. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithLocale sets the table-wide locale used by formatters that take no
// locale of their own.
func WithLocale(locale string) Option {
	return func(t *Table) { t.locale = locale }
}

// FormatOption configures a formatter or substitution.
type FormatOption func(*formatConfig)

type formatConfig struct {
	columns   []string
	rows      []int
	rowsSet   bool
	rowsWhere string

	decimals            int
	decimalsSet         bool
	nSigFig             int
	nSigFigSet          bool
	dropTrailingZeros   bool
	dropTrailingDecMark bool
	useSeps             bool
	accounting          bool
	scaleBy             float64
	scaleValues         bool
	compact             bool
	pattern             string
	sepMark             string
	decMark             string
	forceSign           bool
	locale              string

	currency    string
	useSubunits bool
	placement   string
	inclSpace   bool

	expStyle   string
	forceSignM bool
	forceSignN bool

	standard   string
	letterCase string

	dateStyle string
	timeStyle string
	dateSep   string

	height      string
	width       string
	sep         string
	path        string
	filePattern string
	encode      bool

	text    string
	textSet bool
}

// numberDefaults are the settings shared by the numeric formatters.
func numberDefaults() formatConfig {
	return formatConfig{
		decimals:            2,
		dropTrailingDecMark: true,
		useSeps:             true,
		scaleBy:             1,
		scaleValues:         true,
		pattern:             "{x}",
		sepMark:             ",",
		decMark:             ".",
		useSubunits:         true,
		placement:           "left",
		expStyle:            "x10n",
		standard:            "decimal",
		letterCase:          "upper",
		dateStyle:           "iso",
		timeStyle:           "iso",
		dateSep:             " ",
		sep:                 " ",
		filePattern:         "{}",
		encode:              true,
	}
}

func newFormatConfig(base formatConfig, opts []FormatOption) formatConfig {
	cfg := base
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c formatConfig) validateSigFig() error {
	if c.nSigFigSet && c.nSigFig < 1 {
		return fmt.Errorf("%w: significant figures must be at least 1, got %d", ErrInvalidOption, c.nSigFig)
	}
	return nil
}

// Columns targets the named columns. Without it every column is targeted.
func Columns(names ...string) FormatOption {
	return func(c *formatConfig) { c.columns = slices.Clone(names) }
}

// Rows targets the given row indices. Without it every row is targeted.
func Rows(rows ...int) FormatOption {
	return func(c *formatConfig) {
		c.rows = slices.Clone(rows)
		c.rowsSet = true
	}
}

// RowsWhere targets rows for which the boolean expression is true. The
// expression sees each row's values by column name, for example
// `price > 100 && region == "EU"`.
func RowsWhere(expr string) FormatOption {
	return func(c *formatConfig) { c.rowsWhere = expr }
}

// Decimals sets the number of decimal places.
func Decimals(n int) FormatOption {
	return func(c *formatConfig) {
		c.decimals = n
		c.decimalsSet = true
	}
}

// SigFig formats to n significant figures, overriding Decimals.
func SigFig(n int) FormatOption {
	return func(c *formatConfig) {
		c.nSigFig = n
		c.nSigFigSet = true
	}
}

// DropTrailingZeros removes trailing zeros from the decimal part.
func DropTrailingZeros(b bool) FormatOption {
	return func(c *formatConfig) { c.dropTrailingZeros = b }
}

// DropTrailingDecMark removes a decimal mark with nothing after it.
func DropTrailingDecMark(b bool) FormatOption {
	return func(c *formatConfig) { c.dropTrailingDecMark = b }
}

// UseSeps toggles digit grouping separators.
func UseSeps(b bool) FormatOption {
	return func(c *formatConfig) { c.useSeps = b }
}

// Accounting wraps negative values in parentheses instead of using a minus.
func Accounting(b bool) FormatOption {
	return func(c *formatConfig) { c.accounting = b }
}

// ScaleBy multiplies values before formatting.
func ScaleBy(f float64) FormatOption {
	return func(c *formatConfig) { c.scaleBy = f }
}

// ScaleValues controls whether percentages are multiplied by 100.
func ScaleValues(b bool) FormatOption {
	return func(c *formatConfig) { c.scaleValues = b }
}

// Compact abbreviates large numbers with K, M, B, T and Q suffixes.
func Compact(b bool) FormatOption {
	return func(c *formatConfig) { c.compact = b }
}

// Pattern decorates the formatted value; "{x}" is the value.
func Pattern(p string) FormatOption {
	return func(c *formatConfig) { c.pattern = p }
}

// SepMark sets the digit grouping separator.
func SepMark(s string) FormatOption {
	return func(c *formatConfig) { c.sepMark = s }
}

// DecMark sets the decimal mark.
func DecMark(s string) FormatOption {
	return func(c *formatConfig) { c.decMark = s }
}

// ForceSign prefixes positive values with "+".
func ForceSign(b bool) FormatOption {
	return func(c *formatConfig) { c.forceSign = b }
}

// Locale uses a locale's separators, decimal mark, currency and month names.
func Locale(name string) FormatOption {
	return func(c *formatConfig) { c.locale = name }
}

// Currency sets the ISO 4217 currency code.
func Currency(code string) FormatOption {
	return func(c *formatConfig) { c.currency = code }
}

// UseSubunits controls whether currencies show their minor unit digits when
// Decimals is not set.
func UseSubunits(b bool) FormatOption {
	return func(c *formatConfig) { c.useSubunits = b }
}

// Placement puts a currency or percent symbol on the "left" or "right".
func Placement(p string) FormatOption {
	return func(c *formatConfig) { c.placement = p }
}

// IncludeSpace separates the value from its symbol or unit with a space.
func IncludeSpace(b bool) FormatOption {
	return func(c *formatConfig) { c.inclSpace = b }
}

// ExpStyle sets the exponent style of scientific and engineering notation:
// "x10n", "low-ten", "E", "E1" or any single letter optionally followed by 1.
func ExpStyle(s string) FormatOption {
	return func(c *formatConfig) { c.expStyle = s }
}

// ForceSignM prefixes positive mantissas with "+".
func ForceSignM(b bool) FormatOption {
	return func(c *formatConfig) { c.forceSignM = b }
}

// ForceSignN prefixes positive exponents with "+".
func ForceSignN(b bool) FormatOption {
	return func(c *formatConfig) { c.forceSignN = b }
}

// Standard selects "decimal" (kB, base 1000) or "binary" (KiB, base 1024)
// byte units.
func Standard(s string) FormatOption {
	return func(c *formatConfig) { c.standard = s }
}

// Case selects "upper" or "lower" roman numerals.
func Case(s string) FormatOption {
	return func(c *formatConfig) { c.letterCase = s }
}

// DateStyle selects a named date style such as "iso" or "month_day_year".
func DateStyle(s string) FormatOption {
	return func(c *formatConfig) { c.dateStyle = s }
}

// TimeStyle selects a named time style such as "iso" or "h_m_p".
func TimeStyle(s string) FormatOption {
	return func(c *formatConfig) { c.timeStyle = s }
}

// DateTimeSep sets the text between date and time in FmtDatetime.
func DateTimeSep(s string) FormatOption {
	return func(c *formatConfig) { c.dateSep = s }
}

// ImageHeight sets the CSS height of images.
func ImageHeight(h string) FormatOption {
	return func(c *formatConfig) { c.height = h }
}

// ImageWidth sets the CSS width of images.
func ImageWidth(w string) FormatOption {
	return func(c *formatConfig) { c.width = w }
}

// ImageSep sets the text between images of one cell.
func ImageSep(s string) FormatOption {
	return func(c *formatConfig) { c.sep = s }
}

// ImagePath sets a directory or base URL prepended to image file names.
func ImagePath(p string) FormatOption {
	return func(c *formatConfig) { c.path = p }
}

// FilePattern builds file names from cell values; "{}" is the value.
func FilePattern(p string) FormatOption {
	return func(c *formatConfig) { c.filePattern = p }
}

// Encode embeds local images as base64 data URIs.
func Encode(b bool) FormatOption {
	return func(c *formatConfig) { c.encode = b }
}

// MissingText sets the replacement used by [Table.SubMissing].
func MissingText(s string) FormatOption {
	return func(c *formatConfig) {
		c.text = s
		c.textSet = true
	}
}

// ZeroText sets the replacement used by [Table.SubZero].
func ZeroText(s string) FormatOption {
	return func(c *formatConfig) {
		c.text = s
		c.textSet = true
	}
}
