package gtable

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// numberFormat holds the settings of the decimal notation core.
type numberFormat struct {
	decimals            int
	nSigFig             int
	dropTrailingZeros   bool
	dropTrailingDecMark bool
	sepMark             string
	decMark             string
	forceSign           bool
}

// marks resolves the grouping and decimal marks. A locale, from the options
// or else from the table, takes precedence over SepMark and DecMark.
func (c formatConfig) marks(tableLocale string) (sep, dec string, err error) {
	sep, dec = c.sepMark, c.decMark
	if name := c.localeName(tableLocale); name != "" {
		loc, err := resolveLocale(name)
		if err != nil {
			return "", "", err
		}
		sep, dec = loc.groupMark(), loc.Decimal
	}
	if !c.useSeps {
		sep = ""
	}
	return sep, dec, nil
}

func (c formatConfig) localeName(tableLocale string) string {
	if c.locale != "" {
		return c.locale
	}
	return tableLocale
}

func (c formatConfig) numberFormat(sep, dec string) numberFormat {
	nf := numberFormat{
		decimals:            c.decimals,
		dropTrailingZeros:   c.dropTrailingZeros,
		dropTrailingDecMark: c.dropTrailingDecMark,
		sepMark:             sep,
		decMark:             dec,
		forceSign:           c.forceSign,
	}
	if c.nSigFigSet {
		nf.nSigFig = c.nSigFig
	}
	return nf
}

func (c formatConfig) validateNumeric() error {
	if err := c.validateSigFig(); err != nil {
		return err
	}
	if c.decimals < 0 {
		return fmt.Errorf("%w: decimals must not be negative, got %d", ErrInvalidOption, c.decimals)
	}
	return nil
}

// decimalNotation renders d with a plain "-" for negative values.
func decimalNotation(d decimal.Decimal, nf numberFormat) string {
	var result string
	if nf.nSigFig > 0 {
		result = sigFigNotation(d, nf)
	} else {
		result = fixedNotation(d, nf)
	}
	if nf.dropTrailingDecMark {
		result = strings.TrimSuffix(result, nf.decMark)
	} else if !strings.Contains(result, nf.decMark) {
		result += nf.decMark
	}
	if nf.forceSign && d.Sign() > 0 {
		result = "+" + result
	}
	return result
}

func fixedNotation(d decimal.Decimal, nf numberFormat) string {
	s := d.Abs().StringFixed(int32(nf.decimals))
	intPart, fracPart, _ := strings.Cut(s, ".")
	if nf.dropTrailingZeros {
		fracPart = strings.TrimRight(fracPart, "0")
	}
	return joinNumber(d.Sign() < 0, intPart, fracPart, nf)
}

// sigFigNotation rounds d to nf.nSigFig significant figures. Zero keeps
// nSigFig-1 decimal places.
func sigFigNotation(d decimal.Decimal, nf numberFormat) string {
	abs := d.Abs()
	places := nf.nSigFig - 1
	if !abs.IsZero() {
		abs = abs.Round(int32(nf.nSigFig - 1 - adjustedExponent(abs)))
		places = nf.nSigFig - 1 - adjustedExponent(abs)
	}
	if places < 0 {
		places = 0
	}
	intPart, fracPart, _ := strings.Cut(abs.StringFixed(int32(places)), ".")
	return joinNumber(d.Sign() < 0, intPart, fracPart, nf)
}

func joinNumber(negative bool, intPart, fracPart string, nf numberFormat) string {
	var sb strings.Builder
	if negative {
		sb.WriteByte('-')
	}
	sb.WriteString(groupDigits(intPart, nf.sepMark))
	if fracPart != "" {
		sb.WriteString(nf.decMark)
		sb.WriteString(fracPart)
	}
	return sb.String()
}

// groupDigits inserts sep between groups of three integer digits.
func groupDigits(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

// adjustedExponent returns floor(log10(|d|)) for non-zero d.
func adjustedExponent(d decimal.Decimal) int {
	c := d.Coefficient()
	c.Abs(c)
	return len(c.String()) + int(d.Exponent()) - 1
}

var compactSuffixes = []string{"", "K", "M", "B", "T", "Q"}

// compactNotation scales d into the thousands range and appends a suffix.
func compactNotation(d decimal.Decimal, nf numberFormat) string {
	if d.IsZero() {
		return "0"
	}
	idx := adjustedExponent(d) / 3
	idx = max(0, min(len(compactSuffixes)-1, idx))
	return decimalNotation(d.Shift(int32(-3*idx)), nf) + compactSuffixes[idx]
}

// signDecorate replaces the plain minus of a formatted negative value with
// the context minus mark, or with parentheses for accounting.
func signDecorate(s string, negative, accounting bool, ctx Context) string {
	if !negative {
		return s
	}
	if accounting {
		return "(" + strings.ReplaceAll(s, "-", "") + ")"
	}
	return strings.ReplaceAll(s, "-", minusMark(ctx))
}

func scaled(v any, scaleBy float64) (decimal.Decimal, error) {
	d, err := toDecimal(v)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if scaleBy != 1 {
		d = d.Mul(decimal.NewFromFloat(scaleBy))
	}
	return d, nil
}

// numberFns builds the formatter behind FmtNumber and FmtInteger.
func numberFns(cfg formatConfig, sep, dec string) FormatFns {
	nf := cfg.numberFormat(sep, dec)
	return perContext(func(ctx Context) FormatFunc {
		return func(v any) (string, error) {
			if s, ok := nonFinite(v, ctx); ok {
				return s, nil
			}
			d, err := scaled(v, cfg.scaleBy)
			if err != nil {
				return "", err
			}
			var s string
			if cfg.compact {
				s = compactNotation(d, nf)
			} else {
				s = decimalNotation(d, nf)
			}
			s = signDecorate(s, d.Sign() < 0, cfg.accounting, ctx)
			return applyPattern(cfg.pattern, s, ctx), nil
		}
	})
}

var expLetterRe = regexp.MustCompile(`^[a-zA-Z]1?$`)

// sciParts rounds |d| to n significant figures and splits it into a mantissa
// string and a power of ten that is a multiple of step.
func sciParts(d decimal.Decimal, n, step int, dec string) (string, int) {
	abs := d.Abs()
	if abs.IsZero() {
		return strings.Replace(abs.StringFixed(int32(n-1)), ".", dec, 1), 0
	}
	abs = abs.Round(int32(n - 1 - adjustedExponent(abs)))
	e := adjustedExponent(abs)
	power := e
	if step > 1 {
		power = step * floorDiv(e, step)
	}
	places := max(0, n-1-(e-power))
	m := abs.Shift(int32(-power)).StringFixed(int32(places))
	return strings.Replace(m, ".", dec, 1), power
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func expMarks(ctx Context) (string, string) {
	switch ctx {
	case ContextHTML:
		return " × 10<sup style='font-size: 65%;'>", "</sup>"
	case ContextLaTeX:
		return " $\\times$ 10\\textsuperscript{", "}"
	default:
		return " × 10^", ""
	}
}

func expString(style string) string {
	switch {
	case style == "low-ten":
		return "<sub style='font-size: 65%;'>10</sub>"
	case expLetterRe.MatchString(style):
		return style[:1]
	default:
		return "E"
	}
}

func validExpStyle(style string) bool {
	return style == "x10n" || style == "low-ten" || expLetterRe.MatchString(style)
}

// sciFns builds the scientific (step 1) and engineering (step 3) formatters.
func sciFns(cfg formatConfig, dec string, step int) FormatFns {
	n := cfg.decimals + 1
	if cfg.nSigFigSet {
		n = cfg.nSigFig
	}
	return perContext(func(ctx Context) FormatFunc {
		return func(v any) (string, error) {
			if s, ok := nonFinite(v, ctx); ok {
				return s, nil
			}
			d, err := scaled(v, cfg.scaleBy)
			if err != nil {
				return "", err
			}
			m, power := sciParts(d, n, step, dec)
			if cfg.dropTrailingZeros && strings.Contains(m, dec) {
				m = strings.TrimRight(m, "0")
			}
			if cfg.dropTrailingDecMark {
				m = strings.TrimSuffix(m, dec)
			}
			switch {
			case d.Sign() < 0:
				m = "-" + m
			case d.Sign() > 0 && cfg.forceSignM:
				m = "+" + m
			}
			minus := minusMark(ctx)

			var s string
			if cfg.expStyle == "x10n" {
				np := strconv.Itoa(power)
				if cfg.forceSignN && power >= 0 {
					np = "+" + np
				}
				m = strings.ReplaceAll(m, "-", minus)
				np = strings.ReplaceAll(np, "-", minus)
				if power == 0 {
					s = m
				} else {
					pre, post := expMarks(ctx)
					s = m + pre + np + post
				}
			} else {
				width := 2
				if expLetterRe.MatchString(cfg.expStyle) && strings.HasSuffix(cfg.expStyle, "1") {
					width = 1
				}
				digits := strconv.Itoa(absInt(power))
				if pad := width - len(digits); pad > 0 {
					digits = strings.Repeat("0", pad) + digits
				}
				switch {
				case power < 0:
					digits = "-" + digits
				case cfg.forceSignN:
					digits = "+" + digits
				}
				s = strings.ReplaceAll(m, "-", minus) + expString(cfg.expStyle) + strings.ReplaceAll(digits, "-", minus)
			}
			return applyPattern(cfg.pattern, s, ctx), nil
		}
	})
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
