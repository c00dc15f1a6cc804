package gtable

import (
	"strings"

	"github.com/shopspring/decimal"
)

// affixSymbol places symbol around a formatted number. With left placement
// the sign moves in front of the symbol: -$5 rather than $-5.
func affixSymbol(s, symbol string, d decimal.Decimal, cfg formatConfig) string {
	space := ""
	if cfg.inclSpace {
		space = " "
	}
	if cfg.placement == "right" {
		return s + space + symbol
	}
	switch {
	case d.Sign() < 0:
		return "-" + symbol + space + strings.ReplaceAll(s, "-", "")
	case d.Sign() > 0 && cfg.forceSign:
		return "+" + symbol + space + strings.ReplaceAll(s, "+", "")
	default:
		return symbol + space + s
	}
}

func percentFns(cfg formatConfig, sep, dec string) FormatFns {
	nf := cfg.numberFormat(sep, dec)
	nf.nSigFig = 0
	scaleBy := cfg.scaleBy
	if cfg.scaleValues {
		scaleBy *= 100
	}
	return perContext(func(ctx Context) FormatFunc {
		return func(v any) (string, error) {
			if s, ok := nonFinite(v, ctx); ok {
				return s, nil
			}
			d, err := scaled(v, scaleBy)
			if err != nil {
				return "", err
			}
			s := affixSymbol(decimalNotation(d, nf), percentMark(ctx), d, cfg)
			s = signDecorate(s, d.Sign() < 0, cfg.accounting, ctx)
			return applyPattern(cfg.pattern, s, ctx), nil
		}
	})
}

func currencyFns(cfg formatConfig, symbol, sep, dec string) FormatFns {
	nf := cfg.numberFormat(sep, dec)
	nf.nSigFig = 0
	nf.dropTrailingZeros = false
	return perContext(func(ctx Context) FormatFunc {
		sym := symbol
		if sym == "$" {
			sym = dollarMark(ctx)
		}
		return func(v any) (string, error) {
			if s, ok := nonFinite(v, ctx); ok {
				return s, nil
			}
			d, err := scaled(v, cfg.scaleBy)
			if err != nil {
				return "", err
			}
			s := affixSymbol(decimalNotation(d, nf), sym, d, cfg)
			s = signDecorate(s, d.Sign() < 0, cfg.accounting, ctx)
			return applyPattern(cfg.pattern, s, ctx), nil
		}
	})
}

var romanNumerals = []struct {
	value  int64
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// maxRoman is the largest value written as a roman numeral.
const maxRoman = 3899

func toRoman(n int64) string {
	var sb strings.Builder
	for _, r := range romanNumerals {
		for n >= r.value {
			sb.WriteString(r.symbol)
			n -= r.value
		}
	}
	return sb.String()
}

func romanFns(cfg formatConfig) FormatFns {
	return perContext(func(ctx Context) FormatFunc {
		return func(v any) (string, error) {
			if s, ok := nonFinite(v, ctx); ok {
				return s, nil
			}
			d, err := toDecimal(v)
			if err != nil {
				return "", err
			}
			n := d.Abs().Round(0).IntPart()
			var s string
			switch {
			case n == 0:
				s = "N"
			case n > maxRoman:
				return "ex terminis", nil
			default:
				s = toRoman(n)
			}
			if cfg.letterCase == "lower" {
				s = strings.ToLower(s)
			}
			return applyPattern(cfg.pattern, s, ctx), nil
		}
	})
}

var byteUnits = map[string]struct {
	base  int64
	units []string
}{
	"decimal": {1000, []string{"B", "kB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}},
	"binary":  {1024, []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB", "ZiB", "YiB"}},
}

func bytesFns(cfg formatConfig, sep, dec string) FormatFns {
	nf := cfg.numberFormat(sep, dec)
	std := byteUnits[cfg.standard]
	base := decimal.NewFromInt(std.base)
	return perContext(func(ctx Context) FormatFunc {
		return func(v any) (string, error) {
			if s, ok := nonFinite(v, ctx); ok {
				return s, nil
			}
			d, err := toDecimal(v)
			if err != nil {
				return "", err
			}
			d = d.Truncate(0)
			power := 0
			for rest := d.Abs(); rest.GreaterThanOrEqual(base) && power < len(std.units)-1; power++ {
				rest = rest.Div(base)
			}
			value := d
			if power > 0 {
				value = d.Div(base.Pow(decimal.NewFromInt(int64(power))))
			}
			space := ""
			if cfg.inclSpace {
				space = " "
			}
			s := decimalNotation(value, nf) + space + std.units[power]
			s = signDecorate(s, d.Sign() < 0, false, ctx)
			return applyPattern(cfg.pattern, s, ctx), nil
		}
	})
}
