package gtable

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var (
	//go:embed data/locales.yaml
	localesYAML []byte
	//go:embed data/currencies.yaml
	currenciesYAML []byte
)

type localeInfo struct {
	Locale   string `yaml:"locale"`
	Group    string `yaml:"group"`
	Decimal  string `yaml:"decimal"`
	Currency string `yaml:"currency"`
}

type calendar struct {
	Months       []string `yaml:"months"`
	MonthsAbbr   []string `yaml:"months_abbr"`
	Weekdays     []string `yaml:"weekdays"`
	WeekdaysAbbr []string `yaml:"weekdays_abbr"`
	Periods      []string `yaml:"periods"`
}

type localeData struct {
	Defaults  map[string]string   `yaml:"defaults"`
	Locales   []localeInfo        `yaml:"locales"`
	Calendars map[string]calendar `yaml:"calendars"`

	byName map[string]localeInfo
}

var (
	loadLocales = sync.OnceValues(func() (*localeData, error) {
		var d localeData
		if err := yaml.Unmarshal(localesYAML, &d); err != nil {
			return nil, fmt.Errorf("parsing locale data: %w", err)
		}
		d.byName = make(map[string]localeInfo, len(d.Locales))
		for _, l := range d.Locales {
			d.byName[l.Locale] = l
		}
		return &d, nil
	})
	loadCurrencies = sync.OnceValues(func() (map[string]string, error) {
		var symbols map[string]string
		if err := yaml.Unmarshal(currenciesYAML, &symbols); err != nil {
			return nil, fmt.Errorf("parsing currency data: %w", err)
		}
		return symbols, nil
	})
)

// Locales returns the names of the supported locales.
func Locales() []string {
	d, err := loadLocales()
	if err != nil {
		return nil
	}
	out := make([]string, len(d.Locales))
	for i, l := range d.Locales {
		out[i] = l.Locale
	}
	return out
}

// resolveLocale normalizes a locale name ("de_DE" and "de-DE" both resolve
// to "de") and returns its data. An empty name or "und" resolves to "en".
func resolveLocale(name string) (localeInfo, error) {
	d, err := loadLocales()
	if err != nil {
		return localeInfo{}, err
	}
	name = strings.ReplaceAll(strings.TrimSpace(name), "_", "-")
	if name == "" || name == "und" {
		name = "en"
	}
	if base, ok := d.Defaults[name]; ok {
		name = base
	}
	tag, err := language.Parse(name)
	if err != nil {
		return localeInfo{}, fmt.Errorf("%w: locale %q: %v", ErrInvalidOption, name, err)
	}
	if info, ok := d.byName[tag.String()]; ok {
		return info, nil
	}
	if info, ok := d.byName[name]; ok {
		return info, nil
	}
	return localeInfo{}, fmt.Errorf("%w: locale %q is not supported", ErrInvalidOption, name)
}

func (l localeInfo) groupMark() string {
	if l.Group == "" || l.Group == " " {
		return " "
	}
	return l.Group
}

func (l localeInfo) calendar() calendar {
	d, err := loadLocales()
	if err != nil {
		return calendar{}
	}
	base, _ := language.Make(l.Locale).Base()
	if c, ok := d.Calendars[base.String()]; ok {
		return c
	}
	return d.Calendars["en"]
}

// currencyInfo validates an ISO 4217 code and returns its display symbol and
// standard number of decimal digits.
func currencyInfo(code string) (symbol string, digits int, err error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", 0, fmt.Errorf("%w: currency %q: %v", ErrInvalidOption, code, err)
	}
	symbols, err := loadCurrencies()
	if err != nil {
		return "", 0, err
	}
	digits, _ = currency.Standard.Rounding(unit)
	if s, ok := symbols[unit.String()]; ok {
		return s, digits, nil
	}
	return unit.String(), digits, nil
}
