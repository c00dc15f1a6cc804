package gtable

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

var dateStyles = map[string]string{
	"iso":                 "y-MM-dd",
	"wday_month_day_year": "EEEE, MMMM d, y",
	"wd_m_day_year":       "EEE, MMM d, y",
	"wday_day_month_year": "EEEE d MMMM y",
	"month_day_year":      "MMMM d, y",
	"m_day_year":          "MMM d, y",
	"day_m_year":          "d MMM y",
	"day_month_year":      "d MMMM y",
	"day_month":           "d MMMM",
	"day_m":               "d MMM",
	"year":                "y",
	"month":               "MMMM",
	"day":                 "dd",
	"year.mn.day":         "y/MM/dd",
	"y.mn.day":            "yy/MM/dd",
	"year_week":           "y-'W'ww",
	"year_quarter":        "y-'Q'Q",
}

var timeStyles = map[string]string{
	"iso":       "HH:mm:ss",
	"iso-short": "HH:mm",
	"h_m_s_p":   "h:mm:ss a",
	"h_m_p":     "h:mm a",
	"h_p":       "h a",
}

// DateStyles returns the names accepted by [DateStyle].
func DateStyles() []string { return sortedKeys(dateStyles) }

// TimeStyles returns the names accepted by [TimeStyle].
func TimeStyles() []string { return sortedKeys(timeStyles) }

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func lookupStyle(styles map[string]string, kind, name string) (string, error) {
	p, ok := styles[name]
	if !ok {
		return "", fmt.Errorf("%w: %s style %q (valid: %s)", ErrInvalidOption, kind, name, strings.Join(sortedKeys(styles), ", "))
	}
	return p, nil
}

var (
	dateLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		time.DateOnly,
	}
	timeLayouts = []string{
		"15:04:05.999999999",
		"15:04",
	}
)

func parseLayouts(s string, layouts []string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// toTime converts a time.Time or an ISO 8601 string. Date inputs accept full
// timestamps; time inputs accept clock strings only.
func toTime(v any, layouts []string) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case *time.Time:
		return *x, nil
	case string:
		if t, ok := parseLayouts(x, layouts); ok {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("%w: %q is not an ISO 8601 value", ErrUnsupportedValue, x)
	default:
		return time.Time{}, fmt.Errorf("%w: %T is not a date or time", ErrUnsupportedValue, v)
	}
}

// formatCLDR renders t with a CLDR date pattern such as "EEE, MMM d, y".
// Quoted text is literal and '' is a single quote.
func formatCLDR(t time.Time, pattern string, cal calendar) string {
	var sb strings.Builder
	r := []rune(pattern)
	for i := 0; i < len(r); {
		c := r[i]
		if c == '\'' {
			j := i + 1
			if j < len(r) && r[j] == '\'' {
				sb.WriteRune('\'')
				i += 2
				continue
			}
			for j < len(r) && r[j] != '\'' {
				sb.WriteRune(r[j])
				j++
			}
			i = j + 1
			continue
		}
		if !isASCIILetter(c) {
			sb.WriteRune(c)
			i++
			continue
		}
		n := 1
		for i+n < len(r) && r[i+n] == c {
			n++
		}
		sb.WriteString(cldrField(t, c, n, cal))
		i += n
	}
	return sb.String()
}

func isASCIILetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func cldrField(t time.Time, c rune, n int, cal calendar) string {
	pad := func(v int) string {
		s := strconv.Itoa(v)
		if len(s) < n {
			s = strings.Repeat("0", n-len(s)) + s
		}
		return s
	}
	switch c {
	case 'y':
		if n == 2 {
			return fmt.Sprintf("%02d", t.Year()%100)
		}
		return pad(t.Year())
	case 'M', 'L':
		switch {
		case n >= 4:
			return pick(cal.Months, int(t.Month())-1)
		case n == 3:
			return pick(cal.MonthsAbbr, int(t.Month())-1)
		default:
			return pad(int(t.Month()))
		}
	case 'd':
		return pad(t.Day())
	case 'E':
		if n >= 4 {
			return pick(cal.Weekdays, int(t.Weekday()))
		}
		return pick(cal.WeekdaysAbbr, int(t.Weekday()))
	case 'Q':
		return pad((int(t.Month())-1)/3 + 1)
	case 'w':
		_, week := t.ISOWeek()
		return pad(week)
	case 'H':
		return pad(t.Hour())
	case 'h':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		return pad(h)
	case 'm':
		return pad(t.Minute())
	case 's':
		return pad(t.Second())
	case 'a':
		if t.Hour() < 12 {
			return pick(cal.Periods, 0)
		}
		return pick(cal.Periods, 1)
	default:
		return strings.Repeat(string(c), n)
	}
}

func pick(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return ""
	}
	return names[i]
}

func dateTimeFns(cfg formatConfig, layouts []string, render func(time.Time) string) FormatFns {
	return perContext(func(ctx Context) FormatFunc {
		return func(v any) (string, error) {
			t, err := toTime(v, layouts)
			if err != nil {
				return "", err
			}
			return applyPattern(cfg.pattern, render(t), ctx), nil
		}
	})
}
