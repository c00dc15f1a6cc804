package gtable_test

import (
	"encoding/base64"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bjaus/gtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type valCase struct {
	fn    gtable.ValFunc
	input any
	opts  []gtable.FormatOption
	want  []string
}

func runValCases(t *testing.T, tests map[string]valCase) {
	t.Helper()
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.fn(tt.input, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValFmtNumber(t *testing.T) {
	t.Parallel()
	runValCases(t, map[string]valCase{
		"defaults":            {fn: gtable.ValFmtNumber, input: []float64{1234.567, -1.5}, want: []string{"1,234.57", "−1.50"}},
		"scalar":              {fn: gtable.ValFmtNumber, input: 3, want: []string{"3.00"}},
		"missing scalar":      {fn: gtable.ValFmtNumber, input: nil, want: []string{"NA"}},
		"missing in slice":    {fn: gtable.ValFmtNumber, input: []any{1, nil, math.NaN()}, want: []string{"1.00", "NA", "NA"}},
		"infinities":          {fn: gtable.ValFmtNumber, input: []float64{math.Inf(1), math.Inf(-1)}, want: []string{"Inf", "−Inf"}},
		"decimals":            {fn: gtable.ValFmtNumber, input: 2.5, opts: []gtable.FormatOption{gtable.Decimals(0)}, want: []string{"3"}},
		"sigfig small":        {fn: gtable.ValFmtNumber, input: 0.0012345, opts: []gtable.FormatOption{gtable.SigFig(3)}, want: []string{"0.00123"}},
		"sigfig carry":        {fn: gtable.ValFmtNumber, input: 9.99, opts: []gtable.FormatOption{gtable.SigFig(2)}, want: []string{"10"}},
		"compact":             {fn: gtable.ValFmtNumber, input: 1234567, opts: []gtable.FormatOption{gtable.Compact(true)}, want: []string{"1.23M"}},
		"pattern":             {fn: gtable.ValFmtNumber, input: 5, opts: []gtable.FormatOption{gtable.Pattern("{x} units")}, want: []string{"5.00 units"}},
		"accounting":          {fn: gtable.ValFmtNumber, input: -5, opts: []gtable.FormatOption{gtable.Accounting(true)}, want: []string{"(5.00)"}},
		"force sign":          {fn: gtable.ValFmtNumber, input: 5, opts: []gtable.FormatOption{gtable.ForceSign(true)}, want: []string{"+5.00"}},
		"custom marks":        {fn: gtable.ValFmtNumber, input: 1234.5, opts: []gtable.FormatOption{gtable.SepMark("."), gtable.DecMark(",")}, want: []string{"1.234,50"}},
		"locale fr":           {fn: gtable.ValFmtNumber, input: 1234.5, opts: []gtable.FormatOption{gtable.Locale("fr")}, want: []string{"1 234,50"}},
		"locale de":           {fn: gtable.ValFmtNumber, input: 1234.5, opts: []gtable.FormatOption{gtable.Locale("de_DE")}, want: []string{"1.234,50"}},
		"no seps":             {fn: gtable.ValFmtNumber, input: 1234.5, opts: []gtable.FormatOption{gtable.UseSeps(false)}, want: []string{"1234.50"}},
		"drop trailing zeros": {fn: gtable.ValFmtNumber, input: []float64{2, 2.5}, opts: []gtable.FormatOption{gtable.DropTrailingZeros(true)}, want: []string{"2", "2.5"}},
		"keep decimal mark":   {fn: gtable.ValFmtNumber, input: 2, opts: []gtable.FormatOption{gtable.Decimals(0), gtable.DropTrailingDecMark(false)}, want: []string{"2."}},
		"scale by":            {fn: gtable.ValFmtNumber, input: 1500, opts: []gtable.FormatOption{gtable.ScaleBy(0.001), gtable.Decimals(1)}, want: []string{"1.5"}},
		"numeric strings":     {fn: gtable.ValFmtNumber, input: []string{"12.5"}, want: []string{"12.50"}},
	})
}

func TestValFmtInteger(t *testing.T) {
	t.Parallel()
	runValCases(t, map[string]valCase{
		"no seps":    {fn: gtable.ValFmtInteger, input: []float64{100000.1}, opts: []gtable.FormatOption{gtable.UseSeps(false)}, want: []string{"100000"}},
		"seps":       {fn: gtable.ValFmtInteger, input: 1234567, want: []string{"1,234,567"}},
		"rounds":     {fn: gtable.ValFmtInteger, input: 2.5, want: []string{"3"}},
		"negative":   {fn: gtable.ValFmtInteger, input: -42, want: []string{"−42"}},
		"ignores dp": {fn: gtable.ValFmtInteger, input: 7, opts: []gtable.FormatOption{gtable.Decimals(3)}, want: []string{"7"}},
	})
}

func TestValFmtScientific(t *testing.T) {
	t.Parallel()
	runValCases(t, map[string]valCase{
		"html superscript": {fn: gtable.ValFmtScientific, input: 12345.678, want: []string{"1.23 × 10<sup style='font-size: 65%;'>4</sup>"}},
		"order zero":       {fn: gtable.ValFmtScientific, input: 1.5, want: []string{"1.50"}},
		"negative power":   {fn: gtable.ValFmtScientific, input: 0.00012, want: []string{"1.20 × 10<sup style='font-size: 65%;'>−4</sup>"}},
		"E style":          {fn: gtable.ValFmtScientific, input: 12345.678, opts: []gtable.FormatOption{gtable.ExpStyle("E")}, want: []string{"1.23E04"}},
		"single digit":     {fn: gtable.ValFmtScientific, input: 12345.678, opts: []gtable.FormatOption{gtable.ExpStyle("e1")}, want: []string{"1.23e4"}},
		"sign exponent":    {fn: gtable.ValFmtScientific, input: 12345.678, opts: []gtable.FormatOption{gtable.ExpStyle("E"), gtable.ForceSignN(true)}, want: []string{"1.23E+04"}},
		"zero":             {fn: gtable.ValFmtScientific, input: 0, want: []string{"0.00"}},
	})
}

func TestValFmtEngineering(t *testing.T) {
	t.Parallel()
	runValCases(t, map[string]valCase{
		"thousands": {fn: gtable.ValFmtEngineering, input: 12345.678, want: []string{"12.3 × 10<sup style='font-size: 65%;'>3</sup>"}},
		"units":     {fn: gtable.ValFmtEngineering, input: 42, want: []string{"42.0"}},
		"millis":    {fn: gtable.ValFmtEngineering, input: 0.0015, opts: []gtable.FormatOption{gtable.ExpStyle("E")}, want: []string{"1.50E−03"}},
	})
}

func TestValFmtPercent(t *testing.T) {
	t.Parallel()
	runValCases(t, map[string]valCase{
		"scaled":     {fn: gtable.ValFmtPercent, input: []float64{0.1234, -0.05}, want: []string{"12.34%", "−5.00%"}},
		"not scaled": {fn: gtable.ValFmtPercent, input: 12.5, opts: []gtable.FormatOption{gtable.ScaleValues(false), gtable.Decimals(1)}, want: []string{"12.5%"}},
		"left":       {fn: gtable.ValFmtPercent, input: 0.5, opts: []gtable.FormatOption{gtable.Placement("left"), gtable.Decimals(0)}, want: []string{"%50"}},
		"space":      {fn: gtable.ValFmtPercent, input: 0.5, opts: []gtable.FormatOption{gtable.IncludeSpace(true), gtable.Decimals(0)}, want: []string{"50 %"}},
	})
}

func TestValFmtCurrency(t *testing.T) {
	t.Parallel()
	runValCases(t, map[string]valCase{
		"usd":          {fn: gtable.ValFmtCurrency, input: []float64{1234.5, -5}, want: []string{"$1,234.50", "−$5.00"}},
		"accounting":   {fn: gtable.ValFmtCurrency, input: -5, opts: []gtable.FormatOption{gtable.Accounting(true)}, want: []string{"($5.00)"}},
		"eur":          {fn: gtable.ValFmtCurrency, input: 1234.5, opts: []gtable.FormatOption{gtable.Currency("EUR")}, want: []string{"€1,234.50"}},
		"jpy":          {fn: gtable.ValFmtCurrency, input: 1234.5, opts: []gtable.FormatOption{gtable.Currency("JPY")}, want: []string{"¥1,235"}},
		"no subunits":  {fn: gtable.ValFmtCurrency, input: 1234.5, opts: []gtable.FormatOption{gtable.UseSubunits(false)}, want: []string{"$1,235"}},
		"locale":       {fn: gtable.ValFmtCurrency, input: 1234.5, opts: []gtable.FormatOption{gtable.Locale("de")}, want: []string{"€1.234,50"}},
		"right placed": {fn: gtable.ValFmtCurrency, input: 10, opts: []gtable.FormatOption{gtable.Currency("EUR"), gtable.Placement("right"), gtable.IncludeSpace(true)}, want: []string{"10.00 €"}},
	})
}

func TestValFmtRoman(t *testing.T) {
	t.Parallel()
	runValCases(t, map[string]valCase{
		"upper":       {fn: gtable.ValFmtRoman, input: []int{1994, 4}, want: []string{"MCMXCIV", "IV"}},
		"lower":       {fn: gtable.ValFmtRoman, input: 4, opts: []gtable.FormatOption{gtable.Case("lower")}, want: []string{"iv"}},
		"zero":        {fn: gtable.ValFmtRoman, input: 0, want: []string{"N"}},
		"too large":   {fn: gtable.ValFmtRoman, input: 4000, want: []string{"ex terminis"}},
		"rounded abs": {fn: gtable.ValFmtRoman, input: -2.6, want: []string{"III"}},
	})
}

func TestValFmtBytes(t *testing.T) {
	t.Parallel()
	runValCases(t, map[string]valCase{
		"decimal":  {fn: gtable.ValFmtBytes, input: []int{1500, 999}, want: []string{"1.5 kB", "999 B"}},
		"binary":   {fn: gtable.ValFmtBytes, input: 1024, opts: []gtable.FormatOption{gtable.Standard("binary")}, want: []string{"1 KiB"}},
		"megabyte": {fn: gtable.ValFmtBytes, input: 2500000, want: []string{"2.5 MB"}},
		"no space": {fn: gtable.ValFmtBytes, input: 1500, opts: []gtable.FormatOption{gtable.IncludeSpace(false)}, want: []string{"1.5kB"}},
	})
}

func TestValFmtDateTime(t *testing.T) {
	t.Parallel()
	runValCases(t, map[string]valCase{
		"date iso":            {fn: gtable.ValFmtDate, input: "2024-03-05", want: []string{"2024-03-05"}},
		"date long":           {fn: gtable.ValFmtDate, input: "2024-03-05", opts: []gtable.FormatOption{gtable.DateStyle("month_day_year")}, want: []string{"March 5, 2024"}},
		"date german":         {fn: gtable.ValFmtDate, input: "2024-03-05", opts: []gtable.FormatOption{gtable.DateStyle("day_month_year"), gtable.Locale("de")}, want: []string{"5 März 2024"}},
		"date week":           {fn: gtable.ValFmtDate, input: "2024-03-05", opts: []gtable.FormatOption{gtable.DateStyle("year_week")}, want: []string{"2024-W10"}},
		"date quarter":        {fn: gtable.ValFmtDate, input: "2024-03-05", opts: []gtable.FormatOption{gtable.DateStyle("year_quarter")}, want: []string{"2024-Q1"}},
		"date from time":      {fn: gtable.ValFmtDate, input: time.Date(2024, 12, 25, 8, 0, 0, 0, time.UTC), want: []string{"2024-12-25"}},
		"date from timestamp": {fn: gtable.ValFmtDate, input: "2024-03-05T14:35:00Z", want: []string{"2024-03-05"}},
		"time 12 hour":        {fn: gtable.ValFmtTime, input: "14:35:00", opts: []gtable.FormatOption{gtable.TimeStyle("h_m_p")}, want: []string{"2:35 PM"}},
		"time short":          {fn: gtable.ValFmtTime, input: "09:05", opts: []gtable.FormatOption{gtable.TimeStyle("iso-short")}, want: []string{"09:05"}},
		"datetime":            {fn: gtable.ValFmtDatetime, input: "2024-03-05T14:35:00", want: []string{"2024-03-05 14:35:00"}},
		"datetime sep":        {fn: gtable.ValFmtDatetime, input: "2024-03-05 14:35", opts: []gtable.FormatOption{gtable.DateTimeSep("T")}, want: []string{"2024-03-05T14:35:00"}},
	})
}

func TestValFmtMarkdown(t *testing.T) {
	t.Parallel()
	runValCases(t, map[string]valCase{
		"bold":     {fn: gtable.ValFmtMarkdown, input: "**bold**", want: []string{"<strong>bold</strong>"}},
		"link":     {fn: gtable.ValFmtMarkdown, input: "[x](https://example.com)", want: []string{`<a href="https://example.com">x</a>`}},
		"plain":    {fn: gtable.ValFmtMarkdown, input: []string{"a", "b"}, want: []string{"a", "b"}},
		"raw html": {fn: gtable.ValFmtMarkdown, input: "a <x> *b*", want: []string{"a <x> <em>b</em>"}},
	})
}

func TestValFmtImage(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	png := []byte{0x89, 'P', 'N', 'G'}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.png"), png, 0o600))
	encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	runValCases(t, map[string]valCase{
		"url": {
			fn:    gtable.ValFmtImage,
			input: "https://example.com/a.png",
			want:  []string{`<span style="white-space:nowrap;"><img src="https://example.com/a.png" style="height: 2em;vertical-align: middle;"></span>`},
		},
		"url base path": {
			fn:    gtable.ValFmtImage,
			input: "a.png, b.png",
			opts:  []gtable.FormatOption{gtable.ImagePath("https://example.com/img/"), gtable.ImageWidth("10px")},
			want: []string{`<span style="white-space:nowrap;">` +
				`<img src="https://example.com/img/a.png" style="width: 10px;vertical-align: middle;"> ` +
				`<img src="https://example.com/img/b.png" style="width: 10px;vertical-align: middle;"></span>`},
		},
		"local file": {
			fn:    gtable.ValFmtImage,
			input: "logo",
			opts:  []gtable.FormatOption{gtable.ImagePath(dir), gtable.FilePattern("{}.png")},
			want:  []string{`<span style="white-space:nowrap;"><img src="` + encoded + `" style="height: 2em;vertical-align: middle;"></span>`},
		},
	})
}

func TestValFmtErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		fn     gtable.ValFunc
		input  any
		opts   []gtable.FormatOption
		target error
	}{
		"unknown currency":  {fn: gtable.ValFmtCurrency, input: 1, opts: []gtable.FormatOption{gtable.Currency("XYZ")}, target: gtable.ErrInvalidOption},
		"bad placement":     {fn: gtable.ValFmtCurrency, input: 1, opts: []gtable.FormatOption{gtable.Placement("middle")}, target: gtable.ErrInvalidOption},
		"bad case":          {fn: gtable.ValFmtRoman, input: 1, opts: []gtable.FormatOption{gtable.Case("title")}, target: gtable.ErrInvalidOption},
		"bad standard":      {fn: gtable.ValFmtBytes, input: 1, opts: []gtable.FormatOption{gtable.Standard("metric")}, target: gtable.ErrInvalidOption},
		"bad exp style":     {fn: gtable.ValFmtScientific, input: 1, opts: []gtable.FormatOption{gtable.ExpStyle("e12")}, target: gtable.ErrInvalidOption},
		"bad date style":    {fn: gtable.ValFmtDate, input: "2024-01-01", opts: []gtable.FormatOption{gtable.DateStyle("fancy")}, target: gtable.ErrInvalidOption},
		"negative decimals": {fn: gtable.ValFmtNumber, input: 1, opts: []gtable.FormatOption{gtable.Decimals(-1)}, target: gtable.ErrInvalidOption},
		"unknown locale":    {fn: gtable.ValFmtNumber, input: 1, opts: []gtable.FormatOption{gtable.Locale("tlh")}, target: gtable.ErrInvalidOption},
		"not a number":      {fn: gtable.ValFmtNumber, input: "abc", target: gtable.ErrUnsupportedValue},
		"not a date":        {fn: gtable.ValFmtDate, input: "03/05/2024", target: gtable.ErrUnsupportedValue},
		"lazy column":       {fn: gtable.ValFmtNumber, input: gtable.Col("x"), target: gtable.ErrLazyValue},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.fn(tt.input, tt.opts...)
			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestExpr(t *testing.T) {
	t.Parallel()
	frame, err := gtable.NewColumnFrame(
		gtable.Column{Name: "price", Values: []float64{1.5, 20}},
		gtable.Column{Name: "qty", Values: []any{2, nil}},
	)
	require.NoError(t, err)

	col := gtable.Col("price")
	assert.Equal(t, "price", col.String())
	values, err := col.Eval(frame)
	require.NoError(t, err)
	assert.Equal(t, []any{1.5, 20.0}, values)

	formatted := col.Format(gtable.ValFmtCurrency, gtable.Currency("USD"))
	values, err = formatted.Eval(frame)
	require.NoError(t, err)
	assert.Equal(t, []any{"$1.50", "$20.00"}, values)

	// Format leaves the receiver unchanged.
	values, err = col.Eval(frame)
	require.NoError(t, err)
	assert.Equal(t, []any{1.5, 20.0}, values)

	total, err := gtable.ParseExpr("qty == nil ? nil : price * qty")
	require.NoError(t, err)
	assert.Equal(t, "qty == nil ? nil : price * qty", total.String())
	values, err = total.Format(gtable.ValFmtNumber, gtable.Decimals(1)).Eval(frame)
	require.NoError(t, err)
	assert.Equal(t, []any{"3.0", "NA"}, values)

	_, err = gtable.ParseExpr("price *")
	require.ErrorIs(t, err, gtable.ErrInvalidOption)

	_, err = gtable.Col("nope").Eval(frame)
	require.ErrorIs(t, err, gtable.ErrUnknownColumn)

	_, err = gtable.ValFmtNumber(&col)
	require.ErrorIs(t, err, gtable.ErrLazyValue)
}
