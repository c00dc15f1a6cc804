package main

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/bjaus/gtable"
	"gopkg.in/yaml.v3"
)

// tableSpec is the YAML description of a display table.
type tableSpec struct {
	Title         string            `yaml:"title"`
	Subtitle      string            `yaml:"subtitle"`
	Locale        string            `yaml:"locale"`
	Notes         []string          `yaml:"notes"`
	Labels        map[string]string `yaml:"labels"`
	Align         map[string]string `yaml:"align"`
	Hide          []string          `yaml:"hide"`
	Formats       []formatSpec      `yaml:"formats"`
	Substitutions []formatSpec      `yaml:"substitutions"`
	Merges        []mergeSpec       `yaml:"merges"`
}

type formatSpec struct {
	Type    string   `yaml:"type"`
	Columns []string `yaml:"columns"`
	Rows    []int    `yaml:"rows"`
	Where   string   `yaml:"where"`

	Decimals            *int     `yaml:"decimals"`
	SigFig              *int     `yaml:"sigfig"`
	DropTrailingZeros   *bool    `yaml:"drop_trailing_zeros"`
	DropTrailingDecMark *bool    `yaml:"drop_trailing_dec_mark"`
	UseSeps             *bool    `yaml:"use_seps"`
	Accounting          *bool    `yaml:"accounting"`
	ScaleBy             *float64 `yaml:"scale_by"`
	ScaleValues         *bool    `yaml:"scale_values"`
	Compact             *bool    `yaml:"compact"`
	Pattern             string   `yaml:"pattern"`
	SepMark             *string  `yaml:"sep_mark"`
	DecMark             *string  `yaml:"dec_mark"`
	ForceSign           *bool    `yaml:"force_sign"`
	Locale              string   `yaml:"locale"`
	Currency            string   `yaml:"currency"`
	UseSubunits         *bool    `yaml:"use_subunits"`
	Placement           string   `yaml:"placement"`
	IncludeSpace        *bool    `yaml:"incl_space"`
	ExpStyle            string   `yaml:"exp_style"`
	Standard            string   `yaml:"standard"`
	Case                string   `yaml:"case"`
	DateStyle           string   `yaml:"date_style"`
	TimeStyle           string   `yaml:"time_style"`
	Height              string   `yaml:"height"`
	Width               string   `yaml:"width"`
	Path                string   `yaml:"path"`
	FilePattern         string   `yaml:"file_pattern"`
	Encode              *bool    `yaml:"encode"`
	Text                *string  `yaml:"text"`
}

type mergeSpec struct {
	Columns []string `yaml:"columns"`
	Pattern string   `yaml:"pattern"`
	Rows    []int    `yaml:"rows"`
	Where   string   `yaml:"where"`
	Keep    bool     `yaml:"keep"`
}

func loadSpec(r io.Reader) (tableSpec, error) {
	var spec tableSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && err != io.EOF {
		return tableSpec{}, fmt.Errorf("parsing table spec: %w", err)
	}
	return spec, nil
}

// options converts the set fields into formatter options.
func (f formatSpec) options() []gtable.FormatOption {
	var opts []gtable.FormatOption
	add := func(ok bool, opt func() gtable.FormatOption) {
		if ok {
			opts = append(opts, opt())
		}
	}
	add(len(f.Columns) > 0, func() gtable.FormatOption { return gtable.Columns(f.Columns...) })
	add(f.Rows != nil, func() gtable.FormatOption { return gtable.Rows(f.Rows...) })
	add(f.Where != "", func() gtable.FormatOption { return gtable.RowsWhere(f.Where) })
	add(f.Decimals != nil, func() gtable.FormatOption { return gtable.Decimals(*f.Decimals) })
	add(f.SigFig != nil, func() gtable.FormatOption { return gtable.SigFig(*f.SigFig) })
	add(f.DropTrailingZeros != nil, func() gtable.FormatOption { return gtable.DropTrailingZeros(*f.DropTrailingZeros) })
	add(f.DropTrailingDecMark != nil, func() gtable.FormatOption { return gtable.DropTrailingDecMark(*f.DropTrailingDecMark) })
	add(f.UseSeps != nil, func() gtable.FormatOption { return gtable.UseSeps(*f.UseSeps) })
	add(f.Accounting != nil, func() gtable.FormatOption { return gtable.Accounting(*f.Accounting) })
	add(f.ScaleBy != nil, func() gtable.FormatOption { return gtable.ScaleBy(*f.ScaleBy) })
	add(f.ScaleValues != nil, func() gtable.FormatOption { return gtable.ScaleValues(*f.ScaleValues) })
	add(f.Compact != nil, func() gtable.FormatOption { return gtable.Compact(*f.Compact) })
	add(f.Pattern != "", func() gtable.FormatOption { return gtable.Pattern(f.Pattern) })
	add(f.SepMark != nil, func() gtable.FormatOption { return gtable.SepMark(*f.SepMark) })
	add(f.DecMark != nil, func() gtable.FormatOption { return gtable.DecMark(*f.DecMark) })
	add(f.ForceSign != nil, func() gtable.FormatOption { return gtable.ForceSign(*f.ForceSign) })
	add(f.Locale != "", func() gtable.FormatOption { return gtable.Locale(f.Locale) })
	add(f.Currency != "", func() gtable.FormatOption { return gtable.Currency(f.Currency) })
	add(f.UseSubunits != nil, func() gtable.FormatOption { return gtable.UseSubunits(*f.UseSubunits) })
	add(f.Placement != "", func() gtable.FormatOption { return gtable.Placement(f.Placement) })
	add(f.IncludeSpace != nil, func() gtable.FormatOption { return gtable.IncludeSpace(*f.IncludeSpace) })
	add(f.ExpStyle != "", func() gtable.FormatOption { return gtable.ExpStyle(f.ExpStyle) })
	add(f.Standard != "", func() gtable.FormatOption { return gtable.Standard(f.Standard) })
	add(f.Case != "", func() gtable.FormatOption { return gtable.Case(f.Case) })
	add(f.DateStyle != "", func() gtable.FormatOption { return gtable.DateStyle(f.DateStyle) })
	add(f.TimeStyle != "", func() gtable.FormatOption { return gtable.TimeStyle(f.TimeStyle) })
	add(f.Height != "", func() gtable.FormatOption { return gtable.ImageHeight(f.Height) })
	add(f.Width != "", func() gtable.FormatOption { return gtable.ImageWidth(f.Width) })
	add(f.Path != "", func() gtable.FormatOption { return gtable.ImagePath(f.Path) })
	add(f.FilePattern != "", func() gtable.FormatOption { return gtable.FilePattern(f.FilePattern) })
	add(f.Encode != nil, func() gtable.FormatOption { return gtable.Encode(*f.Encode) })
	add(f.Text != nil, func() gtable.FormatOption { return gtable.MissingText(*f.Text) })
	return opts
}

var formatters = map[string]func(*gtable.Table, ...gtable.FormatOption) (*gtable.Table, error){
	"number":      (*gtable.Table).FmtNumber,
	"integer":     (*gtable.Table).FmtInteger,
	"scientific":  (*gtable.Table).FmtScientific,
	"engineering": (*gtable.Table).FmtEngineering,
	"percent":     (*gtable.Table).FmtPercent,
	"currency":    (*gtable.Table).FmtCurrency,
	"roman":       (*gtable.Table).FmtRoman,
	"bytes":       (*gtable.Table).FmtBytes,
	"date":        (*gtable.Table).FmtDate,
	"time":        (*gtable.Table).FmtTime,
	"datetime":    (*gtable.Table).FmtDatetime,
	"markdown":    (*gtable.Table).FmtMarkdown,
	"image":       (*gtable.Table).FmtImage,
}

var substitutions = map[string]func(*gtable.Table, ...gtable.FormatOption) (*gtable.Table, error){
	"missing": (*gtable.Table).SubMissing,
	"zero":    (*gtable.Table).SubZero,
}

// apply configures t as described by the spec.
func (s tableSpec) apply(t *gtable.Table) (*gtable.Table, error) {
	var err error
	if s.Title != "" {
		t = t.Heading(s.Title, s.Subtitle)
	}
	for _, note := range s.Notes {
		t = t.SourceNote(note)
	}
	if len(s.Labels) > 0 {
		if t, err = t.ColsLabel(s.Labels); err != nil {
			return nil, err
		}
	}
	for _, col := range slices.Sorted(maps.Keys(s.Align)) {
		align, err := gtable.ParseAlignment(s.Align[col])
		if err != nil {
			return nil, err
		}
		if t, err = t.ColsAlign(align, col); err != nil {
			return nil, err
		}
	}
	if len(s.Hide) > 0 {
		if t, err = t.ColsHide(s.Hide...); err != nil {
			return nil, err
		}
	}
	for i, f := range s.Formats {
		fn, ok := formatters[f.Type]
		if !ok {
			return nil, fmt.Errorf("format %d: %w: type %q", i, gtable.ErrInvalidOption, f.Type)
		}
		if t, err = fn(t, f.options()...); err != nil {
			return nil, fmt.Errorf("format %d (%s): %w", i, f.Type, err)
		}
	}
	for i, f := range s.Substitutions {
		fn, ok := substitutions[f.Type]
		if !ok {
			return nil, fmt.Errorf("substitution %d: %w: type %q", i, gtable.ErrInvalidOption, f.Type)
		}
		opts := f.options()
		if f.Type == "zero" && f.Text != nil {
			opts = append(opts, gtable.ZeroText(*f.Text))
		}
		if t, err = fn(t, opts...); err != nil {
			return nil, fmt.Errorf("substitution %d (%s): %w", i, f.Type, err)
		}
	}
	for i, m := range s.Merges {
		var opts []gtable.MergeOption
		if m.Pattern != "" {
			opts = append(opts, gtable.UsePattern(m.Pattern))
		}
		if m.Rows != nil {
			opts = append(opts, gtable.MergeRows(m.Rows...))
		}
		if m.Where != "" {
			opts = append(opts, gtable.MergeRowsWhere(m.Where))
		}
		if m.Keep {
			opts = append(opts, gtable.KeepColumns())
		}
		if t, err = t.ColsMerge(m.Columns, opts...); err != nil {
			return nil, fmt.Errorf("merge %d: %w", i, err)
		}
	}
	return t, nil
}
