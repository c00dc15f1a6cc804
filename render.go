package gtable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format represents an output format.
type Format string

const (
	JSON     Format = "json"
	YAML     Format = "yaml"
	CSV      Format = "csv"
	TSV      Format = "tsv"
	Text     Format = "table"
	Markdown Format = "markdown"
	HTML     Format = "html"
	JSONL    Format = "jsonl"
)

const goTemplatePrefix = "go-template="

var formats = []Format{JSON, YAML, CSV, TSV, Text, Markdown, HTML, JSONL}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported static format names.
// GoTemplate is not included because it is parameterized.
func Formats() []Format {
	return slices.Clone(formats)
}

// GoTemplate returns a Format that renders each row using a Go
// text/template. The row is a map from column name to display string.
func GoTemplate(tmpl string) Format {
	return Format(goTemplatePrefix + tmpl)
}

// ParseFormat parses a format string. Recognizes all static formats and
// go-template=<tmpl> strings.
func ParseFormat(s string) (Format, error) {
	if strings.HasPrefix(s, goTemplatePrefix) {
		return Format(s), nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Context returns the formatting context a format builds tables for.
func (f Format) Context() Context {
	if f == HTML {
		return ContextHTML
	}
	return ContextDefault
}

// BorderStyle controls table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

// ParseBorderStyle parses "rounded", "none", "ascii", "heavy" or "double".
func ParseBorderStyle(s string) (BorderStyle, error) {
	switch s {
	case "rounded", "":
		return BorderRounded, nil
	case "none":
		return BorderNone, nil
	case "ascii":
		return BorderASCII, nil
	case "heavy":
		return BorderHeavy, nil
	case "double":
		return BorderDouble, nil
	}
	return BorderRounded, fmt.Errorf("%w: border style %q", ErrInvalidOption, s)
}

// RenderOption configures an output writer.
type RenderOption func(*renderConfig)

type renderConfig struct {
	border       BorderStyle
	numbered     bool
	numberHeader string
	maxWidths    []int
	wrapWidths   []int
	pageSize     int
	delimiter    rune
	indent       string
}

// WithBorder sets the border style of the table format.
// Default: BorderRounded.
func WithBorder(b BorderStyle) RenderOption {
	return func(c *renderConfig) { c.border = b }
}

// WithRowNumbers prepends a row number column with the given header.
func WithRowNumbers(header string) RenderOption {
	return func(c *renderConfig) {
		c.numbered = true
		c.numberHeader = header
	}
}

// WithMaxWidths sets maximum column widths for the table format. Cells
// exceeding the max are truncated with "...". A zero value means no limit for
// that column.
func WithMaxWidths(widths ...int) RenderOption {
	return func(c *renderConfig) { c.maxWidths = slices.Clone(widths) }
}

// WithWrapWidths sets per-column widths at which the table format wraps cells
// onto several lines. A zero value means no wrapping for that column.
func WithWrapWidths(widths ...int) RenderOption {
	return func(c *renderConfig) { c.wrapWidths = slices.Clone(widths) }
}

// WithPageSize repeats the header row every n data rows in the table format.
func WithPageSize(n int) RenderOption {
	return func(c *renderConfig) { c.pageSize = n }
}

// WithDelimiter sets the CSV field delimiter. Default: comma.
func WithDelimiter(r rune) RenderOption {
	return func(c *renderConfig) { c.delimiter = r }
}

// WithIndent sets the JSON and YAML indentation. Without it JSON is compact
// and YAML uses its default indent.
func WithIndent(s string) RenderOption {
	return func(c *renderConfig) { c.indent = s }
}

// Write builds t for the context of format f and writes it to w.
func Write(w io.Writer, f Format, t *Table, opts ...RenderOption) error {
	if _, err := ParseFormat(string(f)); err != nil {
		return err
	}
	b, err := t.Build(f.Context())
	if err != nil {
		return err
	}
	return Render(w, f, b, opts...)
}

// Marshal builds t for the context of format f and returns the bytes.
func Marshal(f Format, t *Table, opts ...RenderOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, t, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render writes an already built table in format f.
func Render(w io.Writer, f Format, b *Built, opts ...RenderOption) error {
	cfg := renderConfig{delimiter: ','}
	for _, opt := range opts {
		opt(&cfg)
	}
	switch f {
	case JSON:
		return writeJSON(w, b, cfg)
	case YAML:
		return writeYAML(w, b, cfg)
	case CSV:
		return writeCSV(w, b, cfg)
	case TSV:
		return writeTSV(w, b)
	case Text:
		return writeTable(w, b, cfg)
	case Markdown:
		return writeMarkdown(w, b)
	case HTML:
		return writeHTML(w, b)
	case JSONL:
		return writeJSONL(w, b, cfg)
	default:
		if tmpl, ok := strings.CutPrefix(string(f), goTemplatePrefix); ok {
			return writeGoTemplate(w, tmpl, b)
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// record is one row keyed by column name. It marshals with the keys in
// column order.
type record struct {
	keys   []string
	values []string
}

func (b *Built) records() []record {
	out := make([]record, len(b.Rows))
	for i, row := range b.Rows {
		out[i] = record{keys: b.Columns, values: row}
	}
	return out
}

func (r record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i, k := range r.keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.values[i]},
		)
	}
	return node, nil
}

func (r record) asMap() map[string]string {
	m := make(map[string]string, len(r.keys))
	for i, k := range r.keys {
		m[k] = r.values[i]
	}
	return m
}
