package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bjaus/gtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const salesCSV = `region,low,high,revenue,note
North,10,20,1234.5,
South,5,,0,late
`

const salesSpec = `title: Sales
subtitle: Q1
notes: ["Source: ledger"]
labels:
  region: Region
  low: Range
align:
  region: center
formats:
  - type: currency
    columns: [revenue]
    currency: EUR
  - type: number
    columns: [low, high]
    decimals: 0
substitutions:
  - type: zero
    columns: [revenue]
    text: free
  - type: missing
    columns: [note]
    text: "-"
merges:
  - columns: [low, high]
    pattern: "{0}<<–{1}>>"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSpec(t *testing.T) {
	t.Parallel()
	spec, err := loadSpec(strings.NewReader(salesSpec))
	require.NoError(t, err)
	assert.Equal(t, "Sales", spec.Title)
	assert.Len(t, spec.Formats, 2)
	require.NotNil(t, spec.Formats[1].Decimals)
	assert.Equal(t, 0, *spec.Formats[1].Decimals)
	assert.Equal(t, []string{"low", "high"}, spec.Merges[0].Columns)

	empty, err := loadSpec(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty.Formats)

	_, err = loadSpec(strings.NewReader("titel: typo\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing table spec")
}

func TestSpecApply(t *testing.T) {
	t.Parallel()
	frame, err := gtable.ReadCSV(strings.NewReader(salesCSV))
	require.NoError(t, err)
	tbl, err := gtable.New(frame)
	require.NoError(t, err)

	spec, err := loadSpec(strings.NewReader(salesSpec))
	require.NoError(t, err)
	tbl, err = spec.apply(tbl)
	require.NoError(t, err)

	b, err := tbl.Build(gtable.ContextDefault)
	require.NoError(t, err)
	assert.Equal(t, "Sales", b.Title)
	assert.Equal(t, "Q1", b.Subtitle)
	assert.Equal(t, []string{"Source: ledger"}, b.Notes)
	assert.Equal(t, []string{"region", "low", "revenue", "note"}, b.Columns)
	assert.Equal(t, []string{"Region", "Range", "revenue", "note"}, b.Labels)
	assert.Equal(t, gtable.AlignCenter, b.Aligns[0])
	assert.Equal(t, [][]string{
		{"North", "10–20", "€1,234.50", "-"},
		{"South", "5", "free", "late"},
	}, b.Rows)
}

func TestSpecApplyErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		spec string
		want string
	}{
		"unknown format":       {spec: "formats: [{type: fancy}]", want: "format 0"},
		"unknown substitution": {spec: "substitutions: [{type: blank}]", want: "substitution 0"},
		"bad option":           {spec: "formats: [{type: number, sigfig: 0}]", want: "format 0 (number)"},
		"bad merge":            {spec: "merges: [{columns: [a]}]", want: "merge 0"},
		"bad alignment":        {spec: "align: {a: middle}", want: "alignment"},
		"unknown label":        {spec: "labels: {zzz: Z}", want: "unknown column"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			frame, err := gtable.NewRowFrame([]string{"a", "b"}, [][]any{{1, 2}})
			require.NoError(t, err)
			tbl, err := gtable.New(frame)
			require.NoError(t, err)

			spec, err := loadSpec(strings.NewReader(tt.spec))
			require.NoError(t, err)
			_, err = spec.apply(tbl)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOutputFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		explicit string
		path     string
		want     gtable.Format
		err      bool
	}{
		"stdout default":   {want: gtable.Text},
		"by extension":     {path: "out/report.HTML", want: gtable.HTML},
		"yml":              {path: "a.yml", want: gtable.YAML},
		"unknown ext":      {path: "a.bin", want: gtable.Text},
		"explicit wins":    {explicit: "csv", path: "a.json", want: gtable.CSV},
		"explicit unknown": {explicit: "xml", err: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := outputFormat(tt.explicit, tt.path)
			if tt.err {
				require.ErrorIs(t, err, gtable.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunRenderStdout(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	f := renderFlags{
		data:   writeFile(t, dir, "sales.csv", salesCSV),
		spec:   writeFile(t, dir, "spec.yaml", salesSpec),
		format: "csv",
		border: "rounded",
	}
	var stdout, stderr bytes.Buffer
	require.NoError(t, runRender(context.Background(), &stdout, &stderr, f))
	assert.Equal(t, "Region,Range,revenue,note\nNorth,10–20,\"€1,234.50\",-\nSouth,5,free,late\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunRenderFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	jsonOut := filepath.Join(dir, "out.json")
	mdOut := filepath.Join(dir, "out.md")
	f := renderFlags{
		data:    writeFile(t, dir, "sales.csv", salesCSV),
		spec:    writeFile(t, dir, "spec.yaml", salesSpec),
		outputs: []string{jsonOut, mdOut},
		border:  "rounded",
		verbose: true,
	}
	var stdout, stderr bytes.Buffer
	require.NoError(t, runRender(context.Background(), &stdout, &stderr, f))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "wrote output")

	data, err := os.ReadFile(jsonOut)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"low":"10–20"`)

	data, err = os.ReadFile(mdOut)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "**Sales**\n"))
}

func TestRunRenderErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	data := writeFile(t, dir, "sales.csv", salesCSV)
	tests := map[string]renderFlags{
		"unsupported data": {data: writeFile(t, dir, "data.txt", "x"), border: "rounded"},
		"missing data":     {data: filepath.Join(dir, "nope.csv"), border: "rounded"},
		"missing spec":     {data: data, spec: filepath.Join(dir, "nope.yaml"), border: "rounded"},
		"bad border":       {data: data, border: "dotted"},
		"bad format":       {data: data, border: "rounded", format: "xml"},
	}
	for name, f := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var stdout, stderr bytes.Buffer
			require.Error(t, runRender(context.Background(), &stdout, &stderr, f))
		})
	}
}

func TestFormatsCommand(t *testing.T) {
	t.Parallel()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"formats"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "json\nyaml\ncsv\ntsv\ntable\nmarkdown\nhtml\njsonl\n", out.String())
}

func TestRenderCommandRequiresData(t *testing.T) {
	t.Parallel()
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"render"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data")
}
