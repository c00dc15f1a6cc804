package gtable_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/bjaus/gtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		columns []string
		rows    [][]any
		target  error
	}{
		"typed fields": {
			input:   "name,count,ratio\nann,3,0.5\nbob,,1e3\n",
			columns: []string{"name", "count", "ratio"},
			rows:    [][]any{{"ann", int64(3), 0.5}, {"bob", nil, 1000.0}},
		},
		"short record padded": {
			input:   "a,b\n1\n",
			columns: []string{"a", "b"},
			rows:    [][]any{{int64(1), nil}},
		},
		"header only": {
			input:   "a,b\n",
			columns: []string{"a", "b"},
			rows:    [][]any{},
		},
		"quoted text kept verbatim": {
			input:   "a\n\" 42 x\"\n",
			columns: []string{"a"},
			rows:    [][]any{{" 42 x"}},
		},
		"empty":       {input: "", target: gtable.ErrFrameShape},
		"long record": {input: "a\n1,2\n", target: gtable.ErrFrameShape},
		"duplicate":   {input: "a,a\n1,2\n", target: gtable.ErrFrameShape},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			f, err := gtable.ReadCSV(strings.NewReader(tt.input))
			if tt.target != nil {
				require.ErrorIs(t, err, tt.target)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.columns, f.ColumnNames())
			require.Equal(t, len(tt.rows), f.NumRows())
			for i, want := range tt.rows {
				assert.Equal(t, want, f.Row(i))
			}
		})
	}
}

func TestReadCSVMalformed(t *testing.T) {
	t.Parallel()
	_, err := gtable.ReadCSV(strings.NewReader("a\n\"unterminated\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading csv")
}

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"city", "pop"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Oslo", 709000}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"Bergen"}))

	_, err := f.NewSheet("Rates")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Rates", "A1", &[]any{"rate"}))
	require.NoError(t, f.SetSheetRow("Rates", "A2", &[]any{0.25}))

	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadXLSX(t *testing.T) {
	t.Parallel()
	path := writeWorkbook(t)

	f, err := gtable.ReadXLSX(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"city", "pop"}, f.ColumnNames())
	assert.Equal(t, []any{"Oslo", int64(709000)}, f.Row(0))
	assert.Equal(t, []any{"Bergen", nil}, f.Row(1))

	rates, err := gtable.ReadXLSX(path, "Rates")
	require.NoError(t, err)
	assert.Equal(t, []any{0.25}, rates.Row(0))

	_, err = gtable.ReadXLSX(path, "Nope")
	require.Error(t, err)

	_, err = gtable.ReadXLSX(filepath.Join(t.TempDir(), "missing.xlsx"), "")
	require.Error(t, err)
}
