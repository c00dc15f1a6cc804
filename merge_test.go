package gtable_test

import (
	"errors"
	"math"
	"testing"

	"github.com/bjaus/gtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergePattern(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		pattern string
		values  []any
		want    string
	}{
		"section kept": {
			pattern: "{0}<< ({1})>>",
			values:  []any{"John", "Doe"},
			want:    "John (Doe)",
		},
		"section dropped": {
			pattern: "{0}<< ({1})>>",
			values:  []any{"John", nil},
			want:    "John",
		},
		"nested inner dropped": {
			pattern: "{0}<< to {1}<< ({2})>>>>",
			values:  []any{10, 20, nil},
			want:    "10 to 20",
		},
		"nested outer dropped": {
			pattern: "{0}<< to {1}<< ({2})>>>>",
			values:  []any{10, nil, 30},
			want:    "10",
		},
		"sibling sections": {
			pattern: "{0}<< to {1}>><< to {2}>>",
			values:  []any{"a", nil, "c"},
			want:    "a to c",
		},
		"missing outside section": {
			pattern: "{0}-{1}",
			values:  []any{"a", nil},
			want:    "a-NA",
		},
		"NaN is missing": {
			pattern: "{0}<<, {1}>>",
			values:  []any{"x", math.NaN()},
			want:    "x",
		},
		"NA is missing": {
			pattern: "{0}<<, {1}>>",
			values:  []any{"x", gtable.NA},
			want:    "x",
		},
		"unsupplied index": {
			pattern: "{0} {2}",
			values:  []any{"a", "b"},
			want:    "a NA",
		},
		"unmatched markers stay literal": {
			pattern: "{0} >> {1} <<",
			values:  []any{"a", "b"},
			want:    "a >> b <<",
		},
		"repeated placeholder": {
			pattern: "{0}/{0}",
			values:  []any{1.5},
			want:    "1.5/1.5",
		},
		"values are not rescanned for placeholders": {
			pattern: "{0}<<{1}>>",
			values:  []any{"{1}", "<<"},
			want:    "{1}<<",
		},
		"unicode literals": {
			pattern: "«{0}» · {1}",
			values:  []any{"ü", "日本"},
			want:    "«ü» · 日本",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, gtable.MergePattern(tt.pattern, tt.values...))
		})
	}
}

func TestExtractPlaceholders(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []int{1, 0}, gtable.ExtractPlaceholders("{1} {0} {1}"))
	assert.Empty(t, gtable.ExtractPlaceholders("no placeholders"))
	assert.Equal(t, []int{12}, gtable.ExtractPlaceholders("<<{12}>>"))
}

func TestValidatePattern(t *testing.T) {
	t.Parallel()
	require.NoError(t, gtable.ValidatePattern("{0} {1}", 2))

	err := gtable.ValidatePattern("{5}", 2)
	require.ErrorIs(t, err, gtable.ErrPatternIndex)
	var perr *gtable.PatternError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 5, perr.Index)
	assert.Equal(t, 2, perr.Columns)
	assert.Equal(t, "pattern references column {5} but only 2 columns were provided (valid indices are 0 to 1)", err.Error())

	err = gtable.ValidatePattern("{0} {99999999999999999999}", 2)
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, -1, perr.Index)
}

func TestDefaultMergePattern(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "{0} {1}", gtable.DefaultMergePattern(2))
	assert.Equal(t, "{0} {1} {2}", gtable.DefaultMergePattern(3))
}

func TestNewMergeSpec(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		columns []string
		pattern string
		target  error
	}{
		"valid":          {columns: []string{"a", "b"}, pattern: "{0} {1}"},
		"one column":     {columns: []string{"a"}, pattern: "{0}", target: gtable.ErrMergeColumns},
		"bad index":      {columns: []string{"a", "b"}, pattern: "{0} {5}", target: gtable.ErrPatternIndex},
		"huge index":     {columns: []string{"a", "b"}, pattern: "{0} {99999999999999999999}", target: gtable.ErrPatternIndex},
		"no placeholder": {columns: []string{"a", "b"}, pattern: "constant"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			spec, err := gtable.NewMergeSpec(tt.columns, []int{0}, tt.pattern)
			if tt.target != nil {
				require.ErrorIs(t, err, tt.target)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, gtable.MergeTypeMerge, spec.Type())
			assert.Equal(t, "a", spec.Target())
			require.NoError(t, spec.Validate())
			require.NoError(t, spec.Validate())
		})
	}
}

func TestMergeSpecAccessorsReturnCopies(t *testing.T) {
	t.Parallel()
	spec, err := gtable.NewMergeSpec([]string{"a", "b"}, []int{0, 1}, "{1}:{0}")
	require.NoError(t, err)

	cols := spec.Columns()
	cols[0] = "changed"
	rows := spec.Rows()
	rows[0] = 9

	assert.Equal(t, []string{"a", "b"}, spec.Columns())
	assert.Equal(t, []int{0, 1}, spec.Rows())
	assert.Equal(t, []int{1, 0}, spec.Placeholders())
	assert.Equal(t, "{1}:{0}", spec.Pattern())
}

func TestMergeSpecMerge(t *testing.T) {
	t.Parallel()
	spec, err := gtable.NewMergeSpec([]string{"low", "high"}, nil, "{0}<< to {1}>>")
	require.NoError(t, err)

	assert.Equal(t, "1 to 2", spec.Merge(1, 2))
	assert.Equal(t, "1", spec.Merge(1, nil))
	assert.Equal(t, "1", spec.MergeValues([]string{"1", "ignored"}, []bool{false, true}))
}

func TestMergeSpecApply(t *testing.T) {
	t.Parallel()
	data, err := gtable.NewRowFrame([]string{"a", "b"}, [][]any{
		{5, nil},
		{6, 7},
		{nil, nil},
	})
	require.NoError(t, err)
	spec, err := gtable.NewMergeSpec([]string{"a", "b"}, []int{0, 1, 2}, "{0}<< ({1})>>")
	require.NoError(t, err)

	body := data.Empty()
	body, err = body.SetCell(1, "b", "seven")
	require.NoError(t, err)

	out, err := spec.Apply(body, data)
	require.NoError(t, err)

	// Unformatted cells fall back to the original value.
	got, err := out.Cell(0, "a")
	require.NoError(t, err)
	assert.Equal(t, "5", got)

	got, err = out.Cell(1, "a")
	require.NoError(t, err)
	assert.Equal(t, "6 (seven)", got)

	got, err = out.Cell(2, "a")
	require.NoError(t, err)
	assert.Equal(t, "NA", got)
}

func TestMergeSpecApplyUnknownColumn(t *testing.T) {
	t.Parallel()
	data, err := gtable.NewRowFrame([]string{"a"}, [][]any{{1}})
	require.NoError(t, err)
	spec, err := gtable.NewMergeSpec([]string{"a", "zzz"}, []int{0}, "{0}{1}")
	require.NoError(t, err)

	_, err = spec.Apply(data.Empty(), data)
	require.ErrorIs(t, err, gtable.ErrUnknownColumn)
}

func TestReplaceNA(t *testing.T) {
	t.Parallel()
	var nilPtr *int
	in := []any{1, nil, math.NaN(), gtable.NA, "x", nilPtr, float32(math.NaN())}
	want := []any{1, nil, nil, nil, "x", nil, nil}

	once := gtable.ReplaceNA(nil, in...)
	assert.Equal(t, want, once)
	assert.Equal(t, once, gtable.ReplaceNA(nil, once...))
}

func TestIsNA(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		value any
		want  bool
	}{
		"nil":          {value: nil, want: true},
		"NA":           {value: gtable.NA, want: true},
		"NaN":          {value: math.NaN(), want: true},
		"nil pointer":  {value: (*string)(nil), want: true},
		"zero":         {value: 0, want: false},
		"empty string": {value: "", want: false},
		"infinity":     {value: math.Inf(1), want: false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, gtable.IsNA(tt.value))
		})
	}
}
