package gtable

import (
	"fmt"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// compileExpr compiles an expression over row variables. Columns are
// variables named after them; missing cells are nil.
func compileExpr(src string) (*vm.Program, error) {
	program, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("%w: expression %q: %v", ErrInvalidOption, src, err)
	}
	return program, nil
}

func evalRow(program *vm.Program, f Frame, row int) (any, error) {
	env, err := rowEnv(f, row)
	if err != nil {
		return nil, err
	}
	for k, v := range env {
		env[k] = Normalize(v, f)
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("evaluating row %d: %w", row, err)
	}
	return out, nil
}

// selectRows returns the rows of f for which the boolean expression src is
// true.
func selectRows(f Frame, src string) ([]int, error) {
	program, err := compileExpr(src)
	if err != nil {
		return nil, err
	}
	var rows []int
	for r := range f.NumRows() {
		out, err := evalRow(program, f, r)
		if err != nil {
			return nil, err
		}
		match, ok := out.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: expression %q returned %T, want bool", ErrInvalidOption, src, out)
		}
		if match {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

// ValFunc is an eager value formatter such as [ValFmtNumber].
type ValFunc func(x any, opts ...FormatOption) ([]string, error)

type exprStep struct {
	fn   ValFunc
	opts []FormatOption
}

// Expr is an unevaluated column expression: a column reference or an
// expression over row variables, with formatting steps applied when it is
// evaluated.
type Expr struct {
	column  string
	src     string
	program *vm.Program
	steps   []exprStep
}

// Col references a column by name.
func Col(name string) Expr {
	return Expr{column: name}
}

// ParseExpr compiles an expression such as `price * qty`. Column values are
// available as variables.
func ParseExpr(src string) (Expr, error) {
	program, err := compileExpr(src)
	if err != nil {
		return Expr{}, err
	}
	return Expr{src: src, program: program}, nil
}

// Format returns a new Expr that formats the values element-wise with fn
// when evaluated. The receiver is unchanged.
func (e Expr) Format(fn ValFunc, opts ...FormatOption) Expr {
	out := e
	out.steps = append(slices.Clone(e.steps), exprStep{fn: fn, opts: slices.Clone(opts)})
	return out
}

// String returns the column name or the expression source.
func (e Expr) String() string {
	if e.program == nil {
		return e.column
	}
	return e.src
}

// Eval evaluates the expression against every row of f and returns the
// values after all formatting steps.
func (e Expr) Eval(f Frame) ([]any, error) {
	var values []any
	var err error
	if e.program == nil {
		if values, err = columnValues(f, e.column); err != nil {
			return nil, err
		}
	} else {
		values = make([]any, f.NumRows())
		for r := range values {
			if values[r], err = evalRow(e.program, f, r); err != nil {
				return nil, err
			}
		}
	}
	for _, step := range e.steps {
		strs, err := step.fn(ReplaceNA(f, values...), step.opts...)
		if err != nil {
			return nil, fmt.Errorf("formatting %s: %w", e, err)
		}
		values = make([]any, len(strs))
		for i, s := range strs {
			values[i] = s
		}
	}
	return values, nil
}
