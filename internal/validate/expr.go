package validate

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"data-caster/internal/diagnostic"
)

// Expr compiles an expr-lang boolean expression into a chain. The value
// under validation is bound to the variable "value":
//
//	validate.Expr("value > 0 && value < 100")
//
// A false result reports an issue; a runtime failure is always an error.
func Expr(source string, opts ...Option) (Validator, error) {
	program, err := CompileExpr(source, expr.AsBool())
	if err != nil {
		return nil, err
	}

	so := newStageOptions(opts)

	return Func(func(v any, r diagnostic.Reporter) {
		out, err := expr.Run(program, map[string]any{"value": v})
		if err != nil {
			r.Error(fmt.Sprintf("Expression %q failed: %v", source, err))
			return
		}

		if ok, _ := out.(bool); !ok {
			so.report(r, "Value did not satisfy expression: "+source)
		}
	}), nil
}

// MustExpr is like Expr but panics on a compile error.
func MustExpr(source string, opts ...Option) Validator {
	v, err := Expr(source, opts...)
	if err != nil {
		panic(err)
	}

	return v
}

// CompileExpr compiles source with "value" declared in the environment.
func CompileExpr(source string, opts ...expr.Option) (*vm.Program, error) {
	opts = append([]expr.Option{expr.Env(map[string]any{"value": nil})}, opts...)

	program, err := expr.Compile(source, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", source, err)
	}

	return program, nil
}
