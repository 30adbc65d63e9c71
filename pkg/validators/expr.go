package validators

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/goliatone/go-formstate/pkg/form"
)

type exprEnv struct {
	Value any `expr:"value"`
}

// Expr compiles an expr-lang boolean expression into a validator. The parsed
// field value is available as `value`; the validator fails with message when
// the expression evaluates to false or errors at runtime.
//
//	v, err := validators.Expr(`len(value) >= 3 && value != "admin"`, "Pick another name")
func Expr(expression, message string) (form.Validator, error) {
	source := strings.TrimSpace(expression)
	if source == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	}

	program, err := expr.Compile(source, expr.Env(exprEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidExpression, source, err)
	}

	if message == "" {
		message = DefaultMessage
	}

	return func(value any) string {
		out, err := expr.Run(program, exprEnv{Value: value})
		if err != nil {
			return message
		}
		if ok, _ := out.(bool); !ok {
			return message
		}
		return ""
	}, nil
}
