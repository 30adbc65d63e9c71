package validators

import "errors"

var (
	// ErrInvalidExpression is returned when an expr-lang predicate fails to
	// compile.
	ErrInvalidExpression = errors.New("validators: invalid expression")
	// ErrInvalidSchema is returned when a JSON Schema fails to compile.
	ErrInvalidSchema = errors.New("validators: invalid json schema")
)

// DefaultMessage is reported when a failing validator has no message.
const DefaultMessage = "Invalid value"
