package form

import "errors"

var (
	// ErrInvalidAutoValidate is returned for unknown auto-validate modes.
	ErrInvalidAutoValidate = errors.New("form: invalid auto-validate behavior")
)
