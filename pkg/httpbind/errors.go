package httpbind

import "errors"

// ErrInvalidBody is returned when the request body cannot be parsed.
var ErrInvalidBody = errors.New("httpbind: invalid request body")
