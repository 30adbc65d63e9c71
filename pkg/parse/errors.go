package parse

import "errors"

// ErrUnknownParser is returned by Lookup for unregistered names.
var ErrUnknownParser = errors.New("parse: unknown parser")
