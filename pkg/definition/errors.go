package definition

import "errors"

var (
	// ErrUnsupportedFormat is returned for unknown file extensions or formats.
	ErrUnsupportedFormat = errors.New("definition: unsupported format")
	// ErrMissingKey is returned when a field has no key.
	ErrMissingKey = errors.New("definition: field key is required")
	// ErrDuplicateKey is returned when two fields share a key.
	ErrDuplicateKey = errors.New("definition: duplicate field key")
	// ErrInvalidPattern is returned when a field pattern does not compile.
	ErrInvalidPattern = errors.New("definition: invalid pattern")
	// ErrInvalidRule is returned for rules without exactly one of expr/schema.
	ErrInvalidRule = errors.New("definition: invalid rule")
	// ErrOperationNotFound is returned when an OpenAPI document has no
	// operation with the requested id.
	ErrOperationNotFound = errors.New("definition: openapi operation not found")
	// ErrNoRequestBody is returned when the operation has no object request
	// body schema to derive fields from.
	ErrNoRequestBody = errors.New("definition: openapi operation has no object request body")
)
