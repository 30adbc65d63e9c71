package form

import "fmt"

// Message produces error text for a bound such as a length limit or a
// pattern. Use Static for fixed text.
type Message[T any] func(bound T) string

// Static returns a Message that ignores the bound.
func Static[T any](text string) Message[T] {
	return func(T) string { return text }
}

// Resolve returns the text for bound; a nil Message resolves to "".
func (m Message[T]) Resolve(bound T) string {
	if m == nil {
		return ""
	}
	return m(bound)
}

// ErrorStrings overrides the messages of the built-in checks. Zero fields fall
// through to the next level: field overrides, then form overrides, then the
// defaults.
type ErrorStrings struct {
	Required  string
	MinLength Message[int]
	MaxLength Message[int]
	// Pattern describes a rejected input. Pattern mismatches never reach the
	// error map; UI layers may use this text to explain a dropped keystroke.
	Pattern Message[string]
}

// DefaultErrorStrings returns the built-in messages.
func DefaultErrorStrings() ErrorStrings {
	return ErrorStrings{
		Required: "Required",
		MinLength: func(n int) string {
			return fmt.Sprintf("Must be at least %d characters long", n)
		},
		MaxLength: func(n int) string {
			return fmt.Sprintf("Must be no more than %d characters long", n)
		},
		Pattern: func(p string) string {
			return "Must match pattern " + p
		},
	}
}

// Merge returns a copy of e with every non-zero field of override applied.
func (e ErrorStrings) Merge(override ErrorStrings) ErrorStrings {
	if override.Required != "" {
		e.Required = override.Required
	}
	if override.MinLength != nil {
		e.MinLength = override.MinLength
	}
	if override.MaxLength != nil {
		e.MaxLength = override.MaxLength
	}
	if override.Pattern != nil {
		e.Pattern = override.Pattern
	}
	return e
}
