package form

import (
	"encoding/json"
	"math"
	"reflect"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// check evaluates the built-in rules and the custom validator in precedence
// order and returns the first failure, or nil.
func check(value any, opts FieldOptions, messages ErrorStrings) *ErrorMessage {
	if opts.Required && !Truthy(value) {
		return &ErrorMessage{Kind: ErrorRequired, Text: messages.Required}
	}

	if opts.MinLength > 0 && Truthy(value) {
		if n, ok := Length(value); ok && n < opts.MinLength {
			return &ErrorMessage{Kind: ErrorMinLength, Text: messages.MinLength.Resolve(opts.MinLength)}
		}
	}

	if opts.MaxLength > 0 && Truthy(value) {
		if n, ok := Length(value); ok && n > opts.MaxLength {
			return &ErrorMessage{Kind: ErrorMaxLength, Text: messages.MaxLength.Resolve(opts.MaxLength)}
		}
	}

	if opts.Validate != nil {
		if text := opts.Validate(value); text != "" {
			return &ErrorMessage{Kind: ErrorCustom, Text: text}
		}
	}
	return nil
}

// Truthy reports whether value counts as present. nil, "", false, numeric
// zero, NaN, nil pointers and zero-length slices, arrays and maps are missing.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return v != ""
		}
		return f != 0 && !math.IsNaN(f)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.String:
		return rv.Len() > 0
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Chan, reflect.Func:
		return !rv.IsNil()
	default:
		return true
	}
}

// Length returns the length used by the minLength and maxLength checks:
// characters (runes after NFC normalisation) for strings and element counts
// for slices, arrays and maps. ok is false for values without a length,
// including json.Number.
func Length(value any) (n int, ok bool) {
	if _, isNumber := value.(json.Number); isNumber {
		return 0, false
	}
	if s, isString := value.(string); isString {
		return utf8.RuneCountInString(norm.NFC.String(s)), true
	}
	if value == nil {
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(norm.NFC.String(rv.String())), true
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	default:
		return 0, false
	}
}
