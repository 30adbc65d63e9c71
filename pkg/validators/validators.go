// Package validators provides reusable form.Validator builders: numeric and
// length bounds, regular expressions, expr-lang predicates and JSON Schema
// checks. Combine chains them so the first failure wins.
package validators

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/form"
)

// Combine returns a validator reporting the first non-empty message of vs.
// Nil validators are skipped.
func Combine(vs ...form.Validator) form.Validator {
	chain := make([]form.Validator, 0, len(vs))
	for _, v := range vs {
		if v != nil {
			chain = append(chain, v)
		}
	}
	return func(value any) string {
		for _, v := range chain {
			if msg := v(value); msg != "" {
				return msg
			}
		}
		return ""
	}
}

// Min fails when a numeric value is below n. Non-numeric values pass.
func Min(n float64, message form.Message[float64]) form.Validator {
	return func(value any) string {
		if f, ok := toFloat(value); ok && f < n {
			return failure(message, n)
		}
		return ""
	}
}

// Max fails when a numeric value is above n. Non-numeric values pass.
func Max(n float64, message form.Message[float64]) form.Validator {
	return func(value any) string {
		if f, ok := toFloat(value); ok && f > n {
			return failure(message, n)
		}
		return ""
	}
}

// MinLength fails when the value is shorter than n, including empty values.
func MinLength(n int, message form.Message[int]) form.Validator {
	return func(value any) string {
		if length, ok := form.Length(value); ok && length < n {
			return failure(message, n)
		}
		return ""
	}
}

// MaxLength fails when the value is longer than n.
func MaxLength(n int, message form.Message[int]) form.Validator {
	return func(value any) string {
		if length, ok := form.Length(value); ok && length > n {
			return failure(message, n)
		}
		return ""
	}
}

// Pattern fails when the stringified value does not match re. Unlike
// FieldOptions.Pattern it reports an error instead of dropping input.
func Pattern(re *regexp.Regexp, message form.Message[string]) form.Validator {
	return func(value any) string {
		if re == nil || re.MatchString(form.Stringify(value)) {
			return ""
		}
		return failure(message, re.String())
	}
}

// failure resolves message, falling back to DefaultMessage so a failing check
// never reads as valid.
func failure[T any](message form.Message[T], bound T) string {
	if text := message.Resolve(bound); text != "" {
		return text
	}
	return DefaultMessage
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
