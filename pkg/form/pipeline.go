package form

import (
	"fmt"
	"strings"
)

// parseValue runs the value pipeline for raw. The boolean is false when the
// pattern gate rejects the input; the store must not be touched then.
func parseValue(raw any, opts FieldOptions) (any, bool) {
	parsed := raw
	if opts.Parse != nil {
		parsed = opts.Parse(raw)
	}

	if opts.Pattern != nil && !isEmptyString(raw) {
		if !opts.Pattern.MatchString(Stringify(parsed)) {
			return nil, false
		}
	}
	return parsed, true
}

func isEmptyString(value any) bool {
	s, ok := value.(string)
	return ok && s == ""
}

// Stringify renders a value the way patterns see it: strings unchanged,
// string and value lists comma-joined, nil as "" and anything else through
// fmt.Sprint.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ",")
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ",")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
