// Package parse provides form.ParseFunc builders for common input
// conversions. Parsers never fail loudly: input that cannot be converted
// parses to nil, which the required check treats as missing.
package parse

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formstate/pkg/form"
)

var (
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)
	})
}

// Number parses the input as a float64.
func Number(raw any) any {
	s, ok := text(raw)
	if !ok {
		return raw
	}
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return f
}

// Int parses the input as a base 10 int.
func Int(raw any) any {
	s, ok := text(raw)
	if !ok {
		return raw
	}
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return n
}

// Bool parses checkbox style input ("on", "true", "1", "yes").
func Bool(raw any) any {
	if b, ok := raw.(bool); ok {
		return b
	}
	s, ok := text(raw)
	if !ok {
		return raw
	}
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}

// Trim removes surrounding whitespace from strings and string lists.
func Trim(raw any) any {
	return mapStrings(raw, strings.TrimSpace)
}

// Lower lower-cases strings and string lists.
func Lower(raw any) any {
	return mapStrings(raw, strings.ToLower)
}

// StripHTML removes all markup and returns plain text.
func StripHTML(raw any) any {
	initPolicies()
	return mapStrings(raw, strictPolicy.Sanitize)
}

// SanitizeHTML keeps basic formatting tags (p, a, strong, em, lists, code)
// and strips everything else, including scripts and event handlers.
func SanitizeHTML(raw any) any {
	initPolicies()
	return mapStrings(raw, safePolicy.Sanitize)
}

// Chain applies parsers left to right. Nil entries are skipped.
func Chain(parsers ...form.ParseFunc) form.ParseFunc {
	chain := make([]form.ParseFunc, 0, len(parsers))
	for _, p := range parsers {
		if p != nil {
			chain = append(chain, p)
		}
	}
	return func(raw any) any {
		value := raw
		for _, p := range chain {
			value = p(value)
		}
		return value
	}
}

var registry = map[string]form.ParseFunc{
	"number":        Number,
	"float":         Number,
	"int":           Int,
	"integer":       Int,
	"bool":          Bool,
	"boolean":       Bool,
	"trim":          Trim,
	"lower":         Lower,
	"strip-html":    StripHTML,
	"sanitize-html": SanitizeHTML,
}

// Lookup returns the parser registered under name.
func Lookup(name string) (form.ParseFunc, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if p, ok := registry[key]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownParser, name)
}

// Names lists the registered parser names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func text(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v), true
	case []string:
		if len(v) == 0 {
			return "", true
		}
		return strings.TrimSpace(v[0]), true
	default:
		return "", false
	}
}

func mapStrings(raw any, fn func(string) string) any {
	switch v := raw.(type) {
	case string:
		return fn(v)
	case []string:
		out := make([]string, len(v))
		for i, s := range v {
			out[i] = fn(s)
		}
		return out
	default:
		return raw
	}
}
