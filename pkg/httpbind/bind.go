// Package httpbind feeds posted form values through controller bindings so a
// server-side handler validates exactly like an interactive UI would.
package httpbind

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"sort"
	"strings"

	"github.com/goliatone/go-formstate/pkg/form"
)

const defaultMaxMemory = 32 << 20

// Bind parses the request body and routes every bound key through OnChange
// and then OnBlur. Keys missing from the request are routed with the
// binding's current value, the way a browser posts every input, so a later
// Validate sees them. It returns the keys present in the request in sorted
// order.
//
// URL-encoded and multipart bodies are read with the standard form parser;
// multi-value fields receive []string, single-value fields the first value.
// JSON object bodies are routed value by value.
func Bind(r *http.Request, bindings map[string]form.Binding) ([]string, error) {
	values, err := requestValues(r)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(bindings))
	for key := range bindings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	applied := make([]string, 0, len(keys))
	for _, key := range keys {
		binding := bindings[key]
		raw, ok := values.lookup(key, binding.Multiple)
		if !ok {
			raw = currentValue(binding)
		}
		if binding.OnChange != nil {
			binding.OnChange(form.ChangeEvent{Value: raw, Target: r})
		}
		if binding.OnBlur != nil {
			binding.OnBlur(form.BlurEvent{Value: raw, Target: r})
		}
		if ok {
			applied = append(applied, key)
		}
	}
	return applied, nil
}

func currentValue(binding form.Binding) any {
	if binding.Value != nil {
		return binding.Value
	}
	if binding.Multiple {
		return []string{}
	}
	return ""
}

type requestData struct {
	form map[string][]string
	json map[string]any
}

func requestValues(r *http.Request) (requestData, error) {
	if r == nil {
		return requestData{}, fmt.Errorf("%w: nil request", ErrInvalidBody)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		if r.Body == nil {
			return requestData{}, fmt.Errorf("%w: empty body", ErrInvalidBody)
		}
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		var payload map[string]any
		if err := dec.Decode(&payload); err != nil {
			return requestData{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		return requestData{json: payload}, nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(defaultMaxMemory); err != nil {
			return requestData{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return requestData{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
	}
	return requestData{form: r.Form}, nil
}

func (d requestData) lookup(key string, multiple bool) (any, bool) {
	if d.json != nil {
		value, ok := d.json[key]
		if !ok {
			return nil, false
		}
		if multiple {
			return jsonList(value), true
		}
		return value, true
	}

	values, ok := d.form[key]
	if !ok {
		return nil, false
	}
	if multiple {
		return append([]string{}, values...), true
	}
	if len(values) == 0 {
		return "", true
	}
	return values[0], true
}

func jsonList(value any) any {
	switch v := value.(type) {
	case nil:
		return []string{}
	case string:
		if strings.TrimSpace(v) == "" {
			return []string{}
		}
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, form.Stringify(item))
		}
		return out
	default:
		return value
	}
}
