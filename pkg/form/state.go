package form

import (
	"maps"
	"reflect"
)

// store owns the four parallel maps. Callers hold Controller.mu.
type store struct {
	values map[string]any
	raw    map[string]any
	dirty  map[string]bool
	errors map[string]ErrorMessage
}

func newStore(initial map[string]any) *store {
	return &store{
		values: cloneValues(initial),
		raw:    cloneValues(initial),
		dirty:  make(map[string]bool),
		errors: make(map[string]ErrorMessage),
	}
}

func (s *store) setField(key string, value, raw any) {
	s.values[key] = value
	s.raw[key] = raw
	s.dirty[key] = true
}

// setError records or clears the error of key and reports whether the error
// map changed.
func (s *store) setError(key string, msg *ErrorMessage) bool {
	current, exists := s.errors[key]
	if msg == nil {
		if !exists {
			return false
		}
		delete(s.errors, key)
		return true
	}
	if exists && current == *msg {
		return false
	}
	s.errors[key] = *msg
	return true
}

// replaceErrors swaps the error map and reports whether it changed.
func (s *store) replaceErrors(next map[string]ErrorMessage) bool {
	changed := !maps.Equal(s.errors, next)
	s.errors = next
	return changed
}

func (s *store) snapshot() Snapshot {
	return Snapshot{
		State:    cloneValues(s.values),
		RawState: cloneValues(s.raw),
		Errors:   maps.Clone(s.errors),
		Dirty:    maps.Clone(s.dirty),
		Valid:    len(s.errors) == 0,
	}
}

func cloneValues(src map[string]any) map[string]any {
	if len(src) == 0 {
		return make(map[string]any)
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	case []string:
		clone := make([]string, len(typed))
		copy(clone, typed)
		return clone
	default:
		if typed == nil {
			return nil
		}
		rv := reflect.ValueOf(typed)
		switch rv.Kind() {
		case reflect.Slice, reflect.Map:
			return copyValue(rv).Interface()
		default:
			return typed
		}
	}
}

// copyValue clones slices and maps of any element type.
func copyValue(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(copyElem(rv.Index(i)))
		}
		return out
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), copyElem(iter.Value()))
		}
		return out
	default:
		return rv
	}
}

func copyElem(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return rv
		}
		return reflect.ValueOf(deepCopy(rv.Interface()))
	case reflect.Slice, reflect.Map:
		return copyValue(rv)
	default:
		return rv
	}
}

func isSequence(value any) bool {
	if value == nil {
		return false
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}
