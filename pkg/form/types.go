package form

import (
	"fmt"
	"strings"
)

// ErrorKind identifies the check that produced an ErrorMessage.
type ErrorKind string

const (
	ErrorRequired  ErrorKind = "required"
	ErrorMinLength ErrorKind = "minLength"
	ErrorMaxLength ErrorKind = "maxLength"
	ErrorPattern   ErrorKind = "pattern"
	ErrorCustom    ErrorKind = "custom"
)

// ErrorMessage is the single active error of a field.
type ErrorMessage struct {
	Kind ErrorKind `json:"kind"`
	Text string    `json:"text"`
}

// AutoValidate selects when validation runs without an explicit Validate call.
type AutoValidate string

const (
	// AutoValidateImmediate validates whenever a field is bound and on every
	// change and blur.
	AutoValidateImmediate AutoValidate = "immediate"
	// AutoValidateOnChange validates after every accepted change. Default.
	AutoValidateOnChange AutoValidate = "onChange"
	// AutoValidateOnBlur validates after every accepted blur.
	AutoValidateOnBlur AutoValidate = "onBlur"
	// AutoValidateNever leaves the error map to explicit Validate calls.
	AutoValidateNever AutoValidate = "never"
)

// Valid reports whether m is one of the known modes.
func (m AutoValidate) Valid() bool {
	switch m {
	case AutoValidateImmediate, AutoValidateOnChange, AutoValidateOnBlur, AutoValidateNever:
		return true
	default:
		return false
	}
}

// ParseAutoValidate maps a user supplied mode name onto an AutoValidate value.
// Matching ignores case, dashes and underscores; an empty name selects the
// default (onChange).
func ParseAutoValidate(name string) (AutoValidate, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized)
	switch normalized {
	case "":
		return AutoValidateOnChange, nil
	case "immediate":
		return AutoValidateImmediate, nil
	case "onchange", "change":
		return AutoValidateOnChange, nil
	case "onblur", "blur":
		return AutoValidateOnBlur, nil
	case "never", "manual":
		return AutoValidateNever, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAutoValidate, name)
	}
}

// ChangeEvent carries a raw input value produced by a widget. Target is an
// optional reference to the originating widget and is passed through to
// callbacks untouched.
type ChangeEvent struct {
	Value  any
	Target any
}

// BlurEvent has the same shape as ChangeEvent.
type BlurEvent = ChangeEvent

// SubmitEvent is the platform submit action. HandleSubmit always calls
// PreventDefault before deciding whether to dispatch.
type SubmitEvent interface {
	PreventDefault()
}

// SubmitFunc receives a copy of the parsed state on a valid submission.
type SubmitFunc func(values map[string]any, event SubmitEvent)

// ParseFunc converts a raw input value into the parsed value stored in State.
type ParseFunc func(raw any) any

// Validator returns a non-empty message when value is invalid.
type Validator func(value any) string

// Binding holds the props a UI layer injects into an input for one render.
type Binding struct {
	Key      string
	Value    any
	Required bool
	Multiple bool
	OnChange func(ChangeEvent)
	OnBlur   func(BlurEvent)
}

// Snapshot is a consistent copy of the controller state.
type Snapshot struct {
	State    map[string]any          `json:"state"`
	RawState map[string]any          `json:"rawState"`
	Errors   map[string]ErrorMessage `json:"errors"`
	Dirty    map[string]bool         `json:"dirty"`
	Valid    bool                    `json:"valid"`
}
