package form

import (
	"io"
	"log/slog"
	"regexp"
)

// Config holds the form-wide settings. It is read once by New.
type Config struct {
	// InitialState pre-fills both State and RawState. Values are copied, so
	// later mutations of the map do not leak into the controller.
	InitialState map[string]any

	// ErrorMessages overrides the built-in messages for every field.
	ErrorMessages ErrorStrings

	// AutoValidate selects when validation runs automatically. Empty means
	// AutoValidateOnChange.
	AutoValidate AutoValidate

	// OnSubmit is called by HandleSubmit when the form has no errors.
	OnSubmit SubmitFunc
}

// FieldOptions configures a single field. The options passed to the latest
// Field call for a key replace any previous ones.
type FieldOptions struct {
	// Required reports an error when the parsed value is empty, zero, false,
	// nil or a zero-length collection.
	Required bool

	// MinLength reports an error when a non-empty value is shorter than the
	// bound. Zero disables the check.
	MinLength int

	// MaxLength reports an error when a non-empty value is longer than the
	// bound. Zero disables the check.
	MaxLength int

	// Pattern gates input: a non-empty raw value whose parsed value does not
	// match is dropped before it reaches the store. It never produces an
	// error entry; use Validate for that.
	Pattern *regexp.Regexp

	// ErrorMessages overrides form-level and built-in messages for this field.
	ErrorMessages ErrorStrings

	// Validate runs after the built-in checks; a non-empty result becomes a
	// custom error.
	Validate Validator

	// Parse converts the raw input before it is stored in State. RawState
	// always keeps the unparsed value.
	Parse ParseFunc

	// Multiple marks the field as multi-valued. When nil it is inferred from
	// the initial value on first registration.
	Multiple *bool

	// OnChange runs after an accepted change when the field is valid, or when
	// the controller does not validate on change.
	OnChange func(event ChangeEvent, value any)

	// OnBlur runs after an accepted blur when the field is valid, or when the
	// controller does not validate on blur.
	OnBlur func(event BlurEvent, value any)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger routes controller diagnostics to logger. Nil keeps the default
// discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
