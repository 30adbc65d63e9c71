// Package form implements a single-form state controller: it tracks raw input,
// parsed values, dirty flags and per-field validation errors, and gates
// submission on validity.
//
// A UI layer calls Controller.Field once per render for every input, routes
// the input's change and blur events through the returned Binding, and reads
// State, RawState, Errors, Dirty and IsValid to render. Values flow through a
// small pipeline before they are committed:
//
//	raw input -> FieldOptions.Parse -> pattern gate -> store -> validation
//
// Input that fails the pattern gate is dropped without touching the store or
// the error map. Every other failure is recorded as an ErrorMessage on the
// field, evaluated in a fixed order: required, minLength, maxLength, custom.
//
// When validation runs automatically is selected once per controller through
// Config.AutoValidate (immediate, onChange, onBlur or never). Validate runs a
// full pass on demand regardless of the mode.
package form
