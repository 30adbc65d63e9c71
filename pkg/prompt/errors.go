package prompt

import "errors"

var (
	// ErrMissingInput is returned when Run is called without a controller or
	// a compiled definition.
	ErrMissingInput = errors.New("prompt: controller and definition are required")
	// ErrAborted signals the user aborted input (Ctrl+C) or declined to submit.
	ErrAborted = errors.New("prompt: aborted")
	// ErrTooManyAttempts is returned when a field keeps failing validation
	// past the configured attempt limit.
	ErrTooManyAttempts = errors.New("prompt: too many attempts")
	// ErrInvalid is returned when the form is still invalid after the
	// configured number of submit rounds.
	ErrInvalid = errors.New("prompt: form is invalid")
)
