package prompt

import (
	"io"
	"log/slog"
)

// Theme captures optional message prefixes.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the Runner.
type Option func(*Runner)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMaxAttempts bounds how often one field is asked per round. Zero means
// unlimited.
func WithMaxAttempts(n int) Option {
	return func(r *Runner) {
		if n >= 0 {
			r.maxAttempts = n
		}
	}
}

// WithMaxRounds bounds how often the runner retries a rejected submit.
func WithMaxRounds(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxRounds = n
		}
	}
}

// WithConfirm asks for confirmation before submitting.
func WithConfirm(enabled bool) Option {
	return func(r *Runner) {
		r.confirm = enabled
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
