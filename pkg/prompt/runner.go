// Package prompt fills a form interactively in the terminal. Each answer is
// routed through the field's binding exactly like a UI change followed by a
// blur, so the controller's pipeline and validation decide what sticks.
package prompt

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/form"
)

const (
	defaultMaxAttempts = 3
	defaultMaxRounds   = 3
)

// Runner drives a controller through a Driver.
type Runner struct {
	driver      Driver
	logger      *slog.Logger
	maxAttempts int
	maxRounds   int
	confirm     bool
	theme       Theme
}

// New builds a runner backed by the survey driver unless overridden.
func New(options ...Option) *Runner {
	r := &Runner{
		driver:      NewSurveyDriver(nil),
		logger:      discardLogger(),
		maxAttempts: defaultMaxAttempts,
		maxRounds:   defaultMaxRounds,
		theme:       Theme{ErrorPrefix: "! "},
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// submitEvent stands in for a browser event; there is no default to prevent.
type submitEvent struct{}

func (submitEvent) PreventDefault() {}

// Run prompts every field of compiled, submits through ctrl and returns the
// submitted state. Fields still failing after a rejected submit are asked
// again, up to the configured number of rounds.
func (r *Runner) Run(ctx context.Context, ctrl *form.Controller, compiled *definition.Compiled) (map[string]any, error) {
	if ctrl == nil || compiled == nil {
		return nil, ErrMissingInput
	}

	if title := strings.TrimSpace(compiled.Title); title != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+title); err != nil {
			return nil, err
		}
	}

	pending := compiled.Fields
	for round := 1; ; round++ {
		for _, field := range pending {
			if err := r.ask(ctx, ctrl, field); err != nil {
				return nil, err
			}
		}

		if r.confirm {
			ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Submit?", Default: true})
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, ErrAborted
			}
		}

		ctrl.Validate()
		if ctrl.HandleSubmit(submitEvent{}) {
			r.logger.Debug("prompt: submitted", "form", compiled.Name, "rounds", round)
			return ctrl.State(), nil
		}

		errs := ctrl.Errors()
		if round >= r.maxRounds {
			return nil, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(errorKeys(errs), ", "))
		}

		pending = pending[:0:0]
		for _, field := range compiled.Fields {
			msg, failed := errs[field.Key]
			if !failed {
				continue
			}
			if err := r.driver.Info(ctx, r.theme.ErrorPrefix+field.Label+": "+msg.Text); err != nil {
				return nil, err
			}
			pending = append(pending, field)
		}
		if len(pending) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(errorKeys(errs), ", "))
		}
	}
}

// ask prompts one field until the answer is accepted and, when the mode
// validates on input, valid.
func (r *Runner) ask(ctx context.Context, ctrl *form.Controller, field definition.CompiledField) error {
	checkErrors := ctrl.AutoValidate() != form.AutoValidateNever

	for attempt := 1; ; attempt++ {
		binding := ctrl.Field(field.Key, field.Options)
		answer, err := r.read(ctx, field, binding)
		if err != nil {
			return err
		}

		binding.OnChange(form.ChangeEvent{Value: answer})
		binding.OnBlur(form.BlurEvent{Value: answer})

		problem := ""
		if raw, _ := ctrl.Raw(field.Key); form.Stringify(raw) != form.Stringify(answer) {
			problem = patternMessage(ctrl, field)
		} else if msg, failed := ctrl.Error(field.Key); checkErrors && failed {
			problem = msg.Text
		}
		if problem == "" {
			return nil
		}

		r.logger.Debug("prompt: answer not accepted",
			"field", field.Key,
			"attempt", attempt,
			"reason", problem,
		)
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+problem); err != nil {
			return err
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Key)
		}
	}
}

func (r *Runner) read(ctx context.Context, field definition.CompiledField, binding form.Binding) (any, error) {
	message := field.Label
	if binding.Required {
		message += " *"
	}

	switch {
	case len(field.Choices) > 0 && binding.Multiple:
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  message,
			Options:  field.Choices,
			Defaults: indicesOf(field.Choices, stringValues(binding.Value)),
			Help:     field.Help,
		})
		if err != nil {
			return nil, err
		}
		return valuesAt(field.Choices, indices), nil

	case len(field.Choices) > 0:
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      field.Choices,
			DefaultIndex: indexOf(field.Choices, form.Stringify(binding.Value)),
			Help:         field.Help,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(field.Choices) {
			return "", nil
		}
		return field.Choices[idx], nil

	case field.Secret:
		return r.driver.Password(ctx, InputConfig{Message: message, Help: field.Help})

	case binding.Multiple:
		text, err := r.driver.Input(ctx, InputConfig{
			Message: message,
			Default: strings.Join(stringValues(binding.Value), ", "),
			Help:    field.Help,
		})
		if err != nil {
			return nil, err
		}
		return splitList(text), nil

	default:
		return r.driver.Input(ctx, InputConfig{
			Message: message,
			Default: form.Stringify(binding.Value),
			Help:    field.Help,
		})
	}
}

func patternMessage(ctrl *form.Controller, field definition.CompiledField) string {
	if field.Options.Pattern == nil {
		return "Input rejected"
	}
	messages := ctrl.Messages().Merge(field.Options.ErrorMessages)
	return messages.Pattern.Resolve(field.Options.Pattern.String())
}

func stringValues(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, form.Stringify(item))
		}
		return out
	default:
		return nil
	}
}

func splitList(text string) []string {
	out := []string{}
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func errorKeys(errs map[string]form.ErrorMessage) []string {
	keys := make([]string, 0, len(errs))
	for key := range errs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
