package form

type trigger int

const (
	triggerChange trigger = iota
	triggerBlur
)

func (t trigger) String() string {
	if t == triggerBlur {
		return "blur"
	}
	return "change"
}

func (c *Controller) validatesOn(t trigger) bool {
	switch c.mode {
	case AutoValidateImmediate:
		return true
	case AutoValidateOnChange:
		return t == triggerChange
	case AutoValidateOnBlur:
		return t == triggerBlur
	default:
		return false
	}
}

// handleInput commits an accepted raw value, validates it when the mode asks
// for it and runs the matching side-effect callback.
func (c *Controller) handleInput(key string, opts FieldOptions, event ChangeEvent, t trigger) {
	parsed, accepted := parseValue(event.Value, opts)
	if !accepted {
		c.logger.Debug("form: input rejected by pattern",
			"field", key,
			"trigger", t.String(),
			"pattern", opts.Pattern.String(),
		)
		return
	}

	c.mu.Lock()
	c.store.setField(key, deepCopy(parsed), deepCopy(event.Value))
	c.mu.Unlock()
	c.notify()

	if c.validatesOn(t) && !c.validateField(key, event.Value, opts) {
		return
	}

	switch t {
	case triggerChange:
		if opts.OnChange != nil {
			opts.OnChange(event, parsed)
		}
	case triggerBlur:
		if opts.OnBlur != nil {
			opts.OnBlur(event, parsed)
		}
	}
}

// validateField re-parses raw, runs the rules and records the outcome for key.
// It reports whether the field is valid.
func (c *Controller) validateField(key string, raw any, opts FieldOptions) bool {
	msg := c.evaluate(raw, opts)

	c.mu.Lock()
	changed := c.store.setError(key, msg)
	c.mu.Unlock()
	if changed {
		c.notify()
	}
	return msg == nil
}

// evaluate parses raw and returns its error. A value rejected by the pattern
// gate is validated as nil.
func (c *Controller) evaluate(raw any, opts FieldOptions) *ErrorMessage {
	parsed, accepted := parseValue(raw, opts)
	if !accepted {
		parsed = nil
	}
	return check(parsed, opts, c.messages.Merge(opts.ErrorMessages))
}
