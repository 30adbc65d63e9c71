package form

import (
	"maps"
	"sort"
)

// Validate re-validates every key present in RawState against its registered
// options (empty options for keys never bound) and replaces the error map
// with the result. It reports whether the form is valid.
func (c *Controller) Validate() bool {
	c.mu.RLock()
	raw := cloneValues(c.store.raw)
	configs := maps.Clone(c.configs)
	c.mu.RUnlock()

	next := make(map[string]ErrorMessage)
	for key, value := range raw {
		if msg := c.evaluate(value, configs[key]); msg != nil {
			next[key] = *msg
		}
	}

	c.mu.Lock()
	changed := c.store.replaceErrors(next)
	c.mu.Unlock()
	if changed {
		c.notify()
	}

	c.logger.Debug("form: validated", "fields", len(raw), "errors", sortedKeys(next))
	return len(next) == 0
}

// HandleSubmit prevents the default submit action and, when the form has no
// errors, passes a copy of the parsed state to Config.OnSubmit. It does not
// run validation; call Validate first to force it. The result reports
// whether the submission was dispatched.
func (c *Controller) HandleSubmit(event SubmitEvent) bool {
	if event != nil {
		event.PreventDefault()
	}

	c.mu.RLock()
	valid := len(c.store.errors) == 0
	blocked := sortedKeys(c.store.errors)
	values := cloneValues(c.store.values)
	c.mu.RUnlock()

	if !valid {
		c.logger.Debug("form: submission blocked", "errors", blocked)
		return false
	}
	if c.onSubmit != nil {
		c.onSubmit(values, event)
	}
	return true
}

func sortedKeys(errs map[string]ErrorMessage) []string {
	keys := make([]string, 0, len(errs))
	for key := range errs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
