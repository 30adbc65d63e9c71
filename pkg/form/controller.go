package form

import (
	"fmt"
	"log/slog"
	"maps"
	"sync"
)

// Controller owns the state of one form instance. All reads return copies;
// the maps are only mutated through the controller methods.
//
// Parsers, validators, callbacks and subscribers never run while the internal
// lock is held, so they may call back into the controller.
type Controller struct {
	mu       sync.RWMutex
	store    *store
	configs  map[string]FieldOptions
	multiple map[string]bool

	initial  map[string]any
	messages ErrorStrings
	mode     AutoValidate
	onSubmit SubmitFunc
	logger   *slog.Logger

	subsMu  sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// New builds a controller from cfg.
func New(cfg Config, opts ...Option) (*Controller, error) {
	mode := cfg.AutoValidate
	if mode == "" {
		mode = AutoValidateOnChange
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAutoValidate, cfg.AutoValidate)
	}

	c := &Controller{
		store:    newStore(cfg.InitialState),
		configs:  make(map[string]FieldOptions),
		multiple: make(map[string]bool),
		initial:  cloneValues(cfg.InitialState),
		messages: DefaultErrorStrings().Merge(cfg.ErrorMessages),
		mode:     mode,
		onSubmit: cfg.OnSubmit,
		logger:   discardLogger(),
		subs:     make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// AutoValidate returns the mode selected at construction.
func (c *Controller) AutoValidate() AutoValidate {
	return c.mode
}

// Messages returns the form-level messages (defaults merged with
// Config.ErrorMessages).
func (c *Controller) Messages() ErrorStrings {
	return c.messages
}

// Field registers opts for key and returns the props for the current render.
// Calling it again with unchanged options is idempotent.
func (c *Controller) Field(key string, opts FieldOptions) Binding {
	multiple := c.register(key, opts)

	if c.mode == AutoValidateImmediate {
		raw, _ := c.Raw(key)
		c.validateField(key, raw, opts)
	}

	value, ok := c.Raw(key)
	if !ok {
		if multiple {
			value = []string{}
		} else {
			value = ""
		}
	}

	return Binding{
		Key:      key,
		Value:    value,
		Required: opts.Required,
		Multiple: multiple,
		OnChange: func(event ChangeEvent) {
			c.handleInput(key, opts, event, triggerChange)
		},
		OnBlur: func(event BlurEvent) {
			c.handleInput(key, opts, event, triggerBlur)
		},
	}
}

func (c *Controller) register(key string, opts FieldOptions) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.configs[key] = opts
	if opts.Multiple != nil {
		c.multiple[key] = *opts.Multiple
		return *opts.Multiple
	}
	if multiple, ok := c.multiple[key]; ok {
		return multiple
	}
	multiple := isSequence(c.initial[key])
	c.multiple[key] = multiple
	return multiple
}

// FieldOptions returns the options registered for key.
func (c *Controller) FieldOptions(key string) (FieldOptions, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	opts, ok := c.configs[key]
	return opts, ok
}

// SetValue writes value as both the parsed and raw value of key, bypassing
// the pipeline. No validation runs.
func (c *Controller) SetValue(key string, value any) {
	c.SetValueWithRaw(key, value, value)
}

// SetValueWithRaw writes a parsed value together with a separate raw value.
func (c *Controller) SetValueWithRaw(key string, value, raw any) {
	c.mu.Lock()
	c.store.setField(key, deepCopy(value), deepCopy(raw))
	c.mu.Unlock()
	c.notify()
}

// SetValues applies SetValue for each entry. Each field write is atomic; the
// order across entries is unspecified.
func (c *Controller) SetValues(values map[string]any) {
	if len(values) == 0 {
		return
	}
	for key, value := range values {
		c.mu.Lock()
		c.store.setField(key, deepCopy(value), deepCopy(value))
		c.mu.Unlock()
	}
	c.notify()
}

// State returns a copy of the parsed values.
func (c *Controller) State() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneValues(c.store.values)
}

// RawState returns a copy of the raw values.
func (c *Controller) RawState() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneValues(c.store.raw)
}

// Errors returns a copy of the active field errors.
func (c *Controller) Errors() map[string]ErrorMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.store.errors)
}

// Dirty returns a copy of the dirty flags.
func (c *Controller) Dirty() map[string]bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.store.dirty)
}

// IsValid reports whether no field currently has an error.
func (c *Controller) IsValid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store.errors) == 0
}

// Value returns the parsed value of key.
func (c *Controller) Value(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.store.values[key]
	return deepCopy(value), ok
}

// Raw returns the raw value of key.
func (c *Controller) Raw(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	raw, ok := c.store.raw[key]
	return deepCopy(raw), ok
}

// Error returns the active error of key.
func (c *Controller) Error(key string) (ErrorMessage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	msg, ok := c.store.errors[key]
	return msg, ok
}

// Snapshot returns a consistent copy of every map.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.snapshot()
}

// Subscribe registers fn to receive a snapshot after every change to the
// values or the error map. The returned function removes the subscription.
func (c *Controller) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	c.subsMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subsMu.Lock()
			delete(c.subs, id)
			c.subsMu.Unlock()
		})
	}
}

func (c *Controller) notify() {
	c.subsMu.Lock()
	if len(c.subs) == 0 {
		c.subsMu.Unlock()
		return
	}
	listeners := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		listeners = append(listeners, fn)
	}
	c.subsMu.Unlock()

	snap := c.Snapshot()
	for _, fn := range listeners {
		fn(snap)
	}
}
