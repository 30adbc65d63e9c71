package definition

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/parse"
	"github.com/goliatone/go-formstate/pkg/validators"
)

const (
	defaultMinMessage = "Must be at least {n}"
	defaultMaxMessage = "Must be no more than {n}"
)

// Compiled is a definition turned into controller configuration.
type Compiled struct {
	Name   string
	Title  string
	Config form.Config
	Fields []CompiledField
}

// CompiledField carries the options for one field plus the presentation
// hints UI layers need.
type CompiledField struct {
	Key      string
	Label    string
	Help     string
	Choices  []string
	Secret   bool
	Multiple bool
	Options  form.FieldOptions
}

// Compile validates the definition and builds the controller configuration.
func (d Definition) Compile() (*Compiled, error) {
	mode, err := form.ParseAutoValidate(d.AutoValidate)
	if err != nil {
		return nil, fmt.Errorf("definition %q: %w", d.Name, err)
	}

	out := &Compiled{
		Name:  d.Name,
		Title: d.Title,
		Config: form.Config{
			InitialState:  normalizeInitialState(d.InitialState),
			ErrorMessages: d.Messages.errorStrings(),
			AutoValidate:  mode,
		},
		Fields: make([]CompiledField, 0, len(d.Fields)),
	}

	seen := make(map[string]struct{}, len(d.Fields))
	for idx, field := range d.Fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			return nil, fmt.Errorf("%w (field #%d)", ErrMissingKey, idx)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}
		seen[key] = struct{}{}

		compiled, err := field.compile(key, d.Messages)
		if err != nil {
			return nil, fmt.Errorf("definition %q field %q: %w", d.Name, key, err)
		}
		if compiled.Options.Multiple == nil {
			compiled.Multiple = isSequence(out.Config.InitialState[key])
		}
		out.Fields = append(out.Fields, compiled)
	}
	return out, nil
}

func (f Field) compile(key string, formMessages Messages) (CompiledField, error) {
	label := strings.TrimSpace(f.Label)
	if label == "" {
		label = key
	}

	opts := form.FieldOptions{
		Required:      f.Required,
		MinLength:     f.MinLength,
		MaxLength:     f.MaxLength,
		Multiple:      f.Multiple,
		ErrorMessages: f.Messages.errorStrings(),
	}

	if f.Pattern != "" {
		re, err := regexp.Compile(f.Pattern)
		if err != nil {
			return CompiledField{}, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		opts.Pattern = re
	}

	if len(f.Parse) > 0 {
		parsers := make([]form.ParseFunc, 0, len(f.Parse))
		for _, name := range f.Parse {
			p, err := parse.Lookup(name)
			if err != nil {
				return CompiledField{}, err
			}
			parsers = append(parsers, p)
		}
		opts.Parse = parse.Chain(parsers...)
	}

	var checks []form.Validator
	if f.Min != nil {
		text := firstNonEmpty(f.Messages.Min, formMessages.Min, defaultMinMessage)
		checks = append(checks, validators.Min(*f.Min, floatTemplate(text)))
	}
	if f.Max != nil {
		text := firstNonEmpty(f.Messages.Max, formMessages.Max, defaultMaxMessage)
		checks = append(checks, validators.Max(*f.Max, floatTemplate(text)))
	}
	for idx, rule := range f.Rules {
		v, err := rule.compile()
		if err != nil {
			return CompiledField{}, fmt.Errorf("rule #%d: %w", idx, err)
		}
		checks = append(checks, v)
	}
	switch len(checks) {
	case 0:
	case 1:
		opts.Validate = checks[0]
	default:
		opts.Validate = validators.Combine(checks...)
	}

	multiple := f.Multiple != nil && *f.Multiple
	return CompiledField{
		Key:      key,
		Label:    label,
		Help:     strings.TrimSpace(f.Help),
		Choices:  append([]string(nil), f.Choices...),
		Secret:   f.Secret,
		Multiple: multiple,
		Options:  opts,
	}, nil
}

func (r Rule) compile() (form.Validator, error) {
	hasExpr := strings.TrimSpace(r.Expr) != ""
	hasSchema := r.Schema != nil
	switch {
	case hasExpr && hasSchema:
		return nil, fmt.Errorf("%w: expr and schema are mutually exclusive", ErrInvalidRule)
	case hasExpr:
		return validators.Expr(r.Expr, r.Message)
	case hasSchema:
		schema, err := schemaText(r.Schema)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}
		return validators.JSONSchema(schema, r.Message)
	default:
		return nil, fmt.Errorf("%w: expr or schema is required", ErrInvalidRule)
	}
}

func schemaText(schema any) (string, error) {
	if s, ok := schema.(string); ok {
		return s, nil
	}
	payload, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func (m Messages) errorStrings() form.ErrorStrings {
	out := form.ErrorStrings{Required: m.Required}
	if m.MinLength != "" {
		out.MinLength = intTemplate(m.MinLength)
	}
	if m.MaxLength != "" {
		out.MaxLength = intTemplate(m.MaxLength)
	}
	if m.Pattern != "" {
		text := m.Pattern
		out.Pattern = func(p string) string {
			return strings.ReplaceAll(text, "{pattern}", p)
		}
	}
	return out
}

func intTemplate(text string) form.Message[int] {
	return func(n int) string {
		return strings.ReplaceAll(text, "{n}", strconv.Itoa(n))
	}
}

func floatTemplate(text string) form.Message[float64] {
	return func(n float64) string {
		return strings.ReplaceAll(text, "{n}", strconv.FormatFloat(n, 'f', -1, 64))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// normalizeInitialState copies the decoded initial state, turning generic
// lists of strings into []string so multi-value fields look the same whether
// they came from a file or from Go code.
func normalizeInitialState(state map[string]any) map[string]any {
	if len(state) == 0 {
		return nil
	}
	out := make(map[string]any, len(state))
	for key, value := range state {
		if list, ok := value.([]any); ok {
			if strs, ok := stringList(list); ok {
				out[key] = strs
				continue
			}
		}
		out[key] = value
	}
	return out
}

func stringList(list []any) ([]string, bool) {
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// Field returns the compiled field for key.
func (c *Compiled) Field(key string) (CompiledField, bool) {
	for _, field := range c.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return CompiledField{}, false
}

// NewController builds a controller for one instance of the form.
func (c *Compiled) NewController(onSubmit form.SubmitFunc, opts ...form.Option) (*form.Controller, error) {
	cfg := c.Config
	cfg.OnSubmit = onSubmit
	return form.New(cfg, opts...)
}

// Bind registers every field with ctrl and returns the bindings by key, as a
// UI layer would on each render.
func (c *Compiled) Bind(ctrl *form.Controller) map[string]form.Binding {
	bindings := make(map[string]form.Binding, len(c.Fields))
	for _, field := range c.Fields {
		bindings[field.Key] = ctrl.Field(field.Key, field.Options)
	}
	return bindings
}

// isSequence matches the controller's inference for fields without an
// explicit multiple flag.
func isSequence(value any) bool {
	if value == nil {
		return false
	}
	kind := reflect.TypeOf(value).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}
