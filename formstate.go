// Package formstate is the quick-start entry point: it re-exports the core
// controller types and wires definition loading to controller construction.
package formstate

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/form"
)

// Controller aliases form.Controller.
type Controller = form.Controller

// Config aliases form.Config.
type Config = form.Config

// FieldOptions aliases form.FieldOptions.
type FieldOptions = form.FieldOptions

// Binding aliases form.Binding.
type Binding = form.Binding

// Snapshot aliases form.Snapshot.
type Snapshot = form.Snapshot

// New builds a controller from cfg.
func New(cfg Config, opts ...form.Option) (*Controller, error) {
	return form.New(cfg, opts...)
}

// Form is a compiled definition paired with a controller.
type Form struct {
	*Controller
	Compiled *definition.Compiled
}

// Bind registers every field of the definition and returns the bindings.
func (f *Form) Bind() map[string]Binding {
	return f.Compiled.Bind(f.Controller)
}

// LoadFile loads a YAML, JSON or TOML definition and builds its controller.
func LoadFile(path string, onSubmit form.SubmitFunc, opts ...form.Option) (*Form, error) {
	def, err := definition.Load(path)
	if err != nil {
		return nil, err
	}
	return build(def, onSubmit, opts...)
}

// FromOpenAPIFile derives a form from the request body of operationID in the
// OpenAPI document at path.
func FromOpenAPIFile(ctx context.Context, path, operationID string, onSubmit form.SubmitFunc, opts ...form.Option) (*Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formstate: read %s: %w", path, err)
	}
	def, err := definition.FromOpenAPI(ctx, data, operationID)
	if err != nil {
		return nil, err
	}
	return build(def, onSubmit, opts...)
}

func build(def *definition.Definition, onSubmit form.SubmitFunc, opts ...form.Option) (*Form, error) {
	compiled, err := def.Compile()
	if err != nil {
		return nil, err
	}
	ctrl, err := compiled.NewController(onSubmit, opts...)
	if err != nil {
		return nil, err
	}
	return &Form{Controller: ctrl, Compiled: compiled}, nil
}
