// Package definition describes forms declaratively. A Definition is loaded
// from YAML, JSON or TOML (or imported from an OpenAPI request body) and
// compiled into the form.Config and form.FieldOptions a controller needs.
package definition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a definition file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Definition is the serialisable description of a form.
type Definition struct {
	Name         string         `json:"name" yaml:"name" toml:"name"`
	Title        string         `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	AutoValidate string         `json:"autoValidate,omitempty" yaml:"autoValidate,omitempty" toml:"autoValidate,omitempty"`
	InitialState map[string]any `json:"initialState,omitempty" yaml:"initialState,omitempty" toml:"initialState,omitempty"`
	Messages     Messages       `json:"messages,omitempty" yaml:"messages,omitempty" toml:"messages,omitempty"`
	Fields       []Field        `json:"fields" yaml:"fields" toml:"fields"`
}

// Messages overrides error texts. Min/max templates may reference the bound
// as {n}; the pattern template may reference the expression as {pattern}.
type Messages struct {
	Required  string `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
	MinLength string `json:"minLength,omitempty" yaml:"minLength,omitempty" toml:"minLength,omitempty"`
	MaxLength string `json:"maxLength,omitempty" yaml:"maxLength,omitempty" toml:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty" toml:"pattern,omitempty"`
	Min       string `json:"min,omitempty" yaml:"min,omitempty" toml:"min,omitempty"`
	Max       string `json:"max,omitempty" yaml:"max,omitempty" toml:"max,omitempty"`
}

// Field describes one input.
type Field struct {
	Key       string   `json:"key" yaml:"key" toml:"key"`
	Label     string   `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Help      string   `json:"help,omitempty" yaml:"help,omitempty" toml:"help,omitempty"`
	Required  bool     `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
	MinLength int      `json:"minLength,omitempty" yaml:"minLength,omitempty" toml:"minLength,omitempty"`
	MaxLength int      `json:"maxLength,omitempty" yaml:"maxLength,omitempty" toml:"maxLength,omitempty"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty" toml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty" toml:"max,omitempty"`
	// Pattern gates input; mismatching keystrokes are dropped.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty" toml:"pattern,omitempty"`
	// Parse lists parser names applied left to right (see parse.Names).
	Parse    []string `json:"parse,omitempty" yaml:"parse,omitempty" toml:"parse,omitempty"`
	Rules    []Rule   `json:"rules,omitempty" yaml:"rules,omitempty" toml:"rules,omitempty"`
	Multiple *bool    `json:"multiple,omitempty" yaml:"multiple,omitempty" toml:"multiple,omitempty"`
	Choices  []string `json:"choices,omitempty" yaml:"choices,omitempty" toml:"choices,omitempty"`
	Secret   bool     `json:"secret,omitempty" yaml:"secret,omitempty" toml:"secret,omitempty"`
	Messages Messages `json:"messages,omitempty" yaml:"messages,omitempty" toml:"messages,omitempty"`
}

// Rule is a custom check: either an expr-lang predicate over `value` or a
// JSON Schema for the value (inline object or JSON string).
type Rule struct {
	Expr    string `json:"expr,omitempty" yaml:"expr,omitempty" toml:"expr,omitempty"`
	Schema  any    `json:"schema,omitempty" yaml:"schema,omitempty" toml:"schema,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty" toml:"message,omitempty"`
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Load reads and decodes the definition at path.
func Load(path string) (*Definition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("definition: read %s: %w", path, err)
	}
	return Parse(data, format)
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (*Definition, error) {
	var def Definition
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("definition: decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("definition: decode json: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("definition: decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return &def, nil
}
