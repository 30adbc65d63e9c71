package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-formstate/pkg/form"
)

const schemaResource = "field.json"

// JSONSchema compiles a Draft 2020-12 schema into a validator for a single
// field value. On failure the validator returns message, or the innermost
// schema error when message is empty.
func JSONSchema(schema, message string) (form.Validator, error) {
	if strings.TrimSpace(schema) == "" {
		return nil, fmt.Errorf("%w: empty schema", ErrInvalidSchema)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaResource, strings.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	compiled, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	return func(value any) string {
		doc, err := toJSONValue(value)
		if err != nil {
			return fallbackMessage(message, err.Error())
		}
		if err := compiled.Validate(doc); err != nil {
			var validationErr *jsonschema.ValidationError
			if errors.As(err, &validationErr) {
				return fallbackMessage(message, leafMessage(validationErr))
			}
			return fallbackMessage(message, err.Error())
		}
		return ""
	}, nil
}

// toJSONValue round-trips value through encoding/json so typed slices and
// structs become the generic shapes the schema validator understands.
func toJSONValue(value any) (any, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func leafMessage(err *jsonschema.ValidationError) string {
	current := err
	for len(current.Causes) > 0 {
		current = current.Causes[0]
	}
	return strings.TrimSpace(current.Message)
}

func fallbackMessage(message, detail string) string {
	if message != "" {
		return message
	}
	if detail != "" {
		return detail
	}
	return DefaultMessage
}
