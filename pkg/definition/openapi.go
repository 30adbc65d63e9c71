package definition

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

var requestMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// FromOpenAPI derives a Definition from the object request body of the
// operation with the given id.
func FromOpenAPI(ctx context.Context, data []byte, operationID string) (*Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("definition: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("definition: load openapi: %w", err)
	}

	op := findOperation(spec, operationID)
	if op == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	schema := requestSchema(op.RequestBody)
	if schema == nil || firstSchemaType(schema.Type) != openapi3.TypeObject || len(schema.Properties) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	def := &Definition{
		Name:  operationID,
		Title: firstNonEmpty(schema.Title, op.Summary, operationID),
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, initial := fieldFromSchema(name, ref.Value, required[name])
		def.Fields = append(def.Fields, field)
		if initial != nil {
			if def.InitialState == nil {
				def.InitialState = make(map[string]any)
			}
			def.InitialState[name] = initial
		}
	}
	return def, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec == nil || spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldFromSchema(name string, src *openapi3.Schema, required bool) (Field, any) {
	field := Field{
		Key:      name,
		Label:    strings.TrimSpace(src.Title),
		Help:     strings.TrimSpace(src.Description),
		Required: required,
		Pattern:  src.Pattern,
		Secret:   src.Format == "password",
	}

	if src.Min != nil {
		value := *src.Min
		field.Min = &value
	}
	if src.Max != nil {
		value := *src.Max
		field.Max = &value
	}

	switch firstSchemaType(src.Type) {
	case openapi3.TypeInteger:
		field.Parse = []string{"trim", "int"}
	case openapi3.TypeNumber:
		field.Parse = []string{"trim", "number"}
	case openapi3.TypeBoolean:
		field.Parse = []string{"bool"}
	case openapi3.TypeArray:
		multiple := true
		field.Multiple = &multiple
		field.MinLength = int(src.MinItems)
		if src.MaxItems != nil {
			field.MaxLength = int(*src.MaxItems)
		}
		if src.Items != nil && src.Items.Value != nil {
			field.Choices = enumStrings(src.Items.Value.Enum)
		}
	default:
		field.MinLength = int(src.MinLength)
		if src.MaxLength != nil {
			field.MaxLength = int(*src.MaxLength)
		}
	}

	if len(field.Choices) == 0 {
		field.Choices = enumStrings(src.Enum)
	}
	return field, initialValue(src.Default)
}

func initialValue(value any) any {
	if list, ok := value.([]any); ok {
		if strs, ok := stringList(list); ok {
			return strs
		}
	}
	return value
}

func enumStrings(values []any) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

// firstSchemaType returns the first non-null type of a schema.
func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, t := range types.Slice() {
		if t != openapi3.TypeNull {
			return t
		}
	}
	return ""
}
