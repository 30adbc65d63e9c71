package definition_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/form"
)

const petstore = `
openapi: 3.0.3
info:
  title: Pets
  version: 1.0.0
paths:
  /pets:
    post:
      operationId: createPet
      summary: Create a pet
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [name, species]
              properties:
                name:
                  type: string
                  title: Name
                  minLength: 2
                  maxLength: 40
                species:
                  type: string
                  enum: [cat, dog]
                  default: cat
                age:
                  type: integer
                  minimum: 0
                  maximum: 30
                  description: Age in years
                tags:
                  type: array
                  maxItems: 3
                  items:
                    type: string
                secret:
                  type: string
                  format: password
      responses:
        "201":
          description: created
    get:
      operationId: listPets
      responses:
        "200":
          description: ok
`

func TestFromOpenAPIBuildsFields(t *testing.T) {
	t.Parallel()

	def, err := definition.FromOpenAPI(context.Background(), []byte(petstore), "createPet")
	if err != nil {
		t.Fatalf("FromOpenAPI: %v", err)
	}
	if def.Name != "createPet" || def.Title != "Create a pet" {
		t.Fatalf("unexpected header: %q %q", def.Name, def.Title)
	}

	keys := make([]string, 0, len(def.Fields))
	for _, field := range def.Fields {
		keys = append(keys, field.Key)
	}
	if diff := cmp.Diff([]string{"age", "name", "secret", "species", "tags"}, keys); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	byKey := make(map[string]definition.Field, len(def.Fields))
	for _, field := range def.Fields {
		byKey[field.Key] = field
	}

	name := byKey["name"]
	if !name.Required || name.Label != "Name" || name.MinLength != 2 || name.MaxLength != 40 {
		t.Fatalf("unexpected name field: %+v", name)
	}
	age := byKey["age"]
	if age.Min == nil || *age.Min != 0 || age.Max == nil || *age.Max != 30 || age.Help != "Age in years" {
		t.Fatalf("unexpected age field: %+v", age)
	}
	if diff := cmp.Diff([]string{"trim", "int"}, age.Parse); diff != "" {
		t.Fatalf("age parsers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"cat", "dog"}, byKey["species"].Choices); diff != "" {
		t.Fatalf("species choices mismatch (-want +got):\n%s", diff)
	}
	tags := byKey["tags"]
	if tags.Multiple == nil || !*tags.Multiple || tags.MaxLength != 3 {
		t.Fatalf("unexpected tags field: %+v", tags)
	}
	if !byKey["secret"].Secret {
		t.Fatalf("expected password format to mark the field secret")
	}
	if diff := cmp.Diff(map[string]any{"species": "cat"}, def.InitialState); diff != "" {
		t.Fatalf("initial state mismatch (-want +got):\n%s", diff)
	}
}

func TestFromOpenAPICompilesIntoController(t *testing.T) {
	t.Parallel()

	def, err := definition.FromOpenAPI(context.Background(), []byte(petstore), "createPet")
	if err != nil {
		t.Fatalf("FromOpenAPI: %v", err)
	}
	compiled, err := def.Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ctrl, err := compiled.NewController(nil)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	bindings := compiled.Bind(ctrl)
	bindings["age"].OnChange(form.ChangeEvent{Value: "42"})
	if got, ok := ctrl.Error("age"); !ok || got.Kind != form.ErrorCustom {
		t.Fatalf("expected maximum error for age, got %+v", got)
	}
	if got, _ := ctrl.Value("age"); got != 42 {
		t.Fatalf("expected integer parse, got %#v", got)
	}
}

func TestFromOpenAPIErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if _, err := definition.FromOpenAPI(ctx, []byte(petstore), "deletePet"); !errors.Is(err, definition.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := definition.FromOpenAPI(ctx, []byte(petstore), "listPets"); !errors.Is(err, definition.ErrNoRequestBody) {
		t.Fatalf("expected ErrNoRequestBody, got %v", err)
	}
	if _, err := definition.FromOpenAPI(ctx, nil, "createPet"); err == nil {
		t.Fatalf("expected error for empty document")
	}
}
