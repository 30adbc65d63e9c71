package definition_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/form"
)

const signupYAML = `
name: signup
title: Create account
autoValidate: on-blur
initialState:
  email: ""
  tags: [go]
messages:
  required: "This field is required"
  minLength: "Use {n}+ characters"
fields:
  - key: email
    label: Email
    required: true
    pattern: '^[^@\s]*@?[^@\s]*$'
    parse: [trim, lower]
  - key: password
    required: true
    minLength: 8
    secret: true
  - key: age
    parse: [trim, int]
    min: 18
    messages:
      min: "Adults only ({n}+)"
  - key: tags
    maxLength: 2
`

const signupJSON = `{
  "name": "signup",
  "autoValidate": "onChange",
  "fields": [
    {"key": "email", "required": true},
    {"key": "nickname", "rules": [{"expr": "len(value) >= 3", "message": "Too short"}]}
  ]
}`

const signupTOML = `
name = "signup"
autoValidate = "never"

[[fields]]
key = "email"
required = true

[[fields]]
key = "code"
[[fields.rules]]
schema = '{"type": "string", "pattern": "^[A-Z]{3}$"}'
message = "Three capitals"
`

func compile(t *testing.T, data string, format definition.Format) *definition.Compiled {
	t.Helper()
	def, err := definition.Parse([]byte(data), format)
	if err != nil {
		t.Fatalf("Parse(%s): %v", format, err)
	}
	compiled, err := def.Compile()
	if err != nil {
		t.Fatalf("Compile(%s): %v", format, err)
	}
	return compiled
}

func TestParseYAMLCompilesFieldOptions(t *testing.T) {
	t.Parallel()

	compiled := compile(t, signupYAML, definition.FormatYAML)

	if compiled.Config.AutoValidate != form.AutoValidateOnBlur {
		t.Fatalf("expected onBlur, got %q", compiled.Config.AutoValidate)
	}
	if diff := cmp.Diff(map[string]any{"email": "", "tags": []string{"go"}}, compiled.Config.InitialState); diff != "" {
		t.Fatalf("initial state mismatch (-want +got):\n%s", diff)
	}

	email, ok := compiled.Field("email")
	if !ok {
		t.Fatalf("email field missing")
	}
	if email.Label != "Email" || !email.Options.Required || email.Options.Pattern == nil || email.Options.Parse == nil {
		t.Fatalf("unexpected email field: %+v", email)
	}

	password, _ := compiled.Field("password")
	if !password.Secret || password.Label != "password" || password.Options.MinLength != 8 {
		t.Fatalf("unexpected password field: %+v", password)
	}

	tags, _ := compiled.Field("tags")
	if !tags.Multiple {
		t.Fatalf("expected tags to be inferred as multiple from initial state")
	}

	got := compiled.Config.ErrorMessages
	if got.Required != "This field is required" {
		t.Fatalf("unexpected required message %q", got.Required)
	}
	if msg := got.MinLength.Resolve(8); msg != "Use 8+ characters" {
		t.Fatalf("unexpected minLength message %q", msg)
	}
}

func TestCompiledControllerEndToEnd(t *testing.T) {
	t.Parallel()

	compiled := compile(t, signupYAML, definition.FormatYAML)

	var submitted map[string]any
	ctrl, err := compiled.NewController(func(state map[string]any, _ form.SubmitEvent) {
		submitted = state
	})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	bindings := compiled.Bind(ctrl)
	bindings["email"].OnBlur(form.BlurEvent{Value: "  Ada@Example.com "})
	bindings["password"].OnBlur(form.BlurEvent{Value: "short"})
	bindings["age"].OnBlur(form.BlurEvent{Value: "16"})

	errs := ctrl.Errors()
	if diff := cmp.Diff(map[string]form.ErrorMessage{
		"password": {Kind: form.ErrorMinLength, Text: "Use 8+ characters"},
		"age":      {Kind: form.ErrorCustom, Text: "Adults only (18+)"},
	}, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if got, _ := ctrl.Value("email"); got != "ada@example.com" {
		t.Fatalf("expected parsed email, got %#v", got)
	}

	bindings = compiled.Bind(ctrl)
	bindings["password"].OnBlur(form.BlurEvent{Value: "correct horse"})
	bindings["age"].OnBlur(form.BlurEvent{Value: "30"})

	if !ctrl.HandleSubmit(nil) {
		t.Fatalf("expected submit to succeed, errors: %v", ctrl.Errors())
	}
	want := map[string]any{
		"email":    "ada@example.com",
		"password": "correct horse",
		"age":      30,
		"tags":     []string{"go"},
	}
	if diff := cmp.Diff(want, submitted); diff != "" {
		t.Fatalf("submitted state mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJSONWithExprRule(t *testing.T) {
	t.Parallel()

	compiled := compile(t, signupJSON, definition.FormatJSON)
	ctrl, err := compiled.NewController(nil)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	bindings := compiled.Bind(ctrl)
	bindings["nickname"].OnChange(form.ChangeEvent{Value: "ab"})
	if got, ok := ctrl.Error("nickname"); !ok || got.Text != "Too short" {
		t.Fatalf("expected expr rule error, got %+v", got)
	}
	bindings["nickname"].OnChange(form.ChangeEvent{Value: "abc"})
	if got, ok := ctrl.Error("nickname"); ok {
		t.Fatalf("expected nickname error cleared, got %+v", got)
	}
}

func TestParseJSONRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := definition.Parse([]byte(`{"name": "x", "feilds": []}`), definition.FormatJSON)
	if err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestParseTOMLWithSchemaRule(t *testing.T) {
	t.Parallel()

	compiled := compile(t, signupTOML, definition.FormatTOML)
	if compiled.Config.AutoValidate != form.AutoValidateNever {
		t.Fatalf("expected never, got %q", compiled.Config.AutoValidate)
	}

	ctrl, err := compiled.NewController(nil)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	bindings := compiled.Bind(ctrl)
	bindings["code"].OnChange(form.ChangeEvent{Value: "abc"})
	if _, ok := ctrl.Error("code"); ok {
		t.Fatalf("never mode must not validate on change")
	}

	if ctrl.Validate() {
		t.Fatalf("expected validation to fail")
	}
	errs := ctrl.Errors()
	if errs["email"].Kind != form.ErrorRequired {
		t.Fatalf("expected required email, got %+v", errs["email"])
	}
	if errs["code"].Text != "Three capitals" {
		t.Fatalf("expected schema rule message, got %+v", errs["code"])
	}
}

func TestLoadPicksFormatFromExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "signup.yml")
	if err := os.WriteFile(path, []byte(signupYAML), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	def, err := definition.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if def.Name != "signup" || len(def.Fields) != 4 {
		t.Fatalf("unexpected definition: %+v", def)
	}

	if _, err := definition.Load(filepath.Join(dir, "signup.ini")); !errors.Is(err, definition.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestMultipleMatchesControllerInference(t *testing.T) {
	t.Parallel()

	def := definition.Definition{
		Name:         "batch",
		InitialState: map[string]any{"ids": []any{1, 2}, "ports": []int{80}},
		Fields:       []definition.Field{{Key: "ids"}, {Key: "ports"}, {Key: "note"}},
	}
	compiled, err := def.Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	ctrl, err := compiled.NewController(nil)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	bindings := compiled.Bind(ctrl)

	for _, key := range []string{"ids", "ports", "note"} {
		field, _ := compiled.Field(key)
		if field.Multiple != bindings[key].Multiple {
			t.Errorf("%s: compiled multiple %v, binding multiple %v", key, field.Multiple, bindings[key].Multiple)
		}
	}
	if ids, _ := compiled.Field("ids"); !ids.Multiple {
		t.Fatalf("expected ids to be multiple")
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		def  definition.Definition
		want error
	}{
		{
			name: "missing key",
			def:  definition.Definition{Fields: []definition.Field{{Label: "Nameless"}}},
			want: definition.ErrMissingKey,
		},
		{
			name: "duplicate key",
			def:  definition.Definition{Fields: []definition.Field{{Key: "a"}, {Key: "a"}}},
			want: definition.ErrDuplicateKey,
		},
		{
			name: "bad pattern",
			def:  definition.Definition{Fields: []definition.Field{{Key: "a", Pattern: "("}}},
			want: definition.ErrInvalidPattern,
		},
		{
			name: "empty rule",
			def:  definition.Definition{Fields: []definition.Field{{Key: "a", Rules: []definition.Rule{{Message: "x"}}}}},
			want: definition.ErrInvalidRule,
		},
		{
			name: "bad auto validate",
			def:  definition.Definition{AutoValidate: "sometimes"},
			want: form.ErrInvalidAutoValidate,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := tc.def.Compile(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
