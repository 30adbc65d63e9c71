package validators_test

import (
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/validators"
)

func TestCombineReturnsFirstFailure(t *testing.T) {
	t.Parallel()

	v := validators.Combine(
		nil,
		validators.MinLength(3, form.Static[int]("short")),
		validators.Pattern(regexp.MustCompile(`^[a-z]+$`), form.Static[string]("letters only")),
	)

	cases := map[string]string{
		"ab":   "short",
		"abc1": "letters only",
		"abcd": "",
	}
	for value, want := range cases {
		if got := v(value); got != want {
			t.Errorf("Combine(%q) = %q, want %q", value, got, want)
		}
	}
}

func TestMinMax(t *testing.T) {
	t.Parallel()

	atLeast := validators.Min(1, func(n float64) string { return fmt.Sprintf("at least %g", n) })
	atMost := validators.Max(10, form.Static[float64]("too big"))

	cases := []struct {
		value   any
		wantMin string
		wantMax string
	}{
		{value: 0, wantMin: "at least 1"},
		{value: 1},
		{value: 10.0},
		{value: int64(11), wantMax: "too big"},
		{value: "12", wantMax: "too big"},
		{value: "abc"},
		{value: nil},
	}
	for _, tc := range cases {
		if got := atLeast(tc.value); got != tc.wantMin {
			t.Errorf("Min(%#v) = %q, want %q", tc.value, got, tc.wantMin)
		}
		if got := atMost(tc.value); got != tc.wantMax {
			t.Errorf("Max(%#v) = %q, want %q", tc.value, got, tc.wantMax)
		}
	}
}

func TestLengthValidators(t *testing.T) {
	t.Parallel()

	atLeast := validators.MinLength(2, func(n int) string { return fmt.Sprintf("min %d", n) })
	atMost := validators.MaxLength(3, func(n int) string { return fmt.Sprintf("max %d", n) })

	if got := atLeast(""); got != "min 2" {
		t.Fatalf("MinLength on empty = %q", got)
	}
	if got := atLeast([]string{"a", "b"}); got != "" {
		t.Fatalf("MinLength on two items = %q", got)
	}
	if got := atMost("abcd"); got != "max 3" {
		t.Fatalf("MaxLength = %q", got)
	}
	if got := atMost(12345); got != "" {
		t.Fatalf("numbers have no length, got %q", got)
	}
}

func TestPatternMessageReceivesExpression(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^\d{5}$`)
	v := validators.Pattern(re, form.DefaultErrorStrings().Pattern)
	if got := v("123"); got != `Must match pattern ^\d{5}$` {
		t.Fatalf("Pattern message = %q", got)
	}
	if got := v("12345"); got != "" {
		t.Fatalf("expected match, got %q", got)
	}
}

func TestExpr(t *testing.T) {
	t.Parallel()

	v, err := validators.Expr(`len(value) >= 3 && value != "admin"`, "Pick another name")
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	cases := map[string]string{
		"ab":    "Pick another name",
		"admin": "Pick another name",
		"ada":   "",
	}
	for value, want := range cases {
		if got := v(value); got != want {
			t.Errorf("Expr(%q) = %q, want %q", value, got, want)
		}
	}

	positive, err := validators.Expr("value > 0", "")
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	if got := positive(5); got != "" {
		t.Fatalf("expected 5 > 0, got %q", got)
	}
	if got := positive(-1); got != validators.DefaultMessage {
		t.Fatalf("expected default message, got %q", got)
	}

	if _, err := validators.Expr("value >", "x"); !errors.Is(err, validators.ErrInvalidExpression) {
		t.Fatalf("expected ErrInvalidExpression, got %v", err)
	}
	if _, err := validators.Expr("  ", "x"); !errors.Is(err, validators.ErrInvalidExpression) {
		t.Fatalf("expected ErrInvalidExpression for empty source, got %v", err)
	}
}

func TestJSONSchema(t *testing.T) {
	t.Parallel()

	v, err := validators.JSONSchema(`{"type": "string", "format": "email", "maxLength": 20}`, "")
	if err != nil {
		t.Fatalf("JSONSchema: %v", err)
	}
	if got := v("ada@example.com"); got != "" {
		t.Fatalf("expected valid email, got %q", got)
	}
	if got := v(42); got == "" {
		t.Fatalf("expected type error for a number")
	}

	tags, err := validators.JSONSchema(`{"type": "array", "items": {"enum": ["go", "rust"]}, "uniqueItems": true}`, "Unknown tag")
	if err != nil {
		t.Fatalf("JSONSchema: %v", err)
	}
	if got := tags([]string{"go", "rust"}); got != "" {
		t.Fatalf("expected valid tags, got %q", got)
	}
	if got := tags([]string{"go", "zig"}); got != "Unknown tag" {
		t.Fatalf("expected configured message, got %q", got)
	}

	if _, err := validators.JSONSchema(`{"type": 12}`, ""); !errors.Is(err, validators.ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema, got %v", err)
	}
}

func TestValidatorsPlugIntoController(t *testing.T) {
	t.Parallel()

	c, err := form.New(form.Config{AutoValidate: form.AutoValidateNever})
	if err != nil {
		t.Fatalf("form.New: %v", err)
	}
	c.Field("age", form.FieldOptions{
		Required: true,
		Validate: validators.Combine(
			validators.Min(18, form.Static[float64]("Too young")),
			validators.Max(130, form.Static[float64]("Too old")),
		),
	})

	c.SetValue("age", 12)
	c.Validate()
	want := form.ErrorMessage{Kind: form.ErrorCustom, Text: "Too young"}
	if got, _ := c.Error("age"); got != want {
		t.Fatalf("error = %+v, want %+v", got, want)
	}
}

func TestNilMessageFallsBackToDefault(t *testing.T) {
	t.Parallel()

	if got := validators.MaxLength(2, nil)("abc"); got != validators.DefaultMessage {
		t.Fatalf("MaxLength with nil message = %q", got)
	}
	if got := validators.Min(1, nil)(0); got != validators.DefaultMessage {
		t.Fatalf("Min with nil message = %q", got)
	}
}
