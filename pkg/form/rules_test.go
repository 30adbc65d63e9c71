package form_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/goliatone/go-formstate/pkg/form"
)

func TestTruthy(t *testing.T) {
	t.Parallel()

	var nilPtr *string
	cases := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, false},
		{"empty string", "", false},
		{"string", "x", true},
		{"zero", 0, false},
		{"int", 3, true},
		{"uint zero", uint8(0), false},
		{"negative float", -1.5, true},
		{"nan", math.NaN(), false},
		{"false", false, false},
		{"true", true, true},
		{"empty slice", []string{}, false},
		{"nil slice", []any(nil), false},
		{"slice", []string{"a"}, true},
		{"empty map", map[string]any{}, false},
		{"nil pointer", nilPtr, false},
		{"json zero", json.Number("0"), false},
		{"json number", json.Number("1.5"), true},
		{"struct", struct{}{}, true},
	}
	for _, tc := range cases {
		if got := form.Truthy(tc.value); got != tc.want {
			t.Errorf("%s: Truthy(%#v) = %v, want %v", tc.name, tc.value, got, tc.want)
		}
	}
}

func TestLength(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		value  any
		want   int
		wantOK bool
	}{
		{"ascii", "hello", 5, true},
		{"multibyte", "héllo", 5, true},
		{"combining mark normalised", "he\u0301llo", 5, true},
		{"slice", []string{"a", "b"}, 2, true},
		{"map", map[string]int{"a": 1}, 1, true},
		{"number", 12345, 0, false},
		{"json number", json.Number("12345"), 0, false},
		{"nil", nil, 0, false},
	}
	for _, tc := range cases {
		got, ok := form.Length(tc.value)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("%s: Length(%#v) = (%d, %v), want (%d, %v)", tc.name, tc.value, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestStringify(t *testing.T) {
	t.Parallel()

	cases := map[string]any{
		"":      nil,
		"abc":   "abc",
		"a,b":   []string{"a", "b"},
		"1,x":   []any{1, "x"},
		"42":    42,
		"1.5":   1.5,
		"true":  true,
		"12.50": json.Number("12.50"),
	}
	for want, value := range cases {
		if got := form.Stringify(value); got != want {
			t.Errorf("Stringify(%#v) = %q, want %q", value, got, want)
		}
	}
}

func TestParseAutoValidate(t *testing.T) {
	t.Parallel()

	cases := map[string]form.AutoValidate{
		"":          form.AutoValidateOnChange,
		"immediate": form.AutoValidateImmediate,
		"onChange":  form.AutoValidateOnChange,
		"on-blur":   form.AutoValidateOnBlur,
		"ON_BLUR":   form.AutoValidateOnBlur,
		"never":     form.AutoValidateNever,
	}
	for name, want := range cases {
		got, err := form.ParseAutoValidate(name)
		if err != nil {
			t.Fatalf("ParseAutoValidate(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("ParseAutoValidate(%q) = %q, want %q", name, got, want)
		}
	}

	if _, err := form.ParseAutoValidate("later"); !errors.Is(err, form.ErrInvalidAutoValidate) {
		t.Fatalf("expected ErrInvalidAutoValidate, got %v", err)
	}
}

func TestDefaultErrorStrings(t *testing.T) {
	t.Parallel()

	msgs := form.DefaultErrorStrings()
	if got := msgs.Pattern.Resolve(`^\d+$`); got != `Must match pattern ^\d+$` {
		t.Fatalf("pattern message = %q", got)
	}

	merged := msgs.Merge(form.ErrorStrings{MaxLength: form.Static[int]("too long")})
	if got := merged.MaxLength.Resolve(3); got != "too long" {
		t.Fatalf("max message = %q", got)
	}
	if got := merged.MinLength.Resolve(3); got != "Must be at least 3 characters long" {
		t.Fatalf("min message = %q", got)
	}

	var unset form.Message[int]
	if got := unset.Resolve(1); got != "" {
		t.Fatalf("nil message resolved to %q", got)
	}
}
