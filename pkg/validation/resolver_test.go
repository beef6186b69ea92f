package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-freedom/pkg/model"
	"github.com/goliatone/go-freedom/pkg/validation"
)

func validSignUpValues() map[string]string {
	return map[string]string{
		"firstName":  "Ada",
		"lastName":   "Lovelace",
		"address1":   "12 St James's Square",
		"city":       "London",
		"state":      "LN",
		"postalCode": "700001",
		"dob":        "10-12-1985",
		"ssn":        "1234",
		"email":      "ada@example.com",
		"password":   "analytical",
	}
}

func TestResolve_UnknownMode(t *testing.T) {
	_, err := validation.Resolve(model.FormMode("link"))
	if !errors.Is(err, validation.ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestResolve_IsDeterministic(t *testing.T) {
	first := validation.MustResolve(model.FormModeSignUp)
	second := validation.MustResolve(model.FormModeSignUp)
	if first != second {
		t.Fatalf("expected the same schema instance for repeated resolves")
	}
}

func TestSignInSchema_OnlyCredentials(t *testing.T) {
	schema := validation.MustResolve(model.FormModeSignIn)

	result := schema.Validate(map[string]string{})
	want := validation.Result{
		"email":    "Required",
		"password": "Required",
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("empty sign-in result mismatch (-want +got):\n%s", diff)
	}
	if schema.Has("firstName") {
		t.Fatalf("sign-in schema must not include profile fields")
	}

	ok := schema.Validate(map[string]string{"email": "a@b.com", "password": "secret1"})
	if !ok.Valid() {
		t.Fatalf("expected valid sign-in values, got %v", ok)
	}
}

func TestSignUpSchema_EmptyPostalCode(t *testing.T) {
	schema := validation.MustResolve(model.FormModeSignUp)
	values := validSignUpValues()
	values["postalCode"] = ""

	result := schema.Validate(values)
	if diff := cmp.Diff(validation.Result{"postalCode": "Required"}, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestSignUpSchema_ValidValues(t *testing.T) {
	schema := validation.MustResolve(model.FormModeSignUp)
	if result := schema.Validate(validSignUpValues()); !result.Valid() {
		t.Fatalf("expected valid sign-up values, got %v", result)
	}
}

func TestSchema_EveryRequiredFieldEmpty(t *testing.T) {
	for _, mode := range []model.FormMode{model.FormModeSignIn, model.FormModeSignUp} {
		schema := validation.MustResolve(mode)
		base := validSignUpValues()
		for _, field := range schema.Fields() {
			values := make(map[string]string, len(base))
			for k, v := range base {
				values[k] = v
			}
			values[field.Name] = "   "
			result := schema.Validate(values)
			if result.Message(field.Name) != "Required" {
				t.Fatalf("%s: blank %s should be required, got %v", mode, field.Name, result)
			}
		}
	}
}

func TestValidateField_Formats(t *testing.T) {
	schema := validation.MustResolve(model.FormModeSignUp)
	cases := []struct {
		field string
		value string
		want  string
	}{
		{"email", "not-an-email", "Invalid email address"},
		{"email", "a@b.com", ""},
		{"password", "12345", "Must be at least 6 characters"},
		{"password", "123456", ""},
		{"state", "W", "Must be exactly 2 characters"},
		{"state", "WBX", "Must be exactly 2 characters"},
		{"postalCode", "12", "Must be at least 3 characters"},
		{"postalCode", "1234567", "Must be at most 6 characters"},
		{"ssn", "12a4", "Enter the last 4 digits"},
		{"ssn", "123456789", "Enter the last 4 digits"},
		{"ssn", "-123", "Enter the last 4 digits"},
		{"ssn", "0042", ""},
		{"dob", "1985-12-10", "Use the format DD-MM-YYYY"},
		{"dob", "31-02-1990", "Use the format DD-MM-YYYY"},
		{"dob", "01-01-2999", "Must be a date in the past"},
		{"firstName", "Al", "Must be at least 3 characters"},
		{"firstName", "Zoë", ""},
		{"unknown", "anything", ""},
	}
	for _, tc := range cases {
		if got := schema.ValidateField(tc.field, tc.value); got != tc.want {
			t.Fatalf("ValidateField(%s, %q) = %q, want %q", tc.field, tc.value, got, tc.want)
		}
	}
}

func TestSchema_IgnoresUnknownKeys(t *testing.T) {
	schema := validation.MustResolve(model.FormModeSignIn)
	result := schema.Validate(map[string]string{
		"email":     "a@b.com",
		"password":  "secret1",
		"firstName": "x",
	})
	if !result.Valid() {
		t.Fatalf("unknown keys must not produce issues: %v", result)
	}
}

func TestSchema_IssuesFollowFieldOrder(t *testing.T) {
	schema := validation.MustResolve(model.FormModeSignUp)
	issues := schema.Issues(schema.Validate(map[string]string{}))
	if len(issues) != 10 {
		t.Fatalf("expected 10 issues, got %d", len(issues))
	}
	if issues[0].Field != "firstName" || issues[len(issues)-1].Field != "password" {
		t.Fatalf("unexpected issue order: first=%s last=%s", issues[0].Field, issues[len(issues)-1].Field)
	}
}

func TestNewSchema_RejectsBadRules(t *testing.T) {
	_, err := validation.NewSchema(model.FormModeSignIn, []model.Field{{
		Name: "email",
		Kind: model.FieldKindEmail,
		Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "six"}},
		},
	}})
	if err == nil {
		t.Fatalf("expected error for a non-numeric length")
	}

	_, err = validation.NewSchema(model.FormModeSignIn, []model.Field{{
		Name:        "email",
		Kind:        model.FieldKindEmail,
		Validations: []model.ValidationRule{{Kind: "pattern"}},
	}})
	if err == nil {
		t.Fatalf("expected error for an unsupported rule")
	}
}

func TestNewSchema_CustomMessagesAndOptionalFields(t *testing.T) {
	schema, err := validation.NewSchema(model.FormModeSignIn, []model.Field{
		{
			Name:     "email",
			Kind:     model.FieldKindEmail,
			Required: true,
			Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleEmail, Params: map[string]string{"message": "Use your work address"}},
			},
		},
		{
			Name: "password",
			Kind: model.FieldKindPassword,
			Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "8", "message": "Too short"}},
			},
		},
	})
	if err != nil {
		t.Fatalf("new schema: %v", err)
	}

	got := schema.Validate(map[string]string{"email": "nope", "password": "short"})
	want := validation.Result{"email": "Use your work address", "password": "Too short"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if msg := schema.ValidateField("password", ""); msg != "" {
		t.Fatalf("optional empty field should pass, got %q", msg)
	}
}

func TestValidateField_PasswordByteLimit(t *testing.T) {
	schema := validation.MustResolve(model.FormModeSignIn)
	if msg := schema.ValidateField("password", strings.Repeat("a", model.MaxPasswordBytes)); msg != "" {
		t.Fatalf("password at the limit should pass, got %q", msg)
	}
	if msg := schema.ValidateField("password", strings.Repeat("a", model.MaxPasswordBytes+1)); msg != "Must be at most 72 bytes" {
		t.Fatalf("long password message = %q", msg)
	}
	// 36 two-byte runes already reach the limit; one more exceeds it.
	if msg := schema.ValidateField("password", strings.Repeat("é", 37)); msg != "Must be at most 72 bytes" {
		t.Fatalf("multi-byte password message = %q", msg)
	}
}
