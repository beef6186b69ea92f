package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-freedom/pkg/model"
)

func TestFieldsFor_SignIn(t *testing.T) {
	form, err := model.Build(model.FormModeSignIn)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if diff := cmp.Diff([]string{"email", "password"}, form.Names()); diff != "" {
		t.Fatalf("sign-in fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldsFor_SignUpIsSuperset(t *testing.T) {
	form, err := model.Build(model.FormModeSignUp)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := []string{
		"firstName", "lastName", "address1", "city", "state",
		"postalCode", "dob", "ssn", "email", "password",
	}
	if diff := cmp.Diff(want, form.Names()); diff != "" {
		t.Fatalf("sign-up fields mismatch (-want +got):\n%s", diff)
	}
	for _, name := range []string{"email", "password"} {
		if _, ok := form.Field(name); !ok {
			t.Fatalf("sign-up catalog missing credential field %q", name)
		}
	}
	if err := model.Validate(form); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestFieldsFor_ReturnsCopies(t *testing.T) {
	first := model.FieldsFor(model.FormModeSignIn)
	first[0].Label = "mutated"
	first[1].Validations[0].Params["value"] = "99"

	second := model.FieldsFor(model.FormModeSignIn)
	if second[0].Label != "Email" {
		t.Fatalf("catalog label leaked mutation: %q", second[0].Label)
	}
	if got := second[1].Validations[0].Params["value"]; got != "6" {
		t.Fatalf("catalog params leaked mutation: %q", got)
	}
}

func TestFieldsFor_UnknownMode(t *testing.T) {
	if fields := model.FieldsFor(model.FormMode("link")); fields != nil {
		t.Fatalf("expected nil catalog for unknown mode, got %d fields", len(fields))
	}
	if _, err := model.Build(model.FormMode("link")); err == nil {
		t.Fatalf("expected error building unknown mode")
	}
}

func TestParseFormMode(t *testing.T) {
	cases := map[string]model.FormMode{
		"sign-in":  model.FormModeSignIn,
		" SignUp ": model.FormModeSignUp,
		"sign_up":  model.FormModeSignUp,
	}
	for raw, want := range cases {
		got, err := model.ParseFormMode(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: want %s, got %s", raw, want, got)
		}
	}
	if _, err := model.ParseFormMode("register"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"postalCode": "Postal Code",
		"address1":   "Address 1",
		"first_name": "First Name",
		"":           "",
	}
	for in, want := range cases {
		if got := model.DefaultLabeler(in); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", in, got, want)
		}
	}
}
