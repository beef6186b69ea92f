package model

import (
	"fmt"
	"strings"
)

// FormMode selects which credential-collection flow a form instance runs.
type FormMode string

const (
	FormModeSignIn FormMode = "sign-in"
	FormModeSignUp FormMode = "sign-up"
)

// ParseFormMode accepts the route-style identifiers ("sign-in", "sign-up") as
// well as the camel case spellings used in configuration files.
func ParseFormMode(raw string) (FormMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sign-in", "signin", "sign_in":
		return FormModeSignIn, nil
	case "sign-up", "signup", "sign_up":
		return FormModeSignUp, nil
	}
	return "", fmt.Errorf("model: unknown form mode %q", raw)
}

// Valid reports whether the mode is one of the supported flows.
func (m FormMode) Valid() bool {
	return m == FormModeSignIn || m == FormModeSignUp
}

func (m FormMode) String() string {
	return string(m)
}

// FieldKind is the input flavour of a field. Renderers map it onto input
// types; the validation package maps it onto format checks.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindEmail    FieldKind = "email"
	FieldKindPassword FieldKind = "password"
	FieldKindDate     FieldKind = "date"
)

const (
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRuleDigits    = "digits"
	ValidationRuleEmail     = "email"
	ValidationRuleDate      = "date"
	ValidationRuleMaxBytes  = "maxBytes"
)

// ValidationRule represents a single constraint applied to a field. Length,
// digits and maxBytes rules encode their threshold in Params["value"], date
// rules carry a Go time layout in Params["layout"]. Any rule may set
// Params["message"] to replace its default copy.
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field describes one input of the authentication form.
type Field struct {
	Name        string            `json:"name"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Kind        FieldKind         `json:"kind"`
	Required    bool              `json:"required"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// FormModel is the ordered field catalog for a mode.
type FormModel struct {
	Mode     FormMode          `json:"mode"`
	Fields   []Field           `json:"fields"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Field returns the named field and whether it is part of the model.
func (f FormModel) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Names lists field names in catalog order.
func (f FormModel) Names() []string {
	out := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		out = append(out, field.Name)
	}
	return out
}

func cloneField(field Field) Field {
	out := field
	if len(field.Validations) > 0 {
		out.Validations = make([]ValidationRule, len(field.Validations))
		for i, rule := range field.Validations {
			out.Validations[i] = ValidationRule{Kind: rule.Kind, Params: cloneParams(rule.Params)}
		}
	}
	out.Metadata = cloneParams(field.Metadata)
	return out
}

func cloneParams(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
