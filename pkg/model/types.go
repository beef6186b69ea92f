package model

import internalmodel "github.com/goliatone/go-freedom/internal/model"

// FormMode re-exports the internal FormMode enumeration.
type FormMode = internalmodel.FormMode

const (
	FormModeSignIn = internalmodel.FormModeSignIn
	FormModeSignUp = internalmodel.FormModeSignUp
)

// FieldKind re-exports the internal FieldKind enumeration.
type FieldKind = internalmodel.FieldKind

const (
	FieldKindText     = internalmodel.FieldKindText
	FieldKindEmail    = internalmodel.FieldKindEmail
	FieldKindPassword = internalmodel.FieldKindPassword
	FieldKindDate     = internalmodel.FieldKindDate
)

const (
	ValidationRuleMinLength = internalmodel.ValidationRuleMinLength
	ValidationRuleMaxLength = internalmodel.ValidationRuleMaxLength
	ValidationRuleDigits    = internalmodel.ValidationRuleDigits
	ValidationRuleEmail     = internalmodel.ValidationRuleEmail
	ValidationRuleDate      = internalmodel.ValidationRuleDate
	ValidationRuleMaxBytes  = internalmodel.ValidationRuleMaxBytes
)

const (
	FieldFirstName   = internalmodel.FieldFirstName
	FieldLastName    = internalmodel.FieldLastName
	FieldAddress1    = internalmodel.FieldAddress1
	FieldCity        = internalmodel.FieldCity
	FieldState       = internalmodel.FieldState
	FieldPostalCode  = internalmodel.FieldPostalCode
	FieldDateOfBirth = internalmodel.FieldDateOfBirth
	FieldSSN         = internalmodel.FieldSSN
	FieldEmail       = internalmodel.FieldEmail
	FieldPassword    = internalmodel.FieldPassword
)

const (
	DateOfBirthLayout = internalmodel.DateOfBirthLayout
	MinPasswordLength = internalmodel.MinPasswordLength
	MaxPasswordBytes  = internalmodel.MaxPasswordBytes
)

type ValidationRule = internalmodel.ValidationRule
type Field = internalmodel.Field
type FormModel = internalmodel.FormModel

// ParseFormMode parses "sign-in" / "sign-up" style identifiers.
func ParseFormMode(raw string) (FormMode, error) {
	return internalmodel.ParseFormMode(raw)
}

// FieldsFor returns the ordered field catalog for mode.
func FieldsFor(mode FormMode) []Field {
	return internalmodel.FieldsFor(mode)
}

// Build returns the form model for mode.
func Build(mode FormMode) (FormModel, error) {
	return internalmodel.Build(mode)
}

// Validate checks a form model for internal consistency.
func Validate(form FormModel) error {
	return internalmodel.Validate(form)
}

// DefaultLabeler derives a display label from a field name.
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}
