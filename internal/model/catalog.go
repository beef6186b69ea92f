package model

import "strconv"

// Canonical field names. SignUp uses all of them; SignIn only the credentials.
const (
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldAddress1    = "address1"
	FieldCity        = "city"
	FieldState       = "state"
	FieldPostalCode  = "postalCode"
	FieldDateOfBirth = "dob"
	FieldSSN         = "ssn"
	FieldEmail       = "email"
	FieldPassword    = "password"
)

// DateOfBirthLayout is the time layout for the DD-MM-YYYY date of birth input.
const DateOfBirthLayout = "02-01-2006"

// MinPasswordLength is the shortest password either mode accepts.
const MinPasswordLength = 6

// MaxPasswordBytes is the bcrypt input limit.
const MaxPasswordBytes = 72

var profileFields = []Field{
	text(FieldFirstName, "First Name", "Enter your first name", minLength(3)),
	text(FieldLastName, "Last Name", "Enter your last name", minLength(3)),
	text(FieldAddress1, "Address", "Enter your specific address", maxLength(50)),
	text(FieldCity, "City", "Enter your city", maxLength(50)),
	text(FieldState, "State", "Example: WB", minLength(2), maxLength(2)),
	text(FieldPostalCode, "Postal Code", "Example: 700000", minLength(3), maxLength(6)),
	{
		Name:        FieldDateOfBirth,
		Label:       "Date of Birth",
		Placeholder: "DD-MM-YYYY",
		Kind:        FieldKindDate,
		Required:    true,
		Validations: []ValidationRule{{Kind: ValidationRuleDate, Params: map[string]string{"layout": DateOfBirthLayout}}},
	},
	text(FieldSSN, "SSN", "Example: 1234", ValidationRule{
		Kind:   ValidationRuleDigits,
		Params: map[string]string{"value": "4", "message": "Enter the last 4 digits"},
	}),
}

var credentialFields = []Field{
	{
		Name:        FieldEmail,
		Label:       "Email",
		Placeholder: "Enter your email",
		Kind:        FieldKindEmail,
		Required:    true,
		Validations: []ValidationRule{{Kind: ValidationRuleEmail}},
	},
	{
		Name:        FieldPassword,
		Label:       "Password",
		Placeholder: "Enter your password",
		Kind:        FieldKindPassword,
		Required:    true,
		Validations: []ValidationRule{
			minLength(MinPasswordLength),
			{Kind: ValidationRuleMaxBytes, Params: map[string]string{"value": strconv.Itoa(MaxPasswordBytes)}},
		},
	},
}

// FieldsFor returns the ordered field catalog for mode. Each call returns a
// fresh copy; unknown modes yield nil.
func FieldsFor(mode FormMode) []Field {
	var src []Field
	switch mode {
	case FormModeSignIn:
		src = credentialFields
	case FormModeSignUp:
		src = make([]Field, 0, len(profileFields)+len(credentialFields))
		src = append(src, profileFields...)
		src = append(src, credentialFields...)
	default:
		return nil
	}
	out := make([]Field, len(src))
	for i, field := range src {
		out[i] = cloneField(field)
	}
	return out
}

// Build returns the form model for mode.
func Build(mode FormMode) (FormModel, error) {
	if !mode.Valid() {
		return FormModel{}, errUnknownMode(mode)
	}
	return FormModel{Mode: mode, Fields: FieldsFor(mode)}, nil
}

func text(name, label, placeholder string, rules ...ValidationRule) Field {
	return Field{
		Name:        name,
		Label:       label,
		Placeholder: placeholder,
		Kind:        FieldKindText,
		Required:    true,
		Validations: rules,
	}
}

func minLength(n int) ValidationRule {
	return ValidationRule{Kind: ValidationRuleMinLength, Params: map[string]string{"value": strconv.Itoa(n)}}
}

func maxLength(n int) ValidationRule {
	return ValidationRule{Kind: ValidationRuleMaxLength, Params: map[string]string{"value": strconv.Itoa(n)}}
}
