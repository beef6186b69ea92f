package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-freedom/pkg/model"
)

const (
	msgRequired     = "Required"
	msgInvalidEmail = "Invalid email address"
	msgInvalid      = "Invalid value"
)

// Custom validator tags registered on every schema.
const (
	tagDateLayout = "datelayout"
	tagPastDate   = "pastdate"
	tagMaxBytes   = "maxbytes"
)

// fieldRules is a field's ValidationRule list compiled into a validator tag.
// messages replaces the default copy for individual tags.
type fieldRules struct {
	tag      string
	messages map[string]string
}

func compileRules(field model.Field) (fieldRules, error) {
	var (
		minLen, maxLen *int
		lengthMsg      string
		email          = field.Kind == model.FieldKindEmail
		emailMsg       string
		tail           []string
		messages       = make(map[string]string)
	)

	for _, v := range field.Validations {
		msg := strings.TrimSpace(v.Params["message"])
		switch v.Kind {
		case model.ValidationRuleMinLength, model.ValidationRuleMaxLength:
			n, err := intParam(field.Name, v)
			if err != nil {
				return fieldRules{}, err
			}
			if v.Kind == model.ValidationRuleMinLength {
				minLen = &n
			} else {
				maxLen = &n
			}
			if msg != "" {
				lengthMsg = msg
			}
		case model.ValidationRuleEmail:
			email = true
			emailMsg = msg
		case model.ValidationRuleDigits:
			n, err := intParam(field.Name, v)
			if err != nil {
				return fieldRules{}, err
			}
			tail = append(tail, "len="+strconv.Itoa(n), "number")
			if msg != "" {
				messages["len"] = msg
				messages["number"] = msg
			}
		case model.ValidationRuleDate:
			layout := v.Params["layout"]
			if layout == "" {
				layout = model.DateOfBirthLayout
			}
			if strings.ContainsAny(layout, ",|=") {
				return fieldRules{}, fmt.Errorf("validation: %s: unsupported date layout %q", field.Name, layout)
			}
			tail = append(tail, tagDateLayout+"="+layout, tagPastDate+"="+layout)
			if msg != "" {
				messages[tagDateLayout] = msg
				messages[tagPastDate] = msg
			}
		case model.ValidationRuleMaxBytes:
			n, err := intParam(field.Name, v)
			if err != nil {
				return fieldRules{}, err
			}
			tail = append(tail, tagMaxBytes+"="+strconv.Itoa(n))
			if msg != "" {
				messages[tagMaxBytes] = msg
			}
		default:
			return fieldRules{}, fmt.Errorf("validation: %s: unsupported rule %q", field.Name, v.Kind)
		}
	}

	tags := []string{"omitempty"}
	if field.Required {
		tags[0] = "required"
	}
	switch {
	case minLen != nil && maxLen != nil && *minLen == *maxLen:
		tags = append(tags, "len="+strconv.Itoa(*minLen))
	default:
		if minLen != nil {
			tags = append(tags, "min="+strconv.Itoa(*minLen))
		}
		if maxLen != nil {
			tags = append(tags, "max="+strconv.Itoa(*maxLen))
		}
	}
	if lengthMsg != "" {
		messages["len"] = lengthMsg
		messages["min"] = lengthMsg
		messages["max"] = lengthMsg
	}
	if email {
		tags = append(tags, "email")
		if emailMsg != "" {
			messages["email"] = emailMsg
		}
	}
	tags = append(tags, tail...)

	return fieldRules{tag: strings.Join(tags, ","), messages: messages}, nil
}

func intParam(field string, rule model.ValidationRule) (int, error) {
	n, err := strconv.Atoi(rule.Params["value"])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("validation: %s: bad %s %q", field, rule.Kind, rule.Params["value"])
	}
	return n, nil
}

// check returns the first failing rule's message, or "" when value passes.
// Whitespace-only input counts as empty.
func (r fieldRules) check(v *validator.Validate, value string) string {
	if strings.TrimSpace(value) == "" {
		value = ""
	}
	err := v.Var(value, r.tag)
	if err == nil {
		return ""
	}
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) || len(failures) == 0 {
		return msgInvalid
	}
	failure := failures[0]
	if msg, ok := r.messages[failure.Tag()]; ok {
		return msg
	}
	return message(failure)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fe.Param())
	case "email":
		return msgInvalidEmail
	case "number":
		return "Must contain only digits"
	case tagDateLayout:
		return "Use the format " + displayLayout(fe.Param())
	case tagPastDate:
		return "Must be a date in the past"
	case tagMaxBytes:
		return fmt.Sprintf("Must be at most %s bytes", fe.Param())
	}
	return msgInvalid
}

// newValidator returns a validator with the date and byte-length tags bound
// to now.
func newValidator(now func() time.Time) (*validator.Validate, error) {
	v := validator.New()
	custom := map[string]validator.Func{
		tagDateLayout: func(fl validator.FieldLevel) bool {
			_, err := time.Parse(fl.Param(), strings.TrimSpace(fl.Field().String()))
			return err == nil
		},
		tagPastDate: func(fl validator.FieldLevel) bool {
			parsed, err := time.Parse(fl.Param(), strings.TrimSpace(fl.Field().String()))
			return err == nil && !parsed.After(now())
		},
		tagMaxBytes: func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Param())
			return err == nil && len(fl.Field().String()) <= n
		},
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("validation: register %s: %w", tag, err)
		}
	}
	return v, nil
}

func displayLayout(layout string) string {
	if layout == model.DateOfBirthLayout {
		return "DD-MM-YYYY"
	}
	return layout
}
