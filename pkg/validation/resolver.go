package validation

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-freedom/pkg/model"
)

// ErrUnknownMode is returned when Resolve receives anything other than
// SignIn or SignUp.
var ErrUnknownMode = errors.New("validation: unknown form mode")

// Schema is the field-level validation contract for one form mode. Schemas
// are immutable and safe to share between form instances.
type Schema struct {
	mode     model.FormMode
	fields   []model.Field
	index    map[string]int
	rules    map[string]fieldRules
	validate *validator.Validate
	now      func() time.Time
}

var schemas = map[model.FormMode]*Schema{
	model.FormModeSignIn: mustBuild(model.FormModeSignIn),
	model.FormModeSignUp: mustBuild(model.FormModeSignUp),
}

// Resolve returns the schema for mode. Repeated calls return the same schema.
func Resolve(mode model.FormMode) (*Schema, error) {
	schema, ok := schemas[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, string(mode))
	}
	return schema, nil
}

// MustResolve panics when mode is not a supported form mode.
func MustResolve(mode model.FormMode) *Schema {
	schema, err := Resolve(mode)
	if err != nil {
		panic(err)
	}
	return schema
}

// NewSchema compiles a schema from an explicit field list. Most callers want
// Resolve; this exists for tests and alternative catalogs.
func NewSchema(mode model.FormMode, fields []model.Field) (*Schema, error) {
	if err := model.Validate(model.FormModel{Mode: mode, Fields: fields}); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	s := &Schema{
		mode:   mode,
		fields: fields,
		index:  make(map[string]int, len(fields)),
		rules:  make(map[string]fieldRules, len(fields)),
		now:    time.Now,
	}
	validate, err := newValidator(func() time.Time { return s.now() })
	if err != nil {
		return nil, err
	}
	s.validate = validate
	for i, field := range fields {
		rules, err := compileRules(field)
		if err != nil {
			return nil, err
		}
		s.index[field.Name] = i
		s.rules[field.Name] = rules
	}
	return s, nil
}

func mustBuild(mode model.FormMode) *Schema {
	s, err := NewSchema(mode, model.FieldsFor(mode))
	if err != nil {
		panic(err)
	}
	return s
}

// Mode reports the form mode the schema validates.
func (s *Schema) Mode() model.FormMode {
	return s.mode
}

// Fields returns the ordered field catalog covered by the schema.
func (s *Schema) Fields() []model.Field {
	out := make([]model.Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the named field spec.
func (s *Schema) Field(name string) (model.Field, bool) {
	idx, ok := s.index[name]
	if !ok {
		return model.Field{}, false
	}
	return s.fields[idx], true
}

// Has reports whether name belongs to the schema.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// ValidateField checks a single value. Unknown names yield "".
func (s *Schema) ValidateField(name, value string) string {
	rules, ok := s.rules[name]
	if !ok {
		return ""
	}
	return rules.check(s.validate, value)
}

// Validate checks every field of the schema against values. Missing keys are
// treated as empty input; keys outside the schema are ignored.
func (s *Schema) Validate(values map[string]string) Result {
	result := make(Result)
	for _, field := range s.fields {
		if msg := s.rules[field.Name].check(s.validate, values[field.Name]); msg != "" {
			result[field.Name] = msg
		}
	}
	return result
}
