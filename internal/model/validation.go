package model

import (
	"errors"
	"fmt"
)

var (
	errFieldNameMissing = errors.New("model: field name is required")
	errFieldKindMissing = errors.New("model: field kind is required")
)

func errUnknownMode(mode FormMode) error {
	return fmt.Errorf("model: unknown form mode %q", string(mode))
}

// Validate checks that a form model is internally consistent: a known mode,
// named and typed fields, and no duplicate names.
func Validate(form FormModel) error {
	if !form.Mode.Valid() {
		return errUnknownMode(form.Mode)
	}
	seen := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		if field.Name == "" {
			return errFieldNameMissing
		}
		if field.Kind == "" {
			return fmt.Errorf("%w (%s)", errFieldKindMissing, field.Name)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("model: duplicate field %q", field.Name)
		}
		seen[field.Name] = struct{}{}
	}
	return nil
}
