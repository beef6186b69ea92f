package form

import (
	"fmt"

	"github.com/goliatone/go-freedom/pkg/model"
)

// Binding connects one named field to the machine. Renderers hold a binding
// per input and forward edits and blurs through it.
type Binding struct {
	machine *Machine
	field   model.Field
	inert   bool
}

// Field returns the binding for name. Binding a name outside the current
// mode's catalog panics in strict mode; otherwise it logs a warning and
// returns an inert binding whose operations do nothing.
func (m *Machine) Field(name string) *Binding {
	for _, field := range m.fields {
		if field.Name == name {
			return &Binding{machine: m, field: field}
		}
	}

	if m.strict {
		panic(fmt.Sprintf("form: field %q is not part of the %s form", name, m.mode))
	}
	m.logger.Warn("form: binding unknown field", "field", name, "mode", m.mode)
	return &Binding{machine: m, field: model.Field{Name: name}, inert: true}
}

// Fields returns one binding per field in presentation order.
func (m *Machine) Fields() []*Binding {
	out := make([]*Binding, 0, len(m.fields))
	for _, field := range m.fields {
		out = append(out, &Binding{machine: m, field: field})
	}
	return out
}

// Name returns the bound field name.
func (b *Binding) Name() string {
	return b.field.Name
}

// Spec returns the presented field definition.
func (b *Binding) Spec() model.Field {
	return b.field
}

// Inert reports whether the binding targets an unknown field.
func (b *Binding) Inert() bool {
	return b.inert
}

// Value returns the current value, "" when unset.
func (b *Binding) Value() string {
	if b.inert {
		return ""
	}
	return b.machine.value(b.field.Name)
}

// SetValue records an edit. A field that already shows an error is
// re-validated so the message clears as soon as the input becomes valid.
func (b *Binding) SetValue(value string) {
	if b.inert {
		return
	}
	b.machine.setValue(b.field.Name, value)
}

// Blur validates the field as the user leaves it.
func (b *Binding) Blur() {
	if b.inert {
		return
	}
	b.machine.blur(b.field.Name)
}

// Error returns the current validation message, "" when valid.
func (b *Binding) Error() string {
	if b.inert {
		return ""
	}
	return b.machine.fieldError(b.field.Name)
}
