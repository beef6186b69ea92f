package form

import (
	"github.com/goliatone/go-freedom/pkg/identity"
	"github.com/goliatone/go-freedom/pkg/model"
	"github.com/goliatone/go-freedom/pkg/submit"
)

// Routes for the two form modes, used by the footer link.
const (
	SignInPath = "/sign-in"
	SignUpPath = "/sign-up"
)

// FieldView is the presentation state of one input.
type FieldView struct {
	Name        string          `json:"name"`
	Label       string          `json:"label"`
	Placeholder string          `json:"placeholder,omitempty"`
	Kind        model.FieldKind `json:"kind"`
	InputType   string          `json:"input_type"`
	Required    bool            `json:"required"`
	Value       string          `json:"value,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// View is an immutable snapshot of the machine used by renderers.
type View struct {
	Mode          model.FormMode     `json:"mode"`
	State         State              `json:"state"`
	Submission    SubmissionState    `json:"submission"`
	Fields        []FieldView        `json:"fields"`
	FormError     string             `json:"form_error,omitempty"`
	FormErrorKind submit.ErrorKind   `json:"form_error_kind,omitempty"`
	User          *identity.Identity `json:"user,omitempty"`
}

// Footer is the prompt and link below the form that switches modes.
type Footer struct {
	Prompt string `json:"prompt"`
	Label  string `json:"label"`
	Href   string `json:"href"`
}

// Snapshot returns the current view.
func (m *Machine) Snapshot() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Machine) snapshotLocked() View {
	view := View{
		Mode:       m.mode,
		State:      m.state,
		Submission: m.state.Submission(),
	}
	if m.user != nil {
		user := *m.user
		view.User = &user
	}
	if m.formError != nil {
		view.FormError = m.formError.Message
		view.FormErrorKind = m.formError.Kind
	}
	if view.User != nil {
		return view
	}

	view.Fields = make([]FieldView, 0, len(m.fields))
	for _, field := range m.fields {
		view.Fields = append(view.Fields, FieldView{
			Name:        field.Name,
			Label:       field.Label,
			Placeholder: field.Placeholder,
			Kind:        field.Kind,
			InputType:   inputType(field.Kind),
			Required:    field.Required,
			Value:       m.values[field.Name],
			Error:       m.errors[field.Name],
		})
	}
	return view
}

func inputType(kind model.FieldKind) string {
	switch kind {
	case model.FieldKindEmail:
		return "email"
	case model.FieldKindPassword:
		return "password"
	}
	// Dates are typed as DD-MM-YYYY text.
	return "text"
}

// Busy reports whether a submission is pending. Renderers disable the submit
// control and show a spinner while it is true.
func (v View) Busy() bool {
	return v.Submission == SubmissionPending
}

// ShowCredentials reports whether the credential fields are presented. It is
// false once a sign up produced a user.
func (v View) ShowCredentials() bool {
	return v.User == nil
}

// Title is the form heading.
func (v View) Title() string {
	switch {
	case v.User != nil:
		return "Link Account"
	case v.Mode == model.FormModeSignIn:
		return "Sign In"
	}
	return "Sign Up"
}

// Subtitle is the line under the heading.
func (v View) Subtitle() string {
	if v.User != nil {
		return "Link your account to get started"
	}
	return "Please enter your details"
}

// SubmitLabel is the submit control label.
func (v View) SubmitLabel() string {
	if v.Busy() {
		return "Loading..."
	}
	if v.Mode == model.FormModeSignIn {
		return "Sign In"
	}
	return "Sign Up"
}

// Footer returns the mode switch link. It is empty after sign up succeeds.
func (v View) Footer() Footer {
	if v.User != nil {
		return Footer{}
	}
	if v.Mode == model.FormModeSignIn {
		return Footer{Prompt: "Don't have an account?", Label: "Sign Up", Href: SignUpPath}
	}
	return Footer{Prompt: "Already have an account?", Label: "Sign In", Href: SignInPath}
}

// Field returns the view of name.
func (v View) Field(name string) (FieldView, bool) {
	for _, field := range v.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldView{}, false
}

// Values collects the presented values keyed by field name.
func (v View) Values() map[string]string {
	out := make(map[string]string, len(v.Fields))
	for _, field := range v.Fields {
		out[field.Name] = field.Value
	}
	return out
}

// Errors collects the presented field errors.
func (v View) Errors() map[string]string {
	out := make(map[string]string)
	for _, field := range v.Fields {
		if field.Error != "" {
			out[field.Name] = field.Error
		}
	}
	return out
}
