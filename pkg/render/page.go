package render

import (
	"strings"

	"github.com/goliatone/go-freedom/pkg/form"
	"github.com/goliatone/go-freedom/pkg/model"
)

// Page is the localised, presentation-ready form shared by every renderer.
type Page struct {
	Mode        string        `json:"mode"`
	State       string        `json:"state"`
	Title       string        `json:"title"`
	Subtitle    string        `json:"subtitle"`
	SubmitLabel string        `json:"submit_label"`
	Busy        bool          `json:"busy"`
	Linking     bool          `json:"linking"`
	UserName    string        `json:"user_name,omitempty"`
	FormError   string        `json:"form_error,omitempty"`
	Action      string        `json:"action,omitempty"`
	Fields      []PageField   `json:"fields"`
	Hidden      []HiddenField `json:"hidden,omitempty"`
	Footer      PageFooter    `json:"footer"`
}

// PageField is one rendered input.
type PageField struct {
	Name         string `json:"name"`
	ID           string `json:"id"`
	Label        string `json:"label"`
	Placeholder  string `json:"placeholder,omitempty"`
	InputType    string `json:"input_type"`
	Autocomplete string `json:"autocomplete,omitempty"`
	Required     bool   `json:"required"`
	Value        string `json:"value,omitempty"`
	Error        string `json:"error,omitempty"`
}

// PageFooter is the mode switch link.
type PageFooter struct {
	Prompt string `json:"prompt,omitempty"`
	Label  string `json:"label,omitempty"`
	Href   string `json:"href,omitempty"`
}

// NewPage projects view into a Page, applying translations from opts.
// Password values are never echoed back.
func NewPage(view form.View, opts RenderOptions) Page {
	l := newLocalizer(opts)
	signIn := view.Mode == model.FormModeSignIn

	page := Page{
		Mode:      view.Mode.String(),
		State:     string(view.State),
		Busy:      view.Busy(),
		Linking:   !view.ShowCredentials(),
		FormError: view.FormError,
		Action:    strings.TrimSpace(opts.Action),
		Hidden:    SortedHiddenFields(opts.HiddenFields),
	}

	switch {
	case page.Linking:
		page.Title = l.text(KeyLinkTitle, view.Title())
		page.Subtitle = l.text(KeyLinkSubtitle, view.Subtitle())
		if view.User != nil {
			page.UserName = view.User.DisplayName()
		}
	case signIn:
		page.Title = l.text(KeySignInTitle, view.Title())
		page.Subtitle = l.text(KeySubtitle, view.Subtitle())
	default:
		page.Title = l.text(KeySignUpTitle, view.Title())
		page.Subtitle = l.text(KeySubtitle, view.Subtitle())
	}

	switch {
	case page.Busy:
		page.SubmitLabel = l.text(KeyLoading, view.SubmitLabel())
	case signIn:
		page.SubmitLabel = l.text(KeySignInSubmit, view.SubmitLabel())
	default:
		page.SubmitLabel = l.text(KeySignUpSubmit, view.SubmitLabel())
	}

	if footer := view.Footer(); footer.Href != "" {
		promptKey := KeySignUpPrompt
		if signIn {
			promptKey = KeySignInPrompt
		}
		page.Footer = PageFooter{
			Prompt: l.text(promptKey, footer.Prompt),
			Label:  l.text(KeyFooterLinkText, footer.Label),
			Href:   footer.Href,
		}
	}

	page.Fields = make([]PageField, 0, len(view.Fields))
	for _, field := range view.Fields {
		value := field.Value
		if field.Kind == model.FieldKindPassword {
			value = ""
		}
		page.Fields = append(page.Fields, PageField{
			Name:         field.Name,
			ID:           "auth-" + field.Name,
			Label:        l.text(FieldLabelKey(field.Name), field.Label),
			Placeholder:  l.text(FieldPlaceholderKey(field.Name), field.Placeholder),
			InputType:    field.InputType,
			Autocomplete: autocomplete(view.Mode, field.Name),
			Required:     field.Required,
			Value:        value,
			Error:        field.Error,
		})
	}
	return page
}

func autocomplete(mode model.FormMode, name string) string {
	switch name {
	case model.FieldEmail:
		return "email"
	case model.FieldPassword:
		if mode == model.FormModeSignUp {
			return "new-password"
		}
		return "current-password"
	case model.FieldFirstName:
		return "given-name"
	case model.FieldLastName:
		return "family-name"
	case model.FieldAddress1:
		return "address-line1"
	case model.FieldCity:
		return "address-level2"
	case model.FieldState:
		return "address-level1"
	case model.FieldPostalCode:
		return "postal-code"
	case model.FieldDateOfBirth:
		return "bday"
	}
	return ""
}
