package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-freedom/pkg/form"
	"github.com/goliatone/go-freedom/pkg/identity"
	"github.com/goliatone/go-freedom/pkg/model"
	"github.com/goliatone/go-freedom/pkg/render"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func signInView() form.View {
	return form.View{
		Mode:       model.FormModeSignIn,
		State:      form.StateAnonymous,
		Submission: form.SubmissionIdle,
		Fields: []form.FieldView{
			{Name: "email", Label: "Email", Placeholder: "Enter your email", Kind: model.FieldKindEmail, InputType: "email", Required: true, Value: "a@b", Error: "Invalid email address"},
			{Name: "password", Label: "Password", Placeholder: "Enter your password", Kind: model.FieldKindPassword, InputType: "password", Required: true, Value: "secret1"},
		},
	}
}

func TestNewPage_SignInDefaults(t *testing.T) {
	page := render.NewPage(signInView(), render.RenderOptions{
		Action:       "/sign-in",
		HiddenFields: map[string]string{"_csrf": "tok"},
	})

	if page.Title != "Sign In" || page.Subtitle != "Please enter your details" || page.SubmitLabel != "Sign In" {
		t.Fatalf("unexpected copy: %+v", page)
	}
	wantFooter := render.PageFooter{Prompt: "Don't have an account?", Label: "Sign Up", Href: "/sign-up"}
	if diff := cmp.Diff(wantFooter, page.Footer); diff != "" {
		t.Fatalf("footer mismatch (-want +got):\n%s", diff)
	}

	wantFields := []render.PageField{
		{Name: "email", ID: "auth-email", Label: "Email", Placeholder: "Enter your email", InputType: "email", Autocomplete: "email", Required: true, Value: "a@b", Error: "Invalid email address"},
		{Name: "password", ID: "auth-password", Label: "Password", Placeholder: "Enter your password", InputType: "password", Autocomplete: "current-password", Required: true},
	}
	if diff := cmp.Diff(wantFields, page.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]render.HiddenField{{Name: "_csrf", Value: "tok"}}, page.Hidden); diff != "" {
		t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
	}
}

func TestNewPage_BusyAndLinking(t *testing.T) {
	busy := signInView()
	busy.State = form.StateSubmitting
	busy.Submission = form.SubmissionPending
	if page := render.NewPage(busy, render.RenderOptions{}); !page.Busy || page.SubmitLabel != "Loading..." {
		t.Fatalf("expected loading submit label, got %+v", page)
	}

	linked := form.View{
		Mode:       model.FormModeSignUp,
		State:      form.StateAuthenticatedUnlinked,
		Submission: form.SubmissionSucceeded,
		User:       &identity.Identity{ID: "u1", FirstName: "Ada", LastName: "Lovelace"},
	}
	page := render.NewPage(linked, render.RenderOptions{})
	if !page.Linking || page.Title != "Link Account" || len(page.Fields) != 0 {
		t.Fatalf("expected link account page, got %+v", page)
	}
	if page.Footer.Href != "" {
		t.Fatalf("link page must not offer a mode switch")
	}
	if page.UserName == "" {
		t.Fatalf("expected user name on link page")
	}
}

func TestNewPage_Translations(t *testing.T) {
	var missing []string
	page := render.NewPage(signInView(), render.RenderOptions{
		Locale: "es",
		Translator: stubTranslator{
			render.KeySignInTitle:                  "Iniciar sesión",
			render.FieldLabelKey(model.FieldEmail): "Correo",
		},
		OnMissing: func(locale, key, fallback string, _ error) string {
			missing = append(missing, key)
			return fallback
		},
	})

	if page.Title != "Iniciar sesión" {
		t.Fatalf("title = %q", page.Title)
	}
	if page.Fields[0].Label != "Correo" || page.Fields[1].Label != "Password" {
		t.Fatalf("labels = %q, %q", page.Fields[0].Label, page.Fields[1].Label)
	}
	if len(missing) == 0 {
		t.Fatalf("expected missing translation callbacks")
	}
}

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, form.View, render.RenderOptions) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry(t *testing.T) {
	registry, err := render.NewRegistry(namedRenderer("HTML"), namedRenderer("tui"))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if diff := cmp.Diff([]string{"html", "tui"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if _, err := registry.Get("Html"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := registry.Get("pdf"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
	if err := registry.Register(namedRenderer("tui")); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}
