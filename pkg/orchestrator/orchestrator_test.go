package orchestrator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-freedom/pkg/form"
	"github.com/goliatone/go-freedom/pkg/model"
	"github.com/goliatone/go-freedom/pkg/render"
	"github.com/goliatone/go-freedom/pkg/submit"
	"github.com/goliatone/go-freedom/pkg/testsupport"
	theme "github.com/goliatone/go-theme"
)

type captureRenderer struct {
	view    form.View
	options render.RenderOptions
}

func (r *captureRenderer) Name() string        { return "capture" }
func (r *captureRenderer) ContentType() string { return "text/plain" }

func (r *captureRenderer) Render(_ context.Context, view form.View, opts render.RenderOptions) ([]byte, error) {
	r.view = view
	r.options = opts
	return []byte(view.Title()), nil
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func captureRegistry(t *testing.T) (*render.Registry, *captureRenderer) {
	t.Helper()
	renderer := &captureRenderer{}
	registry, err := render.NewRegistry(renderer)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return registry, renderer
}

func TestNewForm_RequiresIdentityService(t *testing.T) {
	orch := New(WithLogger(quietLogger()))
	if _, err := orch.NewForm(model.FormModeSignIn, &testsupport.RecordingRouter{}); !errors.Is(err, ErrNoIdentityService) {
		t.Fatalf("expected ErrNoIdentityService, got %v", err)
	}
}

func TestNewForm_SignInThroughService(t *testing.T) {
	svc := testsupport.NewStubService()
	router := &testsupport.RecordingRouter{}
	orch := New(WithIdentityService(svc), WithLogger(quietLogger()))

	m, err := orch.NewForm(model.FormModeSignIn, router)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	for name, value := range testsupport.SignInValues() {
		m.Field(name).SetValue(value)
	}
	if err := m.SubmitAndWait(testsupport.Context()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if m.State() != form.StateSignedIn {
		t.Fatalf("state = %s", m.State())
	}
	if paths := router.Paths(); len(paths) != 1 || paths[0] != form.DashboardPath {
		t.Fatalf("unexpected navigation %v", paths)
	}
}

func TestNewForm_AppliesUISchemaAndMessages(t *testing.T) {
	svc := testsupport.NewStubService()
	svc.CheckErr = errors.New("boom")
	overlay := fstest.MapFS{"auth.yaml": {Data: []byte("forms:\n  sign-in:\n    fields:\n      email: {label: Work email}\n")}}

	orch := New(
		WithIdentityService(svc),
		WithUISchemaFS(overlay),
		WithMessages(map[submit.ErrorKind]string{submit.ErrorService: "Try later."}),
		WithLogger(quietLogger()),
	)
	m, err := orch.NewForm(model.FormModeSignIn, &testsupport.RecordingRouter{})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	field, ok := m.Snapshot().Field("email")
	if !ok || field.Label != "Work email" {
		t.Fatalf("overlay label missing: %+v", field)
	}

	for name, value := range testsupport.SignInValues() {
		m.Field(name).SetValue(value)
	}
	_ = m.SubmitAndWait(testsupport.Context())
	if fe := m.FormError(); fe == nil || fe.Message != "Try later." {
		t.Fatalf("unexpected form error %+v", fe)
	}
}

func TestNew_InvalidUISchema(t *testing.T) {
	orch := New(
		WithIdentityService(testsupport.NewStubService()),
		WithUISchemaFS(fstest.MapFS{"a.yaml": {Data: []byte("forms:\n  link: {}\n")}}),
	)
	if _, err := orch.NewForm(model.FormModeSignIn, &testsupport.RecordingRouter{}); err == nil {
		t.Fatalf("expected ui schema error")
	}
}

func TestRender_DefaultHTML(t *testing.T) {
	orch := New(WithIdentityService(testsupport.NewStubService()), WithLogger(quietLogger()))
	m, err := orch.NewForm(model.FormModeSignUp, &testsupport.RecordingRouter{})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	out, err := orch.Render(testsupport.Context(), m, "", render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `name="postalCode"`) {
		t.Fatalf("expected sign-up markup, got:\n%s", out)
	}
	if _, err := orch.Render(testsupport.Context(), m, "pdf", render.RenderOptions{}); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestRender_PassesThemeSelection(t *testing.T) {
	registry, renderer := captureRegistry(t)
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens:  map[string]string{"brand": "#123456"},
			Assets: theme.Assets{
				Prefix: "/assets/themes/acme",
				Files:  map[string]string{"auth.stylesheet": "auth.css"},
			},
			Variants: map[string]theme.Variant{
				"dark": {Tokens: map[string]string{"brand": "#654321"}},
			},
		},
	}}

	orch := New(
		WithIdentityService(testsupport.NewStubService()),
		WithRegistry(registry),
		WithDefaultRenderer("capture"),
		WithThemeSelector(selector, "acme", "dark"),
		WithUISchemaFS(nil),
		WithLogger(quietLogger()),
	)
	m, err := orch.NewForm(model.FormModeSignIn, &testsupport.RecordingRouter{})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	out, err := orch.Render(testsupport.Context(), m, "", render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "Sign In" {
		t.Fatalf("output = %q", out)
	}
	if len(selector.calls) != 1 || selector.calls[0] != (selectorCall{name: "acme", variant: "dark"}) {
		t.Fatalf("unexpected selector calls %+v", selector.calls)
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Tokens["brand"] != "#654321" || cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("variant tokens not applied: %+v", cfg.Tokens)
	}
	if got := cfg.AssetURL("auth.stylesheet"); got != "/assets/themes/acme/auth.css" {
		t.Fatalf("stylesheet url = %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("missing asset url = %q", got)
	}
}

func TestRender_ThemeSelectionError(t *testing.T) {
	registry, _ := captureRegistry(t)
	orch := New(
		WithIdentityService(testsupport.NewStubService()),
		WithRegistry(registry),
		WithThemeSelector(&stubThemeSelector{err: errors.New("no theme")}, "acme", ""),
		WithUISchemaFS(nil),
	)
	m, err := orch.NewForm(model.FormModeSignIn, &testsupport.RecordingRouter{})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	if _, err := orch.Render(testsupport.Context(), m, "capture", render.RenderOptions{}); err == nil {
		t.Fatalf("expected theme error")
	}
}
